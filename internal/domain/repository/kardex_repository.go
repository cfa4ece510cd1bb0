package repository

import (
	"context"

	"github.com/jhoicas/Kardex-mvc/internal/domain/entity"
)

// KardexRepository define el puerto de persistencia para Kardex (DIP).
// Las fallas del almacenamiento se devuelven como *domain.PersistenceError.
type KardexRepository interface {
	// List devuelve todos los registros en el orden que entregue el almacenamiento.
	List(ctx context.Context) ([]*entity.Kardex, error)
	// Create inserta el registro y escribe en k.ID la identidad asignada.
	Create(ctx context.Context, k *entity.Kardex) error
	// Update modifica el registro con k.ID y devuelve la cantidad de filas afectadas.
	Update(ctx context.Context, k *entity.Kardex) (int64, error)
	// Delete elimina por ID; un ID inexistente no es error.
	Delete(ctx context.Context, id int) error
}

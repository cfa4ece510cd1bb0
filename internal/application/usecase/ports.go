package usecase

import (
	"context"

	"github.com/jhoicas/Kardex-mvc/internal/domain/repository"
)

// KardexTxRunner ejecuta fn dentro de una transacción con un repositorio atado a ella.
type KardexTxRunner interface {
	RunKardex(ctx context.Context, fn func(repo repository.KardexRepository) error) error
}

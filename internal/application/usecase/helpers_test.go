package usecase_test

import (
	"context"

	"github.com/jhoicas/Kardex-mvc/internal/domain"
	"github.com/jhoicas/Kardex-mvc/internal/domain/entity"
	"github.com/jhoicas/Kardex-mvc/internal/domain/repository"
)

type usecaseRepo = repository.KardexRepository

// failAfter deja pasar left inserts y luego devuelve una falla de persistencia.
type failAfter struct {
	repository.KardexRepository
	left int
}

func (f *failAfter) Create(ctx context.Context, k *entity.Kardex) error {
	if f.left == 0 {
		return domain.NewPersistenceError("create", errDown)
	}
	f.left--
	return f.KardexRepository.Create(ctx, k)
}

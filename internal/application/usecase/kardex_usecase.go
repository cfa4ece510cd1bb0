package usecase

import (
	"context"
	"errors"
	"math"

	"github.com/jhoicas/Kardex-mvc/internal/application/dto"
	"github.com/jhoicas/Kardex-mvc/internal/domain"
	"github.com/jhoicas/Kardex-mvc/internal/domain/entity"
	"github.com/jhoicas/Kardex-mvc/internal/domain/repository"
	"github.com/jhoicas/Kardex-mvc/pkg/logger"
)

// KardexUseCase casos de uso CRUD para registros Kardex.
type KardexUseCase struct {
	repo repository.KardexRepository
	tx   KardexTxRunner
	log  *logger.Logger
}

// NewKardexUseCase construye el caso de uso. tx puede ser nil: Import usa entonces repo directamente.
func NewKardexUseCase(repo repository.KardexRepository, tx KardexTxRunner, log *logger.Logger) *KardexUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &KardexUseCase{repo: repo, tx: tx, log: log}
}

// List vuelve a leer la tabla completa.
func (uc *KardexUseCase) List(ctx context.Context) ([]*entity.Kardex, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		uc.log.Error().Err(err).Msg("listar kardex")
		return nil, err
	}
	uc.log.Debug().Int("count", len(list)).Msg("kardex listado")
	return list, nil
}

// Create valida y persiste un registro nuevo; el ID lo asigna el almacenamiento.
func (uc *KardexUseCase) Create(ctx context.Context, k *entity.Kardex) error {
	k.ID = 0
	if err := ValidateKardex(k, false); err != nil {
		uc.logValidation(err)
		return err
	}
	if err := uc.repo.Create(ctx, k); err != nil {
		uc.log.Error().Err(err).Str("curso", k.Course).Msg("crear kardex")
		return err
	}
	uc.log.Info().Int("id", k.ID).Str("curso", k.Course).Msg("kardex creado")
	return nil
}

// Update valida y modifica el registro k.ID. Devuelve las filas afectadas (0 si no existe).
func (uc *KardexUseCase) Update(ctx context.Context, k *entity.Kardex) (int64, error) {
	if err := ValidateKardex(k, true); err != nil {
		uc.logValidation(err)
		return 0, err
	}
	n, err := uc.repo.Update(ctx, k)
	if err != nil {
		uc.log.Error().Err(err).Int("id", k.ID).Msg("modificar kardex")
		return 0, err
	}
	uc.log.Info().Int("id", k.ID).Int64("affected", n).Msg("kardex modificado")
	return n, nil
}

// Delete elimina por ID. Un ID inexistente no es error; fuera del rango de IdKardex
// tampoco, y no llega al almacenamiento.
func (uc *KardexUseCase) Delete(ctx context.Context, id int) error {
	if id <= 0 || id > math.MaxInt32 {
		uc.log.Debug().Int("id", id).Msg("id fuera de rango, nada que eliminar")
		return nil
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		uc.log.Error().Err(err).Int("id", id).Msg("eliminar kardex")
		return err
	}
	uc.log.Info().Int("id", id).Msg("kardex eliminado")
	return nil
}

// Add interpreta el formulario (sin IdKardex) y crea el registro.
func (uc *KardexUseCase) Add(ctx context.Context, form dto.KardexForm) (*entity.Kardex, error) {
	k, err := ParseForm(form, false)
	if err != nil {
		uc.logValidation(err)
		return nil, err
	}
	if err := uc.Create(ctx, k); err != nil {
		return nil, err
	}
	return k, nil
}

// Modify interpreta el formulario completo y modifica el registro.
func (uc *KardexUseCase) Modify(ctx context.Context, form dto.KardexForm) (int64, error) {
	k, err := ParseForm(form, true)
	if err != nil {
		uc.logValidation(err)
		return 0, err
	}
	return uc.Update(ctx, k)
}

// Import crea todas las filas válidas en una sola transacción.
// Las filas con errores de validación se informan en el resultado; una falla de
// persistencia revierte la importación completa.
func (uc *KardexUseCase) Import(ctx context.Context, rows []dto.ImportRow) (*dto.ImportResult, error) {
	result := &dto.ImportResult{Rejected: []dto.ImportRowError{}}
	valid := make([]*entity.Kardex, 0, len(rows))
	for _, row := range rows {
		k, err := ParseForm(row.Form, false)
		if err != nil {
			result.Rejected = append(result.Rejected, dto.ImportRowError{Line: row.Line, Message: err.Error()})
			continue
		}
		valid = append(valid, k)
	}

	insert := func(repo repository.KardexRepository) error {
		for _, k := range valid {
			if err := repo.Create(ctx, k); err != nil {
				return err
			}
		}
		return nil
	}

	var err error
	if uc.tx != nil {
		err = uc.tx.RunKardex(ctx, insert)
	} else {
		err = insert(uc.repo)
	}
	if err != nil {
		uc.log.Error().Err(err).Int("rows", len(valid)).Msg("importar kardex")
		return nil, err
	}

	result.Created = len(valid)
	uc.log.Info().Int("created", result.Created).Int("rejected", len(result.Rejected)).Msg("kardex importado")
	return result, nil
}

func (uc *KardexUseCase) logValidation(err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		uc.log.Warn().Str("field", ve.Field).Str("value", ve.Value).Msg(ve.Reason)
	}
}

package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Kardex-mvc/internal/domain"
)

func TestValidationError_EsErrInvalidInput(t *testing.T) {
	var err error = &domain.ValidationError{Field: "semestre", Value: "abc", Reason: "debe ser un número entero"}

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.NotErrorIs(t, err, domain.ErrPersistence)
	assert.Equal(t, `semestre: debe ser un número entero ("abc")`, err.Error())
}

func TestValidationError_SinValor(t *testing.T) {
	err := &domain.ValidationError{Field: "curso", Reason: "es requerido"}
	assert.Equal(t, "curso: es requerido", err.Error())
}

func TestPersistenceError_UnwrapYSentinel(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("listar: %w", domain.NewPersistenceError("list", cause))

	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.ErrorIs(t, err, cause, "debe conservar la causa del driver")

	var pe *domain.PersistenceError
	assert.True(t, errors.As(err, &pe))
	assert.Equal(t, "list", pe.Op)
}

package usecase

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Kardex-mvc/internal/application/dto"
	"github.com/jhoicas/Kardex-mvc/internal/domain"
	"github.com/jhoicas/Kardex-mvc/internal/domain/entity"
)

// Nombres de campo usados en los errores de validación.
const (
	FieldID       = "id_kardex"
	FieldCourse   = "curso"
	FieldSemester = "semestre"
	FieldGrade    = "nota"
)

// ParseForm interpreta los campos de texto del formulario.
// Con requireID también exige un IdKardex entero positivo (modificar).
// Semestre es entero y Nota decimal entera en todos los caminos.
func ParseForm(in dto.KardexForm, requireID bool) (*entity.Kardex, error) {
	k := &entity.Kardex{}

	if requireID {
		id, err := parseInt32(FieldID, in.ID)
		if err != nil {
			return nil, err
		}
		k.ID = id
	}

	k.Course = strings.TrimSpace(in.Course)

	semester, err := parseInt32(FieldSemester, in.Semester)
	if err != nil {
		return nil, err
	}
	k.Semester = semester

	grade, err := ParseGrade(in.Grade)
	if err != nil {
		return nil, err
	}
	k.Grade = grade

	if err := ValidateKardex(k, requireID); err != nil {
		return nil, err
	}
	return k, nil
}

// ParseGrade interpreta la nota como decimal; "85" y "85.0" son equivalentes.
func ParseGrade(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, &domain.ValidationError{Field: FieldGrade, Reason: "es requerido"}
	}
	grade, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &domain.ValidationError{Field: FieldGrade, Value: clip(raw), Reason: "debe ser un número"}
	}
	if !gradeBounded(grade) {
		return decimal.Zero, &domain.ValidationError{Field: FieldGrade, Value: clip(raw), Reason: "fuera de rango"}
	}
	return grade, nil
}

// ValidateKardex comprueba las reglas que dependen del esquema (columnas INT, curso requerido).
func ValidateKardex(k *entity.Kardex, requireID bool) error {
	if requireID && k.ID <= 0 {
		return &domain.ValidationError{Field: FieldID, Value: strconv.Itoa(k.ID), Reason: "debe ser un entero positivo"}
	}
	if k.ID > math.MaxInt32 {
		return &domain.ValidationError{Field: FieldID, Value: strconv.Itoa(k.ID), Reason: "fuera de rango"}
	}
	if strings.TrimSpace(k.Course) == "" {
		return &domain.ValidationError{Field: FieldCourse, Reason: "es requerido"}
	}
	if k.Semester < math.MinInt32 || k.Semester > math.MaxInt32 {
		return &domain.ValidationError{Field: FieldSemester, Value: strconv.Itoa(k.Semester), Reason: "fuera de rango"}
	}
	// Exponente y dígitos acotados antes de cualquier operación que reescale el valor.
	if !gradeBounded(k.Grade) {
		return &domain.ValidationError{Field: FieldGrade, Reason: "fuera de rango"}
	}
	if !k.Grade.Equal(k.Grade.Truncate(0)) {
		return &domain.ValidationError{Field: FieldGrade, Value: clip(k.Grade.String()), Reason: "debe ser un número entero"}
	}
	if k.Grade.LessThan(decimal.NewFromInt(math.MinInt32)) || k.Grade.GreaterThan(decimal.NewFromInt(math.MaxInt32)) {
		return &domain.ValidationError{Field: FieldGrade, Value: clip(k.Grade.String()), Reason: "fuera de rango"}
	}
	return nil
}

func parseInt32(field, raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, &domain.ValidationError{Field: field, Reason: "es requerido"}
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, &domain.ValidationError{Field: field, Value: clip(raw), Reason: "fuera de rango"}
		}
		return 0, &domain.ValidationError{Field: field, Value: clip(raw), Reason: "debe ser un número entero"}
	}
	return int(n), nil
}

// Límites de la representación decimal de una nota.
const (
	maxGradeExponent = 10
	maxGradeDigits   = 20
	maxValueRunes    = 32
)

func gradeBounded(d decimal.Decimal) bool {
	exp := d.Exponent()
	return exp >= -maxGradeExponent && exp <= maxGradeExponent && d.NumDigits() <= maxGradeDigits
}

// clip recorta el valor mostrado en los mensajes de error.
func clip(raw string) string {
	r := []rune(raw)
	if len(r) <= maxValueRunes {
		return raw
	}
	return string(r[:maxValueRunes]) + "…"
}

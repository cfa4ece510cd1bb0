package entity

import "github.com/shopspring/decimal"

// Kardex representa una fila de la tabla Kardex (registro académico).
// ID lo asigna el almacenamiento al insertar; 0 indica un registro aún no persistido.
type Kardex struct {
	ID       int
	Course   string          // Curso
	Semester int             // Semestre
	Grade    decimal.Decimal // Nota (columna entera: solo valores enteros)
}

// IsPersisted indica si el registro ya tiene identidad asignada por la base de datos.
func (k *Kardex) IsPersisted() bool {
	return k != nil && k.ID > 0
}

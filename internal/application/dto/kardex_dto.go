package dto

import "github.com/shopspring/decimal"

// KardexForm los cuatro campos de texto del formulario, sin interpretar.
type KardexForm struct {
	ID       string
	Course   string
	Semester string
	Grade    string
}

// PlaceholderForm valores que muestra el formulario al pulsar "Nuevo".
var PlaceholderForm = KardexForm{ID: "--", Course: "**", Semester: "??", Grade: "---"}

// TableView representación tabular de los registros, reconstruida en cada listado.
type TableView struct {
	Columns []string
	Rows    [][]string
}

// Len cantidad de filas.
func (t TableView) Len() int { return len(t.Rows) }

// Cell devuelve la celda (row, col) o "" y false si está fuera de rango.
func (t TableView) Cell(row, col int) (string, bool) {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return "", false
	}
	return t.Rows[row][col], true
}

// KardexRequest entrada JSON para crear o modificar un registro.
type KardexRequest struct {
	Course   string          `json:"curso"`
	Semester int             `json:"semestre"`
	Grade    decimal.Decimal `json:"nota" swaggertype:"number"`
}

// KardexResponse salida de un registro.
type KardexResponse struct {
	ID       int             `json:"id_kardex"`
	Course   string          `json:"curso"`
	Semester int             `json:"semestre"`
	Grade    decimal.Decimal `json:"nota" swaggertype:"number"`
}

// KardexListResponse lista completa de registros.
type KardexListResponse struct {
	Items []KardexResponse `json:"items"`
	Total int              `json:"total"`
}

// UpdateResponse resultado de una modificación.
type UpdateResponse struct {
	Affected int64 `json:"affected"`
}

// ImportRowError fila del CSV rechazada por validación.
type ImportRowError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// ImportResult resumen de una importación.
type ImportResult struct {
	Created  int              `json:"created"`
	Rejected []ImportRowError `json:"rejected"`
}

// ImportRow fila leída de un archivo de importación, con su número de línea.
type ImportRow struct {
	Line int
	Form KardexForm
}

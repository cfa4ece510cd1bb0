// Package csvimport lee archivos CSV con columnas curso,semestre,nota para importarlos.
// Acepta "," o ";" como separador, una fila de encabezado opcional y, si se pide,
// texto en ISO-8859-1 (exportaciones de herramientas antiguas en Windows).
package csvimport

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Kardex-mvc/internal/application/dto"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Reader lector de filas a importar.
type Reader struct {
	Latin1 bool
}

// NewReader construye el lector. latin1 decodifica la entrada desde ISO-8859-1.
func NewReader(latin1 bool) *Reader {
	return &Reader{Latin1: latin1}
}

// Read devuelve una fila por registro con su número de línea; no valida el contenido.
func (r *Reader) Read(in io.Reader) ([]dto.ImportRow, error) {
	if r.Latin1 {
		in = transform.NewReader(in, charmap.ISO8859_1.NewDecoder())
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("csv: leer entrada: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = detectSeparator(data)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows := make([]dto.ImportRow, 0)
	first := true
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: %w", err)
		}
		line, _ := cr.FieldPos(0)
		if first {
			first = false
			if isHeader(rec) {
				continue
			}
		}
		rows = append(rows, dto.ImportRow{Line: line, Form: dto.KardexForm{
			Course:   field(rec, 0),
			Semester: field(rec, 1),
			Grade:    field(rec, 2),
		}})
	}
	return rows, nil
}

// detectSeparator elige ";" si aparece más que "," en la primera línea.
func detectSeparator(data []byte) rune {
	firstLine := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		firstLine = data[:i]
	}
	if bytes.Count(firstLine, []byte(";")) > bytes.Count(firstLine, []byte(",")) {
		return ';'
	}
	return ','
}

func isHeader(rec []string) bool {
	return len(rec) > 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "curso")
}

func field(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

package report

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Kardex-mvc/internal/domain/entity"
)

// SheetName hoja donde se escribe el listado.
const SheetName = "Kardex"

// XLSXGenerator genera el listado Kardex como libro de Excel.
type XLSXGenerator struct{}

// NewXLSXGenerator construye el generador.
func NewXLSXGenerator() *XLSXGenerator { return &XLSXGenerator{} }

// Generate devuelve los bytes del libro: fila 1 título, fila 2 encabezados, luego un registro por fila.
func (g *XLSXGenerator) Generate(_ context.Context, title string, records []*entity.Kardex) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(SheetName)
	if err != nil {
		return nil, fmt.Errorf("xlsx: crear hoja: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("xlsx: borrar hoja por defecto: %w", err)
	}

	_ = f.SetColWidth(SheetName, "A", "A", 10)
	_ = f.SetColWidth(SheetName, "B", "B", 32)
	_ = f.SetColWidth(SheetName, "C", "D", 12)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#00467F"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}

	_ = f.SetCellValue(SheetName, "A1", title)
	_ = f.MergeCell(SheetName, "A1", "D1")

	for i, h := range []string{"IdKardex", "Curso", "Semestre", "Nota"} {
		c, _ := excelize.CoordinatesToCellName(i+1, 2)
		_ = f.SetCellValue(SheetName, c, h)
	}
	_ = f.SetCellStyle(SheetName, "A2", "D2", headerStyle)

	for i, k := range records {
		r := i + 3
		_ = f.SetCellValue(SheetName, cell("A", r), k.ID)
		_ = f.SetCellValue(SheetName, cell("B", r), k.Course)
		_ = f.SetCellValue(SheetName, cell("C", r), k.Semester)
		_ = f.SetCellValue(SheetName, cell("D", r), k.Grade.IntPart())
	}

	s := Summarize(records)
	last := len(records) + 3
	_ = f.SetCellValue(SheetName, cell("C", last), "Promedio")
	_ = f.SetCellValue(SheetName, cell("D", last), s.Average.InexactFloat64())

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

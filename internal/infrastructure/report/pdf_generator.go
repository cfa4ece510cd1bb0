package report

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Kardex-mvc/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// PDFGenerator genera el listado Kardex en A4.
type PDFGenerator struct {
	now func() time.Time
}

// NewPDFGenerator construye el generador.
func NewPDFGenerator() *PDFGenerator { return &PDFGenerator{now: time.Now} }

// Generate devuelve los bytes del PDF.
func (g *PDFGenerator) Generate(_ context.Context, title string, records []*entity.Kardex) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(15).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(title, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(records)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(summaryRow(Summarize(records)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(title string, at time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 2}),
		),
		col.New(4).Add(
			text.New("Fecha: "+at.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 4, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: a, Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("IdKardex", 2, align.Center),
		h("Curso", 6, align.Left),
		h("Semestre", 2, align.Center),
		h("Nota", 2, align.Right),
	)
}

func tableRows(records []*entity.Kardex) []core.Row {
	rows := make([]core.Row, 0, len(records))
	for _, k := range records {
		rows = append(rows, row.New(7).Add(
			col.New(2).Add(text.New(strconv.Itoa(k.ID), props.Text{Size: 9, Align: align.Center, Top: 1})),
			col.New(6).Add(text.New(k.Course, props.Text{Size: 9, Align: align.Left, Top: 1})),
			col.New(2).Add(text.New(strconv.Itoa(k.Semester), props.Text{Size: 9, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(k.Grade.String(), props.Text{Size: 9, Align: align.Right, Top: 1})),
		))
	}
	return rows
}

func summaryRow(s Summary) core.Row {
	return row.New(10).Add(
		col.New(8).Add(text.New(fmt.Sprintf("Registros: %d", s.Count), props.Text{
			Style: fontstyle.Bold, Size: 9, Top: 2,
		})),
		col.New(4).Add(text.New("Promedio: "+s.Average.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2,
		})),
	)
}

// Package report genera el listado de registros Kardex en PDF (Maroto v2) y XLSX (excelize).
package report

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Kardex-mvc/internal/domain/entity"
)

// Summary totales que acompañan al listado.
type Summary struct {
	Count   int
	Average decimal.Decimal // promedio de Nota, dos decimales; cero si no hay registros
}

// Summarize calcula la cantidad de registros y el promedio de notas.
func Summarize(records []*entity.Kardex) Summary {
	if len(records) == 0 {
		return Summary{Average: decimal.Zero}
	}
	sum := decimal.Zero
	for _, k := range records {
		sum = sum.Add(k.Grade)
	}
	avg := sum.Div(decimal.NewFromInt(int64(len(records)))).Round(2)
	return Summary{Count: len(records), Average: avg}
}

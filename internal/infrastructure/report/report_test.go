package report

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Kardex-mvc/internal/domain/entity"
)

func sample() []*entity.Kardex {
	return []*entity.Kardex{
		{ID: 1, Course: "Matemática", Semester: 3, Grade: decimal.NewFromInt(85)},
		{ID: 2, Course: "Física", Semester: 4, Grade: decimal.NewFromInt(90)},
		{ID: 5, Course: "Historia", Semester: 2, Grade: decimal.NewFromInt(60)},
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(sample())
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, "78.33", s.Average.StringFixed(2))

	empty := Summarize(nil)
	assert.Zero(t, empty.Count)
	assert.True(t, empty.Average.IsZero())
}

func TestPDFGenerator_GeneraDocumento(t *testing.T) {
	out, err := NewPDFGenerator().Generate(context.Background(), "Listado Kardex", sample())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "debe ser un documento PDF")
}

func TestPDFGenerator_SinRegistros(t *testing.T) {
	out, err := NewPDFGenerator().Generate(context.Background(), "Listado Kardex", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestXLSXGenerator_CeldasEsperadas(t *testing.T) {
	out, err := NewXLSXGenerator().Generate(context.Background(), "Listado Kardex", sample())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	get := func(c string) string {
		v, err := f.GetCellValue(SheetName, c)
		require.NoError(t, err)
		return v
	}
	assert.Equal(t, "Listado Kardex", get("A1"))
	assert.Equal(t, "IdKardex", get("A2"))
	assert.Equal(t, "Nota", get("D2"))
	assert.Equal(t, "1", get("A3"))
	assert.Equal(t, "Matemática", get("B3"))
	assert.Equal(t, "90", get("D4"))
	assert.Equal(t, "5", get("A5"))
	assert.Equal(t, "Promedio", get("C6"))
}

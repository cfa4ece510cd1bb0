package csvimport

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/Kardex-mvc/internal/application/dto"
)

func TestRead_ConEncabezadoYComa(t *testing.T) {
	in := "curso,semestre,nota\nMatemática, 3, 85\n\nFísica,4,90\n"

	rows, err := NewReader(false).Read(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, []dto.ImportRow{
		{Line: 2, Form: dto.KardexForm{Course: "Matemática", Semester: "3", Grade: "85"}},
		{Line: 4, Form: dto.KardexForm{Course: "Física", Semester: "4", Grade: "90"}},
	}, rows)
}

func TestRead_PuntoYComaSinEncabezado(t *testing.T) {
	rows, err := NewReader(false).Read(strings.NewReader("Historia;2;60\nArte;1\n"))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, dto.KardexForm{Course: "Historia", Semester: "2", Grade: "60"}, rows[0].Form)
	assert.Equal(t, dto.KardexForm{Course: "Arte", Semester: "1"}, rows[1].Form, "las columnas faltantes quedan vacías")
}

func TestRead_Latin1(t *testing.T) {
	encoded, err := charmap.ISO8859_1.NewEncoder().String("Educación Física;5;70\n")
	require.NoError(t, err)

	rows, err := NewReader(true).Read(bytes.NewReader([]byte(encoded)))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Educación Física", rows[0].Form.Course)
}

func TestRead_BOM(t *testing.T) {
	in := append([]byte{0xEF, 0xBB, 0xBF}, []byte("curso,semestre,nota\nArte,1,70\n")...)

	rows, err := NewReader(false).Read(bytes.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Arte", rows[0].Form.Course)
}

func TestRead_CSVMalFormado(t *testing.T) {
	_, err := NewReader(false).Read(strings.NewReader("\"sin cierre,1,2\n"))
	assert.Error(t, err)
}

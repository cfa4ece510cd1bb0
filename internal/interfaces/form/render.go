package form

import (
	"strconv"

	"github.com/jhoicas/Kardex-mvc/internal/application/dto"
	"github.com/jhoicas/Kardex-mvc/internal/domain/entity"
)

// Columns encabezados de la tabla, en el orden de la tabla Kardex.
var Columns = []string{"IdKardex", "Curso", "Semestre", "Nota"}

// RenderRows construye la tabla desde cero a partir de los registros.
func RenderRows(records []*entity.Kardex) dto.TableView {
	rows := make([][]string, 0, len(records))
	for _, k := range records {
		rows = append(rows, []string{
			strconv.Itoa(k.ID),
			k.Course,
			strconv.Itoa(k.Semester),
			k.Grade.String(),
		})
	}
	cols := make([]string, len(Columns))
	copy(cols, Columns)
	return dto.TableView{Columns: cols, Rows: rows}
}

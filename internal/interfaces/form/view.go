package form

import "github.com/jhoicas/Kardex-mvc/internal/application/dto"

// NoticeKind tipo de diálogo.
type NoticeKind int

const (
	NoticeInfo NoticeKind = iota
	NoticeError
)

// View colaborador externo: cuatro campos de texto, una tabla seleccionable y diálogos.
type View interface {
	Form() dto.KardexForm
	SetForm(dto.KardexForm)
	// SelectedRow devuelve el índice de la fila seleccionada o -1.
	SelectedRow() int
	Render(dto.TableView)
	Notify(kind NoticeKind, message string)
	Confirm(question string) bool
}

// Package form contiene el controlador del formulario Kardex: traduce los comandos
// de la vista (botones y selección de fila) en llamadas al caso de uso y vuelve a
// dibujar la tabla después de cada operación.
package form

import "fmt"

// Command acción disparada por la vista.
type Command int

const (
	CmdNewRecord Command = iota + 1
	CmdAdd
	CmdModify
	CmdDelete
	CmdList
	CmdExit
	CmdRowSelected
)

var commandNames = map[Command]string{
	CmdNewRecord:   "nuevo",
	CmdAdd:         "agregar",
	CmdModify:      "modificar",
	CmdDelete:      "eliminar",
	CmdList:        "listar",
	CmdExit:        "salir",
	CmdRowSelected: "seleccionar",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("comando(%d)", int(c))
}

// Event comando emitido por la vista.
type Event struct {
	Command Command
}

// On atajo para construir un Event.
func On(cmd Command) Event { return Event{Command: cmd} }

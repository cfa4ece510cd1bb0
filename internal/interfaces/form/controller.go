package form

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jhoicas/Kardex-mvc/internal/application/dto"
	"github.com/jhoicas/Kardex-mvc/internal/domain"
	"github.com/jhoicas/Kardex-mvc/internal/domain/entity"
	"github.com/jhoicas/Kardex-mvc/pkg/logger"
)

// ErrExit lo devuelve Handle cuando el usuario confirma la salida.
var ErrExit = errors.New("salida confirmada")

// Mensajes mostrados al usuario.
const (
	MsgAdded        = "Registro agregado con EXITO"
	MsgAddFailed    = "ERROR: al agregar registro"
	MsgModified     = "Registro modificado EXITOSAMENTE"
	MsgModifyFailed = "ERROR: al modificar Registro"
	MsgSelectRow    = "Selecciona una fila"
	MsgPickRow      = "Elige una fila"
	MsgListFailed   = "ERROR: al listar registros"
	MsgConfirmExit  = "¿Seguro de salir?"
)

// KardexService operaciones del caso de uso que necesita el controlador.
type KardexService interface {
	List(ctx context.Context) ([]*entity.Kardex, error)
	Add(ctx context.Context, form dto.KardexForm) (*entity.Kardex, error)
	Modify(ctx context.Context, form dto.KardexForm) (int64, error)
	Delete(ctx context.Context, id int) error
}

// Controller conecta una vista con el caso de uso. Una instancia por vista;
// los eventos se atienden de forma síncrona.
type Controller struct {
	svc   KardexService
	view  View
	log   *logger.Logger
	table dto.TableView
}

// NewController construye el controlador para la vista indicada.
func NewController(svc KardexService, view View, log *logger.Logger) *Controller {
	if log == nil {
		log = logger.Nop()
	}
	return &Controller{svc: svc, view: view, log: log, table: RenderRows(nil)}
}

// Table devuelve la última tabla dibujada.
func (c *Controller) Table() dto.TableView { return c.table }

// Handle despacha un evento de la vista. Devuelve ErrExit si se confirmó la salida.
func (c *Controller) Handle(ctx context.Context, ev Event) error {
	c.log.Debug().Stringer("command", ev.Command).Msg("evento de formulario")

	switch ev.Command {
	case CmdNewRecord:
		c.view.SetForm(dto.PlaceholderForm)
	case CmdList:
		c.refresh(ctx)
	case CmdAdd:
		c.add(ctx)
	case CmdModify:
		c.modify(ctx)
	case CmdDelete:
		c.delete(ctx)
	case CmdRowSelected:
		c.selectRow()
	case CmdExit:
		if c.view.Confirm(MsgConfirmExit) {
			return ErrExit
		}
	default:
		return fmt.Errorf("comando desconocido: %s", ev.Command)
	}
	return nil
}

func (c *Controller) add(ctx context.Context) {
	_, err := c.svc.Add(ctx, c.view.Form())
	if c.rejectInvalid(err) {
		return
	}
	if err != nil {
		c.view.Notify(NoticeError, MsgAddFailed)
	} else {
		c.view.Notify(NoticeInfo, MsgAdded)
	}
	c.refresh(ctx)

	// IdKardex queda con el valor anterior.
	f := c.view.Form()
	f.Course, f.Semester, f.Grade = "", "", ""
	c.view.SetForm(f)
}

func (c *Controller) modify(ctx context.Context) {
	n, err := c.svc.Modify(ctx, c.view.Form())
	if c.rejectInvalid(err) {
		return
	}
	if err == nil && n == 1 {
		c.view.Notify(NoticeInfo, MsgModified)
	} else {
		c.view.Notify(NoticeError, MsgModifyFailed)
	}
	c.refresh(ctx)
}

func (c *Controller) delete(ctx context.Context) {
	id, ok := c.selectedID()
	if !ok {
		c.view.Notify(NoticeError, MsgSelectRow)
		return
	}
	if err := c.svc.Delete(ctx, id); err != nil {
		c.view.Notify(NoticeError, fmt.Sprintf("ERROR: al eliminar registro [ %d ]", id))
	} else {
		c.view.Notify(NoticeInfo, fmt.Sprintf("Registro [ %d ] eliminado", id))
	}
	c.refresh(ctx)
}

func (c *Controller) selectRow() {
	row := c.view.SelectedRow()
	if row < 0 || row >= c.table.Len() {
		c.view.Notify(NoticeError, MsgPickRow)
		return
	}
	cells := c.table.Rows[row]
	c.view.SetForm(dto.KardexForm{ID: cells[0], Course: cells[1], Semester: cells[2], Grade: cells[3]})
}

// refresh vuelve a consultar la tabla completa y reemplaza la tabla de la vista.
func (c *Controller) refresh(ctx context.Context) {
	list, err := c.svc.List(ctx)
	if err != nil {
		c.view.Notify(NoticeError, MsgListFailed)
		list = nil
	}
	c.table = RenderRows(list)
	c.view.Render(c.table)
}

func (c *Controller) selectedID() (int, bool) {
	cell, ok := c.table.Cell(c.view.SelectedRow(), 0)
	if !ok {
		return 0, false
	}
	id, err := strconv.Atoi(cell)
	if err != nil {
		return 0, false
	}
	return id, true
}

// rejectInvalid muestra el error de validación, si lo hay, y cancela la acción.
func (c *Controller) rejectInvalid(err error) bool {
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		return false
	}
	c.view.Notify(NoticeError, "Dato inválido: "+ve.Error())
	return true
}

// Package console implementa la vista del formulario Kardex en una terminal:
// menú numerado, edición de campos, tabla con tablewriter y diálogos con color.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/jhoicas/Kardex-mvc/internal/application/dto"
	"github.com/jhoicas/Kardex-mvc/internal/interfaces/form"
)

var _ form.View = (*Console)(nil)

// Handler recibe los eventos de la vista (el controlador del formulario).
type Handler interface {
	Handle(ctx context.Context, ev form.Event) error
}

// Console vista de terminal. No es segura para uso concurrente: un usuario, un hilo.
type Console struct {
	in       *bufio.Scanner
	out      io.Writer
	fields   dto.KardexForm
	selected int

	title *color.Color
	info  *color.Color
	fail  *color.Color
}

// New construye la vista sobre la entrada y salida indicadas.
func New(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:       bufio.NewScanner(in),
		out:      out,
		selected: -1,
		title:    color.New(color.FgCyan, color.Bold),
		info:     color.New(color.FgGreen),
		fail:     color.New(color.FgRed),
	}
}

// Run muestra el menú hasta que el usuario confirme la salida o se cierre la entrada.
func (c *Console) Run(ctx context.Context, h Handler) error {
	if err := h.Handle(ctx, form.On(form.CmdList)); err != nil {
		return err
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.displayMenu()
		choice, ok := c.readLine()
		if !ok {
			return c.in.Err()
		}

		var err error
		switch choice {
		case "1":
			err = h.Handle(ctx, form.On(form.CmdNewRecord))
		case "2":
			c.editFields()
		case "3":
			err = h.Handle(ctx, form.On(form.CmdAdd))
		case "4":
			err = h.Handle(ctx, form.On(form.CmdModify))
		case "5":
			err = h.Handle(ctx, form.On(form.CmdDelete))
		case "6":
			err = h.Handle(ctx, form.On(form.CmdList))
		case "7":
			c.chooseRow()
			err = h.Handle(ctx, form.On(form.CmdRowSelected))
		case "8":
			err = h.Handle(ctx, form.On(form.CmdExit))
		default:
			c.fail.Fprintln(c.out, "Opción inválida. Intente de nuevo.")
		}
		if errors.Is(err, form.ErrExit) {
			c.info.Fprintln(c.out, "Hasta pronto.")
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (c *Console) displayMenu() {
	c.title.Fprintln(c.out, "\n=== Kardex ===")
	fmt.Fprintf(c.out, "IdKardex: %s | Curso: %s | Semestre: %s | Nota: %s\n",
		c.fields.ID, c.fields.Course, c.fields.Semester, c.fields.Grade)
	fmt.Fprintln(c.out, "1. Nuevo")
	fmt.Fprintln(c.out, "2. Editar campos")
	fmt.Fprintln(c.out, "3. Agregar")
	fmt.Fprintln(c.out, "4. Modificar")
	fmt.Fprintln(c.out, "5. Eliminar fila seleccionada")
	fmt.Fprintln(c.out, "6. Listar")
	fmt.Fprintln(c.out, "7. Seleccionar fila")
	fmt.Fprintln(c.out, "8. Salir")
	fmt.Fprint(c.out, "\nElija una opción (1-8): ")
}

// editFields pide cada campo; Enter conserva el valor actual.
func (c *Console) editFields() {
	c.fields.ID = c.prompt("IdKardex", c.fields.ID)
	c.fields.Course = c.prompt("Curso", c.fields.Course)
	c.fields.Semester = c.prompt("Semestre", c.fields.Semester)
	c.fields.Grade = c.prompt("Nota", c.fields.Grade)
}

// chooseRow pide el número de fila (base 1) tal como se muestra en la tabla.
func (c *Console) chooseRow() {
	n, err := strconv.Atoi(c.prompt("Fila", ""))
	if err != nil || n < 1 {
		c.selected = -1
		return
	}
	c.selected = n - 1
}

func (c *Console) prompt(label, current string) string {
	fmt.Fprintf(c.out, "%s [%s]: ", label, current)
	line, ok := c.readLine()
	if !ok || line == "" {
		return current
	}
	return line
}

func (c *Console) readLine() (string, bool) {
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

// Form devuelve los campos actuales.
func (c *Console) Form() dto.KardexForm { return c.fields }

// SetForm reemplaza los campos.
func (c *Console) SetForm(f dto.KardexForm) { c.fields = f }

// SelectedRow índice de la fila elegida o -1.
func (c *Console) SelectedRow() int { return c.selected }

// Render dibuja la tabla; la selección anterior deja de ser válida.
func (c *Console) Render(t dto.TableView) {
	c.selected = -1
	table := tablewriter.NewWriter(c.out)
	table.SetHeader(append([]string{"#"}, t.Columns...))
	for i, row := range t.Rows {
		table.Append(append([]string{strconv.Itoa(i + 1)}, row...))
	}
	table.Render()
	if t.Len() == 0 {
		fmt.Fprintln(c.out, "(sin registros)")
	}
}

// Notify muestra un mensaje en verde (info) o rojo (error).
func (c *Console) Notify(kind form.NoticeKind, message string) {
	if kind == form.NoticeError {
		c.fail.Fprintln(c.out, message)
		return
	}
	c.info.Fprintln(c.out, message)
}

// Confirm pregunta s/n; cualquier otra respuesta es "no".
func (c *Console) Confirm(question string) bool {
	fmt.Fprintf(c.out, "%s (s/n): ", question)
	answer, ok := c.readLine()
	if !ok {
		return true
	}
	switch strings.ToLower(answer) {
	case "s", "si", "sí", "y", "yes":
		return true
	}
	return false
}

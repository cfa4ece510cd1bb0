package http

import (
	"bytes"
	"context"
	"errors"
	"math"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Kardex-mvc/internal/application/dto"
	"github.com/jhoicas/Kardex-mvc/internal/domain"
	"github.com/jhoicas/Kardex-mvc/internal/domain/entity"
	"github.com/jhoicas/Kardex-mvc/internal/infrastructure/csvimport"
	"github.com/jhoicas/Kardex-mvc/pkg/logger"
)

// KardexService operaciones del caso de uso expuestas por HTTP.
type KardexService interface {
	List(ctx context.Context) ([]*entity.Kardex, error)
	Create(ctx context.Context, k *entity.Kardex) error
	Update(ctx context.Context, k *entity.Kardex) (int64, error)
	Delete(ctx context.Context, id int) error
	Import(ctx context.Context, rows []dto.ImportRow) (*dto.ImportResult, error)
}

// ReportGenerator genera un listado descargable.
type ReportGenerator interface {
	Generate(ctx context.Context, title string, records []*entity.Kardex) ([]byte, error)
}

// ReportTitle título de los listados exportados.
const ReportTitle = "Listado Kardex"

// KardexHandler maneja las peticiones HTTP para Kardex.
type KardexHandler struct {
	uc   KardexService
	pdf  ReportGenerator
	xlsx ReportGenerator
	log  *logger.Logger
}

// NewKardexHandler construye el handler.
func NewKardexHandler(uc KardexService, pdf, xlsx ReportGenerator, log *logger.Logger) *KardexHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &KardexHandler{uc: uc, pdf: pdf, xlsx: xlsx, log: log}
}

// List godoc
// @Summary      Listar registros Kardex
// @Tags         kardex
// @Produce      json
// @Success      200  {object}  dto.KardexListResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/kardex [get]
func (h *KardexHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	items := make([]dto.KardexResponse, 0, len(list))
	for _, k := range list {
		items = append(items, toKardexResponse(k))
	}
	return c.JSON(dto.KardexListResponse{Items: items, Total: len(items)})
}

// Create godoc
// @Summary      Crear registro Kardex
// @Tags         kardex
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.KardexRequest  true  "Curso, semestre y nota"
// @Success      201   {object}  dto.KardexResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/kardex [post]
func (h *KardexHandler) Create(c *fiber.Ctx) error {
	var in dto.KardexRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	k := &entity.Kardex{Course: in.Course, Semester: in.Semester, Grade: in.Grade}
	if err := h.uc.Create(c.UserContext(), k); err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toKardexResponse(k))
}

// Update godoc
// @Summary      Modificar registro Kardex
// @Tags         kardex
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      int                true  "IdKardex"
// @Param        body  body      dto.KardexRequest  true  "Curso, semestre y nota"
// @Success      200   {object}  dto.UpdateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/kardex/{id} [put]
func (h *KardexHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id debe ser un entero positivo"})
	}
	if id > math.MaxInt32 {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "registro no encontrado"})
	}
	var in dto.KardexRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	k := &entity.Kardex{ID: id, Course: in.Course, Semester: in.Semester, Grade: in.Grade}
	n, err := h.uc.Update(c.UserContext(), k)
	if err != nil {
		return h.fail(c, err)
	}
	if n == 0 {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "registro no encontrado"})
	}
	return c.JSON(dto.UpdateResponse{Affected: n})
}

// Delete godoc
// @Summary      Eliminar registro Kardex
// @Description  Un IdKardex inexistente también responde 204.
// @Tags         kardex
// @Security     Bearer
// @Param        id   path  int  true  "IdKardex"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/kardex/{id} [delete]
func (h *KardexHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id debe ser un entero positivo"})
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ExportPDF godoc
// @Summary      Listado Kardex en PDF
// @Tags         kardex
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/kardex/export/pdf [get]
func (h *KardexHandler) ExportPDF(c *fiber.Ctx) error {
	return h.export(c, h.pdf, "application/pdf", "kardex.pdf")
}

// ExportXLSX godoc
// @Summary      Listado Kardex en Excel
// @Tags         kardex
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}    binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/kardex/export/xlsx [get]
func (h *KardexHandler) ExportXLSX(c *fiber.Ctx) error {
	return h.export(c, h.xlsx, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "kardex.xlsx")
}

// Import godoc
// @Summary      Importar registros desde CSV
// @Description  Columnas curso,semestre,nota; separador "," o ";"; encabezado opcional.
// @Description  Las filas válidas se crean en una sola transacción.
// @Tags         kardex
// @Security     Bearer
// @Accept       text/csv
// @Produce      json
// @Param        charset  query     string  false  "latin1 para archivos ISO-8859-1"
// @Success      200      {object}  dto.ImportResult
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      401      {object}  dto.ErrorResponse
// @Failure      500      {object}  dto.ErrorResponse
// @Router       /api/kardex/import [post]
func (h *KardexHandler) Import(c *fiber.Ctx) error {
	latin1 := strings.EqualFold(c.Query("charset"), "latin1")
	rows, err := csvimport.NewReader(latin1).Read(bytes.NewReader(c.Body()))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_CSV", Message: err.Error()})
	}
	res, err := h.uc.Import(c.UserContext(), rows)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(res)
}

func (h *KardexHandler) export(c *fiber.Ctx, gen ReportGenerator, contentType, filename string) error {
	list, err := h.uc.List(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	out, err := gen.Generate(c.UserContext(), ReportTitle, list)
	if err != nil {
		h.log.Error().Err(err).Str("file", filename).Msg("generar listado")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo generar el listado"})
	}
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, contentType)
	return c.Send(out)
}

// fail traduce errores de dominio a respuestas HTTP.
func (h *KardexHandler) fail(c *fiber.Ctx, err error) error {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: ve.Error()})
	case errors.Is(err, domain.ErrPersistence):
		h.log.Error().Err(err).Str("path", c.Path()).Msg("falla de persistencia")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PERSISTENCE", Message: "error de almacenamiento"})
	default:
		h.log.Error().Err(err).Str("path", c.Path()).Msg("error interno")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// parseID lee :id como entero positivo. Valores por encima de INT4 se devuelven tal cual:
// ninguna fila puede tenerlos.
func parseID(c *fiber.Ctx) (int, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func toKardexResponse(k *entity.Kardex) dto.KardexResponse {
	return dto.KardexResponse{ID: k.ID, Course: k.Course, Semester: k.Semester, Grade: k.Grade}
}

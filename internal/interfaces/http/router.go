package http

import (
	"github.com/gofiber/fiber/v2"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Kardex    *KardexHandler
	JWTSecret string // vacío: rutas de escritura sin autenticación
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", Health)

	api := app.Group("/api")

	kardex := api.Group("/kardex")
	kardex.Get("/", deps.Kardex.List)
	kardex.Get("/export/pdf", deps.Kardex.ExportPDF)
	kardex.Get("/export/xlsx", deps.Kardex.ExportXLSX)

	// Escritura: protegida con Bearer Token si hay secret configurado.
	write := []fiber.Handler{}
	if deps.JWTSecret != "" {
		write = append(write, AuthMiddleware(deps.JWTSecret))
	}
	kardex.Post("/", append(write, deps.Kardex.Create)...)
	kardex.Post("/import", append(write, deps.Kardex.Import)...)
	kardex.Put("/:id", append(write, deps.Kardex.Update)...)
	kardex.Delete("/:id", append(write, deps.Kardex.Delete)...)
}

// Health godoc
// @Summary      Estado del servicio
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

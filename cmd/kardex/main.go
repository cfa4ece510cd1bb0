// Comando kardex: formulario de consola, API HTTP y utilidades de importación/exportación.
//
//	kardex [console]              formulario interactivo (por defecto)
//	kardex serve                  API HTTP
//	kardex import [-latin1] FILE  importa un CSV curso,semestre,nota
//	kardex export pdf|xlsx FILE   escribe el listado completo
//	kardex token SUBJECT          emite un JWT para las rutas de escritura
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"

	"github.com/jhoicas/Kardex-mvc/docs"
	"github.com/jhoicas/Kardex-mvc/internal/application/usecase"
	"github.com/jhoicas/Kardex-mvc/internal/domain/repository"
	"github.com/jhoicas/Kardex-mvc/internal/infrastructure/csvimport"
	"github.com/jhoicas/Kardex-mvc/internal/infrastructure/memory"
	"github.com/jhoicas/Kardex-mvc/internal/infrastructure/postgres"
	"github.com/jhoicas/Kardex-mvc/internal/infrastructure/report"
	"github.com/jhoicas/Kardex-mvc/internal/interfaces/console"
	"github.com/jhoicas/Kardex-mvc/internal/interfaces/form"
	httpRouter "github.com/jhoicas/Kardex-mvc/internal/interfaces/http"
	"github.com/jhoicas/Kardex-mvc/pkg/config"
	"github.com/jhoicas/Kardex-mvc/pkg/jwt"
	"github.com/jhoicas/Kardex-mvc/pkg/logger"
)

// swaggerFile documento generado con `swag init -g cmd/kardex/main.go`.
const swaggerFile = "./docs/swagger.json"

// @title                       Kardex API
// @version                     1.0
// @description                 CRUD de registros académicos Kardex (curso, semestre, nota).
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
// @description                 Bearer <token> emitido con `kardex token SUBJECT`
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})

	args := os.Args[1:]
	cmd := "console"
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cmd == "token" {
		if err := runToken(cfg, args); err != nil {
			log.Fatal().Err(err).Msg("emitir token")
		}
		return
	}

	st, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("abrir almacenamiento")
	}
	defer st.close()
	uc := usecase.NewKardexUseCase(st.repo, st.tx, log)

	switch cmd {
	case "console":
		err = runConsole(ctx, uc, log)
	case "serve":
		err = runServe(ctx, cfg, uc, log)
	case "import":
		err = runImport(ctx, uc, args)
	case "export":
		err = runExport(ctx, uc, args)
	default:
		err = fmt.Errorf("comando desconocido %q (console, serve, import, export, token)", cmd)
	}
	if err != nil {
		log.Error().Err(err).Str("command", cmd).Msg("comando finalizado con error")
		st.close()
		os.Exit(1)
	}
}

// storage adaptador de persistencia elegido por STORAGE_DRIVER.
type storage struct {
	repo  repository.KardexRepository
	tx    usecase.KardexTxRunner
	close func()
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.Storage.Driver == config.StorageMemory {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al salir")
		repo := memory.NewKardexRepository()
		return &storage{repo: repo, tx: repo, close: func() {}}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	log.Info().Str("host", cfg.DB.Host).Str("db", cfg.DB.DBName).Msg("conectado a PostgreSQL")
	return &storage{
		repo:  postgres.NewKardexRepository(pool),
		tx:    postgres.NewTxRunner(pool),
		close: pool.Close,
	}, nil
}

func runConsole(ctx context.Context, uc *usecase.KardexUseCase, log *logger.Logger) error {
	session := log.WithStr("session", uuid.NewString())
	session.Info().Msg("sesión de consola iniciada")

	view := console.New(os.Stdin, os.Stdout)
	ctrl := form.NewController(uc, view, session)
	err := view.Run(ctx, ctrl)

	session.Info().Msg("sesión de consola terminada")
	return err
}

func runServe(ctx context.Context, cfg *config.Config, uc *usecase.KardexUseCase, log *logger.Logger) error {
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    docs.SwaggerInfo.Title,
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("documento Swagger no encontrado, /docs deshabilitado")
	}

	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: rutas de escritura sin autenticación")
	}
	httpRouter.Router(app, httpRouter.RouterDeps{
		Kardex:    httpRouter.NewKardexHandler(uc, report.NewPDFGenerator(), report.NewXLSXGenerator(), log),
		JWTSecret: cfg.JWT.Secret,
	})

	return listenAndServe(ctx, app, cfg.HTTP.Addr(), log)
}

// listenAndServe atiende hasta que ctx se cancele o Listen falle (puerto ocupado, dirección inválida).
func listenAndServe(ctx context.Context, app *fiber.App, addr string, log *logger.Logger) error {
	listenErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("servidor HTTP escuchando")
		listenErr <- app.Listen(addr)
	}()

	select {
	case err := <-listenErr:
		if err == nil {
			return nil
		}
		return fmt.Errorf("servidor HTTP %s: %w", addr, err)
	case <-ctx.Done():
	}

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("apagado del servidor: %w", err)
	}
	log.Info().Msg("aplicación detenida")
	return nil
}

func runImport(ctx context.Context, uc *usecase.KardexUseCase, args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	latin1 := fs.Bool("latin1", false, "el archivo está en ISO-8859-1")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("uso: kardex import [-latin1] FILE")
	}

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("abrir %s: %w", fs.Arg(0), err)
	}
	defer f.Close()

	rows, err := csvimport.NewReader(*latin1).Read(f)
	if err != nil {
		return err
	}
	res, err := uc.Import(ctx, rows)
	if err != nil {
		return err
	}
	fmt.Printf("Importados: %d\n", res.Created)
	for _, r := range res.Rejected {
		fmt.Printf("  línea %d rechazada: %s\n", r.Line, r.Message)
	}
	return nil
}

func runExport(ctx context.Context, uc *usecase.KardexUseCase, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("uso: kardex export pdf|xlsx FILE")
	}
	var gen httpRouter.ReportGenerator
	switch args[0] {
	case "pdf":
		gen = report.NewPDFGenerator()
	case "xlsx":
		gen = report.NewXLSXGenerator()
	default:
		return fmt.Errorf("formato desconocido %q (pdf, xlsx)", args[0])
	}

	list, err := uc.List(ctx)
	if err != nil {
		return err
	}
	out, err := gen.Generate(ctx, httpRouter.ReportTitle, list)
	if err != nil {
		return fmt.Errorf("generar %s: %w", args[0], err)
	}
	if err := os.WriteFile(args[1], out, 0o644); err != nil {
		return fmt.Errorf("escribir %s: %w", args[1], err)
	}
	fmt.Printf("Listado escrito en %s (%d registros)\n", args[1], len(list))
	return nil
}

func runToken(cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("uso: kardex token SUBJECT")
	}
	tok, err := jwt.Generate(cfg.JWT.Secret, args[0], cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		return err
	}
	fmt.Println(tok)
	return nil
}

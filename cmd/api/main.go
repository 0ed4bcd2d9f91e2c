package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/cadastro-clientes/internal/application/usecase"
	"github.com/jhoicas/cadastro-clientes/internal/application/validation"
	infrapdf "github.com/jhoicas/cadastro-clientes/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/cadastro-clientes/internal/interfaces/http"
	"github.com/jhoicas/cadastro-clientes/pkg/config"
	"github.com/jhoicas/cadastro-clientes/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	repo, closeStore, err := openStore(ctx, cfg, log.Component("store"))
	if err != nil {
		log.Fatal().Err(err).Msg("almacén de clientes")
	}
	defer closeStore()

	loc := cfg.App.Location()
	customerUC := usecase.NewCustomerUseCase(repo, validation.NewCustomerSchema())

	// PDF: ficha de cadastro del cliente
	sheetUC := usecase.NewCustomerSheetUseCase(customerUC, infrapdf.NewMarotoSheetGenerator(loc))

	views, err := httpRouter.NewRenderer(loc)
	if err != nil {
		log.Fatal().Err(err).Msg("plantillas HTML")
	}

	app := fiber.New(httpRouter.ServerConfig(cfg.App.Name))
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.Swagger.File); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.Swagger.File,
			Path:     "docs",
			Title:    "Cadastro de Clientes API",
		}))
	} else {
		log.Warn().Str("file", cfg.Swagger.File).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		CustomerUC:    customerUC,
		CustomerSheet: sheetUC,
		Views:         views,
		Logger:        log,
		ServiceName:   cfg.App.Name,
		StoreDriver:   cfg.Store.Driver,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

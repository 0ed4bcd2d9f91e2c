package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cadastro-clientes/internal/application/usecase"
	"github.com/jhoicas/cadastro-clientes/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CustomerUC    *usecase.CustomerUseCase
	CustomerSheet *usecase.CustomerSheetUseCase
	Views         *Renderer
	Logger        *logger.Logger
	ServiceName   string
	StoreDriver   string
}

// Router registra la API JSON, el health check y las vistas HTML.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}

	health := NewHealthHandler(deps.CustomerUC, deps.ServiceName, deps.StoreDriver)
	app.Get("/health", health.Check)

	// API JSON
	customers := app.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.CustomerSheet, log.Component("api"))
	customers.Get("/", customerHandler.List)
	customers.Post("/", customerHandler.Create)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)
	customers.Get("/:id/pdf", customerHandler.Sheet)

	// Vistas HTML
	viewHandler := NewViewHandler(deps.CustomerUC, deps.Views, log.Component("views"))
	app.Get("/", viewHandler.Home)
	pages := app.Group("/clientes")
	pages.Get("/", viewHandler.List)
	pages.Get("/cadastro", viewHandler.NewForm)
	pages.Post("/cadastro", viewHandler.Create)
	pages.Get("/:id", viewHandler.Detail)
	pages.Get("/:id/editar", viewHandler.EditForm)
	pages.Post("/:id/editar", viewHandler.Update)
	pages.Get("/:id/remover", viewHandler.ConfirmDelete)
	pages.Post("/:id/remover", viewHandler.Delete)
}

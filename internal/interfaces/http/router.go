package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/almacen-pro/internal/application/entries"
	"github.com/jhoicas/almacen-pro/internal/application/exits"
	"github.com/jhoicas/almacen-pro/internal/application/items"
	"github.com/jhoicas/almacen-pro/internal/application/kardex"
	"github.com/jhoicas/almacen-pro/internal/observability"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ItemUC     *items.UseCase
	EntryUC    *entries.RegisterUseCase
	CommitExit *exits.CommitUseCase
	KardexUC   *kardex.ReportUseCase
	Metrics    *observability.Metrics
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})
	app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))

	api := app.Group("/api")

	// Artículos (maestro, solo lectura; disponible derivado del libro)
	itemHandler := NewItemHandler(deps.ItemUC)
	itemsGroup := api.Group("/items")
	itemsGroup.Get("/", itemHandler.Search)
	itemsGroup.Get("/:code", itemHandler.GetByCode)

	// Entradas (ingresos, incl. ajustes con justificación)
	entryHandler := NewEntryHandler(deps.EntryUC)
	api.Post("/entries", entryHandler.Register)

	// Salidas (commit con solicitud vinculada opcional)
	exitHandler := NewExitHandler(deps.CommitExit)
	api.Post("/exits", exitHandler.Commit)

	// Kardex (informe histórico de saldos diarios)
	kardexHandler := NewKardexHandler(deps.KardexUC)
	api.Get("/kardex/:code", kardexHandler.Report)
}

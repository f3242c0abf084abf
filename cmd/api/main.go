package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-pro/internal/application/entries"
	"github.com/jhoicas/almacen-pro/internal/application/exits"
	"github.com/jhoicas/almacen-pro/internal/application/items"
	appkardex "github.com/jhoicas/almacen-pro/internal/application/kardex"
	domkardex "github.com/jhoicas/almacen-pro/internal/domain/kardex"
	"github.com/jhoicas/almacen-pro/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/almacen-pro/internal/interfaces/http"
	"github.com/jhoicas/almacen-pro/internal/observability"
	"github.com/jhoicas/almacen-pro/pkg/config"
	"github.com/jhoicas/almacen-pro/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// swaggerFilePresent decide si se monta la UI de swagger: contrib/swagger lee
// el archivo al montar y aborta el arranque si falta, así que su ausencia
// deshabilita la UI en vez de tumbar el servicio.
func swaggerFilePresent(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	itemRepo := postgres.NewItemRepository(pool)
	entryRepo := postgres.NewEntryRepository(pool)
	exitRepo := postgres.NewExitRepository(pool)
	requestRepo := postgres.NewRequestRepository(pool)

	metrics := observability.NewMetrics()

	kardexParams := domkardex.Params{
		LowStockThreshold:  decimal.NewFromInt(int64(cfg.Ledger.LowStockThreshold)),
		HighMovementFactor: decimal.NewFromInt(int64(cfg.Ledger.HighMovementFactor)),
	}

	itemUC := items.NewUseCase(itemRepo, time.Duration(cfg.Ledger.SearchDebounceMS)*time.Millisecond)
	entryUC := entries.NewRegisterUseCase(entryRepo, itemRepo, log)
	commitUC := exits.NewCommitUseCase(exitRepo, requestRepo, itemRepo, nil, log, metrics)
	kardexUC := appkardex.NewReportUseCase(entryRepo, exitRepo, cfg.Ledger.PageSize, kardexParams, metrics)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if swaggerFilePresent(swaggerFile) {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Almacén Pro API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger.json ausente; la UI de docs queda deshabilitada")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		ItemUC:     itemUC,
		EntryUC:    entryUC,
		CommitExit: commitUC,
		KardexUC:   kardexUC,
		Metrics:    metrics,
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

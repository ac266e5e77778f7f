package bootstrap

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/fx"

	catalog_http_handler "github.com/podium-optique/catalog/internal/app/catalog/transports/http"
	ingest_http_handler "github.com/podium-optique/catalog/internal/app/ingest/transports/http"
	"github.com/podium-optique/catalog/internal/config"
)

func httpOptions() fx.Option {
	return fx.Options(
		fx.Provide(newFiberApp),
		fx.Invoke(registerRoutes),
		fx.Invoke(startServer),
	)
}

func newFiberApp() *fiber.App {
	return fiber.New(fiber.Config{
		AppName: "podium-optique catalog",
	})
}

func registerRoutes(
	mainApp *fiber.App,
	ingest *ingest_http_handler.IngestHttpHandler,
	catalog *catalog_http_handler.CatalogHttpHandler,
) {
	mainApp.Get("/", func(fctx fiber.Ctx) error {
		return fctx.JSON(fiber.Map{"status": "online", "message": "API Podium Optique Active"})
	})

	ingest.Register(mainApp)
	catalog.Register(mainApp)
}

func startServer(lc fx.Lifecycle, mainApp *fiber.App, cfg *config.Config, log *slog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := mainApp.Listen(cfg.HTTPAddr); err != nil {
					log.Error("http server stopped", "error", err)
				}
			}()
			log.Info("http server listening", "addr", cfg.HTTPAddr)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return mainApp.ShutdownWithContext(ctx)
		},
	})
}

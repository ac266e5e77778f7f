package ingest_module

import (
	"github.com/podium-optique/catalog/domain/app"
	ingest_service "github.com/podium-optique/catalog/internal/app/ingest/service"
	ingest_http_handler "github.com/podium-optique/catalog/internal/app/ingest/transports/http"
	"go.uber.org/fx"
)

func Register() fx.Option {
	return fx.Provide(
		fx.Annotate(ingest_service.New, fx.As(new(app.CatalogIngestService))),
		ingest_http_handler.New,
	)
}

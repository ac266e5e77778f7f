package catalog_module

import (
	"github.com/podium-optique/catalog/domain/app"
	catalog_service "github.com/podium-optique/catalog/internal/app/catalog/service"
	catalog_http_handler "github.com/podium-optique/catalog/internal/app/catalog/transports/http"
	"go.uber.org/fx"
)

func Register() fx.Option {
	return fx.Provide(
		fx.Annotate(catalog_service.New, fx.As(new(app.CatalogQueryService))),
		catalog_http_handler.New,
	)
}

package bootstrap

import (
	catalog_module "github.com/podium-optique/catalog/internal/app/catalog"
	ingest_module "github.com/podium-optique/catalog/internal/app/ingest"
	"go.uber.org/fx"
)

func appOptions() fx.Option {
	return fx.Options(
		ingest_module.Register(),
		catalog_module.Register(),
	)
}

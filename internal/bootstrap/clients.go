package bootstrap

import (
	"context"
	"database/sql"
	"log/slog"

	postgres_client "github.com/podium-optique/catalog/internal/clients/postgres"
	"github.com/podium-optique/catalog/internal/config"
	"go.uber.org/fx"
)

func clientsOptions() fx.Option {
	return fx.Options(
		fx.Provide(
			newPostgres,
		),
		fx.Invoke(postgres_client.Migrate),
	)
}

func newPostgres(lc fx.Lifecycle, cfg *config.Config, log *slog.Logger) (*sql.DB, error) {
	db, err := postgres_client.New(cfg, log)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return db.Close()
		},
	})
	return db, nil
}

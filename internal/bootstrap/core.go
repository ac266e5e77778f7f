package bootstrap

import (
	"log/slog"
	"os"

	"github.com/podium-optique/catalog/internal/config"
	"go.uber.org/fx"
)

func coreOptions() fx.Option {
	return fx.Provide(
		config.Load,
		NewLogger,
	)
}

func NewLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

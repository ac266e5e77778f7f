package postgres_client

import (
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"github.com/podium-optique/catalog/internal/config"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// New opens and verifies the Postgres connection. The caller owns the
// handle and its lifecycle; the ingestion pipeline receives it as an
// explicit dependency rather than through process-global state.
func New(cfg *config.Config, log *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	log.Info("postgres connection established")
	return db, nil
}

// Migrate applies the embedded schema migrations (accounts table). The
// lenses table is deliberately not migrated here: the ingestion pipeline
// recreates it on every total-replacement run.
func Migrate(db *sql.DB, log *slog.Logger) error {
	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	log.Info("migrations applied")
	return nil
}

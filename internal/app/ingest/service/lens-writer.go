package ingest_service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lib/pq"

	"github.com/podium-optique/catalog/domain/app"
	"github.com/podium-optique/catalog/internal/ingest/rules"
)

// PostgresLensWriter implements LensBatchWriter against the lenses table.
// Prepare drops and recreates the table to the current schema in one
// transaction, so a mid-import failure can leave a partially-loaded but
// never half-old/half-new catalog. Batches are bulk-loaded with COPY.
type PostgresLensWriter struct {
	db       *sql.DB
	networks []rules.NetworkSpec
	columns  []string
	log      *slog.Logger
}

var _ LensBatchWriter = &PostgresLensWriter{}

func NewPostgresLensWriter(db *sql.DB, rs *rules.Ruleset, log *slog.Logger) *PostgresLensWriter {
	columns := []string{
		"brand", "edi_code", "commercial_code", "name", "geometry", "design",
		"index_mat", "material", "coating", "commercial_flow", "color",
		"purchase_price", "selling_price",
	}
	for _, n := range rs.Networks {
		columns = append(columns, NetworkField(n.Key))
	}
	return &PostgresLensWriter{db: db, networks: rs.Networks, columns: columns, log: log}
}

func (this *PostgresLensWriter) Prepare(ctx context.Context) error {
	var ddl strings.Builder
	ddl.WriteString(`CREATE TABLE lenses (
		id SERIAL PRIMARY KEY,
		brand TEXT, edi_code TEXT, commercial_code TEXT, name TEXT,
		geometry TEXT, design TEXT, index_mat TEXT,
		material TEXT, coating TEXT, commercial_flow TEXT, color TEXT,
		purchase_price NUMERIC(10,2), selling_price NUMERIC(10,2)`)
	for _, n := range this.networks {
		fmt.Fprintf(&ddl, ",\n\t\t%s NUMERIC(10,2)", NetworkField(n.Key))
	}
	ddl.WriteString("\n\t)")

	tx, err := this.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin prepare: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS lenses CASCADE"); err != nil {
		tx.Rollback()
		return fmt.Errorf("drop lenses: %w", err)
	}
	if _, err := tx.ExecContext(ctx, ddl.String()); err != nil {
		tx.Rollback()
		return fmt.Errorf("create lenses: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit prepare: %w", err)
	}
	this.log.Info("lenses table recreated")
	return nil
}

func (this *PostgresLensWriter) WriteBatch(ctx context.Context, batch []app.Lens) error {
	tx, err := this.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("lenses", this.columns...))
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare copy: %w", err)
	}

	for _, l := range batch {
		args := []any{
			l.Brand, l.EDICode, l.CommercialCode, l.Name, string(l.Geometry),
			l.Design, l.IndexMat, l.Material, l.Coating, l.CommercialFlow,
			l.Color, l.PurchasePrice, l.SellingPrice,
		}
		for _, n := range this.networks {
			args = append(args, l.NetworkPrices[n.Key])
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			stmt.Close()
			tx.Rollback()
			return fmt.Errorf("copy row: %w", err)
		}
	}

	// final Exec with no args flushes the COPY buffer
	if _, err := stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		tx.Rollback()
		return fmt.Errorf("flush copy: %w", err)
	}
	if err := stmt.Close(); err != nil {
		tx.Rollback()
		return fmt.Errorf("close copy: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	return nil
}

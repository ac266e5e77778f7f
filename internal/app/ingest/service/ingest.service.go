package ingest_service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/podium-optique/catalog/domain/app"
	"github.com/podium-optique/catalog/internal/config"
	"github.com/podium-optique/catalog/internal/ingest/rules"
)

// IngestService orchestrates one catalog import: open the workbook,
// recreate the destination table, then stream every sheet through the
// scanner into the batch loader. One run owns the lenses table for its
// duration; readers querying mid-run observe the old, empty, or partially
// reloaded catalog.
type IngestService struct {
	scanner   *WorkbookScanner
	writer    LensBatchWriter
	batchSize int
	log       *slog.Logger
}

var _ app.CatalogIngestService = &IngestService{}

func New(db *sql.DB, cfg *config.Config, log *slog.Logger) (*IngestService, error) {
	rs, err := rules.Load(cfg.RulesPath)
	if err != nil {
		return nil, err
	}
	scanner := NewWorkbookScanner(rs, app.ZeroPricePolicy(cfg.ZeroPricePolicy), log)
	writer := NewPostgresLensWriter(db, rs, log)
	return &IngestService{scanner, writer, cfg.BatchSize, log}, nil
}

func (this *IngestService) ImportWorkbook(ctx context.Context, path string) (*app.ImportResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	// fatal-per-run: if the table cannot be prepared, abort before any
	// data is touched
	if err := this.writer.Prepare(ctx); err != nil {
		return nil, err
	}

	loader := NewBatchLoader(this.writer, this.batchSize)
	summaries, err := this.scanner.Scan(f, func(l app.Lens) error {
		return loader.Add(ctx, l)
	})
	if err == nil {
		err = loader.Flush(ctx)
	}

	result := &app.ImportResult{Count: loader.Total(), Sheets: summaries}
	if err != nil {
		// the table keeps the batches committed so far; report the partial
		// count alongside the failure
		this.log.Error("import aborted", "loaded", result.Count, "error", err)
		return result, fmt.Errorf("catalog import aborted after %d records: %w", result.Count, err)
	}

	this.log.Info("catalog import finished", "count", result.Count, "sheets", len(summaries))
	return result, nil
}

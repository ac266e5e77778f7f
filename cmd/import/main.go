package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	ingest_service "github.com/podium-optique/catalog/internal/app/ingest/service"
	"github.com/podium-optique/catalog/internal/bootstrap"
	postgres_client "github.com/podium-optique/catalog/internal/clients/postgres"
	"github.com/podium-optique/catalog/internal/config"
)

var file = flag.String("file", "catalogue.xlsx", "catalog workbook to import")

func main() {
	flag.Parse()
	log := bootstrap.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		log.Error("config", "error", err)
		os.Exit(1)
	}
	db, err := postgres_client.New(cfg, log)
	if err != nil {
		log.Error("postgres", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	svc, err := ingest_service.New(db, cfg, log)
	if err != nil {
		log.Error("ingest service", "error", err)
		os.Exit(1)
	}

	start := time.Now()
	res, err := svc.ImportWorkbook(context.Background(), *file)
	if err != nil {
		log.Error("import failed", "error", err)
		os.Exit(1)
	}

	for _, s := range res.Sheets {
		if s.Status == "skipped" {
			fmt.Printf("sheet %-20s skipped: %s\n", s.Sheet, s.Reason)
			continue
		}
		fmt.Printf("sheet %-20s imported %d rows (%d skipped, %d zero-price)\n",
			s.Sheet, s.Imported, s.SkippedRows, s.ZeroPriceRows)
	}
	fmt.Printf("%d lenses imported in %s\n", res.Count, time.Since(start).Round(time.Millisecond))
}

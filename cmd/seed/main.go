package main

import (
	"context"
	"fmt"
	"os"

	"github.com/podium-optique/catalog/domain/app"
	ingest_service "github.com/podium-optique/catalog/internal/app/ingest/service"
	"github.com/podium-optique/catalog/internal/bootstrap"
	postgres_client "github.com/podium-optique/catalog/internal/clients/postgres"
	"github.com/podium-optique/catalog/internal/config"
	"github.com/podium-optique/catalog/internal/ingest/rules"
)

// Seeds a demo catalog for local development. Goes through the real
// batch writer so the lenses table schema matches production imports.
func main() {
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

	ctx := context.Background()
	writer := ingest_service.NewPostgresLensWriter(db, rules.Default(), log)
	if err := writer.Prepare(ctx); err != nil {
		log.Error("prepare lenses table", "error", err)
		os.Exit(1)
	}

	loader := ingest_service.NewBatchLoader(writer, ingest_service.DefaultBatchSize)
	for _, l := range demoLenses() {
		if err := loader.Add(ctx, l); err != nil {
			log.Error("seed", "error", err)
			os.Exit(1)
		}
	}
	if err := loader.Flush(ctx); err != nil {
		log.Error("seed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("%d demo lenses seeded\n", loader.Total())
}

func lens(brand, name string, geo app.Geometry, index, coating string, purchase, selling float64) app.Lens {
	return app.Lens{
		Brand:          brand,
		Name:           name,
		Geometry:       geo,
		Design:         "STANDARD",
		IndexMat:       index,
		Coating:        coating,
		CommercialFlow: "FAB",
		PurchasePrice:  purchase,
		SellingPrice:   selling,
		NetworkPrices:  map[string]float64{"kalixia": selling},
	}
}

func demoLenses() []app.Lens {
	var out []app.Lens

	// CODIR and its commercial twin ORUS carry the same range
	for _, brand := range []string{"CODIR", "ORUS"} {
		out = append(out,
			lens(brand, brand+" ECO 1.50 MISTRAL", app.GeometryUnifocal, "1.50", "MISTRAL", 10, 45),
			lens(brand, brand+" CONFORT 1.60 QUATTRO_UV", app.GeometryUnifocal, "1.60", "QUATTRO_UV", 25, 90),
			lens(brand, brand+" THIN 1.67 QUATTRO_UV_CLEAN", app.GeometryUnifocal, "1.67", "QUATTRO_UV_CLEAN", 40, 130),
			lens(brand, brand+" PROG FIRST 1.50 MISTRAL", app.GeometryProgressif, "1.50", "MISTRAL", 40, 140),
			lens(brand, brand+" PROG HD 1.60 QUATTRO_UV", app.GeometryProgressif, "1.60", "QUATTRO_UV", 80, 240),
			lens(brand, brand+" OFFICE 1.60 E_PROTECT", app.GeometryDegressif, "1.60", "E_PROTECT", 60, 180),
		)
	}

	out = append(out,
		lens("HOYA", "HILUX 1.50 HA", app.GeometryUnifocal, "1.50", "HA", 15, 60),
		lens("HOYA", "NULUX 1.60 HVLL", app.GeometryUnifocal, "1.60", "HVLL", 45, 120),
		lens("HOYA", "MIYOSMART 1.58 HVLL", app.GeometryUnifocal, "1.58", "HVLL", 95, 190),
		lens("HOYA", "HOYALUX BALANSIS 1.60 HVLL", app.GeometryProgressif, "1.60", "HVLL", 110, 290),
		lens("HOYA", "HOYALUX ID MYSELF 1.67 HVLL_BC", app.GeometryProgressif, "1.67", "HVLL_BC", 180, 450),
		lens("HOYA", "WORKSTYLE 1.60 HVLL", app.GeometryDegressif, "1.60", "HVLL", 85, 220),

		lens("SEIKO", "SEIKO AZ 1.60 SRC_ONE", app.GeometryUnifocal, "1.60", "SRC_ONE", 40, 115),
		lens("SEIKO", "SEIKO AZ 1.67 SRC_ULTRA", app.GeometryUnifocal, "1.67", "SRC_ULTRA", 65, 160),
		lens("SEIKO", "SEIKO PRIME X 1.60 SRC_ROAD", app.GeometryProgressif, "1.60", "SRC_ROAD", 130, 320),
		lens("SEIKO", "SEIKO BRILLIANCE 1.74 SRC_SUN", app.GeometryProgressif, "1.74", "SRC_SUN", 200, 550),

		lens("ZEISS", "ZEISS CLEARVIEW 1.60 DV_PLATINUM", app.GeometryUnifocal, "1.60", "DV_PLATINUM", 50, 130),
		lens("ZEISS", "ZEISS SMARTLIFE 1.67 DV_BP", app.GeometryProgressif, "1.67", "DV_BP", 160, 420),
	)
	return out
}

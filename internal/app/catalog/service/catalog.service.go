package catalog_service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/podium-optique/catalog/domain/app"
)

// CatalogService serves the downstream read contract: filtered lookups
// over the normalized catalog, with the selling price optimized against
// the client's pocket limit at query time. Geometry filtering relies on
// the ingestion guarantee that stored values come from the fixed
// enumeration.
type CatalogService struct {
	db  *sql.DB
	log *slog.Logger
}

var _ app.CatalogQueryService = &CatalogService{}

func New(db *sql.DB, log *slog.Logger) *CatalogService {
	return &CatalogService{db, log}
}

// buildLensQuery translates the filters into one parameterized statement.
func buildLensQuery(q app.LensQuery) (string, []any) {
	var b strings.Builder
	b.WriteString(`SELECT id, name, brand, design, index_mat, coating, purchase_price, selling_price
		FROM lenses WHERE 1=1`)
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q.Geometry != "" {
		geo := q.Geometry
		// INTERIEUR is stored as its DEGRESSIF variant
		if geo == "INTERIEUR" {
			geo = string(app.GeometryDegressif)
		}
		fmt.Fprintf(&b, " AND geometry = %s", arg(geo))
	}

	if q.Brand != "" && q.Brand != "TOUTES" {
		brand := q.Brand
		// ORUS is a commercial brand drawing from the CODIR stock
		if brand == "ORUS" {
			brand = "CODIR"
		}
		fmt.Fprintf(&b, " AND brand ILIKE %s", arg(brand))
	}

	if q.Design != "" && q.Design != "TOUS" {
		fmt.Fprintf(&b, " AND design ILIKE %s", arg("%"+q.Design+"%"))
	}

	if q.IndexMat != "" {
		// vendors write 1.60, 1,60 or 1.6; the catalog stores the
		// two-decimal form but tolerate legacy rows
		comma := strings.ReplaceAll(q.IndexMat, ".", ",")
		short := strings.TrimRight(q.IndexMat, "0")
		fmt.Fprintf(&b, " AND (index_mat = %s OR index_mat = %s OR index_mat = %s)",
			arg(q.IndexMat), arg(comma), arg(short))
	}

	if q.Coating != "" {
		prefix, _, _ := strings.Cut(q.Coating, "_")
		fmt.Fprintf(&b, " AND coating ILIKE %s", arg("%"+prefix+"%"))
	}

	if q.Myopia {
		b.WriteString(" AND name ILIKE '%MIYO%'")
	}

	b.WriteString(" ORDER BY selling_price DESC")
	return b.String(), args
}

func (this *CatalogService) Search(ctx context.Context, q app.LensQuery) ([]app.LensOffer, error) {
	query, args := buildLensQuery(q)
	rows, err := this.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query lenses: %w", err)
	}
	defer rows.Close()

	base := RefundBase(q.Geometry)
	offers := make([]app.LensOffer, 0, 64)
	for rows.Next() {
		var o app.LensOffer
		var catalogPrice float64
		if err := rows.Scan(&o.ID, &o.Name, &o.Brand, &o.Design, &o.IndexMat, &o.Coating, &o.PurchasePrice, &catalogPrice); err != nil {
			return nil, fmt.Errorf("scan lens: %w", err)
		}
		if q.Brand == "ORUS" {
			o.Brand = "ORUS"
		}
		o.SellingPrice = round2(OptimizeSellingPrice(o.PurchasePrice, catalogPrice, base, q.PocketLimit))
		o.PurchasePrice = round2(o.PurchasePrice)
		o.Margin = round2(o.SellingPrice - o.PurchasePrice)
		offers = append(offers, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lenses: %w", err)
	}

	sort.SliceStable(offers, func(i, j int) bool {
		return offers[i].Margin > offers[j].Margin
	})
	return offers, nil
}

package app

import "context"

// CatalogIngestService converts an uploaded workbook into the normalized
// lens catalog, replacing the previous catalog wholesale.
type CatalogIngestService interface {
	// ImportWorkbook ingests the workbook at path. It returns the count of
	// records loaded plus one summary per sheet. Sheet- and row-level
	// problems degrade to skips; the error is non-nil only for run-fatal
	// conditions (unreadable workbook, store preparation or batch failure).
	ImportWorkbook(ctx context.Context, path string) (*ImportResult, error)
}

// LensQuery are the downstream read filters. Geometry is matched exactly
// against the stored enumeration; INTERIEUR is accepted as an alias for
// DEGRESSIF.
type LensQuery struct {
	Geometry    string
	Brand       string
	Design      string
	IndexMat    string
	Coating     string
	Myopia      bool
	PocketLimit float64
}

// LensOffer is one priced query result: the catalog row with the selling
// price optimized against the client's pocket limit and the margin over
// purchase.
type LensOffer struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Brand         string  `json:"brand"`
	Design        string  `json:"design"`
	IndexMat      string  `json:"index_mat"`
	Coating       string  `json:"coating"`
	PurchasePrice float64 `json:"purchasePrice"`
	SellingPrice  float64 `json:"sellingPrice"`
	Margin        float64 `json:"margin"`
}

type CatalogQueryService interface {
	// Search returns all matching offers sorted by descending margin.
	Search(ctx context.Context, q LensQuery) ([]LensOffer, error)
}

// UserAccount is one optician account read from the accounts workbook.
type UserAccount struct {
	Username     string
	ShopName     string
	PasswordHash string
	Email        string
	Role         string
}

type UserImportService interface {
	// ImportFile replaces the accounts table with the workbook at path,
	// returning the number of unique accounts created.
	ImportFile(ctx context.Context, path string) (int, error)
}

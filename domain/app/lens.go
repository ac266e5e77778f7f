package app

// Geometry is the lens-design category used for catalog filtering.
// Ingestion guarantees every stored row carries one of these values, so
// downstream filters can rely on exact equality.
type Geometry string

const (
	GeometryUnifocal   Geometry = "UNIFOCAL"
	GeometryProgressif Geometry = "PROGRESSIF"
	// GeometryDegressif also covers the interior-progressive variant.
	GeometryDegressif  Geometry = "DEGRESSIF"
	GeometryMultifocal Geometry = "MULTIFOCAL"
)

// Lens is one normalized catalog record as produced by the ingestion
// pipeline and written by the batch loader.
type Lens struct {
	Brand          string   `json:"brand"`
	EDICode        string   `json:"edi_code"`
	CommercialCode string   `json:"commercial_code"`
	Name           string   `json:"name"`
	Geometry       Geometry `json:"geometry"`
	Design         string   `json:"design"`
	IndexMat       string   `json:"index_mat"`
	Material       string   `json:"material"`
	Coating        string   `json:"coating"`
	CommercialFlow string   `json:"commercial_flow"`
	Color          string   `json:"color"`
	PurchasePrice  float64  `json:"purchase_price"`
	SellingPrice   float64  `json:"selling_price"`

	// NetworkPrices holds the per-distribution-network ceiling prices,
	// keyed by network key (kalixia, itelis, ...). Zero when the sheet
	// has no column for a network.
	NetworkPrices map[string]float64 `json:"network_prices"`
}

// ZeroPricePolicy names what happens to a row whose purchase price is
// still <= 0 after every fallback attempt.
type ZeroPricePolicy string

const (
	// ZeroPriceDrop discards the row (the historical behavior).
	ZeroPriceDrop ZeroPricePolicy = "drop"
	// ZeroPriceKeep inserts the row with a zero price and counts it in
	// the sheet summary.
	ZeroPriceKeep ZeroPricePolicy = "keep"
)

type SheetStatus string

const (
	SheetImported SheetStatus = "imported"
	SheetSkipped  SheetStatus = "skipped"
)

// SheetSummary reports the per-sheet outcome of one ingestion run.
// Sheet-level skips are surfaced here rather than raised, so one
// malformed vendor sheet never blocks the rest of the workbook.
type SheetSummary struct {
	Sheet           string      `json:"sheet"`
	Status          SheetStatus `json:"status"`
	Reason          string      `json:"reason,omitempty"`
	HeaderRow       int         `json:"header_row,omitempty"`
	Imported        int         `json:"imported"`
	SkippedRows     int         `json:"skipped_rows"`
	DefaultedPrices int         `json:"defaulted_prices"`
	ZeroPriceRows   int         `json:"zero_price_rows"`
}

// ImportResult is the user-visible outcome of one catalog upload.
type ImportResult struct {
	Count  int            `json:"count"`
	Sheets []SheetSummary `json:"sheets"`
}

package ingest_service

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/podium-optique/catalog/domain/app"
	"github.com/podium-optique/catalog/internal/ingest/rules"
	"github.com/podium-optique/catalog/internal/ingest/textutil"
)

// WorkbookScanner walks every sheet of a workbook and emits normalized
// lens records through a callback, one row at a time off the streaming
// cursor so peak memory stays bounded by one batch regardless of workbook
// size. Each sheet runs the header hunt, column resolution and record
// build; sheets that cannot be mapped are skipped and reported in their
// summary, never failed.
type WorkbookScanner struct {
	rs         *rules.Ruleset
	locator    *HeaderLocator
	classifier *ProductClassifier
	policy     app.ZeroPricePolicy
	log        *slog.Logger
}

func NewWorkbookScanner(rs *rules.Ruleset, policy app.ZeroPricePolicy, log *slog.Logger) *WorkbookScanner {
	if policy == "" {
		policy = app.ZeroPriceDrop
	}
	return &WorkbookScanner{rs, NewHeaderLocator(rs), NewProductClassifier(rs), policy, log}
}

// Scan emits every record of the workbook. An error returned by emit is
// run-fatal (the batch writer failed) and aborts the remaining stream;
// the summaries collected so far are still returned.
func (this *WorkbookScanner) Scan(f *excelize.File, emit func(app.Lens) error) ([]app.SheetSummary, error) {
	sheets := f.GetSheetList()
	summaries := make([]app.SheetSummary, 0, len(sheets))
	for _, sheet := range sheets {
		sum, err := this.scanSheet(f, sheet, emit)
		summaries = append(summaries, *sum)
		if err != nil {
			return summaries, err
		}
	}
	return summaries, nil
}

func (this *WorkbookScanner) scanSheet(f *excelize.File, sheet string, emit func(app.Lens) error) (*app.SheetSummary, error) {
	sum := &app.SheetSummary{Sheet: sheet, Status: app.SheetSkipped}
	brandFallback := textutil.Canon(sheet)

	rows, err := f.Rows(sheet)
	if err != nil {
		sum.Reason = "unreadable sheet"
		this.log.Warn("sheet skipped", "sheet", sheet, "reason", sum.Reason, "error", err)
		return sum, nil
	}
	defer rows.Close()

	var header []string
	rowNo := 0
	for rows.Next() {
		rowNo++
		if rowNo > this.locator.Bound() {
			break
		}
		cells, err := rows.Columns()
		if err != nil {
			continue
		}
		if this.locator.IsHeader(cells) {
			header = cells
			sum.HeaderRow = rowNo
			break
		}
	}
	if header == nil {
		sum.Reason = fmt.Sprintf("no header row within the first %d rows", this.locator.Bound())
		this.log.Warn("sheet skipped", "sheet", sheet, "reason", sum.Reason)
		return sum, nil
	}

	cols := ResolveColumns(header, this.rs)
	if _, ok := cols.Col(rules.FieldName); !ok {
		sum.Reason = "commercial name column unresolved"
		this.log.Warn("sheet skipped", "sheet", sheet, "reason", sum.Reason, "headerRow", sum.HeaderRow)
		return sum, nil
	}

	sum.Status = app.SheetImported
	this.log.Info("streaming sheet", "sheet", sheet, "brand", brandFallback, "headerRow", sum.HeaderRow)

	for rows.Next() {
		cells, err := rows.Columns()
		if err != nil {
			sum.SkippedRows++
			continue
		}
		name := textutil.Clean(cols.Cell(cells, rules.FieldName))
		if name == "" {
			// trailing blank rows and section separators are noise
			sum.SkippedRows++
			continue
		}
		lens := this.buildRecord(cols, cells, name, brandFallback, sum)
		if lens == nil {
			continue
		}
		if err := emit(*lens); err != nil {
			return sum, fmt.Errorf("sheet %s: %w", sheet, err)
		}
		sum.Imported++
	}
	return sum, nil
}

func (this *WorkbookScanner) buildRecord(cols HeaderMap, cells []string, name, brandFallback string, sum *app.SheetSummary) *app.Lens {
	buy := textutil.ParsePrice(cols.Cell(cells, rules.FieldPurchasePrice))
	if buy.Defaulted {
		sum.DefaultedPrices++
	}
	if buy.Value <= 0 {
		sum.ZeroPriceRows++
		if this.policy == app.ZeroPriceDrop {
			return nil
		}
	}

	brand := textutil.Canon(cols.Cell(cells, rules.FieldBrand))
	if brand == "" {
		brand = brandFallback
	}

	material := textutil.Clean(cols.Cell(cells, rules.FieldMaterial))
	if this.classifier.IsPhotochromic(material) {
		name = name + " " + material
	}

	design := textutil.Clean(cols.Cell(cells, rules.FieldDesign))
	if design == "" {
		design = "STANDARD"
	}
	coating := textutil.Clean(cols.Cell(cells, rules.FieldCoating))
	if coating == "" {
		coating = "DURCI"
	}
	flow := textutil.Clean(cols.Cell(cells, rules.FieldFlow))
	if flow == "" {
		flow = "FAB"
	}

	code := textutil.Clean(cols.Cell(cells, rules.FieldCommercialCode))
	geometry := this.classifier.Classify(cols.Cell(cells, rules.FieldGeometry), name, design, code)

	networks := make(map[string]float64, len(this.rs.Networks))
	selling := 0.0
	for i, n := range this.rs.Networks {
		p := textutil.ParsePrice(cols.Cell(cells, NetworkField(n.Key)))
		networks[n.Key] = p.Value
		// the first network in the ruleset is the reference ceiling that
		// doubles as the generic selling price
		if i == 0 {
			selling = p.Value
		}
	}

	return &app.Lens{
		Brand:          brand,
		EDICode:        textutil.Clean(cols.Cell(cells, rules.FieldEDICode)),
		CommercialCode: code,
		Name:           name,
		Geometry:       geometry,
		Design:         design,
		IndexMat:       textutil.ParseIndex(cols.Cell(cells, rules.FieldIndex)),
		Material:       material,
		Coating:        coating,
		CommercialFlow: flow,
		Color:          textutil.Clean(cols.Cell(cells, rules.FieldColor)),
		PurchasePrice:  buy.Value,
		SellingPrice:   selling,
		NetworkPrices:  networks,
	}
}

package ingest_service

import (
	"fmt"
	"log/slog"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/podium-optique/catalog/domain/app"
	"github.com/podium-optique/catalog/internal/ingest/rules"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func setRow(t *testing.T, f *excelize.File, sheet string, row int, cells []any) {
	t.Helper()
	if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &cells); err != nil {
		t.Fatalf("SetSheetRow(%s, %d): %v", sheet, row, err)
	}
}

func collect(t *testing.T, s *WorkbookScanner, f *excelize.File) ([]app.Lens, []app.SheetSummary) {
	t.Helper()
	var out []app.Lens
	sums, err := s.Scan(f, func(l app.Lens) error {
		out = append(out, l)
		return nil
	})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	return out, sums
}

// twoSheetWorkbook is the end-to-end fixture: a HOYA sheet with a banner
// above the header and one valid row, plus an EMPTY sheet with no
// resolvable header.
func twoSheetWorkbook(t *testing.T) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", "HOYA"); err != nil {
		t.Fatal(err)
	}
	setRow(t, f, "HOYA", 1, []any{"Catalogue tarifaire 2024"})
	setRow(t, f, "HOYA", 2, []any{"MODELE COMMERCIAL", "GÉOMETRIE", "INDICE", "PRIX 2*NETS", "KALIXIA"})
	setRow(t, f, "HOYA", 3, []any{"Hoyalux Balansis", "PROGRESSIF", "1,6", "45,00 €", "120,00 €"})

	if _, err := f.NewSheet("EMPTY"); err != nil {
		t.Fatal(err)
	}
	setRow(t, f, "EMPTY", 1, []any{"quelques notes internes"})
	setRow(t, f, "EMPTY", 2, []any{"sans la moindre colonne"})
	return f
}

func TestScanTwoSheetWorkbook(t *testing.T) {
	s := NewWorkbookScanner(rules.Default(), app.ZeroPriceDrop, testLogger())
	f := twoSheetWorkbook(t)
	defer f.Close()

	records, sums := collect(t, s, f)

	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	r := records[0]
	if r.Brand != "HOYA" {
		t.Errorf("Brand = %q, want HOYA (sheet-name fallback)", r.Brand)
	}
	if r.Name != "Hoyalux Balansis" {
		t.Errorf("Name = %q", r.Name)
	}
	if r.Geometry != app.GeometryProgressif {
		t.Errorf("Geometry = %s, want PROGRESSIF", r.Geometry)
	}
	if r.PurchasePrice != 45 {
		t.Errorf("PurchasePrice = %v, want 45", r.PurchasePrice)
	}
	if r.IndexMat != "1.60" {
		t.Errorf("IndexMat = %q, want 1.60", r.IndexMat)
	}
	if r.SellingPrice != 120 || r.NetworkPrices["kalixia"] != 120 {
		t.Errorf("selling/kalixia = %v/%v, want 120", r.SellingPrice, r.NetworkPrices["kalixia"])
	}
	if r.Design != "STANDARD" || r.Coating != "DURCI" || r.CommercialFlow != "FAB" {
		t.Errorf("defaults wrong: design=%q coating=%q flow=%q", r.Design, r.Coating, r.CommercialFlow)
	}

	if len(sums) != 2 {
		t.Fatalf("summaries = %d, want 2", len(sums))
	}
	hoya, empty := sums[0], sums[1]
	if hoya.Status != app.SheetImported || hoya.Imported != 1 || hoya.HeaderRow != 2 {
		t.Errorf("HOYA summary = %+v", hoya)
	}
	if empty.Status != app.SheetSkipped || empty.Imported != 0 || empty.Reason == "" {
		t.Errorf("EMPTY summary = %+v", empty)
	}
}

func TestScanIsIdempotent(t *testing.T) {
	s := NewWorkbookScanner(rules.Default(), app.ZeroPriceDrop, testLogger())
	f := twoSheetWorkbook(t)
	defer f.Close()

	first, _ := collect(t, s, f)
	second, _ := collect(t, s, f)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("two passes over an unchanged workbook differ:\n%+v\n%+v", first, second)
	}
}

func TestScanHeaderBeyondBoundSkipsSheet(t *testing.T) {
	s := NewWorkbookScanner(rules.Default(), app.ZeroPriceDrop, testLogger())
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", "LATE"); err != nil {
		t.Fatal(err)
	}
	for i := 1; i <= 30; i++ {
		setRow(t, f, "LATE", i, []any{"remplissage"})
	}
	setRow(t, f, "LATE", 31, []any{"MODELE COMMERCIAL", "PRIX"})
	setRow(t, f, "LATE", 32, []any{"Verre fantôme", "10,00 €"})

	records, sums := collect(t, s, f)
	if len(records) != 0 {
		t.Fatalf("records = %d, want 0 (header beyond scan bound)", len(records))
	}
	if sums[0].Status != app.SheetSkipped {
		t.Errorf("summary = %+v, want skipped", sums[0])
	}
}

func TestScanNameColumnUnresolvedSkipsSheet(t *testing.T) {
	s := NewWorkbookScanner(rules.Default(), app.ZeroPriceDrop, testLogger())
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", "NONAME"); err != nil {
		t.Fatal(err)
	}
	// PRIX makes the row look like a header, but no name candidate matches
	setRow(t, f, "NONAME", 1, []any{"REFERENCE INTERNE", "PRIX"})
	setRow(t, f, "NONAME", 2, []any{"X123", "10,00"})

	records, sums := collect(t, s, f)
	if len(records) != 0 {
		t.Fatalf("records = %d, want 0", len(records))
	}
	if sums[0].Status != app.SheetSkipped || sums[0].Reason == "" {
		t.Errorf("summary = %+v", sums[0])
	}
}

func TestScanSkipsBlankNameRows(t *testing.T) {
	s := NewWorkbookScanner(rules.Default(), app.ZeroPriceDrop, testLogger())
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", "ZEISS"); err != nil {
		t.Fatal(err)
	}
	setRow(t, f, "ZEISS", 1, []any{"MODELE", "PRIX"})
	setRow(t, f, "ZEISS", 2, []any{"ClearView", "50,00"})
	setRow(t, f, "ZEISS", 3, []any{"", "99,00"})
	setRow(t, f, "ZEISS", 4, []any{"SmartLife", "80,00"})

	records, sums := collect(t, s, f)
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if sums[0].SkippedRows != 1 {
		t.Errorf("SkippedRows = %d, want 1", sums[0].SkippedRows)
	}
}

func TestScanBrandColumnOverridesSheetName(t *testing.T) {
	s := NewWorkbookScanner(rules.Default(), app.ZeroPriceDrop, testLogger())
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", "Divers"); err != nil {
		t.Fatal(err)
	}
	setRow(t, f, "Divers", 1, []any{"MARQUE", "MODELE", "PRIX"})
	setRow(t, f, "Divers", 2, []any{"seiko", "Prime X", "130,00"})
	setRow(t, f, "Divers", 3, []any{"", "Brilliance", "200,00"})

	records, _ := collect(t, s, f)
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if records[0].Brand != "SEIKO" {
		t.Errorf("brand = %q, want SEIKO (upper-cased cell)", records[0].Brand)
	}
	if records[1].Brand != "DIVERS" {
		t.Errorf("brand fallback = %q, want DIVERS (normalized sheet name)", records[1].Brand)
	}
}

func TestScanPhotochromicAppendsMaterial(t *testing.T) {
	s := NewWorkbookScanner(rules.Default(), app.ZeroPriceDrop, testLogger())
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", "HOYA"); err != nil {
		t.Fatal(err)
	}
	setRow(t, f, "HOYA", 1, []any{"MODELE", "MATIERE", "PRIX"})
	setRow(t, f, "HOYA", 2, []any{"Nulux", "Transitions Gen 8", "60,00"})
	setRow(t, f, "HOYA", 3, []any{"Nulux", "ORMA", "40,00"})

	records, _ := collect(t, s, f)
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if records[0].Name != "Nulux Transitions Gen 8" {
		t.Errorf("photochromic name = %q", records[0].Name)
	}
	if records[1].Name != "Nulux" {
		t.Errorf("clear variant name = %q", records[1].Name)
	}
}

func TestScanZeroPricePolicies(t *testing.T) {
	build := func() *excelize.File {
		f := excelize.NewFile()
		if err := f.SetSheetName("Sheet1", "CODIR"); err != nil {
			t.Fatal(err)
		}
		setRow(t, f, "CODIR", 1, []any{"MODELE", "PRIX"})
		setRow(t, f, "CODIR", 2, []any{"Eco", "10,00"})
		setRow(t, f, "CODIR", 3, []any{"Sur devis", "-"})
		return f
	}

	t.Run("drop", func(t *testing.T) {
		f := build()
		defer f.Close()
		s := NewWorkbookScanner(rules.Default(), app.ZeroPriceDrop, testLogger())
		records, sums := collect(t, s, f)
		if len(records) != 1 {
			t.Fatalf("records = %d, want 1", len(records))
		}
		if sums[0].ZeroPriceRows != 1 || sums[0].DefaultedPrices != 1 {
			t.Errorf("summary = %+v", sums[0])
		}
	})

	t.Run("keep", func(t *testing.T) {
		f := build()
		defer f.Close()
		s := NewWorkbookScanner(rules.Default(), app.ZeroPriceKeep, testLogger())
		records, sums := collect(t, s, f)
		if len(records) != 2 {
			t.Fatalf("records = %d, want 2", len(records))
		}
		if records[1].PurchasePrice != 0 {
			t.Errorf("kept row price = %v, want 0", records[1].PurchasePrice)
		}
		if sums[0].ZeroPriceRows != 1 {
			t.Errorf("summary = %+v", sums[0])
		}
	})
}

func TestScanEmitErrorAborts(t *testing.T) {
	s := NewWorkbookScanner(rules.Default(), app.ZeroPriceDrop, testLogger())
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", "HOYA"); err != nil {
		t.Fatal(err)
	}
	setRow(t, f, "HOYA", 1, []any{"MODELE", "PRIX"})
	setRow(t, f, "HOYA", 2, []any{"Un", "10,00"})
	setRow(t, f, "HOYA", 3, []any{"Deux", "20,00"})

	calls := 0
	_, err := s.Scan(f, func(app.Lens) error {
		calls++
		return fmt.Errorf("writer down")
	})
	if err == nil {
		t.Fatal("expected scan to abort")
	}
	if calls != 1 {
		t.Errorf("emit called %d times after failure, want 1", calls)
	}
}

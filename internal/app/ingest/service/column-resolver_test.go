package ingest_service

import (
	"testing"

	"github.com/podium-optique/catalog/internal/ingest/rules"
)

func TestResolveColumnsCandidatePriority(t *testing.T) {
	// An earlier candidate must beat an earlier header cell: with header
	// ["MODELE", "MODELE COMMERCIAL"] and candidates ["MODELE COMMERCIAL",
	// "MODELE"], the name resolves to column 1, not column 0.
	rs := rules.Default()
	header := []string{"MODELE", "MODELE COMMERCIAL"}

	m := ResolveColumns(header, rs)
	if got, ok := m.Col(rules.FieldName); !ok || got != 1 {
		t.Errorf("name column = %d (resolved %v), want 1", got, ok)
	}
}

func TestResolveColumnsFirstColumnWinsWithinCandidate(t *testing.T) {
	rs := rules.Default()
	header := []string{"PRIX 2*NETS", "PRIX PUBLIC"}

	m := ResolveColumns(header, rs)
	if got, ok := m.Col(rules.FieldPurchasePrice); !ok || got != 0 {
		t.Errorf("purchase column = %d (resolved %v), want 0", got, ok)
	}
}

func TestResolveColumnsDiacriticsAndCase(t *testing.T) {
	rs := rules.Default()
	header := []string{"Modèle Commercial", "Géométrie", "Indice", "Matière", "Traitement"}

	m := ResolveColumns(header, rs)
	want := map[string]int{
		rules.FieldName:     0,
		rules.FieldGeometry: 1,
		rules.FieldIndex:    2,
		rules.FieldMaterial: 3,
		rules.FieldCoating:  4,
	}
	for field, col := range want {
		if got, ok := m.Col(field); !ok || got != col {
			t.Errorf("field %s = %d (resolved %v), want %d", field, got, ok, col)
		}
	}
}

func TestResolveColumnsUnresolvedIsAbsent(t *testing.T) {
	rs := rules.Default()
	m := ResolveColumns([]string{"MODELE", "PRIX"}, rs)

	if _, ok := m.Col(rules.FieldColor); ok {
		t.Error("color should be unresolved, not defaulted")
	}
	if got := m.Cell([]string{"a", "b"}, rules.FieldColor); got != "" {
		t.Errorf("Cell on unresolved field = %q, want empty", got)
	}
}

func TestResolveColumnsNetworks(t *testing.T) {
	rs := rules.Default()
	header := []string{"MODELE", "KALIXIA", "CARTE BLANCHE", "SANTECLAIRE"}

	m := ResolveColumns(header, rs)
	for field, col := range map[string]int{
		NetworkField("kalixia"):      1,
		NetworkField("carteblanche"): 2,
		NetworkField("santeclair"):   3,
	} {
		if got, ok := m.Col(field); !ok || got != col {
			t.Errorf("%s = %d (resolved %v), want %d", field, got, ok, col)
		}
	}
	if _, ok := m.Col(NetworkField("itelis")); ok {
		t.Error("itelis should be unresolved")
	}
}

func TestCellShortRow(t *testing.T) {
	rs := rules.Default()
	m := ResolveColumns([]string{"MODELE", "COULEUR"}, rs)

	if got := m.Cell([]string{"only name"}, rules.FieldColor); got != "" {
		t.Errorf("Cell past row end = %q, want empty", got)
	}
}

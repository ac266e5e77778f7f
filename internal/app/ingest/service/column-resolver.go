package ingest_service

import (
	"strings"

	"github.com/podium-optique/catalog/internal/ingest/rules"
	"github.com/podium-optique/catalog/internal/ingest/textutil"
)

// HeaderMap maps semantic field names to zero-based column positions in
// one sheet. Fields whose candidates matched no header cell are absent,
// never defaulted to column 0.
type HeaderMap map[string]int

func (m HeaderMap) Col(field string) (int, bool) {
	i, ok := m[field]
	return i, ok
}

// Cell returns the raw cell of a field within row, or "" when the field
// is unresolved or the row is shorter than the resolved position.
func (m HeaderMap) Cell(row []string, field string) string {
	i, ok := m[field]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// NetworkField is the HeaderMap key (and table column) of one
// distribution network's price.
func NetworkField(key string) string {
	return "sell_" + key
}

// ResolveColumns maps every semantic field of the ruleset onto the header
// row. Candidates are tried in priority order, each scanning header cells
// left to right: an earlier candidate beats an earlier column, so a sheet
// with both "MODELE" and "MODELE COMMERCIAL" resolves the name to the
// more specific cell.
func ResolveColumns(header []string, rs *rules.Ruleset) HeaderMap {
	canon := make([]string, len(header))
	for i, h := range header {
		canon[i] = textutil.Canon(h)
	}

	resolve := func(candidates []string) int {
		for _, cand := range candidates {
			c := textutil.Canon(cand)
			for i, h := range canon {
				if h != "" && strings.Contains(h, c) {
					return i
				}
			}
		}
		return -1
	}

	m := make(HeaderMap)
	for _, f := range rs.Fields {
		if i := resolve(f.Candidates); i >= 0 {
			m[f.Field] = i
		}
	}
	for _, n := range rs.Networks {
		if i := resolve(n.Candidates); i >= 0 {
			m[NetworkField(n.Key)] = i
		}
	}
	return m
}

// Package rules holds the data-driven matching tables the ingestion
// pipeline resolves against: header indicator keywords, per-field column
// candidate lists, geometry keywords, named-product overrides and
// photochromic markers. Supporting a new vendor's naming convention is a
// change to this data (or to a JSON overlay file), not to the resolution
// code.
package rules

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/podium-optique/catalog/domain/app"
)

// Semantic field identifiers resolved by the column resolver. Network
// price fields are addressed separately through NetworkSpec.
const (
	FieldName           = "commercial_name"
	FieldBrand          = "brand"
	FieldEDICode        = "edi_code"
	FieldCommercialCode = "commercial_code"
	FieldGeometry       = "geometry"
	FieldDesign         = "design"
	FieldIndex          = "refractive_index"
	FieldMaterial       = "material"
	FieldCoating        = "coating"
	FieldFlow           = "commercial_flow"
	FieldColor          = "color"
	FieldPurchasePrice  = "purchase_price"
)

// FieldSpec maps one semantic field to its ordered candidate substrings.
// Candidates are compared in canonical form; earlier candidates win over
// earlier header cells.
type FieldSpec struct {
	Field      string   `json:"field"`
	Candidates []string `json:"candidates"`
}

// NetworkSpec names one distribution network and the header candidates of
// its ceiling-price column.
type NetworkSpec struct {
	Key        string   `json:"key"`
	Candidates []string `json:"candidates"`
}

// GeometryKeyword forces a geometry when its substring appears in the
// geometry cell. First match wins.
type GeometryKeyword struct {
	Substr   string       `json:"substr"`
	Geometry app.Geometry `json:"geometry"`
}

// Override forces a geometry for a known commercial product family,
// matched as a substring of name+design+code with whitespace removed.
// Overrides exist because some vendors mis-tag their own interior lenses
// as progressive in the geometry column.
type Override struct {
	Substr   string       `json:"substr"`
	Geometry app.Geometry `json:"geometry"`
}

// Ruleset is the complete matching configuration of one ingestion run.
type Ruleset struct {
	// HeaderScanBound is how many leading rows of a sheet are searched for
	// a header row before the sheet is declared unmapped.
	HeaderScanBound int `json:"header_scan_bound"`
	// HeaderIndicators mark a row as a header when any canonical cell
	// contains any of them.
	HeaderIndicators []string `json:"header_indicators"`

	Fields   []FieldSpec   `json:"fields"`
	Networks []NetworkSpec `json:"networks"`

	GeometryKeywords []GeometryKeyword `json:"geometry_keywords"`
	Overrides        []Override        `json:"overrides"`

	// PhotochromicKeywords flag a material cell as photochromic; the
	// material is then appended to the product name so clear and
	// photochromic variants stay distinguishable.
	PhotochromicKeywords []string `json:"photochromic_keywords"`
}

// Default returns the built-in ruleset covering the vendor catalogs seen
// so far (French and English headings, common abbreviations).
func Default() *Ruleset {
	return &Ruleset{
		HeaderScanBound: 30,
		HeaderIndicators: []string{
			"MODELE", "LIBELLE", "NAME", "PRIX", "PURCHASE_PRICE",
		},
		Fields: []FieldSpec{
			{FieldName, []string{"MODELE COMMERCIAL", "MODELE", "LIBELLE", "NAME"}},
			{FieldBrand, []string{"MARQUE", "BRAND"}},
			{FieldEDICode, []string{"CODE EDI", "EDI"}},
			{FieldCommercialCode, []string{"CODE COMMERCIAL", "COMMERCIAL_CODE"}},
			{FieldGeometry, []string{"GEOMETRIE", "TYPE"}},
			{FieldDesign, []string{"DESIGN", "GAMME"}},
			{FieldIndex, []string{"INDICE", "INDEX"}},
			{FieldMaterial, []string{"MATIERE"}},
			{FieldCoating, []string{"TRAITEMENT", "COATING"}},
			{FieldFlow, []string{"FLUX"}},
			{FieldColor, []string{"COULEUR", "COLOR"}},
			{FieldPurchasePrice, []string{"PRIX 2*NETS", "PRIX", "ACHAT"}},
		},
		Networks: []NetworkSpec{
			{"kalixia", []string{"KALIXIA"}},
			{"itelis", []string{"ITELIS"}},
			{"carteblanche", []string{"CARTE BLANCHE", "CARTEBLANCHE"}},
			{"seveane", []string{"SEVEANE"}},
			{"santeclair", []string{"SANTECLAIRE", "SANTECLAIR"}},
		},
		GeometryKeywords: []GeometryKeyword{
			{"DEGRESSIF", app.GeometryDegressif},
			{"INTERIEUR", app.GeometryDegressif},
			{"PROG", app.GeometryProgressif},
			{"MULTIFOCAL", app.GeometryMultifocal},
		},
		Overrides: []Override{
			{"WORKSTYLE", app.GeometryDegressif},
			{"MIYOSMART", app.GeometryUnifocal},
		},
		PhotochromicKeywords: []string{"TRANS", "GEN", "SOLA"},
	}
}

// Load returns Default overlaid with the JSON document at path. Fields
// present in the overlay replace the default table wholesale; absent
// fields keep their defaults. An empty path returns Default unchanged.
func Load(path string) (*Ruleset, error) {
	rs := Default()
	if path == "" {
		return rs, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules overlay: %w", err)
	}
	if err := json.Unmarshal(raw, rs); err != nil {
		return nil, fmt.Errorf("parse rules overlay %s: %w", path, err)
	}
	if rs.HeaderScanBound <= 0 {
		rs.HeaderScanBound = Default().HeaderScanBound
	}
	return rs, nil
}

package ingest_service

import (
	"strings"

	"github.com/podium-optique/catalog/domain/app"
	"github.com/podium-optique/catalog/internal/ingest/rules"
	"github.com/podium-optique/catalog/internal/ingest/textutil"
)

// ProductClassifier assigns the geometry enumeration from the raw
// geometry cell, with named-product overrides taking precedence over the
// geometry text: some vendors tag their interior lenses as progressive,
// so a known family name in the product identity forces the geometry.
type ProductClassifier struct {
	rs *rules.Ruleset
}

func NewProductClassifier(rs *rules.Ruleset) *ProductClassifier {
	return &ProductClassifier{rs}
}

func (this *ProductClassifier) Classify(geometryText, name, design, code string) app.Geometry {
	geo := app.GeometryUnifocal
	g := textutil.Canon(geometryText)
	for _, kw := range this.rs.GeometryKeywords {
		if strings.Contains(g, kw.Substr) {
			geo = kw.Geometry
			break
		}
	}

	ident := textutil.Squash(name) + textutil.Squash(design) + textutil.Squash(code)
	for _, o := range this.rs.Overrides {
		if strings.Contains(ident, textutil.Squash(o.Substr)) {
			return o.Geometry
		}
	}
	return geo
}

// IsPhotochromic flags a material cell as a photochromic family member
// (Transitions, Gen, Solactive and friends). The scanner then appends the
// material to the product name so photochromic and clear variants of the
// same lens stay distinguishable downstream.
func (this *ProductClassifier) IsPhotochromic(material string) bool {
	m := textutil.Canon(material)
	if m == "" {
		return false
	}
	for _, kw := range this.rs.PhotochromicKeywords {
		if strings.Contains(m, kw) {
			return true
		}
	}
	return false
}

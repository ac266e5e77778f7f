package ingest_service

import (
	"strings"

	"github.com/podium-optique/catalog/internal/ingest/rules"
	"github.com/podium-optique/catalog/internal/ingest/textutil"
)

// HeaderLocator decides whether a raw row looks like the header row of a
// catalog sheet. Vendors place headers at unpredictable rows, so the
// scanner probes the first Bound() rows with IsHeader and gives up after
// that; scanning further would risk matching product data that happens to
// contain an indicator word.
type HeaderLocator struct {
	rs *rules.Ruleset
}

func NewHeaderLocator(rs *rules.Ruleset) *HeaderLocator {
	return &HeaderLocator{rs}
}

func (this *HeaderLocator) Bound() int {
	return this.rs.HeaderScanBound
}

func (this *HeaderLocator) IsHeader(cells []string) bool {
	for _, cell := range cells {
		c := textutil.Canon(cell)
		if c == "" {
			continue
		}
		for _, kw := range this.rs.HeaderIndicators {
			if strings.Contains(c, kw) {
				return true
			}
		}
	}
	return false
}

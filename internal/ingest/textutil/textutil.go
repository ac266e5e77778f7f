// Package textutil holds the pure text and numeric normalization used by
// the ingestion pipeline: canonical comparison strings for header and
// keyword matching, and the tolerant price/index parsers. Parsing never
// returns an error; a cell that cannot be read degrades to a tagged
// default so a bad row does not abort an import.
package textutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultIndex is the refractive index assumed when a sheet carries none.
const DefaultIndex = "1.50"

// Fold strips diacritics down to the base Latin letter (é→e, ç→c).
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Canon produces the canonical comparison form of a cell: diacritics
// folded, upper-cased, non-breaking spaces normalized, outer whitespace
// trimmed. Both header resolution and keyword classification compare
// through Canon so vendor spelling variants collapse together.
func Canon(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	return strings.ToUpper(strings.TrimSpace(Fold(s)))
}

// Squash is Canon with all inner whitespace removed, used when matching
// product names and codes against override keywords.
func Squash(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, Canon(s))
}

// Clean trims a raw cell for storage, without case or diacritic changes.
func Clean(s string) string {
	return strings.TrimSpace(s)
}

// PriceResult carries a parsed price plus whether the value was defaulted
// because the cell was empty or unreadable. A defaulted zero is counted in
// the sheet summary; a genuine zero price is not.
type PriceResult struct {
	Value     float64
	Defaulted bool
}

// currency glyphs show up both correctly decoded and as the UTF-8 bytes of
// "€" read through Latin-1.
var priceGlyphs = strings.NewReplacer("€", "", "â‚¬", "", "%", "", " ", " ")

// ParsePrice reads a price cell that may carry a currency symbol, a percent
// sign, and thousands or decimal separators in either comma or dot
// convention. Empty, "-", and unparseable cells degrade to a defaulted
// zero. A separator followed by one or two digits is taken as the decimal
// point; every other separator is grouping (so "12 50" is 12.5 while
// "1 250" is 1250).
func ParsePrice(raw string) PriceResult {
	s := strings.TrimSpace(priceGlyphs.Replace(raw))
	if s == "" || s == "-" {
		return PriceResult{Defaulted: true}
	}

	cs := []rune(s)
	sepIdx := make([]int, 0, 4)
	hasDigit := false
	for i, r := range cs {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case r == '.' || r == ',' || r == ' ':
			sepIdx = append(sepIdx, i)
		case r == '-' && i == 0:
		default:
			return PriceResult{Defaulted: true}
		}
	}
	if !hasDigit {
		return PriceResult{Defaulted: true}
	}

	decimalAt := -1
	if len(sepIdx) > 0 {
		last := sepIdx[len(sepIdx)-1]
		if after := len(cs) - last - 1; after >= 1 && after <= 2 {
			decimalAt = last
		}
	}

	var b strings.Builder
	for i, r := range cs {
		switch {
		case i == decimalAt:
			b.WriteByte('.')
		case r == '.' || r == ',' || r == ' ':
		default:
			b.WriteRune(r)
		}
	}

	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil || v < 0 {
		return PriceResult{Defaulted: true}
	}
	return PriceResult{Value: v}
}

var indexPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// ParseIndex extracts the first decimal-looking number from a refractive
// index cell ("1,6 Stylis" → "1.60") formatted to two decimals, falling
// back to DefaultIndex when the cell holds no number.
func ParseIndex(raw string) string {
	m := indexPattern.FindString(strings.ReplaceAll(raw, ",", "."))
	if m == "" {
		return DefaultIndex
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return DefaultIndex
	}
	return fmt.Sprintf("%.2f", v)
}

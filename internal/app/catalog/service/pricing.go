package catalog_service

import "math"

// Refund bases estimated per geometry (social security + typical
// complementary coverage), used as the floor the client effectively pays
// nothing below.
var refundBases = map[string]float64{
	"UNIFOCAL":   60.00,
	"PROGRESSIF": 200.00,
	"DEGRESSIF":  120.00,
	"INTERIEUR":  120.00,
}

// RefundBase returns the estimated refund base for a geometry, zero when
// unknown.
func RefundBase(geometry string) float64 {
	return refundBases[geometry]
}

// OptimizeSellingPrice lowers the catalog ceiling price toward the
// client's out-of-pocket limit plus the refund base, while never selling
// under twice the purchase price: when the optimized price would dip
// below that floor, the offer falls back to whichever is higher of the
// floor and the catalog price. A zero pocket limit disables optimization.
func OptimizeSellingPrice(purchase, catalog, refundBase, pocketLimit float64) float64 {
	if pocketLimit <= 0 {
		return catalog
	}
	target := refundBase + pocketLimit
	final := math.Min(target, catalog)
	if final < purchase*2 {
		final = math.Max(purchase*2, catalog)
	}
	return final
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

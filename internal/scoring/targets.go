package scoring

import (
	"math"

	"github.com/shopspring/decimal"
)

var (
	entryFactor = decimal.RequireFromString("0.95")
	exitFactor  = decimal.RequireFromString("1.15")
)

// Targets returns the cosmetic entry (-5%) and exit (+15%) prices.
func Targets(price float64) (entry, exit float64) {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, 0
	}
	p := decimal.NewFromFloat(price)
	entry, _ = p.Mul(entryFactor).Float64()
	exit, _ = p.Mul(exitFactor).Float64()
	return entry, exit
}

// FormatRatio renders a ratio with two decimals, "0.00" when not finite or negative.
func FormatRatio(r float64) string {
	if r <= 0 || math.IsNaN(r) || math.IsInf(r, 0) {
		return "0.00"
	}
	return decimal.NewFromFloat(r).StringFixed(2)
}

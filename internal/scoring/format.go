package scoring

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// USD renders a compact dollar amount: $1.23B, $4.56M, $7.8K, $9.10.
func USD(n float64) string {
	if math.IsNaN(n) || math.IsInf(n, 0) || n == 0 {
		return "--"
	}
	switch {
	case n >= 1e9:
		return fmt.Sprintf("$%.2fB", n/1e9)
	case n >= 1e6:
		return fmt.Sprintf("$%.2fM", n/1e6)
	case n >= 1e3:
		return fmt.Sprintf("$%.1fK", n/1e3)
	default:
		return fmt.Sprintf("$%.2f", n)
	}
}

// Count renders an integer with thousands separators.
func Count(n int) string {
	return printer.Sprintf("%d", n)
}

// Pct renders a percentage with at most one decimal, dropping a trailing ".0".
func Pct(f float64) string {
	if f == math.Trunc(f) {
		return fmt.Sprintf("%.0f%%", f)
	}
	return fmt.Sprintf("%.1f%%", f)
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

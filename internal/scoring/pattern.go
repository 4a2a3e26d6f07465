package scoring

import (
	"fmt"
	"math"

	"MemeIQ/internal/domain/models"
)

// Pattern reads a simple trend off the chart points.
func Pattern(points []models.ChartPoint) models.Pattern {
	prices := make([]float64, 0, len(points))
	for _, p := range points {
		if p.Price > 0 && !math.IsInf(p.Price, 0) {
			prices = append(prices, p.Price)
		}
	}
	if len(prices) == 0 {
		return models.Pattern{
			Name:        "No Data",
			Trend:       "Unknown",
			Description: "No price history.",
			Prediction:  "Retry shortly.",
		}
	}

	first, last := prices[0], prices[len(prices)-1]
	pct := (last - first) / first * 100

	support, resistance := prices[0], prices[0]
	for _, p := range prices[1:] {
		support = math.Min(support, p)
		resistance = math.Max(resistance, p)
	}

	pat := models.Pattern{
		Confidence: clampRound(math.Abs(pct)*4.5+42, 40, 92),
		Support:    support,
		Resistance: resistance,
		ChangePct:  round2(pct),
	}

	switch {
	case pct > 5:
		pat.Name, pat.Trend = "Uptrend", "Bullish"
		pat.Prediction = "Positive momentum. Look for pullbacks to accumulate."
	case pct < -5:
		pat.Name, pat.Trend = "Downtrend", "Bearish"
		pat.Prediction = "Bearish. Avoid chasing and wait for reversal confirmation."
	default:
		pat.Name, pat.Trend = "Consolidation", "Sideways"
		pat.Prediction = "Range-bound. Wait for a confirmed breakout before entering."
	}

	dir := "gain"
	if pct < 0 {
		dir = "loss"
	}
	pat.Description = fmt.Sprintf("Based on 7-day OHLCV. %.1f%% %s over the period.", math.Abs(pct), dir)
	return pat
}

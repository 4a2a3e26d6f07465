package normalize

import (
	"fmt"

	"MemeIQ/internal/domain/models"
)

// ChartLen is the fixed number of chart points.
const ChartLen = 7

// Candles extracts bars from any of the known OHLCV response shapes.
func Candles(ohlcv models.Payload) []models.Candle {
	items := Items(ohlcv, "data.items", "data.data", "data")
	out := make([]models.Candle, 0, len(items))
	for _, it := range items {
		obj, ok := it.(map[string]interface{})
		if !ok {
			continue
		}
		var c models.Candle
		c.Close, _ = FirstNumber(obj, "close", "c", "price")
		c.Volume, _ = FirstNumber(obj, "volume", "v", "volumeUSD")
		out = append(out, c)
	}
	return out
}

// ChartPoints maps the last seven candles to labelled points. Missing values fall
// back to the current price and a seventh of the 24h volume. Short or empty series
// are left-padded with those fallbacks so the result always has ChartLen points.
func ChartPoints(candles []models.Candle, price, volume24h float64) []models.ChartPoint {
	fallbackVol := 0.0
	if volume24h > 0 {
		fallbackVol = volume24h / ChartLen
	}

	if len(candles) > ChartLen {
		candles = candles[len(candles)-ChartLen:]
	}

	points := make([]models.ChartPoint, 0, ChartLen)
	for i := 0; i < ChartLen-len(candles); i++ {
		points = append(points, models.ChartPoint{Price: Finite(price), Volume: fallbackVol})
	}
	for _, c := range candles {
		p := models.ChartPoint{Price: Finite(c.Close), Volume: Finite(c.Volume)}
		if p.Price == 0 {
			p.Price = Finite(price)
		}
		if p.Volume == 0 {
			p.Volume = fallbackVol
		}
		points = append(points, p)
	}
	for i := range points {
		points[i].Label = fmt.Sprintf("Day %d", i+1)
	}
	return points
}

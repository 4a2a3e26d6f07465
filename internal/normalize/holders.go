package normalize

import (
	"math"
	"strconv"
	"time"

	"MemeIQ/internal/domain/models"
	"MemeIQ/pkg/util"
)

// MaxTopHolders caps the real holder list.
const MaxTopHolders = 20

// TopHolders reads the largest holders from the holder resource. When an entry has
// no percentage it is derived from the overview supply.
func TopHolders(holders, overview models.Payload) []models.Holder {
	items := Items(holders, "data.items", "data")
	if len(items) == 0 {
		return []models.Holder{}
	}

	supply := 0.0
	if ov, ok := Lookup(overview, "data"); ok {
		if obj, isObj := ov.(map[string]interface{}); isObj {
			supply, _ = FirstNumber(obj, "supply", "circulatingSupply", "totalSupply")
		}
	}

	out := make([]models.Holder, 0, MaxTopHolders)
	for _, it := range items {
		if len(out) == MaxTopHolders {
			break
		}
		obj, ok := it.(map[string]interface{})
		if !ok {
			continue
		}
		addr, ok := FirstText(obj, "owner", "address", "wallet")
		if !ok {
			continue
		}
		amount, _ := FirstNumber(obj, "ui_amount", "uiAmount", "amount")
		pct, ok := FirstNumber(obj, "percentage", "percent")
		if !ok && supply > 0 {
			pct = amount / supply * 100
		}
		out = append(out, models.Holder{
			Rank:     len(out) + 1,
			Address:  addr,
			Pct:      round2(Finite(pct)),
			UIAmount: Finite(amount),
		})
	}
	return out
}

// NewBuyers counts holders whose first transaction is within 24h of now.
func NewBuyers(holders models.Payload, now time.Time) int {
	cutoff := now.Add(-24 * time.Hour)
	n := 0
	for _, it := range Items(holders, "data.items") {
		obj, ok := it.(map[string]interface{})
		if !ok {
			continue
		}
		raw := obj["firstTransactionTime"]
		if raw == nil {
			raw = obj["firstTxTime"]
		}
		if t, ok := util.ParseTimeValue(raw); ok && t.After(cutoff) {
			n++
		}
	}
	return n
}

// Growth holds the deterministic holder-growth fields.
type Growth struct {
	Pct24h string
	Pct7d  string
	Trend  string
}

// HolderGrowth derives growth from new buyers and, for 7d, from the market volume change.
func HolderGrowth(newBuyers, holders int, volumeChange7d float64) Growth {
	g24 := 0.0
	if holders > 0 && newBuyers > 0 {
		g24 = float64(newBuyers) / float64(holders) * 100
	}
	g7 := 0.0
	if volumeChange7d > 0 {
		g7 = volumeChange7d * 0.3
	}

	s24 := strconv.FormatFloat(g24, 'f', 1, 64)
	// the trend reads the rounded figure, as displayed
	shown, _ := strconv.ParseFloat(s24, 64)

	var trend string
	switch {
	case shown > 5:
		trend = "Strong Growth 🟢"
	case shown > 1:
		trend = "Growing 🟡"
	case shown < -2:
		trend = "Declining 🔴"
	default:
		trend = "Stable ⚪"
	}
	return Growth{
		Pct24h: s24,
		Pct7d:  strconv.FormatFloat(g7, 'f', 1, 64),
		Trend:  trend,
	}
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

package scoring

import (
	"fmt"
	"math"

	"MemeIQ/internal/domain/models"
)

// Rug risk levels.
const (
	RiskLow    = "Low"
	RiskMedium = "Medium"
	RiskHigh   = "High"
)

// RugRisk scores rug-pull likelihood from on-chain fundamentals. Higher is worse.
func RugRisk(m models.Metrics) models.RugRisk {
	score := 8.0

	switch lp := m.LPLockedPct; {
	case lp <= 0:
		score += 38
	case lp < 20:
		score += 30
	case lp < 50:
		score += 18
	case lp < 80:
		score += 8
	}

	switch t := m.Top10Pct; {
	case t >= 80:
		score += 30
	case t >= 60:
		score += 18
	case t >= 40:
		score += 8
	}

	switch h := m.Holders; {
	case h > 0 && h < 10:
		score += 28
	case h < 100:
		score += 18
	case h < 500:
		score += 8
	}

	if m.MintAuthority {
		score += 15
	}
	if m.FreezeAuthority {
		score += 10
	}

	switch m.WashRiskLabel {
	case models.LabelHigh:
		score += 12
	case models.LabelMedium:
		score += 5
	}

	switch l := m.LiquidityUSD; {
	case l > 0 && l < 1_000:
		score += 18
	case l < 10_000:
		score += 8
	}

	return RugRiskFromScore(clampRound(score, 5, 95), m)
}

// RugRiskFromScore builds the report around an externally produced score, such as a
// zero-shot rug-pull probability. m only feeds the indicator labels.
func RugRiskFromScore(score int, m models.Metrics) models.RugRisk {
	level := RiskHigh
	switch {
	case score < 30:
		level = RiskLow
	case score < 60:
		level = RiskMedium
	}

	lp, top10, holders := m.LPLockedPct, m.Top10Pct, m.Holders
	lpPct := int(math.Round(lp))

	var lpLabel string
	switch {
	case lp >= 80:
		lpLabel = fmt.Sprintf("%d%% locked ✅", lpPct)
	case lp >= 40:
		lpLabel = fmt.Sprintf("%d%% locked ⚠️", lpPct)
	case lp > 0:
		lpLabel = fmt.Sprintf("Only %d%% locked ❌", lpPct)
	default:
		lpLabel = "Unknown ⚠️"
	}

	var concLabel string
	switch {
	case top10 >= 70:
		concLabel = fmt.Sprintf("Top 10 hold %.1f%% ❌", top10)
	case top10 >= 40:
		concLabel = fmt.Sprintf("Top 10 hold %.1f%% ⚠️", top10)
	case top10 > 0:
		concLabel = fmt.Sprintf("Top 10 hold %.1f%% ✅", top10)
	default:
		concLabel = "Data unavailable"
	}

	var countLabel string
	switch {
	case holders >= 10_000:
		countLabel = Count(holders) + " holders ✅"
	case holders >= 500:
		countLabel = Count(holders) + " holders ⚠️"
	case holders > 0:
		countLabel = fmt.Sprintf("Only %d holders ❌", holders)
	default:
		countLabel = "Unknown"
	}

	washLabel := "Organic volume ✅"
	switch m.WashRiskLabel {
	case models.LabelHigh:
		washLabel = "Wash trading detected ❌"
	case models.LabelMedium:
		washLabel = "Some wash signals ⚠️"
	}

	return models.RugRisk{
		Score:     score,
		RiskLevel: level,
		Indicators: []models.RugIndicator{
			{Name: "LP Lock", Status: lpLabel, Risk: lp < 50},
			{Name: "Concentration", Status: concLabel, Risk: top10 >= 50},
			{Name: "Holder Count", Status: countLabel, Risk: holders < 500},
			{Name: "Volume Pattern", Status: washLabel, Risk: m.WashRiskLabel == models.LabelHigh},
		},
		Flags: rugFlags(level, lp, top10, holders),
	}
}

func rugFlags(level string, lp, top10 float64, holders int) []string {
	switch level {
	case RiskHigh:
		flags := make([]string, 0, 3)
		if lp < 20 {
			flags = append(flags, fmt.Sprintf("LP barely locked (%d%%)", int(math.Round(lp))))
		} else {
			flags = append(flags, "Low LP security")
		}
		if top10 >= 60 {
			flags = append(flags, fmt.Sprintf("%.0f%% held by top 10", top10))
		} else {
			flags = append(flags, "High concentration")
		}
		if holders < 100 {
			flags = append(flags, fmt.Sprintf("Only %d holders", holders))
		} else {
			flags = append(flags, "Thin community")
		}
		return flags
	case RiskMedium:
		return []string{"Monitor LP lock closely", "Use tight stop-losses"}
	default:
		return []string{"Relatively lower risk, DYOR always"}
	}
}

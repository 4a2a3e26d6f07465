package scoring

import (
	"fmt"
	"math"

	"MemeIQ/internal/domain/models"
)

// Risks builds the fixed, ordered checklist. Dev activity and sentiment rows
// appear only when those enrichments are available.
func Risks(m models.Metrics, s models.Sentiment, dev models.DevActivity) []models.Risk {
	risks := []models.Risk{
		authorityRisk("Mint Authority", m.MintAuthority),
		authorityRisk("Freeze Authority", m.FreezeAuthority),
		lpRisk(m.LPLockedPct),
	}

	if dev.Available {
		r := models.Risk{Name: "Dev Activity (7d)", Status: "No sells 🟢"}
		if dev.RecentSells > 0 {
			r.Status = fmt.Sprintf("%d sell(s) 🔴", dev.RecentSells)
			r.Risk = true
		}
		risks = append(risks, r)
	}

	if s.Available {
		emoji := "🔴"
		switch {
		case s.Score >= 65:
			emoji = "🟢"
		case s.Score >= 45:
			emoji = "🟡"
		}
		risks = append(risks, models.Risk{
			Name:   "Social Sentiment",
			Status: fmt.Sprintf("%.1f%% bullish %s", s.Bullish, emoji),
			Risk:   s.Score < 45,
		})
	}

	return append(risks, models.Risk{Name: "Data Source", Status: "Birdeye ✅"})
}

func authorityRisk(name string, active bool) models.Risk {
	if active {
		return models.Risk{Name: name, Status: "Active 🔴", Risk: true}
	}
	return models.Risk{Name: name, Status: "Revoked 🟢"}
}

// lpRisk treats an unknown (zero) lock as risky.
func lpRisk(lp float64) models.Risk {
	if lp <= 0 {
		return models.Risk{Name: "LP Lock %", Status: "Unknown ⚠️", Risk: true}
	}
	return models.Risk{
		Name:   "LP Lock %",
		Status: fmt.Sprintf("%d%% 🔒", int(math.Round(lp))),
		Risk:   lp < 50,
	}
}

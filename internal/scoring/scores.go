package scoring

import (
	"math"

	"MemeIQ/internal/domain/models"
)

// NeutralSentiment is used whenever the sentiment enrichment is unavailable.
const NeutralSentiment = 50

// Weights of the overall score.
const (
	weightLiquidity = 0.30
	weightVolume    = 0.25
	weightHolders   = 0.25
	weightSentiment = 0.20
)

// Dev-activity penalties.
const (
	penaltySuspicious = 20
	penaltyDevHolding = 10
	devHoldingCutoff  = 15.0
)

// Liquidity scores pool depth and safety in [5,95]. Zero liquidity pins the floor.
func Liquidity(m models.Metrics) int {
	if m.LiquidityUSD <= 0 {
		return 5
	}

	s := 20 + clampF(m.LPLockedPct, 0, 100)*0.45
	s += depthBonus(m.LiquidityUSD, m.MarketCap)
	if m.MintAuthority {
		s -= 15
	}
	if m.FreezeAuthority {
		s -= 10
	}
	return clampRound(s, 5, 95)
}

// depthBonus rewards liquidity relative to market cap, or absolute USD when the cap is unknown.
func depthBonus(liq, mcap float64) float64 {
	if mcap <= 0 {
		switch {
		case liq >= 1_000_000:
			return 25
		case liq >= 250_000:
			return 18
		case liq >= 50_000:
			return 10
		case liq >= 10_000:
			return 5
		default:
			return 0
		}
	}
	switch d := liq / mcap; {
	case d >= 0.5:
		return 28
	case d >= 0.2:
		return 23
	case d >= 0.1:
		return 15
	case d >= 0.05:
		return 8
	default:
		return 2
	}
}

// Volume scores trading activity in [5,95], penalizing wash-like ratios.
func Volume(m models.Metrics) int {
	if m.Volume24h <= 0 {
		return 20
	}

	s := 52.0
	if m.LiquidityUSD <= 0 {
		s -= 30
	} else {
		switch r := m.Volume24h / m.LiquidityUSD; {
		case r > 25:
			s -= 30
		case r > 10:
			s -= 15
		case r > 3:
		default:
			s += 15
		}
	}

	if m.MarketCap > 0 {
		switch vm := m.Volume24h / m.MarketCap; {
		case vm > 0.5:
			s -= 12
		case vm >= 0.02:
			s += 12
		default:
			s -= 8
		}
	}
	return clampRound(s, 5, 95)
}

// Holders scores distribution in [5,92].
func Holders(m models.Metrics) int {
	s := 100 - clampF(m.Top10Pct, 0, 100)

	switch h := m.Holders; {
	case h <= 0:
		s -= 25
	case h < 100:
		s -= 20
	case h < 500:
		s -= 12
	case h < 2000:
		s -= 6
	case h >= 50_000:
		s += 5
	}

	switch d := m.DevPct; {
	case d > 25:
		s -= 20
	case d > 15:
		s -= 12
	case d > 10:
		s -= 6
	}
	return clampRound(s, 5, 92)
}

// SentimentScore returns the enrichment score or the neutral default.
func SentimentScore(s models.Sentiment) int {
	if !s.Available {
		return NeutralSentiment
	}
	return clampRound(float64(s.Score), 0, 100)
}

// DevPenalty is subtracted from the weighted score.
func DevPenalty(dev models.DevActivity, devPct float64) int {
	if dev.Available && dev.SuspiciousActivity {
		return penaltySuspicious
	}
	if devPct > devHoldingCutoff {
		return penaltyDevHolding
	}
	return 0
}

// Overall combines the sub-scores and subtracts the penalty, clamped to [0,100].
func Overall(liq, vol, holders, sentiment, penalty int) int {
	w := float64(liq)*weightLiquidity +
		float64(vol)*weightVolume +
		float64(holders)*weightHolders +
		float64(sentiment)*weightSentiment
	return clampRound(math.Round(w)-float64(penalty), 0, 100)
}

// Recommend maps the overall score to a verdict.
func Recommend(overall int) models.Recommendation {
	switch {
	case overall >= 80:
		return models.RecommendationBuy
	case overall >= 60:
		return models.RecommendationCaution
	default:
		return models.RecommendationAvoid
	}
}

// Compute derives the full score set. It is a pure function of its inputs.
func Compute(m models.Metrics, s models.Sentiment, dev models.DevActivity) models.Scores {
	sc := models.Scores{
		Liquidity: Liquidity(m),
		Volume:    Volume(m),
		Holders:   Holders(m),
		Sentiment: SentimentScore(s),
	}
	sc.Overall = Overall(sc.Liquidity, sc.Volume, sc.Holders, sc.Sentiment, DevPenalty(dev, m.DevPct))
	return sc
}

func clampF(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

func clampRound(v, lo, hi float64) int {
	return int(clampF(math.Round(v), lo, hi))
}

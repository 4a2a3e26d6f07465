package scoring

import (
	"fmt"
	"strings"

	"MemeIQ/internal/domain/models"
)

// Summary writes the tiered natural-language verdict from concrete numbers.
func Summary(m models.Metrics, sc models.Scores, s models.Sentiment, dev models.DevActivity) string {
	clauses := []string{liquidityClause(m), holderClause(m), volumeClause(m)}

	var b strings.Builder
	switch {
	case sc.Overall >= 80:
		fmt.Fprintf(&b, "Strong setup: %s, %s, and %s.", clauses[0], clauses[1], clauses[2])
	case sc.Overall >= 60:
		fmt.Fprintf(&b, "Mixed signals: %s; %s; %s.", clauses[0], clauses[1], clauses[2])
	default:
		fmt.Fprintf(&b, "High risk: %s; %s; %s.", clauses[0], clauses[1], clauses[2])
	}

	if a := authorityClause(m); a != "" {
		b.WriteString(" ")
		b.WriteString(a)
	}
	b.WriteString(" ")
	b.WriteString(devClause(dev, m.DevPct))
	if s.Available {
		fmt.Fprintf(&b, " Social sentiment is %.1f%% bullish across %d posts.", s.Bullish, s.SampleSize)
	}

	switch {
	case sc.Overall >= 80:
	case sc.Overall >= 60:
		b.WriteString(" Proceed with caution.")
	default:
		b.WriteString(" Avoid large positions.")
	}
	return b.String()
}

func liquidityClause(m models.Metrics) string {
	if m.LiquidityUSD <= 0 {
		return "no measurable liquidity"
	}
	lock := "LP lock unknown"
	if m.LPLockedPct > 0 {
		lock = Pct(round1(m.LPLockedPct)) + " of LP locked"
	}
	return fmt.Sprintf("%s liquidity with %s", USD(m.LiquidityUSD), lock)
}

func holderClause(m models.Metrics) string {
	var c string
	switch h := m.Holders; {
	case h <= 0:
		c = "holder count unavailable"
	case h < 500:
		c = fmt.Sprintf("a thin base of %s holders", Count(h))
	case h < 10_000:
		c = fmt.Sprintf("%s holders", Count(h))
	default:
		c = fmt.Sprintf("a broad base of %s holders", Count(h))
	}
	if m.Top10Pct > 0 {
		c += fmt.Sprintf(" (top 10 hold %s)", Pct(round1(m.Top10Pct)))
	}
	return c
}

func volumeClause(m models.Metrics) string {
	if m.Volume24h <= 0 {
		return "no 24h trading volume"
	}
	switch m.WashRiskLabel {
	case models.LabelHigh:
		return fmt.Sprintf("%s 24h volume that looks wash-traded at %.1fx liquidity", USD(m.Volume24h), m.WashRatio)
	case models.LabelMedium:
		return fmt.Sprintf("%s 24h volume with some wash signals", USD(m.Volume24h))
	default:
		return fmt.Sprintf("%s of organic-looking 24h volume", USD(m.Volume24h))
	}
}

func authorityClause(m models.Metrics) string {
	switch {
	case m.MintAuthority && m.FreezeAuthority:
		return "Mint and freeze authority are both still active."
	case m.MintAuthority:
		return "Mint authority is still active."
	case m.FreezeAuthority:
		return "Freeze authority is still active."
	}
	return ""
}

func devClause(dev models.DevActivity, devPct float64) string {
	switch {
	case dev.Available && dev.RecentSells > 0:
		return fmt.Sprintf("The dev wallet sold %d time(s) in the last 7 days.", dev.RecentSells)
	case dev.Available && dev.SuspiciousActivity:
		return fmt.Sprintf("The dev wallet still holds %s of supply.", Pct(round1(devPct)))
	case dev.Available:
		return "No dev sells in the last 7 days."
	case devPct > devHoldingCutoff:
		return fmt.Sprintf("The creator holds %s of supply.", Pct(round1(devPct)))
	}
	return "Dev activity could not be checked."
}

// ForAI is a one-line digest meant for downstream prompts.
func ForAI(rec *models.TokenRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s): Overall score %d/100 (%s). ", rec.Name, rec.Symbol, rec.Scores.Overall, rec.Recommendation)
	fmt.Fprintf(&b, "Liquidity: %d/100 (%s locked). ", rec.Scores.Liquidity, Pct(round1(rec.LPLockedPct)))
	fmt.Fprintf(&b, "Volume: %d/100 (wash risk: %s). ", rec.Scores.Volume, rec.WashRiskLabel)
	fmt.Fprintf(&b, "Holders: %d/100 (%s concentration, top 10 hold %s). ", rec.Scores.Holders, rec.ConcentrationLabel, Pct(round1(rec.Top10Pct)))
	fmt.Fprintf(&b, "New buyers (24h): %d. Holder growth: %s%% (24h), %s%% (7d). ", rec.NewBuyers24h, rec.HolderGrowth24h, rec.HolderGrowth7d)
	if rec.DevActivity.SuspiciousActivity {
		b.WriteString("Dev has been selling recently.")
	} else {
		b.WriteString("No recent dev sells.")
	}
	if rec.Sentiment.Available {
		fmt.Fprintf(&b, " Social sentiment: %.1f%% bullish.", rec.Sentiment.Bullish)
	}
	fmt.Fprintf(&b, " Rug risk: %d/100 (%s).", rec.RugRisk.Score, rec.RugRisk.RiskLevel)
	return b.String()
}

package scoring

import (
	"testing"

	"MemeIQ/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRisksOrderWithEnrichments(t *testing.T) {
	s := models.Sentiment{Available: true, Bullish: 66.7, Score: 67}
	dev := models.DevActivity{Available: true, RecentSells: 2}
	risks := Risks(models.Metrics{LPLockedPct: 75.4}, s, dev)

	require.Len(t, risks, 6)
	names := []string{"Mint Authority", "Freeze Authority", "LP Lock %", "Dev Activity (7d)", "Social Sentiment", "Data Source"}
	for i, n := range names {
		assert.Equal(t, n, risks[i].Name)
	}
	assert.Equal(t, "75% 🔒", risks[2].Status)
	assert.False(t, risks[2].Risk)
	assert.Equal(t, "2 sell(s) 🔴", risks[3].Status)
	assert.Equal(t, "66.7% bullish 🟢", risks[4].Status)
	assert.False(t, risks[5].Risk)
}

func TestRisksLPUnknown(t *testing.T) {
	risks := Risks(models.Metrics{}, models.Sentiment{}, models.DevActivity{})
	require.Len(t, risks, 4)
	assert.Equal(t, "Unknown ⚠️", risks[2].Status)
	assert.True(t, risks[2].Risk)
}

func TestRugRisk(t *testing.T) {
	bad := RugRisk(models.Metrics{Holders: 5, LiquidityUSD: 500, MintAuthority: true, Top10Pct: 90})
	assert.Equal(t, 95, bad.Score)
	assert.Equal(t, RiskHigh, bad.RiskLevel)
	require.Len(t, bad.Indicators, 4)
	assert.Len(t, bad.Flags, 3)
	assert.Equal(t, "Only 5 holders", bad.Flags[2])

	good := RugRisk(models.Metrics{Holders: 50_000, LiquidityUSD: 2e6, LPLockedPct: 99, Top10Pct: 12, WashRiskLabel: models.LabelLow})
	assert.Equal(t, 8, good.Score)
	assert.Equal(t, RiskLow, good.RiskLevel)
	assert.Equal(t, "50,000 holders ✅", good.Indicators[2].Status)
}

func TestRugRiskFromScoreLevels(t *testing.T) {
	assert.Equal(t, RiskLow, RugRiskFromScore(29, models.Metrics{}).RiskLevel)
	assert.Equal(t, RiskMedium, RugRiskFromScore(30, models.Metrics{}).RiskLevel)
	assert.Equal(t, RiskHigh, RugRiskFromScore(60, models.Metrics{}).RiskLevel)
}

func TestEstimatedHoldersSumToTop10(t *testing.T) {
	est := EstimatedHolders(models.Metrics{Top10Pct: 50, ConcentrationLabel: models.ConcentrationModerate})
	sum := 0.0
	for _, h := range est.Holders {
		sum += h.Pct
	}
	assert.InDelta(t, 50, sum, 0.05)
	assert.Greater(t, est.Holders[0].Pct, est.Holders[1].Pct)
}

func TestPattern(t *testing.T) {
	up := Pattern([]models.ChartPoint{{Price: 1}, {Price: 0}, {Price: 1.2}})
	assert.Equal(t, "Bullish", up.Trend)
	assert.Equal(t, 1.0, up.Support)
	assert.Equal(t, 1.2, up.Resistance)
	assert.Equal(t, 92, up.Confidence)

	flat := Pattern([]models.ChartPoint{{Price: 1}, {Price: 1.02}})
	assert.Equal(t, "Sideways", flat.Trend)
	assert.Equal(t, 51, flat.Confidence)

	none := Pattern(nil)
	assert.Equal(t, "No Data", none.Name)
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "$1.50B", USD(1.5e9))
	assert.Equal(t, "$2.00M", USD(2e6))
	assert.Equal(t, "$12.3K", USD(12_345))
	assert.Equal(t, "$9.50", USD(9.5))
	assert.Equal(t, "--", USD(0))
	assert.Equal(t, "1,234,567", Count(1_234_567))
	assert.Equal(t, "12.35", FormatRatio(12.345))
	assert.Equal(t, "0.00", FormatRatio(0))
}

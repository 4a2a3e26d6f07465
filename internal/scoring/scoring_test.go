package scoring

import (
	"encoding/json"
	"testing"

	"MemeIQ/internal/domain/models"
	"MemeIQ/internal/normalize"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unavailable() (models.Sentiment, models.DevActivity) {
	msg := "HUGGINGFACE_API_KEY not configured"
	dev := "HELIUS_API_KEY not configured"
	return models.Sentiment{Score: NeutralSentiment, Error: &msg}, models.DevActivity{Error: &dev}
}

func withLabels(m models.Metrics) models.Metrics {
	if m.LiquidityUSD > 0 {
		m.WashRatio = m.Volume24h / m.LiquidityUSD
		m.MCapLiqRatio = m.MarketCap / m.LiquidityUSD
	}
	m.WashRiskLabel = normalize.WashLabel(m.Volume24h, m.LiquidityUSD)
	m.ConcentrationLabel = normalize.ConcentrationLabel(m.Top10Pct)
	return m
}

func TestZeroLiquidityPinsFloor(t *testing.T) {
	for _, m := range []models.Metrics{
		{},
		{LPLockedPct: 100, MarketCap: 1e9, Volume24h: 1e6},
		{LiquidityUSD: -5, LPLockedPct: 90},
	} {
		assert.Equal(t, 5, Liquidity(m))
	}
}

func TestHardRugScenario(t *testing.T) {
	m := withLabels(models.Metrics{
		MintAuthority:   true,
		FreezeAuthority: true,
		LPLockedPct:     0,
		Volume24h:       0,
		LiquidityUSD:    5_000,
		MarketCap:       100_000,
		Top10Pct:        90,
		Holders:         50,
		DevPct:          30,
	})
	s, dev := unavailable()

	sc := Compute(m, s, dev)
	assert.Equal(t, 5, sc.Liquidity)
	assert.Equal(t, 20, sc.Volume)
	assert.Equal(t, 5, sc.Holders)
	assert.Equal(t, 50, sc.Sentiment)
	assert.Equal(t, 8, sc.Overall)
	assert.Equal(t, models.RecommendationAvoid, Recommend(sc.Overall))

	risky := 0
	for _, r := range Risks(m, s, dev) {
		if r.Risk {
			risky++
		}
	}
	assert.GreaterOrEqual(t, risky, 3)
}

func TestHealthyScenario(t *testing.T) {
	m := withLabels(models.Metrics{
		LPLockedPct:  95,
		LiquidityUSD: 2_000_000,
		MarketCap:    3_000_000,
		Volume24h:    300_000,
		Holders:      500_000,
		Top10Pct:     8,
	})
	s, dev := unavailable()

	sc := Compute(m, s, dev)
	assert.GreaterOrEqual(t, sc.Liquidity, 85)
	assert.GreaterOrEqual(t, sc.Holders, 80)
	assert.GreaterOrEqual(t, sc.Overall, 75)
	assert.Equal(t, 91, sc.Liquidity)
	assert.Equal(t, 79, sc.Volume)
	assert.Equal(t, 92, sc.Holders)
	assert.Equal(t, 80, sc.Overall)
	assert.Equal(t, models.RecommendationBuy, Recommend(sc.Overall))
}

func TestScoresStayInBounds(t *testing.T) {
	liqs := []float64{0, 500, 20_000, 3e6}
	mcaps := []float64{0, 10_000, 1e7}
	vols := []float64{0, 100, 1e6, 1e9}
	tops := []float64{0, 50, 100, 140}
	holders := []int{0, 50, 1500, 80_000}
	devs := []float64{0, 12, 40}

	for _, l := range liqs {
		for _, mc := range mcaps {
			for _, v := range vols {
				for _, tp := range tops {
					for _, h := range holders {
						for _, d := range devs {
							m := withLabels(models.Metrics{
								LiquidityUSD: l, MarketCap: mc, Volume24h: v,
								Top10Pct: tp, Holders: h, DevPct: d, LPLockedPct: tp,
								MintAuthority: h == 0, FreezeAuthority: d > 20,
							})
							dev := models.DevActivity{Available: true, SuspiciousActivity: d > 10}
							sc := Compute(m, models.Sentiment{Available: true, Score: int(tp)}, dev)

							assert.True(t, sc.Liquidity >= 5 && sc.Liquidity <= 95)
							assert.True(t, sc.Volume >= 5 && sc.Volume <= 95)
							assert.True(t, sc.Holders >= 5 && sc.Holders <= 92)
							assert.True(t, sc.Sentiment >= 0 && sc.Sentiment <= 100)
							require.True(t, sc.Overall >= 0 && sc.Overall <= 100)
						}
					}
				}
			}
		}
	}
}

func TestRecommendThresholds(t *testing.T) {
	assert.Equal(t, models.RecommendationBuy, Recommend(80))
	assert.Equal(t, models.RecommendationCaution, Recommend(79))
	assert.Equal(t, models.RecommendationCaution, Recommend(60))
	assert.Equal(t, models.RecommendationAvoid, Recommend(59))
	assert.Equal(t, models.RecommendationAvoid, Recommend(0))
}

func TestDevPenalty(t *testing.T) {
	assert.Equal(t, 20, DevPenalty(models.DevActivity{Available: true, SuspiciousActivity: true}, 0))
	assert.Equal(t, 10, DevPenalty(models.DevActivity{}, 16))
	assert.Equal(t, 0, DevPenalty(models.DevActivity{}, 15))
	assert.Equal(t, 0, DevPenalty(models.DevActivity{Available: true}, 5))
}

func TestSentimentDefaultsToNeutral(t *testing.T) {
	assert.Equal(t, 50, SentimentScore(models.Sentiment{Available: false, Score: 90}))
	assert.Equal(t, 90, SentimentScore(models.Sentiment{Available: true, Score: 90}))
}

func TestRecordIsDeterministic(t *testing.T) {
	in := Input{
		Address: "So11111111111111111111111111111111111111112",
		Metrics: withLabels(models.Metrics{
			Name: "Wrapped SOL", Symbol: "SOL", Price: 150, LiquidityUSD: 1e6, MarketCap: 5e6,
			Volume24h: 2e5, Holders: 1200, Top10Pct: 40, LPLockedPct: 70, CreatorAddress: "Creator",
		}),
		Candles: []models.Candle{{Close: 140}, {Close: 150}},
	}
	in.Sentiment, in.DevActivity = unavailable()

	a, err := json.Marshal(Record(in))
	require.NoError(t, err)
	b, err := json.Marshal(Record(in))
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestRecordShape(t *testing.T) {
	in := Input{
		Address: "Mint",
		Metrics: withLabels(models.Metrics{Name: "Pepe", Symbol: "PEPE", Price: 2, LiquidityUSD: 0, Top10Pct: 85}),
	}
	in.Sentiment, in.DevActivity = unavailable()
	rec := Record(in)

	assert.Len(t, rec.Chart.Points, 7)
	assert.Equal(t, "0.00", rec.MCapLiqRatio)
	assert.Nil(t, rec.CreatorAddress)
	assert.Nil(t, rec.BuySellRatio)
	assert.InDelta(t, 1.9, rec.EntryPrice, 1e-9)
	assert.InDelta(t, 2.3, rec.ExitPrice, 1e-9)
	require.NotNil(t, rec.EstimatedHolders)
	assert.False(t, rec.EstimatedHolders.Authoritative)
	assert.Len(t, rec.EstimatedHolders.Holders, 10)
	assert.Equal(t, "Data Source", rec.Risks[len(rec.Risks)-1].Name)
	assert.Contains(t, rec.Summary, "High risk:")
	assert.Contains(t, rec.SummaryForAI, "Pepe (PEPE)")

	raw, err := json.Marshal(rec)
	require.NoError(t, err)
	var generic map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &generic))
	for _, key := range []string{"scores", "chart", "risks", "sentiment", "devActivity", "topHolders", "rugRisk", "pattern", "buySellRatio"} {
		assert.Contains(t, generic, key)
	}
}

func TestRecordRealHoldersSkipEstimate(t *testing.T) {
	in := Input{
		Metrics:    withLabels(models.Metrics{LiquidityUSD: 100}),
		TopHolders: []models.Holder{{Rank: 1, Address: "A", Pct: 10}},
	}
	assert.Nil(t, Record(in).EstimatedHolders)
}

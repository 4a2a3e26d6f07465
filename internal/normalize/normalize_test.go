package normalize

import (
	"encoding/json"
	"testing"
	"time"

	"MemeIQ/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func payload(t *testing.T, raw string) models.Payload {
	t.Helper()
	var p models.Payload
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	return p
}

func TestFromBundlePrefersOverviewAndFillsGaps(t *testing.T) {
	b := models.Bundle{
		models.ResourceOverview: payload(t, `{"data":{"name":"Bonk","symbol":"BONK","price":0.00002,"mc":0,"liquidity":"250000"}}`),
		models.ResourceMarket:   payload(t, `{"data":{"name":"Other","marketCap":1000000,"volume24h":500000,"volumeChange7d":12}}`),
		models.ResourceSecurity: payload(t, `{"data":{"mintAuthority":"So1aMintAuth","freezeAuthority":null,"lpLockPercent":80,"creatorAddress":"Creator111"}}`),
		models.ResourceDist:     payload(t, `{"data":{"top10":0,"top10Percent":35.5}}`),
		models.ResourceHolders:  payload(t, `{"data":{"totalHolders":1200.4}}`),
	}

	m := FromBundle(b)
	assert.Equal(t, "Bonk", m.Name)
	assert.Equal(t, "BONK", m.Symbol)
	assert.Equal(t, 0.00002, m.Price)
	assert.Equal(t, 1000000.0, m.MarketCap, "zero overview mc falls through to market")
	assert.Equal(t, 250000.0, m.LiquidityUSD, "numeric strings are coerced")
	assert.Equal(t, 500000.0, m.Volume24h)
	assert.Equal(t, 12.0, m.VolumeChange7d)
	assert.Equal(t, 35.5, m.Top10Pct)
	assert.Equal(t, 1200, m.Holders)
	assert.Equal(t, 80.0, m.LPLockedPct)
	assert.True(t, m.MintAuthority, "authority address counts as active")
	assert.False(t, m.FreezeAuthority)
	assert.Equal(t, "Creator111", m.CreatorAddress)
	assert.Equal(t, 4.0, m.MCapLiqRatio)
	assert.Equal(t, 2.0, m.WashRatio)
	assert.Equal(t, models.LabelLow, m.WashRiskLabel)
	assert.Equal(t, models.ConcentrationHealthy, m.ConcentrationLabel)
}

func TestFromBundleMissingEverything(t *testing.T) {
	m := FromBundle(models.Bundle{models.ResourceOverview: payload(t, `{"data":{}}`)})

	assert.Equal(t, "Unknown", m.Name)
	assert.Equal(t, "—", m.Symbol)
	assert.Zero(t, m.Price)
	assert.Zero(t, m.Top10Pct)
	assert.Zero(t, m.Holders)
	assert.Zero(t, m.MCapLiqRatio)
	assert.Equal(t, "", m.CreatorAddress)
	assert.Equal(t, models.LabelLow, m.WashRiskLabel)
}

func TestFromBundleRejectsNonFinite(t *testing.T) {
	b := models.Bundle{
		models.ResourceOverview: payload(t, `{"data":{"price":"NaN","liquidity":"Infinity","mc":"abc"}}`),
		models.ResourceMarket:   payload(t, `{"data":{"price":"1.5"}}`),
	}
	m := FromBundle(b)
	assert.Equal(t, 1.5, m.Price)
	assert.Zero(t, m.LiquidityUSD)
	assert.Zero(t, m.MarketCap)
}

func TestWashLabel(t *testing.T) {
	assert.Equal(t, models.LabelHigh, WashLabel(260, 10))
	assert.Equal(t, models.LabelMedium, WashLabel(110, 10))
	assert.Equal(t, models.LabelLow, WashLabel(100, 10))
	assert.Equal(t, models.LabelLow, WashLabel(100, 0))
}

func TestConcentrationLabel(t *testing.T) {
	assert.Equal(t, models.ConcentrationExtreme, ConcentrationLabel(80))
	assert.Equal(t, models.ConcentrationModerate, ConcentrationLabel(45))
	assert.Equal(t, models.ConcentrationHealthy, ConcentrationLabel(44.9))
}

func TestChartPointsAlwaysSeven(t *testing.T) {
	cases := map[string]string{
		"none":   `{"data":null}`,
		"items":  `{"data":{"items":[{"c":1},{"c":2},{"c":3},{"c":4},{"c":5},{"c":6},{"c":7},{"c":8},{"c":9}]}}`,
		"nested": `{"data":{"data":[{"close":1,"volume":10}]}}`,
		"flat":   `{"data":[{"price":2,"v":5},{"price":3,"volumeUSD":6}]}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			pts := ChartPoints(Candles(payload(t, raw)), 1.25, 700)
			require.Len(t, pts, ChartLen)
			assert.Equal(t, "Day 1", pts[0].Label)
			assert.Equal(t, "Day 7", pts[6].Label)
		})
	}
}

func TestChartPointsKeepsLastSeven(t *testing.T) {
	raw := `{"data":{"items":[{"c":1},{"c":2},{"c":3},{"c":4},{"c":5},{"c":6},{"c":7},{"c":8},{"c":9}]}}`
	pts := ChartPoints(Candles(payload(t, raw)), 0, 700)
	assert.Equal(t, 3.0, pts[0].Price)
	assert.Equal(t, 9.0, pts[6].Price)
	assert.Equal(t, 100.0, pts[6].Volume, "missing volume uses a seventh of 24h volume")
}

func TestChartPointsFlatFallback(t *testing.T) {
	pts := ChartPoints(nil, 0.5, 0)
	for _, p := range pts {
		assert.Equal(t, 0.5, p.Price)
		assert.Zero(t, p.Volume)
	}
}

func TestChartPointsPadsShortSeries(t *testing.T) {
	pts := ChartPoints([]models.Candle{{Close: 2, Volume: 3}}, 1, 70)
	require.Len(t, pts, ChartLen)
	assert.Equal(t, 1.0, pts[0].Price)
	assert.Equal(t, 10.0, pts[0].Volume)
	assert.Equal(t, 2.0, pts[6].Price)
}

func TestTopHolders(t *testing.T) {
	holders := payload(t, `{"data":{"items":[
		{"owner":"A1","ui_amount":500,"percentage":5},
		{"address":"B2","uiAmount":250},
		{"ui_amount":1},
		{"wallet":"C3","amount":100}
	]}}`)
	overview := payload(t, `{"data":{"supply":10000}}`)

	got := TopHolders(holders, overview)
	require.Len(t, got, 3)
	assert.Equal(t, models.Holder{Rank: 1, Address: "A1", Pct: 5, UIAmount: 500}, got[0])
	assert.Equal(t, 2.5, got[1].Pct, "pct derived from supply")
	assert.Equal(t, 3, got[2].Rank)
}

func TestTopHoldersEmpty(t *testing.T) {
	assert.Empty(t, TopHolders(nil, nil))
}

func TestNewBuyersAndGrowth(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	recent := now.Add(-2 * time.Hour).Unix()
	old := now.Add(-48 * time.Hour).Unix()
	holders := models.Payload{"data": map[string]interface{}{"items": []interface{}{
		map[string]interface{}{"firstTransactionTime": float64(recent)},
		map[string]interface{}{"firstTxTime": float64(recent)},
		map[string]interface{}{"firstTransactionTime": float64(old)},
		map[string]interface{}{},
	}}}

	n := NewBuyers(holders, now)
	assert.Equal(t, 2, n)

	g := HolderGrowth(n, 20, 10)
	assert.Equal(t, "10.0", g.Pct24h)
	assert.Equal(t, "3.0", g.Pct7d)
	assert.Equal(t, "Strong Growth 🟢", g.Trend)

	g = HolderGrowth(0, 0, -4)
	assert.Equal(t, "0.0", g.Pct24h)
	assert.Equal(t, "0.0", g.Pct7d)
	assert.Equal(t, "Stable ⚪", g.Trend)
}

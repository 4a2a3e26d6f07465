package models

// Metrics is the flat, coerced view of one token's fundamentals.
// Every numeric field is finite; absent values are 0.
type Metrics struct {
	Name     string
	Symbol   string
	Logo     string
	Verified bool

	Price          float64
	PriceChange24h float64
	MarketCap      float64
	FDV            float64
	Volume24h      float64
	VolumeChange7d float64
	LiquidityUSD   float64

	Holders     int
	Top10Pct    float64
	LPLockedPct float64
	DevPct      float64

	MintAuthority   bool
	FreezeAuthority bool
	CreatorAddress  string

	MCapLiqRatio       float64
	WashRatio          float64
	WashRiskLabel      string
	ConcentrationLabel string
}

// Wash risk and concentration labels.
const (
	LabelHigh   = "High"
	LabelMedium = "Medium"
	LabelLow    = "Low"

	ConcentrationExtreme  = "Extreme"
	ConcentrationModerate = "Moderate"
	ConcentrationHealthy  = "Healthy"
)

// Candle is one OHLCV bar as far as the chart needs it.
type Candle struct {
	Close  float64
	Volume float64
}

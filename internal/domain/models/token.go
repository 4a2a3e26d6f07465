package models

// Recommendation is the discrete verdict derived from the overall score.
type Recommendation string

const (
	RecommendationBuy     Recommendation = "BUY"
	RecommendationCaution Recommendation = "CAUTION"
	RecommendationAvoid   Recommendation = "AVOID"
)

type Scores struct {
	Liquidity int `json:"liquidity"`
	Volume    int `json:"volume"`
	Holders   int `json:"holders"`
	Sentiment int `json:"sentiment"`
	Overall   int `json:"overall"`
}

type ChartPoint struct {
	Label  string  `json:"label"`
	Price  float64 `json:"price"`
	Volume float64 `json:"volume"`
}

type Chart struct {
	Points []ChartPoint `json:"points"`
}

type Risk struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Risk   bool   `json:"risk"`
}

// Sentiment is the social-sentiment enrichment. Error is set whenever Available is false.
type Sentiment struct {
	Available  bool    `json:"available"`
	Bullish    float64 `json:"bullish"`
	Bearish    float64 `json:"bearish"`
	Neutral    float64 `json:"neutral"`
	Score      int     `json:"score"`
	SampleSize int     `json:"sampleSize"`
	Error      *string `json:"error"`
}

// DevActivity summarizes creator-wallet transfers of the analyzed mint over the lookback window.
type DevActivity struct {
	Available          bool    `json:"available"`
	RecentSells        int     `json:"recentSells"`
	LastSellDate       *int64  `json:"lastSellDate"` // unix ms
	TotalSellVolume    float64 `json:"totalSellVolume"`
	SuspiciousActivity bool    `json:"suspiciousActivity"`
	Error              *string `json:"error"`
}

type Holder struct {
	Rank     int     `json:"rank"`
	Address  string  `json:"address"`
	Pct      float64 `json:"pct"`
	UIAmount float64 `json:"uiAmount"`
}

type EstimatedHolder struct {
	Rank int     `json:"rank"`
	Pct  float64 `json:"pct"`
}

// EstimatedHolders is a synthetic top-10 split. It is never real on-chain data.
type EstimatedHolders struct {
	Authoritative bool              `json:"authoritative"`
	Basis         string            `json:"basis"`
	Holders       []EstimatedHolder `json:"holders"`
}

type RugIndicator struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Risk   bool   `json:"risk"`
}

type RugRisk struct {
	Score      int            `json:"score"`
	RiskLevel  string         `json:"riskLevel"`
	Indicators []RugIndicator `json:"indicators"`
	Flags      []string       `json:"flags"`
}

type Pattern struct {
	Name        string  `json:"name"`
	Trend       string  `json:"trend"`
	Confidence  int     `json:"confidence"`
	Support     float64 `json:"support"`
	Resistance  float64 `json:"resistance"`
	ChangePct   float64 `json:"changePct"`
	Description string  `json:"description"`
	Prediction  string  `json:"prediction"`
}

// TokenRecord is the analysis result. Field names are consumed directly by the dashboard.
type TokenRecord struct {
	Address  string `json:"address"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Logo     string `json:"logo"`
	Verified bool   `json:"verified"`

	Price          float64 `json:"price"`
	PriceChange24h float64 `json:"priceChange24h"`
	MarketCap      float64 `json:"marketCap"`
	FDV            float64 `json:"fdv"`

	LiquidityUSD float64 `json:"liquidityUSD"`
	LPLockedPct  float64 `json:"lpLockedPct"`
	MCapLiqRatio string  `json:"mcapLiqRatio"`

	Volume24hUSD  float64  `json:"volume24hUSD"`
	BuySellRatio  *float64 `json:"buySellRatio"`
	WashRiskLabel string   `json:"washRiskLabel"`

	Holders            int     `json:"holders"`
	NewBuyers24h       int     `json:"newBuyers24h"`
	HolderGrowth24h    string  `json:"holderGrowth24h"`
	HolderGrowth7d     string  `json:"holderGrowth7d"`
	HolderGrowthTrend  string  `json:"holderGrowthTrend"`
	Top10Pct           float64 `json:"top10Pct"`
	ConcentrationLabel string  `json:"concentrationLabel"`

	DevHoldPct      float64 `json:"devHoldPct"`
	MintAuthority   bool    `json:"mintAuthority"`
	FreezeAuthority bool    `json:"freezeAuthority"`
	CreatorAddress  *string `json:"creatorAddress"`

	Scores Scores `json:"scores"`
	Chart  Chart  `json:"chart"`

	Recommendation Recommendation `json:"recommendation"`
	EntryPrice     float64        `json:"entryPrice"`
	ExitPrice      float64        `json:"exitPrice"`
	Summary        string         `json:"summary"`
	Risks          []Risk         `json:"risks"`

	Sentiment   Sentiment   `json:"sentiment"`
	DevActivity DevActivity `json:"devActivity"`

	TopHolders       []Holder          `json:"topHolders"`
	EstimatedHolders *EstimatedHolders `json:"estimatedHolders,omitempty"`
	RugRisk          RugRisk           `json:"rugRisk"`
	Pattern          Pattern           `json:"pattern"`

	SummaryForAI string `json:"summaryForAI"`
}

package scoring

import (
	"MemeIQ/internal/domain/models"
	"MemeIQ/internal/normalize"
)

// Input is everything the record needs, already normalized.
type Input struct {
	Address     string
	Metrics     models.Metrics
	Candles     []models.Candle
	TopHolders  []models.Holder
	NewBuyers   int
	Sentiment   models.Sentiment
	DevActivity models.DevActivity
}

// Record assembles the TokenRecord. Identical inputs give identical records.
func Record(in Input) *models.TokenRecord {
	m := in.Metrics
	scores := Compute(m, in.Sentiment, in.DevActivity)
	growth := normalize.HolderGrowth(in.NewBuyers, m.Holders, m.VolumeChange7d)
	points := normalize.ChartPoints(in.Candles, m.Price, m.Volume24h)
	entry, exit := Targets(m.Price)

	rec := &models.TokenRecord{
		Address:  in.Address,
		Name:     m.Name,
		Symbol:   m.Symbol,
		Logo:     m.Logo,
		Verified: m.Verified,

		Price:          m.Price,
		PriceChange24h: m.PriceChange24h,
		MarketCap:      m.MarketCap,
		FDV:            m.FDV,

		LiquidityUSD: m.LiquidityUSD,
		LPLockedPct:  m.LPLockedPct,
		MCapLiqRatio: FormatRatio(m.MCapLiqRatio),

		Volume24hUSD:  m.Volume24h,
		WashRiskLabel: m.WashRiskLabel,

		Holders:            m.Holders,
		NewBuyers24h:       in.NewBuyers,
		HolderGrowth24h:    growth.Pct24h,
		HolderGrowth7d:     growth.Pct7d,
		HolderGrowthTrend:  growth.Trend,
		Top10Pct:           m.Top10Pct,
		ConcentrationLabel: m.ConcentrationLabel,

		DevHoldPct:      m.DevPct,
		MintAuthority:   m.MintAuthority,
		FreezeAuthority: m.FreezeAuthority,

		Scores: scores,
		Chart:  models.Chart{Points: points},

		Recommendation: Recommend(scores.Overall),
		EntryPrice:     entry,
		ExitPrice:      exit,
		Summary:        Summary(m, scores, in.Sentiment, in.DevActivity),
		Risks:          Risks(m, in.Sentiment, in.DevActivity),

		Sentiment:   in.Sentiment,
		DevActivity: in.DevActivity,

		TopHolders: in.TopHolders,
		RugRisk:    RugRisk(m),
		Pattern:    Pattern(points),
	}

	if m.CreatorAddress != "" {
		creator := m.CreatorAddress
		rec.CreatorAddress = &creator
	}
	if rec.TopHolders == nil {
		rec.TopHolders = []models.Holder{}
	}
	if len(rec.TopHolders) == 0 {
		rec.EstimatedHolders = EstimatedHolders(m)
	}
	rec.SummaryForAI = ForAI(rec)
	return rec
}

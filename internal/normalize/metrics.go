package normalize

import (
	"math"

	"MemeIQ/internal/domain/models"
)

// Wash-trading ratio thresholds (24h volume over liquidity).
const (
	washHigh   = 25.0
	washMedium = 10.0
)

// Concentration thresholds on the top-10 share.
const (
	concentrationExtreme  = 80.0
	concentrationModerate = 45.0
)

// FromBundle extracts Metrics using the default alias table.
func FromBundle(b models.Bundle) models.Metrics {
	return FromFields(Resolve(b, DefaultAliases))
}

// FromFields builds Metrics and its derived ratios and labels.
func FromFields(f Fields) models.Metrics {
	m := models.Metrics{
		Name:     f.Text(FieldName),
		Symbol:   f.Text(FieldSymbol),
		Logo:     f.Text(FieldLogo),
		Verified: f.Flag(FieldVerified),

		Price:          f.Number(FieldPrice),
		PriceChange24h: f.Number(FieldPriceChange24h),
		MarketCap:      f.Number(FieldMarketCap),
		FDV:            f.Number(FieldFDV),
		Volume24h:      f.Number(FieldVolume24h),
		VolumeChange7d: f.Number(FieldVolumeChange7d),
		LiquidityUSD:   f.Number(FieldLiquidity),

		Holders:     int(math.Max(0, math.Round(f.Number(FieldHolders)))),
		Top10Pct:    f.Number(FieldTop10Pct),
		LPLockedPct: f.Number(FieldLPLockedPct),
		DevPct:      f.Number(FieldDevPct),

		MintAuthority:   f.Flag(FieldMintAuthority),
		FreezeAuthority: f.Flag(FieldFreezeAuthority),
		CreatorAddress:  f.Text(FieldCreator),
	}

	if m.LiquidityUSD > 0 {
		m.MCapLiqRatio = Finite(m.MarketCap / m.LiquidityUSD)
		m.WashRatio = Finite(m.Volume24h / m.LiquidityUSD)
	}
	m.WashRiskLabel = WashLabel(m.Volume24h, m.LiquidityUSD)
	m.ConcentrationLabel = ConcentrationLabel(m.Top10Pct)

	return m
}

// WashLabel classifies volume against liquidity depth.
func WashLabel(volume, liquidity float64) string {
	if volume <= 0 || liquidity <= 0 {
		return models.LabelLow
	}
	switch r := volume / liquidity; {
	case r > washHigh:
		return models.LabelHigh
	case r > washMedium:
		return models.LabelMedium
	default:
		return models.LabelLow
	}
}

// ConcentrationLabel classifies the top-10 holder share.
func ConcentrationLabel(top10 float64) string {
	switch {
	case top10 >= concentrationExtreme:
		return models.ConcentrationExtreme
	case top10 >= concentrationModerate:
		return models.ConcentrationModerate
	default:
		return models.ConcentrationHealthy
	}
}

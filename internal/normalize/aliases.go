package normalize

import (
	"strings"

	"MemeIQ/internal/domain/models"
)

// Kind selects how an alias value is coerced.
type Kind int

const (
	// KindNumber takes the first finite non-zero value.
	KindNumber Kind = iota
	// KindText takes the first non-empty string.
	KindText
	// KindFlag takes the first non-null value and reports its truthiness.
	KindFlag
)

// Alias maps one logical field to its ordered candidate locations.
// Each path is "<resource>:<dot.path>".
type Alias struct {
	Field   string
	Kind    Kind
	Paths   []string
	Default interface{}
}

const (
	FieldName            = "name"
	FieldSymbol          = "symbol"
	FieldLogo            = "logo"
	FieldVerified        = "verified"
	FieldPrice           = "price"
	FieldMarketCap       = "marketCap"
	FieldFDV             = "fdv"
	FieldVolume24h       = "volume24h"
	FieldPriceChange24h  = "priceChange24h"
	FieldVolumeChange7d  = "volumeChange7d"
	FieldLiquidity       = "liquidity"
	FieldHolders         = "holders"
	FieldTop10Pct        = "top10Pct"
	FieldDevPct          = "devPct"
	FieldLPLockedPct     = "lpLockedPct"
	FieldMintAuthority   = "mintAuthority"
	FieldFreezeAuthority = "freezeAuthority"
	FieldCreator         = "creatorAddress"
)

// DefaultAliases is the field table for the market-data provider. Order matters:
// the overview is authoritative and the other resources fill gaps.
var DefaultAliases = []Alias{
	{FieldName, KindText, []string{"overview:data.name", "market:data.name"}, "Unknown"},
	{FieldSymbol, KindText, []string{"overview:data.symbol", "market:data.symbol"}, "—"},
	{FieldLogo, KindText, []string{"overview:data.logoURI", "overview:data.logo", "market:data.logoURI"}, ""},
	{FieldVerified, KindFlag, []string{"overview:data.isVerified", "overview:data.verified"}, false},
	{FieldPrice, KindNumber, []string{"overview:data.price", "market:data.price"}, 0.0},
	{FieldMarketCap, KindNumber, []string{"overview:data.mc", "overview:data.marketCap", "market:data.marketCap", "market:data.market_cap"}, 0.0},
	{FieldFDV, KindNumber, []string{"overview:data.fdv", "market:data.fdv"}, 0.0},
	{FieldVolume24h, KindNumber, []string{"overview:data.v24hUSD", "overview:data.v24h", "market:data.volume24h", "market:data.v24hUSD"}, 0.0},
	{FieldPriceChange24h, KindNumber, []string{"overview:data.priceChange24hPercent", "overview:data.priceChange24h", "market:data.priceChange24h"}, 0.0},
	{FieldVolumeChange7d, KindNumber, []string{"market:data.volumeChange7d"}, 0.0},
	{FieldLiquidity, KindNumber, []string{"overview:data.liquidity", "liquidity:data.totalLiquidity", "liquidity:data.liquidity", "market:data.liquidity"}, 0.0},
	{FieldHolders, KindNumber, []string{"holders:data.totalHolders", "holders:data.holders", "overview:data.holder", "overview:data.holders"}, 0.0},
	{FieldTop10Pct, KindNumber, []string{"distribution:data.top10", "distribution:data.top10Percent", "holders:data.top10Percent"}, 0.0},
	{FieldDevPct, KindNumber, []string{"security:data.creatorHoldPercent", "security:data.devHoldPercent"}, 0.0},
	{FieldLPLockedPct, KindNumber, []string{"security:data.lpLockPercent", "security:data.liquidityLockPercent"}, 0.0},
	{FieldMintAuthority, KindFlag, []string{"security:data.mintAuthority"}, false},
	{FieldFreezeAuthority, KindFlag, []string{"security:data.freezeAuthority"}, false},
	{FieldCreator, KindText, []string{"security:data.creatorAddress", "security:data.deployer"}, ""},
}

// Fields is the resolved value per logical field.
type Fields map[string]interface{}

// Resolve runs every alias in table against the bundle.
func Resolve(b models.Bundle, table []Alias) Fields {
	out := make(Fields, len(table))
	for _, a := range table {
		out[a.Field] = resolveOne(b, a)
	}
	return out
}

func resolveOne(b models.Bundle, a Alias) interface{} {
	for _, ref := range a.Paths {
		res, path, ok := strings.Cut(ref, ":")
		if !ok {
			continue
		}
		raw, found := Lookup(b.Get(models.Resource(res)), path)
		if !found {
			continue
		}
		switch a.Kind {
		case KindNumber:
			if f, ok := Number(raw); ok && f != 0 {
				return f
			}
		case KindText:
			if s, ok := Text(raw); ok {
				return s
			}
		case KindFlag:
			if v, ok := Flag(raw); ok {
				return v
			}
		}
	}
	return a.Default
}

// Number returns a numeric field, 0 when absent.
func (f Fields) Number(name string) float64 {
	v, _ := f[name].(float64)
	return Finite(v)
}

// Text returns a text field, "" when absent.
func (f Fields) Text(name string) string {
	v, _ := f[name].(string)
	return v
}

// Flag returns a flag field, false when absent.
func (f Fields) Flag(name string) bool {
	v, _ := f[name].(bool)
	return v
}

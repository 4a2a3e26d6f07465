package models

// Resource names one market-data sub-endpoint.
type Resource string

const (
	ResourceOverview  Resource = "overview"
	ResourceMarket    Resource = "market"
	ResourceLiquidity Resource = "liquidity"
	ResourceHolders   Resource = "holders"
	ResourceDist      Resource = "distribution"
	ResourceSecurity  Resource = "security"
	ResourceOHLCV     Resource = "ohlcv"
)

// Resources lists every sub-resource in fan-out order.
var Resources = []Resource{
	ResourceOverview,
	ResourceMarket,
	ResourceLiquidity,
	ResourceHolders,
	ResourceDist,
	ResourceSecurity,
	ResourceOHLCV,
}

// Payload is a decoded JSON body with no assumed shape.
type Payload = map[string]interface{}

// Bundle holds one maybe-payload per sub-resource. A nil entry means the call
// failed, returned a non-2xx status, was not JSON or did not parse.
type Bundle map[Resource]Payload

// Get returns the payload for r, or nil.
func (b Bundle) Get(r Resource) Payload {
	if b == nil {
		return nil
	}
	return b[r]
}

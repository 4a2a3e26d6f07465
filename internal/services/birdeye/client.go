package birdeye

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"MemeIQ/internal/domain/models"
	"MemeIQ/internal/domain/repository"
	"MemeIQ/internal/services"
	xhttp "MemeIQ/pkg/http"
	applogger "MemeIQ/pkg/logger"
)

const Provider = "birdeye"

var paths = map[models.Resource]string{
	models.ResourceOverview:  "/defi/token_overview",
	models.ResourceMarket:    "/defi/v3/token/market-data",
	models.ResourceLiquidity: "/defi/v3/token/exit-liquidity",
	models.ResourceHolders:   "/defi/v3/token/holder",
	models.ResourceDist:      "/defi/v2/token/holder-distribution",
	models.ResourceSecurity:  "/defi/v1/token/security",
	models.ResourceOHLCV:     "/defi/v3/ohlcv",
}

var errNoData = errors.New("overview without data")

type Config struct {
	APIKey           string
	BaseURL          string
	Chain            string
	Timeout          time.Duration
	OverviewAttempts int
	RetryInterval    time.Duration
	OHLCVWindow      time.Duration
}

// Client fetches every market-data sub-resource for a token in parallel.
type Client struct {
	*services.HTTPServiceBase
	cfg Config
	now func() time.Time
}

var _ repository.MarketData = (*Client)(nil)

func New(cfg Config, opts ...services.BaseOption) *Client {
	if cfg.Chain == "" {
		cfg.Chain = "solana"
	}
	if cfg.OverviewAttempts < 1 {
		cfg.OverviewAttempts = 1
	}
	if cfg.OHLCVWindow <= 0 {
		cfg.OHLCVWindow = 7 * 24 * time.Hour
	}
	return &Client{
		HTTPServiceBase: services.NewHTTPServiceBase(Provider, cfg.BaseURL, cfg.Timeout, opts...),
		cfg:             cfg,
		now:             time.Now,
	}
}

// WithClock fixes "now" for the OHLCV window.
func (c *Client) WithClock(now func() time.Time) *Client {
	c.now = now
	return c
}

func (c *Client) Configured() bool { return c.cfg.APIKey != "" }

// FetchAll issues all sub-resource calls concurrently and joins them. Each entry
// is independent: a failed call leaves its slot nil and never affects the others.
func (c *Client) FetchAll(ctx context.Context, address string) models.Bundle {
	type item struct {
		name models.Resource
		val  models.Payload
		err  error
	}

	ch := make(chan item, len(models.Resources))
	var wg sync.WaitGroup

	for _, r := range models.Resources {
		wg.Add(1)
		go func(r models.Resource) {
			defer wg.Done()
			var (
				v   models.Payload
				err error
			)
			if r == models.ResourceOverview {
				v, err = c.overview(ctx, address)
			} else {
				v, err = c.fetch(ctx, r, address)
			}
			ch <- item{r, v, err}
		}(r)
	}

	go func() { wg.Wait(); close(ch) }()

	bundle := make(models.Bundle, len(models.Resources))
	for it := range ch {
		if it.err != nil && !errors.Is(it.err, errNoData) {
			if !errors.Is(it.err, xhttp.ErrNotJSON) {
				c.Logger().Warn("upstream resource unavailable",
					applogger.String("provider", Provider),
					applogger.String("resource", string(it.name)),
					applogger.Error(it.err),
				)
			}
			bundle[it.name] = nil
			continue
		}
		bundle[it.name] = it.val
	}
	return bundle
}

// overview is the only retried call: it is retried at a fixed interval when it
// fails or answers without a data object. The last payload is kept either way.
func (c *Client) overview(ctx context.Context, address string) (models.Payload, error) {
	var last models.Payload
	err := services.WithRetry(ctx, c.cfg.OverviewAttempts, c.cfg.RetryInterval, func() error {
		p, err := c.fetch(ctx, models.ResourceOverview, address)
		if err != nil {
			return err
		}
		last = p
		if _, ok := p["data"].(map[string]interface{}); !ok {
			return errNoData
		}
		return nil
	})
	return last, err
}

func (c *Client) fetch(ctx context.Context, r models.Resource, address string) (models.Payload, error) {
	q := map[string][]string{"address": {address}}
	if r == models.ResourceOHLCV {
		to := c.now().Unix()
		from := to - int64(c.cfg.OHLCVWindow/time.Second)
		q["type"] = []string{"1D"}
		q["time_from"] = []string{strconv.FormatInt(from, 10)}
		q["time_to"] = []string{strconv.FormatInt(to, 10)}
	}

	var out models.Payload
	err := c.GetJSON(ctx, string(r), &xhttp.RequestOptions{
		URL:         c.URL(paths[r]),
		QueryParams: q,
		Headers: map[string]string{
			"X-API-KEY": c.cfg.APIKey,
			"x-chain":   c.cfg.Chain,
			"accept":    "application/json",
		},
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

package helius

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"time"

	"MemeIQ/internal/domain/models"
	"MemeIQ/internal/domain/repository"
	"MemeIQ/internal/services"
	xhttp "MemeIQ/pkg/http"
)

const Provider = "helius"

var ErrNotConfigured = errors.New("HELIUS_API_KEY not configured")

type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Client reads enhanced transaction history for a wallet.
type Client struct {
	*services.HTTPServiceBase
	apiKey string
}

var _ repository.WalletActivity = (*Client)(nil)

func New(cfg Config, opts ...services.BaseOption) *Client {
	return &Client{
		HTTPServiceBase: services.NewHTTPServiceBase(Provider, cfg.BaseURL, cfg.Timeout, opts...),
		apiKey:          cfg.APIKey,
	}
}

func (c *Client) Configured() bool { return c.apiKey != "" }

// Transactions returns the latest limit transactions of wallet, newest first.
func (c *Client) Transactions(ctx context.Context, wallet string, limit int) ([]models.WalletTx, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	if limit <= 0 {
		limit = 50
	}
	var txs []models.WalletTx
	err := c.GetJSON(ctx, "transactions", &xhttp.RequestOptions{
		URL: c.URL("/v0/addresses/" + url.PathEscape(wallet) + "/transactions"),
		QueryParams: map[string][]string{
			"api-key": {c.apiKey},
			"limit":   {strconv.Itoa(limit)},
		},
		Headers: map[string]string{"Content-Type": "application/json"},
	}, &txs)
	if err != nil {
		return nil, err
	}
	return txs, nil
}

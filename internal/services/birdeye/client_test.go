package birdeye

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"MemeIQ/internal/domain/models"
	"MemeIQ/internal/service/breaker"
	"MemeIQ/internal/services"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc, attempts int) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(Config{
		APIKey:           "k",
		BaseURL:          srv.URL,
		Timeout:          2 * time.Second,
		OverviewAttempts: attempts,
		RetryInterval:    time.Millisecond,
	}).WithClock(func() time.Time { return time.Unix(1_700_000_000, 0) })
}

func TestFetchAllIsolatesFailures(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "k", r.Header.Get("X-API-KEY"))
		assert.Equal(t, "solana", r.Header.Get("x-chain"))
		switch r.URL.Path {
		case "/defi/token_overview":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"data":{"symbol":"MEME","price":0.01}}`))
		case "/defi/v1/token/security":
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(`<html>blocked</html>`))
		case "/defi/v3/token/holder":
			w.WriteHeader(http.StatusInternalServerError)
		case "/defi/v3/ohlcv":
			assert.Equal(t, "1D", r.URL.Query().Get("type"))
			assert.Equal(t, "1700000000", r.URL.Query().Get("time_to"))
			assert.Equal(t, "1699395200", r.URL.Query().Get("time_from"))
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			_, _ = w.Write([]byte(`{"data":{"items":[]}}`))
		default:
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"data":{}}`))
		}
	}, 1)

	b := c.FetchAll(context.Background(), "Mint111")

	require.Len(t, b, len(models.Resources))
	require.NotNil(t, b.Get(models.ResourceOverview))
	assert.Equal(t, "MEME", b.Get(models.ResourceOverview)["data"].(map[string]interface{})["symbol"])
	assert.Nil(t, b.Get(models.ResourceSecurity), "non-json body is dropped")
	assert.Nil(t, b.Get(models.ResourceHolders), "5xx is dropped")
	assert.NotNil(t, b.Get(models.ResourceOHLCV))
	assert.NotNil(t, b.Get(models.ResourceMarket))
}

func TestOverviewRetriedUntilData(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/defi/token_overview" {
			if atomic.AddInt32(&calls, 1) == 1 {
				_, _ = w.Write([]byte(`{"success":false}`))
				return
			}
			_, _ = w.Write([]byte(`{"data":{"symbol":"OK"}}`))
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}, 2)

	b := c.FetchAll(context.Background(), "Mint111")
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
	assert.Contains(t, b.Get(models.ResourceOverview), "data")
}

func TestOverviewWithoutDataKeepsLastPayload(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/defi/token_overview" {
			atomic.AddInt32(&calls, 1)
			_, _ = w.Write([]byte(`{"success":false,"message":"quota"}`))
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}, 3)

	b := c.FetchAll(context.Background(), "Mint111")
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
	ov := b.Get(models.ResourceOverview)
	require.NotNil(t, ov)
	assert.NotContains(t, ov, "data")
	assert.Equal(t, "quota", ov["message"])
}

func TestSecondaryResourcesAreSingleShot(t *testing.T) {
	var market int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/defi/v3/token/market-data" {
			atomic.AddInt32(&market, 1)
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{}}`))
	}, 3)

	b := c.FetchAll(context.Background(), "Mint111")
	assert.EqualValues(t, 1, atomic.LoadInt32(&market))
	assert.Nil(t, b.Get(models.ResourceMarket))
}

func TestOptionalFailuresKeepOverviewBreakerClosed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/defi/token_overview" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		time.Sleep(20 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"symbol":"MEME"}}`))
	}))
	t.Cleanup(srv.Close)

	reg := breaker.NewRegistry(breaker.Settings{ConsecutiveFailures: 5, Timeout: 30 * time.Second}, nil)
	c := New(Config{
		APIKey:           "k",
		BaseURL:          srv.URL,
		Timeout:          2 * time.Second,
		OverviewAttempts: 2,
		RetryInterval:    time.Millisecond,
	}, services.WithBreakers(reg))

	for i := 0; i < 6; i++ {
		b := c.FetchAll(context.Background(), "Mint111")
		require.NotNil(t, b.Get(models.ResourceOverview), "request %d", i+1)
		assert.Nil(t, b.Get(models.ResourceHolders))
	}

	assert.Equal(t, gobreaker.StateOpen, reg.State(breaker.Key(Provider, string(models.ResourceHolders))))
	assert.Equal(t, gobreaker.StateClosed, reg.State(breaker.Key(Provider, string(models.ResourceOverview))))
}

package helius

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v0/addresses/Creator1/transactions", r.URL.Path)
		assert.Equal(t, "hk", r.URL.Query().Get("api-key"))
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"signature":"s1","timestamp":1700000000,"tokenTransfers":[
			{"mint":"M","fromUserAccount":"Creator1","toUserAccount":"X","tokenAmount":12.5}]}]`))
	}))
	defer srv.Close()

	c := New(Config{APIKey: "hk", BaseURL: srv.URL, Timeout: time.Second})
	txs, err := c.Transactions(context.Background(), "Creator1", 0)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.EqualValues(t, 1700000000, txs[0].Timestamp)
	require.Len(t, txs[0].TokenTransfers, 1)
	assert.InDelta(t, 12.5, txs[0].TokenTransfers[0].TokenAmount, 1e-9)
}

func TestTransactionsRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New(Config{APIKey: "hk", BaseURL: srv.URL, Timeout: time.Second})
	_, err := c.Transactions(context.Background(), "Creator1", 50)
	assert.Error(t, err)
}

func TestTransactionsNotConfigured(t *testing.T) {
	c := New(Config{BaseURL: "http://127.0.0.1:1"})
	_, err := c.Transactions(context.Background(), "Creator1", 50)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

package huggingface

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"MemeIQ/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, key string, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(Config{APIKey: key, BaseURL: srv.URL, Timeout: 2 * time.Second})
}

func jsonReply(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

func TestClassifyNestedAndFlat(t *testing.T) {
	for _, body := range []string{
		`[[{"label":"Bullish","score":0.7},{"label":"Bearish","score":0.3}]]`,
		`[{"label":"Bullish","score":0.7},{"label":"Bearish","score":0.3}]`,
	} {
		c := newTestClient(t, "hf", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/ElKulako/cryptobert", r.URL.Path)
			assert.Equal(t, "Bearer hf", r.Header.Get("Authorization"))
			var req map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "to the moon", req["inputs"])
			jsonReply(w, body)
		})

		labels, err := c.Classify(context.Background(), "ElKulako/cryptobert", "to the moon")
		require.NoError(t, err)
		require.Len(t, labels, 2)
		assert.Equal(t, "Bullish", TopLabel(labels))
	}
}

func TestZeroShotShapes(t *testing.T) {
	c := newTestClient(t, "hf", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Parameters struct {
				CandidateLabels []string `json:"candidate_labels"`
			} `json:"parameters"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"rug pull", "safe"}, req.Parameters.CandidateLabels)
		jsonReply(w, `{"sequence":"s","labels":["rug pull","safe"],"scores":[0.8,0.2]}`)
	})
	res, err := c.ZeroShot(context.Background(), "facebook/bart-large-mnli", "s", []string{"rug pull", "safe"})
	require.NoError(t, err)
	p, ok := res.Probability("rug")
	assert.True(t, ok)
	assert.InDelta(t, 0.8, p, 1e-9)

	c = newTestClient(t, "hf", func(w http.ResponseWriter, r *http.Request) {
		jsonReply(w, `[{"label":"safe","score":0.6},{"label":"rug pull","score":0.4}]`)
	})
	res, err = c.ZeroShot(context.Background(), "facebook/bart-large-mnli", "s", []string{"rug pull", "safe"})
	require.NoError(t, err)
	assert.Equal(t, []string{"safe", "rug pull"}, res.Labels)
}

func TestNotConfiguredSkipsNetwork(t *testing.T) {
	called := false
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) { called = true })

	_, err := c.Classify(context.Background(), "m", "x")
	assert.ErrorIs(t, err, ErrNotConfigured)
	_, err = c.Infer(context.Background(), "m", "x")
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.False(t, called)
}

func TestUpstreamErrorStatus(t *testing.T) {
	c := newTestClient(t, "hf", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		jsonReply(w, `{"error":"loading"}`)
	})
	_, err := c.Infer(context.Background(), "facebook/detr-resnet-50", "abc")
	assert.Error(t, err)
}

func TestTopLabelEmpty(t *testing.T) {
	assert.Equal(t, "", TopLabel(nil))
	assert.Equal(t, "b", TopLabel([]models.ClassLabel{{Label: "a", Score: 0.1}, {Label: "b", Score: 0.9}}))
}

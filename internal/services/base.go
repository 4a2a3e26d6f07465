package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"MemeIQ/internal/domain/repository"
	"MemeIQ/internal/service/breaker"
	xhttp "MemeIQ/pkg/http"
	applogger "MemeIQ/pkg/logger"
)

// Upstream call outcomes reported to metrics.
const (
	ResultOK    = "ok"
	ResultEmpty = "empty"
	ResultError = "error"
	ResultOpen  = "open"
)

// HTTPServiceBase is the shared foundation for provider clients: one xhttp.Client,
// a base URL, a breaker per provider resource and call metrics.
type HTTPServiceBase struct {
	provider string
	baseURL  string
	client   *xhttp.Client
	breakers *breaker.Registry
	metrics  repository.Metrics
	logger   *applogger.Logger
}

type BaseOption func(*HTTPServiceBase)

// WithBreakers runs every call under its resource circuit breaker.
func WithBreakers(r *breaker.Registry) BaseOption {
	return func(b *HTTPServiceBase) { b.breakers = r }
}

func WithMetrics(m repository.Metrics) BaseOption {
	return func(b *HTTPServiceBase) {
		if m != nil {
			b.metrics = m
		}
	}
}

func WithLogger(l *applogger.Logger) BaseOption {
	return func(b *HTTPServiceBase) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithClient swaps the HTTP client (tests, custom transports).
func WithClient(c *xhttp.Client) BaseOption {
	return func(b *HTTPServiceBase) {
		if c != nil {
			b.client = c
		}
	}
}

// NewHTTPServiceBase builds a client for provider rooted at baseURL.
func NewHTTPServiceBase(provider, baseURL string, timeout time.Duration, opts ...BaseOption) *HTTPServiceBase {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	b := &HTTPServiceBase{
		provider: provider,
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   xhttp.NewClient(xhttp.WithTimeout(timeout)),
		metrics:  nopMetrics{},
		logger:   applogger.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *HTTPServiceBase) Provider() string { return b.provider }

func (b *HTTPServiceBase) Logger() *applogger.Logger { return b.logger }

func (b *HTTPServiceBase) Metrics() repository.Metrics { return b.metrics }

// URL joins path onto the base URL.
func (b *HTTPServiceBase) URL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return b.baseURL + path
}

// GetJSON performs a GET that only decodes 2xx JSON bodies. A non-JSON body
// returns xhttp.ErrNotJSON and is counted as empty, not as a failure.
func (b *HTTPServiceBase) GetJSON(ctx context.Context, resource string, opts *xhttp.RequestOptions, dest interface{}) error {
	opts.Method = xhttp.MethodGet
	return b.call(resource, func() error {
		return b.client.GetJSON(ctx, opts, dest)
	})
}

// PostJSON posts payload to path under baseURL and decodes the JSON answer into dest.
func (b *HTTPServiceBase) PostJSON(ctx context.Context, resource, path string, headers map[string]string, payload, dest interface{}) error {
	if b.client == nil || b.baseURL == "" {
		return fmt.Errorf("%s http client not initialized", b.provider)
	}
	h := map[string]string{"Content-Type": "application/json"}
	for k, v := range headers {
		h[k] = v
	}
	return b.call(resource, func() error {
		return b.client.SendAndParse(ctx, &xhttp.RequestOptions{
			Method:  xhttp.MethodPost,
			URL:     b.URL(path),
			Headers: h,
			Body:    payload,
		}, dest)
	})
}

// WithRetry retries fn at a fixed interval until it succeeds or attempts run out.
func WithRetry(ctx context.Context, attempts int, interval time.Duration, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for i := 1; i <= attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if i == attempts {
			break
		}
		select {
		case <-time.After(interval):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

// call runs fn under the breaker of this provider resource, so a failing
// endpoint never rejects calls to its siblings.
func (b *HTTPServiceBase) call(resource string, fn func() error) error {
	var err error
	if b.breakers != nil {
		err = b.breakers.Do(breaker.Key(b.provider, resource), fn)
	} else {
		err = fn()
	}
	b.metrics.RecordUpstreamCall(b.provider, resource, resultOf(err))
	if err != nil && !errors.Is(err, xhttp.ErrNotJSON) {
		return fmt.Errorf("%s %s: %w", b.provider, resource, err)
	}
	return err
}

func resultOf(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, xhttp.ErrNotJSON):
		return ResultEmpty
	case errors.Is(err, breaker.ErrOpen):
		return ResultOpen
	default:
		return ResultError
	}
}

type nopMetrics struct{}

func (nopMetrics) RecordUpstreamCall(string, string, string) {}
func (nopMetrics) RecordError(string)                        {}
func (nopMetrics) RecordLatency(string, float64)             {}
func (nopMetrics) RecordScore(string, int)                   {}

package breaker

import (
	"errors"
	"net/http"
	"testing"
	"time"

	xhttp "MemeIQ/pkg/http"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
)

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	r := NewRegistry(Settings{ConsecutiveFailures: 2, Timeout: time.Minute}, nil)
	boom := errors.New("boom")

	assert.ErrorIs(t, r.Do("helius", func() error { return boom }), boom)
	assert.ErrorIs(t, r.Do("helius", func() error { return boom }), boom)
	assert.Equal(t, gobreaker.StateOpen, r.State("helius"))

	called := false
	err := r.Do("helius", func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrOpen)
	assert.False(t, called)

	assert.NoError(t, r.Do("reddit", func() error { return nil }), "providers are isolated")
}

func TestBreakerIgnoresClientErrors(t *testing.T) {
	r := NewRegistry(Settings{ConsecutiveFailures: 1, Timeout: time.Minute}, nil)
	notFound := &xhttp.StatusError{Code: http.StatusNotFound}

	for i := 0; i < 3; i++ {
		assert.Error(t, r.Do("birdeye", func() error { return notFound }))
	}
	assert.Equal(t, gobreaker.StateClosed, r.State("birdeye"))

	_ = r.Do("birdeye", func() error { return &xhttp.StatusError{Code: http.StatusTooManyRequests} })
	assert.Equal(t, gobreaker.StateOpen, r.State("birdeye"))
}

func TestKeyIsolatesResources(t *testing.T) {
	r := NewRegistry(Settings{ConsecutiveFailures: 1, Timeout: time.Minute}, nil)
	assert.Equal(t, "birdeye:token_overview", Key("birdeye", "token_overview"))
	assert.Equal(t, "reddit", Key("reddit", ""))

	_ = r.Do(Key("birdeye", "holders"), func() error { return errors.New("boom") })
	assert.Equal(t, gobreaker.StateOpen, r.State(Key("birdeye", "holders")))
	assert.NoError(t, r.Do(Key("birdeye", "token_overview"), func() error { return nil }))
}

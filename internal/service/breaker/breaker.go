package breaker

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	xhttp "MemeIQ/pkg/http"
	applogger "MemeIQ/pkg/logger"

	"github.com/sony/gobreaker"
)

// ErrOpen is returned while a breaker rejects calls.
var ErrOpen = errors.New("circuit open")

// Key names the breaker guarding one resource of a provider.
func Key(provider, resource string) string {
	if resource == "" {
		return provider
	}
	return provider + ":" + resource
}

type Settings struct {
	MaxRequests         uint32
	Interval            time.Duration
	Timeout             time.Duration
	ConsecutiveFailures uint32
}

// Registry hands out one breaker per upstream endpoint, see Key.
type Registry struct {
	mu       sync.Mutex
	settings Settings
	logger   *applogger.Logger
	m        map[string]*gobreaker.CircuitBreaker
}

func NewRegistry(s Settings, l *applogger.Logger) *Registry {
	if s.ConsecutiveFailures == 0 {
		s.ConsecutiveFailures = 5
	}
	if l == nil {
		l = applogger.Nop()
	}
	return &Registry{settings: s, logger: l, m: make(map[string]*gobreaker.CircuitBreaker)}
}

func (r *Registry) get(name string) *gobreaker.CircuitBreaker {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cb, ok := r.m[name]; ok {
		return cb
	}
	st := gobreaker.Settings{
		Name:        name,
		MaxRequests: r.settings.MaxRequests,
		Interval:    r.settings.Interval,
		Timeout:     r.settings.Timeout,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= r.settings.ConsecutiveFailures
		},
		IsSuccessful: countsAsHealthy,
		OnStateChange: func(name string, from, to gobreaker.State) {
			r.logger.Warn("breaker state change",
				applogger.String("breaker", name),
				applogger.String("from", from.String()),
				applogger.String("to", to.String()),
			)
		},
	}
	cb := gobreaker.NewCircuitBreaker(st)
	r.m[name] = cb
	return cb
}

// Do runs fn under the named breaker.
func (r *Registry) Do(name string, fn func() error) error {
	_, err := r.get(name).Execute(func() (interface{}, error) {
		return nil, fn()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return ErrOpen
	}
	return err
}

// State reports the named breaker state.
func (r *Registry) State(name string) gobreaker.State {
	return r.get(name).State()
}

// countsAsHealthy keeps caller-side failures from tripping a provider breaker:
// cancellations and 4xx answers other than 429 say nothing about provider health.
func countsAsHealthy(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, xhttp.ErrNotJSON) {
		return true
	}
	var se *xhttp.StatusError
	if errors.As(err, &se) {
		return se.Code < 500 && se.Code != http.StatusTooManyRequests
	}
	return false
}

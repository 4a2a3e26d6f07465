package ratelimit

import (
	"sync"
	"time"

	xhttp "MemeIQ/pkg/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

type visitor struct {
	lim  *rate.Limiter
	seen time.Time
}

// Limiter keeps one token bucket per key (client IP). Idle buckets are evicted.
type Limiter struct {
	mu    sync.Mutex
	m     map[string]*visitor
	rps   rate.Limit
	burst int
	idle  time.Duration
	now   func() time.Time
}

func New(rps float64, burst int) *Limiter {
	if burst < 1 {
		burst = 1
	}
	return &Limiter{
		m:     make(map[string]*visitor),
		rps:   rate.Limit(rps),
		burst: burst,
		idle:  10 * time.Minute,
		now:   time.Now,
	}
}

// Allow reports whether one request for key may proceed now.
func (l *Limiter) Allow(key string) bool {
	now := l.now()

	l.mu.Lock()
	v, ok := l.m[key]
	if !ok {
		v = &visitor{lim: rate.NewLimiter(l.rps, l.burst)}
		l.m[key] = v
	}
	v.seen = now
	if len(l.m) > 4096 {
		l.evict(now)
	}
	l.mu.Unlock()

	return v.lim.AllowN(now, 1)
}

// evict drops buckets idle longer than l.idle. Caller holds mu.
func (l *Limiter) evict(now time.Time) {
	for k, v := range l.m {
		if now.Sub(v.seen) > l.idle {
			delete(l.m, k)
		}
	}
}

// Middleware rejects over-limit clients with a 429 envelope.
func (l *Limiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !l.Allow(c.RealIP()) {
				return xhttp.ErrorResponse(c, xhttp.TooManyRequestsError("rate limited"), false)
			}
			return next(c)
		}
	}
}

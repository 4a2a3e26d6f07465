package api

import (
	"context"
	"net/http"
	"time"

	"MemeIQ/internal/domain/models"
	"MemeIQ/internal/service/metrics"
	"MemeIQ/internal/service/ratelimit"
	xhttp "MemeIQ/pkg/http"
	applogger "MemeIQ/pkg/logger"

	"github.com/labstack/echo/v4"
)

// TokenAnalyzer runs the analysis pipeline for one address.
type TokenAnalyzer interface {
	Analyze(ctx context.Context, address string) (*models.TokenRecord, error)
}

type AnalyzeResponse struct {
	xhttp.Envelope
	Token *models.TokenRecord `json:"token,omitempty"`
}

type KeepWarmResponse struct {
	OK        bool   `json:"ok"`
	Timestamp string `json:"timestamp"`
}

// TokenEchoHandler serves the analyze and keep-warm endpoints.
type TokenEchoHandler struct {
	logger       *applogger.Logger
	analyzer     TokenAnalyzer
	limiter      *ratelimit.Limiter
	includeDebug bool
	now          func() time.Time
}

func NewTokenEchoHandler(l *applogger.Logger, analyzer TokenAnalyzer, limiter *ratelimit.Limiter, includeDebug bool) *TokenEchoHandler {
	metrics.Register()
	if l == nil {
		l = applogger.Nop()
	}
	return &TokenEchoHandler{logger: l, analyzer: analyzer, limiter: limiter, includeDebug: includeDebug, now: time.Now}
}

func (h *TokenEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	var mw []echo.MiddlewareFunc
	if h.limiter != nil {
		mw = append(mw, h.limiter.Middleware())
	}
	g.GET("/analyze", h.Analyze, mw...)
	g.GET("/keep-warm", h.KeepWarm)
}

// Analyze handles GET /api/analyze?address=<mint>.
func (h *TokenEchoHandler) Analyze(c echo.Context) error {
	start := time.Now()
	const endpoint = "analyze"
	defer func() { metrics.APILatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.AnalyzeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		metrics.APIErrors.WithLabelValues(endpoint, verr[0].Code).Inc()
		return xhttp.ValidationResponse(c, verr)
	}

	rec, err := h.analyzer.Analyze(c.Request().Context(), req.Address)
	if err != nil {
		return failure(c, h.logger, endpoint, err, h.includeDebug)
	}
	return xhttp.OK(c, AnalyzeResponse{Envelope: xhttp.Envelope{OK: true}, Token: rec})
}

func (h *TokenEchoHandler) KeepWarm(c echo.Context) error {
	return xhttp.OK(c, KeepWarmResponse{OK: true, Timestamp: h.now().UTC().Format(time.RFC3339)})
}

// failure logs and counts err, then writes its envelope.
func failure(c echo.Context, l *applogger.Logger, endpoint string, err error, withDebug bool) error {
	code := "ERR_INTERNAL"
	status := http.StatusInternalServerError
	if appErr, ok := xhttp.AsAppError(err); ok {
		code, status = appErr.Code, appErr.Status
	}
	metrics.APIErrors.WithLabelValues(endpoint, code).Inc()
	if status >= http.StatusInternalServerError {
		l.Error(endpoint+" failed", applogger.Error(err))
	} else {
		l.Warn(endpoint+" rejected", applogger.String("code", code), applogger.Error(err))
	}
	return xhttp.ErrorResponse(c, err, withDebug)
}

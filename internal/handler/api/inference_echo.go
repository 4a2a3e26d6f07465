package api

import (
	"time"

	"MemeIQ/internal/domain/models"
	"MemeIQ/internal/domain/service"
	"MemeIQ/internal/service/metrics"
	"MemeIQ/internal/service/ratelimit"
	xhttp "MemeIQ/pkg/http"
	applogger "MemeIQ/pkg/logger"

	"github.com/labstack/echo/v4"
)

type SentimentResponse struct {
	xhttp.Envelope
	Preds []models.SentimentPrediction `json:"preds,omitempty"`
}

type RugRiskResponse struct {
	xhttp.Envelope
	Data interface{}     `json:"data,omitempty"`
	Risk *models.RugRisk `json:"risk,omitempty"`
}

type ChartVisionResponse struct {
	xhttp.Envelope
	Data interface{} `json:"data,omitempty"`
}

// InferenceEchoHandler serves the text and image classification endpoints.
type InferenceEchoHandler struct {
	logger  *applogger.Logger
	svc     service.InferenceService
	limiter *ratelimit.Limiter
}

func NewInferenceEchoHandler(l *applogger.Logger, svc service.InferenceService, limiter *ratelimit.Limiter) *InferenceEchoHandler {
	metrics.Register()
	if l == nil {
		l = applogger.Nop()
	}
	return &InferenceEchoHandler{logger: l, svc: svc, limiter: limiter}
}

func (h *InferenceEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	var mw []echo.MiddlewareFunc
	if h.limiter != nil {
		mw = append(mw, h.limiter.Middleware())
	}
	g.POST("/sentiment", h.Sentiment, mw...)
	g.POST("/rugrisk", h.RugRisk, mw...)
	g.POST("/chart-vision", h.ChartVision, mw...)
}

func (h *InferenceEchoHandler) Sentiment(c echo.Context) error {
	const endpoint = "sentiment"
	defer observe(endpoint, time.Now())

	req := &models.SentimentRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		metrics.APIErrors.WithLabelValues(endpoint, verr[0].Code).Inc()
		return xhttp.ValidationResponse(c, verr)
	}
	preds, err := h.svc.Sentiment(c.Request().Context(), req.Text)
	if err != nil {
		return failure(c, h.logger, endpoint, err, false)
	}
	return xhttp.OK(c, SentimentResponse{Envelope: xhttp.Envelope{OK: true}, Preds: preds})
}

func (h *InferenceEchoHandler) RugRisk(c echo.Context) error {
	const endpoint = "rugrisk"
	defer observe(endpoint, time.Now())

	req := &models.RugRiskRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		metrics.APIErrors.WithLabelValues(endpoint, verr[0].Code).Inc()
		return xhttp.ValidationResponse(c, verr)
	}
	data, risk, err := h.svc.RugRisk(c.Request().Context(), req.Summary)
	if err != nil {
		return failure(c, h.logger, endpoint, err, false)
	}
	return xhttp.OK(c, RugRiskResponse{Envelope: xhttp.Envelope{OK: true}, Data: data, Risk: &risk})
}

func (h *InferenceEchoHandler) ChartVision(c echo.Context) error {
	const endpoint = "chart_vision"
	defer observe(endpoint, time.Now())

	req := &models.ChartVisionRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		metrics.APIErrors.WithLabelValues(endpoint, verr[0].Code).Inc()
		return xhttp.ValidationResponse(c, verr)
	}
	data, err := h.svc.ChartVision(c.Request().Context(), req.ImageDataURL)
	if err != nil {
		return failure(c, h.logger, endpoint, err, false)
	}
	return xhttp.OK(c, ChartVisionResponse{Envelope: xhttp.Envelope{OK: true}, Data: data})
}

func observe(endpoint string, start time.Time) {
	metrics.APILatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}

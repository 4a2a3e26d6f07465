package service

import (
	"context"

	"MemeIQ/internal/domain/models"
)

// SentimentEnricher scores social sentiment for a symbol. It never returns an error:
// failures are reported through Sentiment.Available and Sentiment.Error.
type SentimentEnricher interface {
	Enrich(ctx context.Context, symbol string) models.Sentiment
}

// DevActivityEnricher inspects recent creator-wallet transfers of a mint.
type DevActivityEnricher interface {
	Enrich(ctx context.Context, mint, creator string, devPct float64) models.DevActivity
}

// InferenceService backs the standalone classification endpoints.
type InferenceService interface {
	Sentiment(ctx context.Context, text string) ([]models.SentimentPrediction, error)
	RugRisk(ctx context.Context, summary string) (interface{}, models.RugRisk, error)
	ChartVision(ctx context.Context, imageDataURL string) (interface{}, error)
}

package repository

import (
	"context"
	"time"

	"MemeIQ/internal/domain/models"
)

// MarketData fans out to every market-data sub-resource for one address.
// It never fails as a whole: unusable resources are nil in the bundle.
type MarketData interface {
	Configured() bool
	FetchAll(ctx context.Context, address string) models.Bundle
}

// SocialFeed returns short post texts mentioning a symbol.
type SocialFeed interface {
	SearchPosts(ctx context.Context, symbol string, limit int) ([]string, error)
}

// TextClassifier talks to a hosted inference model.
type TextClassifier interface {
	Configured() bool
	Classify(ctx context.Context, model, text string) ([]models.ClassLabel, error)
	ZeroShot(ctx context.Context, model, text string, labels []string) (models.ZeroShotResult, error)
	Infer(ctx context.Context, model string, inputs interface{}) (interface{}, error)
}

// WalletActivity returns recent indexed transactions for a wallet.
type WalletActivity interface {
	Configured() bool
	Transactions(ctx context.Context, wallet string, limit int) ([]models.WalletTx, error)
}

// AnalysisPublisher emits analysis events to a downstream bus.
type AnalysisPublisher interface {
	Publish(ctx context.Context, ev *models.AnalysisEvent) error
	Close() error
}

// BytesCache stores serialized responses with a TTL.
type BytesCache interface {
	GetBytes(ctx context.Context, key string) (b []byte, ok bool, err error)
	SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type Metrics interface {
	RecordUpstreamCall(provider, resource, result string)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
	RecordScore(recommendation string, overall int)
}

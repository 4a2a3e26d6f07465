package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"MemeIQ/internal/domain/models"
	"MemeIQ/internal/domain/repository"
	"MemeIQ/internal/domain/service"
	"MemeIQ/internal/normalize"
	"MemeIQ/internal/scoring"
	apimetrics "MemeIQ/internal/service/metrics"
	xhttp "MemeIQ/pkg/http"
	applogger "MemeIQ/pkg/logger"
)

const (
	OverviewMissing = "Birdeye did not return token_overview. Check address or API key quota."

	analyzeCachePrefix = "analyze:"
	publishTimeout     = 5 * time.Second
)

type AnalyzeConfig struct {
	// CacheTTL > 0 caches finished records per address.
	CacheTTL time.Duration
}

// AnalyzeTokenUseCase runs the whole pipeline for one token address:
// fan-out, normalization, enrichment, scoring and record assembly.
type AnalyzeTokenUseCase struct {
	market    repository.MarketData
	sentiment service.SentimentEnricher
	dev       service.DevActivityEnricher
	publisher repository.AnalysisPublisher
	cache     repository.BytesCache
	metrics   repository.Metrics
	logger    *applogger.Logger
	cfg       AnalyzeConfig
	now       func() time.Time

	inflight sync.WaitGroup
}

func NewAnalyzeTokenUseCase(
	market repository.MarketData,
	sentiment service.SentimentEnricher,
	dev service.DevActivityEnricher,
	publisher repository.AnalysisPublisher,
	cache repository.BytesCache,
	metrics repository.Metrics,
	l *applogger.Logger,
	cfg AnalyzeConfig,
) *AnalyzeTokenUseCase {
	if l == nil {
		l = applogger.Nop()
	}
	return &AnalyzeTokenUseCase{
		market:    market,
		sentiment: sentiment,
		dev:       dev,
		publisher: publisher,
		cache:     cache,
		metrics:   metrics,
		logger:    l,
		cfg:       cfg,
		now:       time.Now,
	}
}

// WithClock fixes "now" for new-buyer counting and event timestamps.
func (uc *AnalyzeTokenUseCase) WithClock(now func() time.Time) *AnalyzeTokenUseCase {
	uc.now = now
	return uc
}

// Analyze returns the TokenRecord for address. Classified failures are *xhttp.AppError:
// missing address (400), missing market-data key (500), no usable overview (400).
func (uc *AnalyzeTokenUseCase) Analyze(ctx context.Context, address string) (*models.TokenRecord, error) {
	start := time.Now()
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, xhttp.MissingFieldError("address")
	}
	if uc.market == nil || !uc.market.Configured() {
		uc.recordError("config")
		return nil, xhttp.ConfigError("BIRDEYE_API_KEY")
	}

	if rec, ok := uc.cached(ctx, address); ok {
		return rec, nil
	}

	bundle := uc.market.FetchAll(ctx, address)
	overview := bundle.Get(models.ResourceOverview)
	if _, ok := overview["data"].(map[string]interface{}); !ok {
		uc.recordError("overview_missing")
		uc.logger.Warn("overview unavailable", applogger.String("address", address))
		return nil, xhttp.UpstreamError(OverviewMissing).WithDiagnostic(overview)
	}

	m := normalize.FromBundle(bundle)
	holders := bundle.Get(models.ResourceHolders)

	var (
		sent models.Sentiment
		dev  models.DevActivity
		wg   sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		sent = uc.enrichSentiment(ctx, m.Symbol)
	}()
	go func() {
		defer wg.Done()
		dev = uc.enrichDev(ctx, address, m)
	}()
	wg.Wait()

	rec := scoring.Record(scoring.Input{
		Address:     address,
		Metrics:     m,
		Candles:     normalize.Candles(bundle.Get(models.ResourceOHLCV)),
		TopHolders:  normalize.TopHolders(holders, overview),
		NewBuyers:   normalize.NewBuyers(holders, uc.now()),
		Sentiment:   sent,
		DevActivity: dev,
	})

	if uc.metrics != nil {
		uc.metrics.RecordScore(string(rec.Recommendation), rec.Scores.Overall)
		uc.metrics.RecordLatency("analyze", time.Since(start).Seconds())
	}
	uc.logger.Info("token analyzed",
		applogger.String("address", address),
		applogger.String("symbol", rec.Symbol),
		applogger.Int("overall", rec.Scores.Overall),
		applogger.String("recommendation", string(rec.Recommendation)),
		applogger.Duration("latency_ms", time.Since(start)),
	)

	uc.store(ctx, address, rec)
	uc.publish(rec)
	return rec, nil
}

// Close waits for in-flight event publishes and closes the publisher.
func (uc *AnalyzeTokenUseCase) Close() error {
	uc.inflight.Wait()
	if uc.publisher == nil {
		return nil
	}
	return uc.publisher.Close()
}

func (uc *AnalyzeTokenUseCase) enrichSentiment(ctx context.Context, symbol string) models.Sentiment {
	if uc.sentiment == nil {
		msg := "Sentiment analysis unavailable"
		return models.Sentiment{Score: scoring.NeutralSentiment, Error: &msg}
	}
	return uc.sentiment.Enrich(ctx, symbol)
}

func (uc *AnalyzeTokenUseCase) enrichDev(ctx context.Context, mint string, m models.Metrics) models.DevActivity {
	if uc.dev == nil {
		msg := "Dev tracking unavailable"
		return models.DevActivity{Error: &msg}
	}
	return uc.dev.Enrich(ctx, mint, m.CreatorAddress, m.DevPct)
}

func (uc *AnalyzeTokenUseCase) cached(ctx context.Context, address string) (*models.TokenRecord, bool) {
	if uc.cache == nil || uc.cfg.CacheTTL <= 0 {
		return nil, false
	}
	b, ok, err := uc.cache.GetBytes(ctx, analyzeCachePrefix+address)
	if err != nil {
		uc.logger.Warn("analyze cache read failed", applogger.Error(err))
		apimetrics.ObserveCacheLookup("analyze", apimetrics.CacheError)
		return nil, false
	}
	if !ok {
		apimetrics.ObserveCacheLookup("analyze", apimetrics.CacheMiss)
		return nil, false
	}
	var rec models.TokenRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		apimetrics.ObserveCacheLookup("analyze", apimetrics.CacheError)
		return nil, false
	}
	apimetrics.ObserveCacheLookup("analyze", apimetrics.CacheHit)
	return &rec, true
}

func (uc *AnalyzeTokenUseCase) store(ctx context.Context, address string, rec *models.TokenRecord) {
	if uc.cache == nil || uc.cfg.CacheTTL <= 0 {
		return
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return
	}
	if err := uc.cache.SetBytes(ctx, analyzeCachePrefix+address, b, uc.cfg.CacheTTL); err != nil {
		uc.logger.Warn("analyze cache write failed", applogger.Error(err))
	}
}

// publish emits the analysis event in the background; failures are only logged.
func (uc *AnalyzeTokenUseCase) publish(rec *models.TokenRecord) {
	if uc.publisher == nil {
		return
	}
	ev := &models.AnalysisEvent{
		Address:        rec.Address,
		Symbol:         rec.Symbol,
		Overall:        rec.Scores.Overall,
		Recommendation: rec.Recommendation,
		Scores:         rec.Scores,
		AnalyzedAt:     uc.now().UnixMilli(),
	}
	uc.inflight.Add(1)
	go func() {
		defer uc.inflight.Done()
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := uc.publisher.Publish(ctx, ev); err != nil {
			uc.recordError("publish")
			uc.logger.Warn("analysis event publish failed",
				applogger.String("address", ev.Address),
				applogger.Error(err),
			)
		}
	}()
}

func (uc *AnalyzeTokenUseCase) recordError(kind string) {
	if uc.metrics != nil {
		uc.metrics.RecordError(kind)
	}
}

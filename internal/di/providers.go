package di

import (
	"context"
	"fmt"
	"time"

	"MemeIQ/internal/domain/repository"
	"MemeIQ/internal/domain/service"
	"MemeIQ/internal/handler/api"
	internalrepo "MemeIQ/internal/repository"
	"MemeIQ/internal/service/breaker"
	"MemeIQ/internal/service/cache"
	"MemeIQ/internal/service/ratelimit"
	"MemeIQ/internal/services"
	"MemeIQ/internal/services/birdeye"
	"MemeIQ/internal/services/devactivity"
	"MemeIQ/internal/services/helius"
	"MemeIQ/internal/services/huggingface"
	"MemeIQ/internal/services/reddit"
	"MemeIQ/internal/services/sentiment"
	"MemeIQ/internal/usecase"
	"MemeIQ/pkg/config"
	xhttp "MemeIQ/pkg/http"
	pkgkafka "MemeIQ/pkg/kafka"
	applogger "MemeIQ/pkg/logger"
	"MemeIQ/pkg/metrics"
	"MemeIQ/pkg/server"
)

// ProvideLogger creates the application logger from the log section.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, func(), error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("logger: %w", err)
	}
	return l, l.Close, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideBreakers creates the per-endpoint circuit breakers.
func ProvideBreakers(cfg *config.Config, l *applogger.Logger) *breaker.Registry {
	return breaker.NewRegistry(breaker.Settings{
		MaxRequests:         cfg.Breaker.MaxRequests,
		Interval:            cfg.Breaker.Interval,
		Timeout:             cfg.Breaker.Timeout,
		ConsecutiveFailures: cfg.Breaker.ConsecutiveFailures,
	}, l)
}

// ProvideCache returns Redis when configured and reachable, the in-process cache otherwise.
func ProvideCache(cfg *config.Config, l *applogger.Logger) (repository.BytesCache, func(), error) {
	if !cfg.Cache.Redis.Enabled {
		return cache.NewTTLCache(), func() {}, nil
	}

	rc := cache.NewRedisCache(cache.RedisConfig{
		Addr:      cfg.Cache.Redis.Addr,
		Password:  cfg.Cache.Redis.Password,
		DB:        cfg.Cache.Redis.DB,
		KeyPrefix: cfg.Cache.Redis.KeyPrefix,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rc.Ping(ctx); err != nil {
		l.Warn("redis unavailable, using in-process cache",
			applogger.String("addr", cfg.Cache.Redis.Addr), applogger.Error(err))
		_ = rc.Close()
		return cache.NewTTLCache(), func() {}, nil
	}

	cleanup := func() {
		if err := rc.Close(); err != nil {
			l.Warn("redis close error", applogger.Error(err))
		}
	}
	return rc, cleanup, nil
}

// ProvideKafkaProducer creates the events producer. Nil when events are disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Events.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Events.Brokers),
		pkgkafka.WithClientID(cfg.Events.ClientID),
		pkgkafka.WithCompression(cfg.Events.Compression),
		pkgkafka.WithRequiredAcks(cfg.Events.RequiredAcks),
		pkgkafka.WithMaxAttempts(cfg.Events.MaxAttempts),
		pkgkafka.WithWriteTimeout(cfg.Events.WriteTimeout),
		pkgkafka.WithBatchTimeout(cfg.Events.BatchTimeout),
		pkgkafka.WithAsync(cfg.Events.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideAnalysisPublisher publishes analysis events to Kafka, or drops them.
func ProvideAnalysisPublisher(cfg *config.Config, producer *pkgkafka.Producer) repository.AnalysisPublisher {
	if producer == nil {
		return internalrepo.NoopPublisher{}
	}
	return internalrepo.NewKafkaAnalysisPublisher(producer, cfg.Events.Topic)
}

func baseOptions(breakers *breaker.Registry, m repository.Metrics, l *applogger.Logger) []services.BaseOption {
	return []services.BaseOption{
		services.WithBreakers(breakers),
		services.WithMetrics(m),
		services.WithLogger(l),
	}
}

// ProvideMarketData creates the Birdeye client.
func ProvideMarketData(cfg *config.Config, breakers *breaker.Registry, m repository.Metrics, l *applogger.Logger) repository.MarketData {
	b := cfg.Providers.Birdeye
	return birdeye.New(birdeye.Config{
		APIKey:           b.APIKey,
		BaseURL:          b.BaseURL,
		Chain:            b.Chain,
		Timeout:          b.Timeout,
		OverviewAttempts: b.OverviewAttempts,
		RetryInterval:    b.RetryInterval,
		OHLCVWindow:      b.OHLCVWindow,
	}, baseOptions(breakers, m, l)...)
}

// ProvideTextClassifier creates the Hugging Face inference client.
func ProvideTextClassifier(cfg *config.Config, breakers *breaker.Registry, m repository.Metrics, l *applogger.Logger) repository.TextClassifier {
	hf := cfg.Providers.HuggingFace
	return huggingface.New(huggingface.Config{
		APIKey:  hf.APIKey,
		BaseURL: hf.BaseURL,
		Timeout: hf.Timeout,
	}, baseOptions(breakers, m, l)...)
}

// ProvideSocialFeed creates the Reddit search client.
func ProvideSocialFeed(cfg *config.Config, breakers *breaker.Registry, m repository.Metrics, l *applogger.Logger) repository.SocialFeed {
	r := cfg.Providers.Reddit
	return reddit.New(reddit.Config{
		BaseURL:   r.BaseURL,
		Subreddit: r.Subreddit,
		UserAgent: r.UserAgent,
		Timeout:   r.Timeout,
	}, baseOptions(breakers, m, l)...)
}

// ProvideWalletActivity creates the Helius transaction-history client.
func ProvideWalletActivity(cfg *config.Config, breakers *breaker.Registry, m repository.Metrics, l *applogger.Logger) repository.WalletActivity {
	h := cfg.Providers.Helius
	return helius.New(helius.Config{
		APIKey:  h.APIKey,
		BaseURL: h.BaseURL,
		Timeout: h.Timeout,
	}, baseOptions(breakers, m, l)...)
}

func ProvideSentimentEnricher(cfg *config.Config, feed repository.SocialFeed, classifier repository.TextClassifier, l *applogger.Logger) service.SentimentEnricher {
	hf := cfg.Providers.HuggingFace
	return sentiment.New(feed, classifier, sentiment.Config{
		Model:        hf.CryptoModel,
		SampleLimit:  hf.SampleLimit,
		CallInterval: hf.CallInterval,
	}, l)
}

func ProvideDevActivityEnricher(cfg *config.Config, wallets repository.WalletActivity, l *applogger.Logger) service.DevActivityEnricher {
	return devactivity.New(wallets, devactivity.Config{
		TxLimit:  cfg.Providers.Helius.TxLimit,
		Lookback: cfg.Providers.Helius.Lookback,
	}, l)
}

// ProvideAnalyzeUseCase creates the analysis pipeline. Its cleanup drains pending
// event publishes and closes the publisher.
func ProvideAnalyzeUseCase(
	cfg *config.Config,
	market repository.MarketData,
	sent service.SentimentEnricher,
	dev service.DevActivityEnricher,
	pub repository.AnalysisPublisher,
	c repository.BytesCache,
	m repository.Metrics,
	l *applogger.Logger,
) (*usecase.AnalyzeTokenUseCase, func()) {
	uc := usecase.NewAnalyzeTokenUseCase(market, sent, dev, pub, c, m, l, usecase.AnalyzeConfig{
		CacheTTL: cfg.Cache.AnalyzeTTL,
	})
	cleanup := func() {
		if err := uc.Close(); err != nil {
			l.Warn("analysis publisher close error", applogger.Error(err))
		}
	}
	return uc, cleanup
}

func ProvideInferenceUseCase(
	cfg *config.Config,
	classifier repository.TextClassifier,
	c repository.BytesCache,
	m repository.Metrics,
	l *applogger.Logger,
) *usecase.InferenceUseCase {
	hf := cfg.Providers.HuggingFace
	return usecase.NewInferenceUseCase(classifier, c, m, l, usecase.InferenceConfig{
		SentimentModel: hf.SentimentModel,
		ZeroShotModel:  hf.ZeroShotModel,
		VisionModel:    hf.VisionModel,
		SentimentTTL:   cfg.Cache.SentimentTTL,
		RugRiskTTL:     cfg.Cache.RugRiskTTL,
		VisionTTL:      cfg.Cache.VisionTTL,
	})
}

// ProvideLimiter returns the per-client limiter, or nil when rate limiting is off.
func ProvideLimiter(cfg *config.Config) *ratelimit.Limiter {
	if !cfg.RateLimit.Enabled {
		return nil
	}
	return ratelimit.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
}

// ProvideRoutes collects every HTTP handler.
func ProvideRoutes(
	cfg *config.Config,
	l *applogger.Logger,
	analyze *usecase.AnalyzeTokenUseCase,
	inference *usecase.InferenceUseCase,
	limiter *ratelimit.Limiter,
) api.Routes {
	return api.Routes{
		api.NewTokenEchoHandler(l, analyze, limiter, cfg.Debug.IncludeUpstreamPayload),
		api.NewInferenceEchoHandler(l, inference, limiter),
	}
}

func ProvideHTTPServer(cfg *config.Config, routes api.Routes, l *applogger.Logger) *xhttp.Server {
	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	return xhttp.NewServer(routes, l,
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithCORS(cfg.Server.CORS),
		xhttp.WithBodyLimit(cfg.Server.BodyLimit),
		xhttp.WithMetricsPath(metricsPath),
	)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, l *applogger.Logger, srv *xhttp.Server, producer *pkgkafka.Producer) *server.App {
	app := server.New(cfg, l, srv)
	if producer != nil && cfg.Log.Digest.Enabled {
		app.WithDigestPublisher(producer)
	}
	return app
}

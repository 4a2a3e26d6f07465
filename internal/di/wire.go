//go:build wireinject
// +build wireinject

package di

import (
	"MemeIQ/internal/usecase"
	"MemeIQ/pkg/config"
	"MemeIQ/pkg/server"

	"github.com/google/wire"
)

var infraSet = wire.NewSet(
	ProvideLogger,
	ProvideMetrics,
	ProvideBreakers,
	ProvideCache,
	ProvideKafkaProducer,
	ProvideAnalysisPublisher,
)

var providerSet = wire.NewSet(
	ProvideMarketData,
	ProvideTextClassifier,
	ProvideSocialFeed,
	ProvideWalletActivity,
	ProvideSentimentEnricher,
	ProvideDevActivityEnricher,
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, func(), error) {
	wire.Build(
		infraSet,
		providerSet,

		// Use cases
		ProvideAnalyzeUseCase,
		ProvideInferenceUseCase,

		// HTTP
		ProvideLimiter,
		ProvideRoutes,
		ProvideHTTPServer,

		// Application server
		ProvideApp,
	)
	return nil, nil, nil
}

// InitializeAnalyzer wires the analysis pipeline alone, for one-shot CLI runs.
func InitializeAnalyzer(cfg *config.Config) (*usecase.AnalyzeTokenUseCase, func(), error) {
	wire.Build(
		infraSet,
		providerSet,
		ProvideAnalyzeUseCase,
	)
	return nil, nil, nil
}

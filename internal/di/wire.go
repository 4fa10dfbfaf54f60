//go:build wireinject
// +build wireinject

package di

import (
	"BtcPulse/pkg/config"
	"BtcPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideKafkaProducer,
		ProvideResponseCache,

		// Providers and pipeline
		ProvideMarketData,
		ProvideSentiment,
		ProvideEngine,
		ProvideAlertGenerator,
		ProvideUseCase,

		// HTTP surface
		ProvideDashboardHandler,
		ProvideStreamHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}

package di

import (
	"fmt"

	"BtcPulse/internal/alerts"
	domsvc "BtcPulse/internal/domain/service"
	"BtcPulse/internal/handler/api"
	icache "BtcPulse/internal/service/cache"
	"BtcPulse/internal/service/marketdata"
	"BtcPulse/internal/service/metrics"
	"BtcPulse/internal/service/sentiment"
	"BtcPulse/internal/signals"
	"BtcPulse/internal/usecase"
	"BtcPulse/pkg/config"
	pkgkafka "BtcPulse/pkg/kafka"
	applogger "BtcPulse/pkg/logger"
	"BtcPulse/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideKafkaProducer creates a Kafka producer, or nil when Kafka is disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}

	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.WriteTimeout, cfg.Kafka.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideMetrics creates the Prometheus metrics recorder.
func ProvideMetrics() domsvc.Metrics {
	return metrics.NewRecorder()
}

// ProvideMarketData creates the CoinGecko market data client.
func ProvideMarketData(cfg *config.Config) domsvc.MarketDataProvider {
	return marketdata.NewCoinGeckoClient(cfg)
}

// ProvideSentiment creates the Alternative.me fear and greed client.
func ProvideSentiment(cfg *config.Config) domsvc.SentimentProvider {
	return sentiment.NewAlternativeMeClient(cfg)
}

// ProvideEngine creates the signal engine.
func ProvideEngine(
	market domsvc.MarketDataProvider,
	sent domsvc.SentimentProvider,
	m domsvc.Metrics,
	l *applogger.Logger,
) *signals.Engine {
	engine := signals.NewEngine(market, sent, m)
	engine.SetLogger(l)
	return engine
}

// ProvideAlertGenerator creates the alert generator.
func ProvideAlertGenerator() *alerts.Generator {
	return alerts.NewGenerator()
}

// ProvideUseCase creates the dashboard use case.
func ProvideUseCase(
	engine *signals.Engine,
	gen *alerts.Generator,
	m domsvc.Metrics,
	producer *pkgkafka.Producer,
	cfg *config.Config,
	l *applogger.Logger,
) *usecase.DashboardUseCase {
	uc := usecase.NewDashboardUseCase(engine, gen, m)
	uc.SetLogger(l)
	if producer != nil && cfg.Kafka.AlertsTopic != "" {
		uc.SetAlertSink(alerts.NewKafkaPublisher(producer, cfg.Kafka.AlertsTopic))
	}
	return uc
}

// ProvideResponseCache picks Redis when configured, in-process TTL otherwise.
func ProvideResponseCache(cfg *config.Config) icache.BytesCache {
	if cfg.Redis.Enabled {
		return icache.NewRedisCache(icache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	return icache.NewTTLCache()
}

// ProvideDashboardHandler creates the REST handler.
func ProvideDashboardHandler(
	l *applogger.Logger,
	uc *usecase.DashboardUseCase,
	cache icache.BytesCache,
	cfg *config.Config,
) *api.DashboardHandler {
	h := api.NewDashboardHandler(l, uc, cfg.Dashboard.ResponseCacheTTL)
	h.SetCache(cache)
	return h
}

// ProvideStreamHandler creates the WebSocket stream handler.
func ProvideStreamHandler(l *applogger.Logger) *api.StreamHandler {
	return api.NewStreamHandler(l)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	uc *usecase.DashboardUseCase,
	dashboard *api.DashboardHandler,
	stream *api.StreamHandler,
	producer *pkgkafka.Producer,
) *server.App {
	app := server.New(cfg, l, uc, dashboard, stream)
	if producer != nil {
		app.SetProducer(producer)
	}
	return app
}

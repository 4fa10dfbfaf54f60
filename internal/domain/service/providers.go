package service

import (
	"context"

	"BtcPulse/internal/domain/models"
)

// MarketDataProvider fetches the current market snapshot for Bitcoin.
type MarketDataProvider interface {
	FetchPriceData(ctx context.Context) (models.PriceData, error)
}

// SentimentProvider fetches the fear/greed sentiment index.
type SentimentProvider interface {
	FetchFearGreed(ctx context.Context) (models.FearGreedData, error)
}

// AlertSink delivers generated alerts to an external channel.
type AlertSink interface {
	Publish(ctx context.Context, alerts []models.Alert) error
	Close() error
}

// Metrics records pipeline observability signals.
type Metrics interface {
	RecordStageLatency(stage string, seconds float64)
	RecordProviderError(provider string)
	RecordLastPrice(price float64)
	RecordAlerts(severity string, count int)
}

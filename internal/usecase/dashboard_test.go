package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"BtcPulse/internal/alerts"
	"BtcPulse/internal/domain/models"
	"BtcPulse/internal/signals"
)

type fakeMarket struct {
	data models.PriceData
	err  error
}

func (f *fakeMarket) FetchPriceData(context.Context) (models.PriceData, error) {
	return f.data, f.err
}

type fakeSentiment struct {
	data models.FearGreedData
	err  error
}

func (f *fakeSentiment) FetchFearGreed(context.Context) (models.FearGreedData, error) {
	return f.data, f.err
}

type fakeSink struct {
	published [][]models.Alert
	err       error
}

func (f *fakeSink) Publish(_ context.Context, a []models.Alert) error {
	f.published = append(f.published, a)
	return f.err
}
func (f *fakeSink) Close() error { return nil }

func sparkline(start, step float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}

func newTestUseCase(market *fakeMarket, sentiment *fakeSentiment) *DashboardUseCase {
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	engine := signals.NewEngine(market, sentiment, nil)
	engine.SetClock(func() time.Time { return fixed })
	gen := alerts.NewGenerator(
		alerts.WithClock(func() time.Time { return fixed }),
		alerts.WithIDGenerator(func(prefix string) string { return prefix }),
	)
	uc := NewDashboardUseCase(engine, gen, nil)
	uc.SetClock(func() time.Time { return fixed })
	return uc
}

func TestEvaluateAssemblesReport(t *testing.T) {
	market := &fakeMarket{data: models.PriceData{
		Current:     64000,
		Change24h:   2.0,
		Change7d:    4.0,
		Change30d:   8.0,
		MarketCap:   1.3e12,
		Volume24h:   4e10,
		Sparkline7d: sparkline(60000, 25, 168),
	}}
	sentiment := &fakeSentiment{data: models.FearGreedData{Value: 45, Classification: "Neutral"}}

	got := newTestUseCase(market, sentiment).Evaluate(context.Background())

	if got.Price.Current != 64000 {
		t.Fatalf("unexpected price %v", got.Price.Current)
	}
	if len(got.Signals) != 7 {
		t.Fatalf("expected 7 signals, got %d", len(got.Signals))
	}
	if got.Decision.Verdict == "" {
		t.Fatalf("decision missing")
	}
	if got.LastUpdated.IsZero() {
		t.Fatalf("lastUpdated not set")
	}
}

func TestEvaluateSurvivesProviderOutage(t *testing.T) {
	market := &fakeMarket{err: errors.New("coingecko down")}
	sentiment := &fakeSentiment{err: errors.New("alternative.me down")}

	got := newTestUseCase(market, sentiment).Evaluate(context.Background())

	if got.Price.Current != 0 {
		t.Fatalf("expected zeroed price snapshot, got %v", got.Price.Current)
	}
	// Sentiment, RSI and volatility are unavailable; momentum, volume and
	// the onchain proxies still run on the zeroed snapshot. The zero
	// market cap reads as a deep-value STRONG_BUY but cannot push the
	// composite out of the neutral band on its own.
	if got.Decision.Verdict != models.VerdictNeutral {
		t.Fatalf("expected NEUTRAL on full outage, got %s", got.Decision.Verdict)
	}
	if got.Decision.SignalBreakdown.Bullish != 1 || got.Decision.SignalBreakdown.Neutral != 3 {
		t.Fatalf("unexpected breakdown %+v", got.Decision.SignalBreakdown)
	}
}

func TestEvaluateDeliversAlerts(t *testing.T) {
	// 9.2% move in 24h guarantees at least one alert.
	market := &fakeMarket{data: models.PriceData{
		Current:     64150,
		Change24h:   9.2,
		MarketCap:   1.3e12,
		Volume24h:   4e10,
		Sparkline7d: sparkline(58000, 40, 168),
	}}
	sentiment := &fakeSentiment{data: models.FearGreedData{Value: 50, Classification: "Neutral"}}

	uc := newTestUseCase(market, sentiment)
	sink := &fakeSink{}
	uc.SetAlertSink(sink)

	got := uc.Evaluate(context.Background())

	if len(got.Alerts) == 0 {
		t.Fatalf("expected alerts for a 9.2%% move")
	}
	if len(sink.published) != 1 {
		t.Fatalf("expected one publish call, got %d", len(sink.published))
	}
	if len(sink.published[0]) != len(got.Alerts) {
		t.Fatalf("published %d alerts, report has %d", len(sink.published[0]), len(got.Alerts))
	}
}

func TestEvaluateSinkFailureIsNonFatal(t *testing.T) {
	market := &fakeMarket{data: models.PriceData{
		Current:     64150,
		Change24h:   9.2,
		MarketCap:   1.3e12,
		Volume24h:   4e10,
		Sparkline7d: sparkline(58000, 40, 168),
	}}
	sentiment := &fakeSentiment{data: models.FearGreedData{Value: 50, Classification: "Neutral"}}

	uc := newTestUseCase(market, sentiment)
	uc.SetAlertSink(&fakeSink{err: errors.New("broker unreachable")})

	got := uc.Evaluate(context.Background())
	if got == nil || len(got.Alerts) == 0 {
		t.Fatalf("report must be produced despite sink failure")
	}
}

func TestEvaluateNoSinkNoAlertPublish(t *testing.T) {
	market := &fakeMarket{data: models.PriceData{
		Current:     64000,
		Sparkline7d: sparkline(64000, 0, 24),
		MarketCap:   1.3e12,
	}}
	sentiment := &fakeSentiment{data: models.FearGreedData{Value: 50, Classification: "Neutral"}}

	// Must not panic without a sink.
	got := newTestUseCase(market, sentiment).Evaluate(context.Background())
	if got == nil {
		t.Fatalf("expected report")
	}
}

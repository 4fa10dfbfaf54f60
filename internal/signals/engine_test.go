package signals

import (
	"context"
	"errors"
	"testing"
	"time"

	"BtcPulse/internal/domain/models"
	domsvc "BtcPulse/internal/domain/service"
)

type stubMarket struct {
	data models.PriceData
	err  error
}

func (s *stubMarket) FetchPriceData(context.Context) (models.PriceData, error) {
	return s.data, s.err
}

type stubSentiment struct {
	data models.FearGreedData
	err  error
}

func (s *stubSentiment) FetchFearGreed(context.Context) (models.FearGreedData, error) {
	return s.data, s.err
}

type stubMetrics struct {
	providerErrors map[string]int
	lastPrice      float64
}

func (m *stubMetrics) RecordStageLatency(string, float64) {}
func (m *stubMetrics) RecordProviderError(provider string) {
	if m.providerErrors == nil {
		m.providerErrors = map[string]int{}
	}
	m.providerErrors[provider]++
}
func (m *stubMetrics) RecordLastPrice(p float64) { m.lastPrice = p }
func (m *stubMetrics) RecordAlerts(string, int)  {}

var _ domsvc.Metrics = (*stubMetrics)(nil)

func healthyPrice() models.PriceData {
	return models.PriceData{
		Current:     64000,
		Change24h:   2.1,
		Change7d:    5.4,
		Change30d:   12.0,
		MarketCap:   1.3e12,
		Volume24h:   4e10,
		Sparkline7d: linearSparkline(60000, 25, 168),
	}
}

func TestCollectHappyPath(t *testing.T) {
	e := NewEngine(
		&stubMarket{data: healthyPrice()},
		&stubSentiment{data: models.FearGreedData{Value: 25, Classification: "Fear"}},
		&stubMetrics{},
	)
	e.SetClock(func() time.Time { return testNow })

	price, got := e.Collect(context.Background())
	if price.Current != 64000 {
		t.Fatalf("unexpected price %v", price.Current)
	}
	if len(got) != 7 {
		t.Fatalf("expected 7 signals, got %d", len(got))
	}

	wantOrder := []string{"fear-greed-index", "rsi", "momentum", "volatility", "volume", "market-cap-level", "price-trend-30d"}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}

	if got[0].Verdict != models.VerdictBuy {
		t.Fatalf("fear at 25 should read contrarian BUY, got %s", got[0].Verdict)
	}
	if got[0].Confidence != 80 {
		t.Fatalf("unexpected sentiment confidence %d", got[0].Confidence)
	}
}

func TestCollectSentimentDown(t *testing.T) {
	m := &stubMetrics{}
	e := NewEngine(
		&stubMarket{data: healthyPrice()},
		&stubSentiment{err: errors.New("503")},
		m,
	)
	e.SetClock(func() time.Time { return testNow })

	_, got := e.Collect(context.Background())
	fg := got[0]
	if fg.Confidence != 0 {
		t.Fatalf("failed sentiment fetch must yield confidence 0, got %d", fg.Confidence)
	}
	if fg.DisplayValue != "Indisponible" || fg.Value != -1 {
		t.Fatalf("unexpected fallback signal %+v", fg)
	}
	if m.providerErrors["fear_greed"] != 1 {
		t.Fatalf("provider error not recorded: %v", m.providerErrors)
	}
}

func TestCollectMarketDown(t *testing.T) {
	m := &stubMetrics{}
	e := NewEngine(
		&stubMarket{err: errors.New("timeout")},
		&stubSentiment{data: models.FearGreedData{Value: 50, Classification: "Neutral"}},
		m,
	)
	e.SetClock(func() time.Time { return testNow })

	price, got := e.Collect(context.Background())
	if price.Current != 0 || len(price.Sparkline7d) != 0 {
		t.Fatalf("expected zeroed snapshot, got %+v", price)
	}

	byID := map[string]models.Signal{}
	for _, s := range got {
		byID[s.ID] = s
	}
	// Sparkline-based indicators degrade to confidence 0 on the zero snapshot.
	if byID["rsi"].Confidence != 0 || byID["volatility"].Confidence != 0 {
		t.Fatalf("sparkline signals should be unavailable: rsi=%d volatility=%d",
			byID["rsi"].Confidence, byID["volatility"].Confidence)
	}
	// Sentiment still works independently.
	if byID["fear-greed-index"].Confidence != 80 {
		t.Fatalf("sentiment should survive a market outage, got %d", byID["fear-greed-index"].Confidence)
	}
	if m.providerErrors["coingecko"] != 1 {
		t.Fatalf("provider error not recorded: %v", m.providerErrors)
	}
	if m.lastPrice != 0 {
		t.Fatalf("zero snapshot must not record a price, got %v", m.lastPrice)
	}
}

func TestCollectTimestampsUseInjectedClock(t *testing.T) {
	e := NewEngine(
		&stubMarket{data: healthyPrice()},
		&stubSentiment{err: errors.New("down")},
		&stubMetrics{},
	)
	e.SetClock(func() time.Time { return testNow })

	_, got := e.Collect(context.Background())
	for _, s := range got {
		if !s.LastUpdated.Equal(testNow) {
			t.Fatalf("%s: expected injected timestamp, got %v", s.ID, s.LastUpdated)
		}
	}
}

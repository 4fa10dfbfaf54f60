package signals

import (
	"context"
	"math"
	"strconv"
	"sync"
	"time"

	"BtcPulse/internal/domain/models"
	domsvc "BtcPulse/internal/domain/service"
	applogger "BtcPulse/pkg/logger"
)

// Engine produces the full signal list plus the price snapshot for one
// evaluation cycle. Price and sentiment are fetched concurrently; every
// fetch failure degrades to a zeroed snapshot or a confidence-0 signal,
// never to an aborted run.
type Engine struct {
	market    domsvc.MarketDataProvider
	sentiment domsvc.SentimentProvider
	metrics   domsvc.Metrics
	l         *applogger.Logger
	now       func() time.Time
}

func NewEngine(market domsvc.MarketDataProvider, sentiment domsvc.SentimentProvider, metrics domsvc.Metrics) *Engine {
	return &Engine{
		market:    market,
		sentiment: sentiment,
		metrics:   metrics,
		now:       time.Now,
	}
}

// SetLogger injects a structured logger.
func (e *Engine) SetLogger(l *applogger.Logger) { e.l = l }

// SetClock overrides the timestamp source; used by tests.
func (e *Engine) SetClock(now func() time.Time) { e.now = now }

// Collect gathers all signals for one run. The returned PriceData is the
// all-zero fallback when the market provider fails.
func (e *Engine) Collect(ctx context.Context) (models.PriceData, []models.Signal) {
	now := e.now()

	type item struct {
		name string
		val  interface{}
		err  error
	}
	ch := make(chan item, 2)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := e.market.FetchPriceData(ctx)
		ch <- item{"price", v, err}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := e.sentiment.FetchFearGreed(ctx)
		ch <- item{"sentiment", v, err}
	}()

	go func() { wg.Wait(); close(ch) }()

	price := fallbackPriceData()
	fearGreed := buildFearGreedFallback(now)

	for it := range ch {
		switch it.name {
		case "price":
			if it.err != nil {
				e.recordProviderError("coingecko", it.err)
				continue
			}
			price = it.val.(models.PriceData)
		case "sentiment":
			if it.err != nil {
				e.recordProviderError("fear_greed", it.err)
				continue
			}
			fearGreed = buildFearGreedSignal(it.val.(models.FearGreedData), now)
		}
	}

	signals := make([]models.Signal, 0, 7)
	signals = append(signals, fearGreed)
	signals = append(signals, computeTechnicalSignals(price, now)...)
	signals = append(signals, computeOnchainSignals(price, now)...)

	if e.metrics != nil && price.Current > 0 {
		e.metrics.RecordLastPrice(price.Current)
	}
	return price, signals
}

func (e *Engine) recordProviderError(provider string, err error) {
	if e.metrics != nil {
		e.metrics.RecordProviderError(provider)
	}
	if e.l != nil {
		e.l.Warn("provider fetch failed", applogger.String("provider", provider), applogger.Error(err))
	}
}

// fallbackPriceData is the documented all-zero snapshot; downstream
// indicator math must tolerate it without dividing by zero.
func fallbackPriceData() models.PriceData {
	return models.PriceData{Sparkline7d: []float64{}}
}

// unavailableSignal marks an indicator that lacks enough samples.
func unavailableSignal(id, name string, category models.SignalCategory, now time.Time) models.Signal {
	return models.Signal{
		ID:           id,
		Name:         name,
		Category:     category,
		DisplayValue: "Indisponible",
		Verdict:      models.VerdictNeutral,
		Weight:       0.1,
		Confidence:   0,
		Source:       "N/A",
		LastUpdated:  now,
	}
}

func round1(x float64) float64 { return math.Round(x*10) / 10 }

func round2(x float64) float64 { return math.Round(x*100) / 100 }

func signPrefix(x float64) string {
	if x > 0 {
		return "+"
	}
	return ""
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

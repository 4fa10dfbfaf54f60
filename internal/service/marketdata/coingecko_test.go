package marketdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"BtcPulse/pkg/config"
)

const coinGeckoFixture = `{
  "market_data": {
    "current_price": {"usd": 64123.5},
    "price_change_percentage_24h": 2.1,
    "price_change_percentage_7d": 5.4,
    "price_change_percentage_30d": -3.2,
    "high_24h": {"usd": 65000},
    "low_24h": {"usd": 63000},
    "market_cap": {"usd": 1260000000000},
    "total_volume": {"usd": 41000000000},
    "sparkline_7d": {"price": [63000, 63500, 64000]}
  }
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) (*CoinGeckoClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.CoinGecko.BaseURL = srv.URL
	cfg.CoinGecko.CoinID = "bitcoin"
	cfg.CoinGecko.Timeout = 5 * time.Second
	cfg.CoinGecko.CacheTTL = time.Minute
	return NewCoinGeckoClient(cfg), srv
}

func TestFetchPriceData(t *testing.T) {
	var path string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		if r.URL.Query().Get("sparkline") != "true" {
			t.Errorf("sparkline param missing")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(coinGeckoFixture))
	})

	got, err := c.FetchPriceData(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != "/coins/bitcoin" {
		t.Fatalf("unexpected path %q", path)
	}
	if got.Current != 64123.5 {
		t.Fatalf("unexpected price %v", got.Current)
	}
	if got.Change30d != -3.2 {
		t.Fatalf("unexpected change30d %v", got.Change30d)
	}
	if len(got.Sparkline7d) != 3 {
		t.Fatalf("unexpected sparkline %v", got.Sparkline7d)
	}
}

func TestFetchPriceDataCaches(t *testing.T) {
	calls := 0
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(coinGeckoFixture))
	})

	for i := 0; i < 3; i++ {
		if _, err := c.FetchPriceData(context.Background()); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
	if calls != 1 {
		t.Fatalf("expected 1 upstream call within the cache window, got %d", calls)
	}
}

func TestFetchPriceDataNilSparkline(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"market_data": {"current_price": {"usd": 100}}}`))
	})

	got, err := c.FetchPriceData(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Sparkline7d == nil || len(got.Sparkline7d) != 0 {
		t.Fatalf("expected empty non-nil sparkline, got %#v", got.Sparkline7d)
	}
}

func TestFetchPriceDataUpstreamError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	if _, err := c.FetchPriceData(context.Background()); err == nil {
		t.Fatalf("expected error on 429")
	}
}

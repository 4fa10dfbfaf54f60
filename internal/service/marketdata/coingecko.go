package marketdata

import (
	"context"
	"fmt"
	"time"

	"BtcPulse/internal/domain/models"
	domsvc "BtcPulse/internal/domain/service"
	icache "BtcPulse/internal/service/cache"
	"BtcPulse/pkg/config"
	xhttp "BtcPulse/pkg/http"
	applogger "BtcPulse/pkg/logger"
)

const cacheKey = "marketdata:price"

// CoinGeckoClient fetches the Bitcoin market snapshot from the CoinGecko
// REST API. Responses are cached for a short window so repeated pipeline
// runs do not hammer the upstream rate limit.
type CoinGeckoClient struct {
	baseURL  string
	coinID   string
	cacheTTL time.Duration
	client   *xhttp.Client
	cache    *icache.TTLCache
	l        *applogger.Logger
}

func NewCoinGeckoClient(cfg *config.Config) *CoinGeckoClient {
	return &CoinGeckoClient{
		baseURL:  cfg.CoinGecko.BaseURL,
		coinID:   cfg.CoinGecko.CoinID,
		cacheTTL: cfg.CoinGecko.CacheTTL,
		client:   xhttp.NewClient(xhttp.WithTimeout(cfg.CoinGecko.Timeout)),
		cache:    icache.NewTTLCache(),
	}
}

// SetLogger injects a structured logger.
func (c *CoinGeckoClient) SetLogger(l *applogger.Logger) { c.l = l }

type coinGeckoResponse struct {
	MarketData struct {
		CurrentPrice struct {
			USD float64 `json:"usd"`
		} `json:"current_price"`
		PriceChangePercentage24h float64 `json:"price_change_percentage_24h"`
		PriceChangePercentage7d  float64 `json:"price_change_percentage_7d"`
		PriceChangePercentage30d float64 `json:"price_change_percentage_30d"`
		High24h                  struct {
			USD float64 `json:"usd"`
		} `json:"high_24h"`
		Low24h struct {
			USD float64 `json:"usd"`
		} `json:"low_24h"`
		MarketCap struct {
			USD float64 `json:"usd"`
		} `json:"market_cap"`
		TotalVolume struct {
			USD float64 `json:"usd"`
		} `json:"total_volume"`
		Sparkline7d struct {
			Price []float64 `json:"price"`
		} `json:"sparkline_7d"`
	} `json:"market_data"`
}

// FetchPriceData returns the current market snapshot, from cache when the
// window has not expired yet.
func (c *CoinGeckoClient) FetchPriceData(ctx context.Context) (models.PriceData, error) {
	if v, ok := c.cache.Get(cacheKey); ok {
		if p, ok2 := v.(models.PriceData); ok2 {
			return p, nil
		}
	}

	var resp coinGeckoResponse
	err := c.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    fmt.Sprintf("%s/coins/%s", c.baseURL, c.coinID),
		QueryParams: map[string][]string{
			"localization":   {"false"},
			"tickers":        {"false"},
			"community_data": {"false"},
			"developer_data": {"false"},
			"sparkline":      {"true"},
		},
	}, &resp)
	if err != nil {
		return models.PriceData{}, fmt.Errorf("coingecko fetch: %w", err)
	}

	md := resp.MarketData
	price := models.PriceData{
		Current:     md.CurrentPrice.USD,
		Change24h:   md.PriceChangePercentage24h,
		Change7d:    md.PriceChangePercentage7d,
		Change30d:   md.PriceChangePercentage30d,
		High24h:     md.High24h.USD,
		Low24h:      md.Low24h.USD,
		MarketCap:   md.MarketCap.USD,
		Volume24h:   md.TotalVolume.USD,
		Sparkline7d: md.Sparkline7d.Price,
	}
	if price.Sparkline7d == nil {
		price.Sparkline7d = []float64{}
	}

	c.cache.Set(cacheKey, price, c.cacheTTL)
	if c.l != nil {
		c.l.Debug("marketdata fetched", applogger.Float64("price", price.Current))
	}
	return price, nil
}

var _ domsvc.MarketDataProvider = (*CoinGeckoClient)(nil)

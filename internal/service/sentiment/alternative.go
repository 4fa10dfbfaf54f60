package sentiment

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"BtcPulse/internal/domain/models"
	domsvc "BtcPulse/internal/domain/service"
	icache "BtcPulse/internal/service/cache"
	"BtcPulse/pkg/config"
	xhttp "BtcPulse/pkg/http"
	"BtcPulse/pkg/util"
)

const cacheKey = "sentiment:fng"

// AlternativeMeClient fetches the Fear & Greed Index from Alternative.me.
type AlternativeMeClient struct {
	baseURL  string
	cacheTTL time.Duration
	client   *xhttp.Client
	cache    *icache.TTLCache
}

func NewAlternativeMeClient(cfg *config.Config) *AlternativeMeClient {
	return &AlternativeMeClient{
		baseURL:  cfg.FearGreed.BaseURL,
		cacheTTL: cfg.FearGreed.CacheTTL,
		client:   xhttp.NewClient(xhttp.WithTimeout(cfg.FearGreed.Timeout)),
		cache:    icache.NewTTLCache(),
	}
}

type fngResponse struct {
	Data []struct {
		Value               string `json:"value"`
		ValueClassification string `json:"value_classification"`
		Timestamp           string `json:"timestamp"`
	} `json:"data"`
}

// FetchFearGreed returns the latest index reading, from cache when fresh.
func (c *AlternativeMeClient) FetchFearGreed(ctx context.Context) (models.FearGreedData, error) {
	if v, ok := c.cache.Get(cacheKey); ok {
		if fg, ok2 := v.(models.FearGreedData); ok2 {
			return fg, nil
		}
	}

	var resp fngResponse
	err := c.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         c.baseURL + "/fng/",
		QueryParams: map[string][]string{"limit": {"1"}},
	}, &resp)
	if err != nil {
		return models.FearGreedData{}, fmt.Errorf("fear greed fetch: %w", err)
	}
	if len(resp.Data) == 0 {
		return models.FearGreedData{}, fmt.Errorf("fear greed: empty response")
	}

	value, err := strconv.Atoi(resp.Data[0].Value)
	if err != nil {
		return models.FearGreedData{}, fmt.Errorf("fear greed: bad value %q: %w", resp.Data[0].Value, err)
	}

	fg := models.FearGreedData{
		Value:          value,
		Classification: resp.Data[0].ValueClassification,
		Timestamp:      util.ParseTimeDefault(resp.Data[0].Timestamp, time.Now()),
	}
	c.cache.Set(cacheKey, fg, c.cacheTTL)
	return fg, nil
}

var _ domsvc.SentimentProvider = (*AlternativeMeClient)(nil)

package models

import "time"

// SignalVerdict is the ordinal verdict scale, symmetric around NEUTRAL.
type SignalVerdict string

const (
	VerdictStrongBuy  SignalVerdict = "STRONG_BUY"
	VerdictBuy        SignalVerdict = "BUY"
	VerdictNeutral    SignalVerdict = "NEUTRAL"
	VerdictSell       SignalVerdict = "SELL"
	VerdictStrongSell SignalVerdict = "STRONG_SELL"
)

// SignalCategory groups signals by their data source family.
type SignalCategory string

const (
	CategoryTechnical SignalCategory = "technical"
	CategorySentiment SignalCategory = "sentiment"
	CategoryOnchain   SignalCategory = "onchain"
	CategoryMacro     SignalCategory = "macro"
)

// Signal is one normalized market observation. Signals are built fresh on
// every pipeline run and never mutated afterwards. Confidence 0 marks an
// unavailable signal; the decision layer skips those.
type Signal struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Category     SignalCategory `json:"category"`
	Description  string         `json:"description"`
	Value        float64        `json:"value"`
	DisplayValue string         `json:"displayValue"`
	Verdict      SignalVerdict  `json:"verdict"`
	Weight       float64        `json:"weight"`     // 0-1, importance in composite score
	Confidence   int            `json:"confidence"` // 0-100
	Source       string         `json:"source"`
	LastUpdated  time.Time      `json:"lastUpdated"`
	Details      string         `json:"details,omitempty"`
}

// PriceData holds the market snapshot for one evaluation cycle.
// Sparkline7d is chronological and feeds the technical indicators.
type PriceData struct {
	Current     float64   `json:"current"`
	Change24h   float64   `json:"change24h"`
	Change7d    float64   `json:"change7d"`
	Change30d   float64   `json:"change30d"`
	High24h     float64   `json:"high24h"`
	Low24h      float64   `json:"low24h"`
	MarketCap   float64   `json:"marketCap"`
	Volume24h   float64   `json:"volume24h"`
	Sparkline7d []float64 `json:"sparkline7d"`
}

// FearGreedData is the raw sentiment-index reading.
type FearGreedData struct {
	Value          int       `json:"value"`
	Classification string    `json:"classification"`
	Timestamp      time.Time `json:"timestamp"`
}

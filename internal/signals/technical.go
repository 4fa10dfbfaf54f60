package signals

import (
	"fmt"
	"math"
	"time"

	"BtcPulse/internal/domain/models"
)

// Technical indicators derived from the 7-day sparkline and the price
// change percentages. Each builder returns a complete Signal even when
// the input is too short; scarcity degrades to confidence 0 instead of
// an error.

const rsiPeriods = 14

func computeTechnicalSignals(price models.PriceData, now time.Time) []models.Signal {
	return []models.Signal{
		computeRSI(price.Sparkline7d, now),
		computeMomentum(price, now),
		computeVolatility(price.Sparkline7d, now),
		computeVolumeSignal(price, now),
	}
}

func computeRSI(sparkline []float64, now time.Time) models.Signal {
	if len(sparkline) < rsiPeriods {
		return unavailableSignal("rsi", "RSI (14)", models.CategoryTechnical, now)
	}

	// Downsample the hourly sparkline to ~14 points.
	prices := sparkline
	if len(prices) > 168 {
		prices = prices[len(prices)-168:]
	}
	step := len(prices) / rsiPeriods
	if step < 1 {
		step = 1
	}
	sampled := make([]float64, 0, rsiPeriods+1)
	for i := 0; i < len(prices); i += step {
		sampled = append(sampled, prices[i])
	}

	periods := len(sampled) - 1
	if periods > rsiPeriods {
		periods = rsiPeriods
	}

	var gains, losses float64
	for i := len(sampled) - periods; i < len(sampled); i++ {
		change := sampled[i] - sampled[i-1]
		if change > 0 {
			gains += change
		} else {
			losses += math.Abs(change)
		}
	}

	avgGain := gains / float64(periods)
	avgLoss := losses / float64(periods)
	rs := 100.0
	if avgLoss != 0 {
		rs = avgGain / avgLoss
	}
	rsi := 100 - 100/(1+rs)
	rounded := round1(rsi)

	verdict := models.VerdictNeutral
	var details string
	switch {
	case rsi <= 30:
		verdict = models.VerdictStrongBuy
		details = fmt.Sprintf("RSI à %v: zone de survente. Signal d'achat fort.", rounded)
	case rsi <= 40:
		verdict = models.VerdictBuy
		details = fmt.Sprintf("RSI à %v: approche de la zone de survente.", rounded)
	case rsi >= 70:
		verdict = models.VerdictStrongSell
		details = fmt.Sprintf("RSI à %v: zone de surachat. Signal de vente fort.", rounded)
	case rsi >= 60:
		verdict = models.VerdictSell
		details = fmt.Sprintf("RSI à %v: approche de la zone de surachat.", rounded)
	default:
		details = fmt.Sprintf("RSI à %v: zone neutre.", rounded)
	}

	return models.Signal{
		ID:           "rsi",
		Name:         "RSI (14)",
		Category:     models.CategoryTechnical,
		Description:  "Relative Strength Index - mesure la vitesse et l'amplitude des mouvements de prix",
		Value:        rounded,
		DisplayValue: formatFloat(rounded),
		Verdict:      verdict,
		Weight:       0.2,
		Confidence:   70,
		Source:       "Calculé à partir des données CoinGecko",
		LastUpdated:  now,
		Details:      details,
	}
}

func computeMomentum(price models.PriceData, now time.Time) models.Signal {
	score := price.Change24h*0.2 + price.Change7d*0.3 + price.Change30d*0.5

	verdict := models.VerdictNeutral
	var details string
	switch {
	case score > 15:
		verdict = models.VerdictStrongBuy
		details = "Momentum très haussier sur toutes les périodes."
	case score > 5:
		verdict = models.VerdictBuy
		details = "Momentum haussier. Tendance positive."
	case score < -15:
		verdict = models.VerdictStrongSell
		details = "Momentum très baissier sur toutes les périodes."
	case score < -5:
		verdict = models.VerdictSell
		details = "Momentum baissier. Tendance négative."
	default:
		details = "Momentum neutre. Pas de tendance claire."
	}

	return models.Signal{
		ID:           "momentum",
		Name:         "Momentum",
		Category:     models.CategoryTechnical,
		Description:  "Analyse de la tendance basée sur les variations 24h, 7j et 30j",
		Value:        round2(score),
		DisplayValue: fmt.Sprintf("%s%.1f%%", signPrefix(score), score),
		Verdict:      verdict,
		Weight:       0.15,
		Confidence:   75,
		Source:       "Calculé à partir des données CoinGecko",
		LastUpdated:  now,
		Details: fmt.Sprintf("24h: %.1f%% | 7j: %.1f%% | 30j: %.1f%%. %s",
			price.Change24h, price.Change7d, price.Change30d, details),
	}
}

func computeVolatility(sparkline []float64, now time.Time) models.Signal {
	if len(sparkline) < 10 {
		return unavailableSignal("volatility", "Volatilité", models.CategoryTechnical, now)
	}

	// Coefficient of variation over the whole window.
	var sum float64
	for _, v := range sparkline {
		sum += v
	}
	mean := sum / float64(len(sparkline))

	var variance float64
	for _, v := range sparkline {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(sparkline))
	cv := math.Sqrt(variance) / mean * 100
	rounded := round2(cv)

	verdict := models.VerdictNeutral
	var details string
	switch {
	case cv > 8:
		verdict = models.VerdictSell
		details = "Volatilité très élevée. Risque accru, prudence recommandée."
	case cv > 5:
		details = "Volatilité modérée. Conditions normales de marché."
	case cv < 2:
		verdict = models.VerdictBuy
		details = "Faible volatilité. Période de consolidation, possible mouvement à venir."
	default:
		details = "Volatilité normale."
	}

	return models.Signal{
		ID:           "volatility",
		Name:         "Volatilité (7j)",
		Category:     models.CategoryTechnical,
		Description:  "Coefficient de variation du prix sur 7 jours",
		Value:        rounded,
		DisplayValue: fmt.Sprintf("%v%%", formatFloat(rounded)),
		Verdict:      verdict,
		Weight:       0.1,
		Confidence:   65,
		Source:       "Calculé à partir des données CoinGecko",
		LastUpdated:  now,
		Details:      details,
	}
}

func computeVolumeSignal(price models.PriceData, now time.Time) models.Signal {
	var volumeToMcap float64
	if price.MarketCap > 0 {
		volumeToMcap = price.Volume24h / price.MarketCap * 100
	}
	rounded := round2(volumeToMcap)

	verdict := models.VerdictNeutral
	var details string
	switch {
	case volumeToMcap > 10:
		// Very high volume can signal either direction.
		details = "Volume exceptionnel. Forte activité, possible mouvement majeur en cours."
	case volumeToMcap > 5:
		if price.Change24h > 0 {
			verdict = models.VerdictBuy
			details = "Volume élevé avec hausse des prix. Confirmation de la tendance haussière."
		} else {
			verdict = models.VerdictSell
			details = "Volume élevé avec baisse des prix. Confirmation de la tendance baissière."
		}
	case volumeToMcap < 2:
		details = "Faible volume. Manque de conviction du marché."
	default:
		details = "Volume normal."
	}

	return models.Signal{
		ID:           "volume",
		Name:         "Volume Relatif",
		Category:     models.CategoryTechnical,
		Description:  "Ratio volume/capitalisation sur 24h",
		Value:        rounded,
		DisplayValue: fmt.Sprintf("%v%%", formatFloat(rounded)),
		Verdict:      verdict,
		Weight:       0.1,
		Confidence:   60,
		Source:       "CoinGecko",
		LastUpdated:  now,
		Details:      details,
	}
}

package signals

import (
	"fmt"
	"math"
	"time"

	"BtcPulse/internal/domain/models"
)

// On-chain proxy signals. Full on-chain data (MVRV, SOPR, exchange
// flows) requires paid APIs; these are derived from market data instead.

func computeOnchainSignals(price models.PriceData, now time.Time) []models.Signal {
	return []models.Signal{
		computeMarketCapLevel(price, now),
		compute30dTrend(price, now),
	}
}

func computeMarketCapLevel(price models.PriceData, now time.Time) models.Signal {
	mcapTrillions := price.MarketCap / 1e12

	verdict := models.VerdictNeutral
	var details string
	switch {
	case mcapTrillions < 0.5:
		verdict = models.VerdictStrongBuy
		details = fmt.Sprintf("Cap. de marché à %.2fT$. Niveaux historiquement bas, fort potentiel de hausse.", mcapTrillions)
	case mcapTrillions < 1:
		verdict = models.VerdictBuy
		details = fmt.Sprintf("Cap. de marché à %.2fT$. Encore du potentiel de croissance.", mcapTrillions)
	case mcapTrillions > 2.5:
		verdict = models.VerdictSell
		details = fmt.Sprintf("Cap. de marché à %.2fT$. Niveaux élevés, prudence.", mcapTrillions)
	default:
		details = fmt.Sprintf("Cap. de marché à %.2fT$.", mcapTrillions)
	}

	return models.Signal{
		ID:           "market-cap-level",
		Name:         "Niveau de Capitalisation",
		Category:     models.CategoryOnchain,
		Description:  "Analyse du niveau de capitalisation boursière de Bitcoin",
		Value:        mcapTrillions,
		DisplayValue: fmt.Sprintf("%.2fT $", mcapTrillions),
		Verdict:      verdict,
		Weight:       0.1,
		Confidence:   55,
		Source:       "CoinGecko",
		LastUpdated:  now,
		Details:      details,
	}
}

func compute30dTrend(price models.PriceData, now time.Time) models.Signal {
	change30d := price.Change30d

	verdict := models.VerdictNeutral
	var details string
	switch {
	case change30d < -30:
		verdict = models.VerdictStrongBuy
		details = fmt.Sprintf("Baisse de %.1f%% sur 30j. Correction majeure, potentielle opportunité.", math.Abs(change30d))
	case change30d < -15:
		verdict = models.VerdictBuy
		details = fmt.Sprintf("Baisse de %.1f%% sur 30j. Correction significative.", math.Abs(change30d))
	case change30d > 40:
		verdict = models.VerdictStrongSell
		details = fmt.Sprintf("Hausse de %.1f%% sur 30j. Possible surchauffe du marché.", change30d)
	case change30d > 20:
		verdict = models.VerdictSell
		details = fmt.Sprintf("Hausse de %.1f%% sur 30j. Rallye important, risque de correction.", change30d)
	default:
		details = fmt.Sprintf("Variation de %s%.1f%% sur 30j. Mouvement modéré.", signPrefix(change30d), change30d)
	}

	return models.Signal{
		ID:           "price-trend-30d",
		Name:         "Tendance 30 Jours",
		Category:     models.CategoryOnchain,
		Description:  "Variation du prix sur 30 jours - indicateur de cycles",
		Value:        change30d,
		DisplayValue: fmt.Sprintf("%s%.1f%%", signPrefix(change30d), change30d),
		Verdict:      verdict,
		Weight:       0.1,
		Confidence:   60,
		Source:       "CoinGecko",
		LastUpdated:  now,
		Details:      details,
	}
}

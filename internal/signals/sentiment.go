package signals

import (
	"fmt"
	"time"

	"BtcPulse/internal/domain/models"
)

// buildFearGreedSignal maps the sentiment index to a contrarian verdict:
// extreme fear is a buy opportunity, extreme greed a sell signal.
func buildFearGreedSignal(fg models.FearGreedData, now time.Time) models.Signal {
	value := fg.Value
	updated := fg.Timestamp
	if updated.IsZero() {
		updated = now
	}
	return models.Signal{
		ID:           "fear-greed-index",
		Name:         "Fear & Greed Index",
		Category:     models.CategorySentiment,
		Description:  "Mesure le sentiment du marché crypto de 0 (peur extrême) à 100 (avidité extrême)",
		Value:        float64(value),
		DisplayValue: fmt.Sprintf("%d - %s", value, fg.Classification),
		Verdict:      fearGreedVerdict(value),
		Weight:       0.15,
		Confidence:   80,
		Source:       "Alternative.me",
		LastUpdated:  updated,
		Details:      fearGreedDetails(value, fg.Classification),
	}
}

// buildFearGreedFallback is emitted when the sentiment provider is down;
// confidence 0 excludes it from the composite decision.
func buildFearGreedFallback(now time.Time) models.Signal {
	return models.Signal{
		ID:           "fear-greed-index",
		Name:         "Fear & Greed Index",
		Category:     models.CategorySentiment,
		Description:  "Mesure le sentiment du marché crypto",
		Value:        -1,
		DisplayValue: "Indisponible",
		Verdict:      models.VerdictNeutral,
		Weight:       0.15,
		Confidence:   0,
		Source:       "Alternative.me",
		LastUpdated:  now,
	}
}

func fearGreedVerdict(value int) models.SignalVerdict {
	switch {
	case value <= 20:
		return models.VerdictStrongBuy
	case value <= 35:
		return models.VerdictBuy
	case value <= 65:
		return models.VerdictNeutral
	case value <= 80:
		return models.VerdictSell
	default:
		return models.VerdictStrongSell
	}
}

func fearGreedDetails(value int, classification string) string {
	switch {
	case value <= 20:
		return fmt.Sprintf("Peur extrême (%s). Historiquement, c'est souvent un bon moment pour acheter.", classification)
	case value <= 35:
		return fmt.Sprintf("Peur (%s). Le marché est pessimiste, potentielle opportunité d'achat.", classification)
	case value <= 65:
		return fmt.Sprintf("Zone neutre (%s). Pas de signal fort dans un sens ou l'autre.", classification)
	case value <= 80:
		return fmt.Sprintf("Avidité (%s). Le marché est optimiste, prudence recommandée.", classification)
	default:
		return fmt.Sprintf("Avidité extrême (%s). Historiquement, c'est souvent un signal de vente.", classification)
	}
}

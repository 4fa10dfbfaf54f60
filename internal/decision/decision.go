package decision

import (
	"fmt"
	"math"

	"BtcPulse/internal/domain/models"
)

// Compute reduces the signal list to one composite decision. Signals with
// confidence 0 are unavailable and excluded; with no valid signal at all
// the neutral default is returned.
//
// Two distinct threshold sets are used on purpose: the composite verdict
// bands (±50/±20) demand stronger consensus than the per-signal
// bullish/bearish bucketing (±10). Collapsing them would silently change
// classification behavior.
func Compute(signals []models.Signal) models.DecisionResult {
	valid := make([]models.Signal, 0, len(signals))
	for _, s := range signals {
		if s.Confidence > 0 {
			valid = append(valid, s)
		}
	}

	if len(valid) == 0 {
		return models.DecisionResult{
			Verdict:   models.VerdictNeutral,
			Reasoning: []string{"Aucun signal disponible."},
		}
	}

	var weightedScoreSum, totalWeight float64
	var totalConfidence int
	var bullish, bearish, neutral int
	perSignal := make([]string, 0, len(valid))

	for _, s := range valid {
		numericScore := verdictScores[s.Verdict]
		effectiveWeight := s.Weight * float64(s.Confidence) / 100

		weightedScoreSum += float64(numericScore) * effectiveWeight
		totalWeight += effectiveWeight
		totalConfidence += s.Confidence

		direction := "neutre"
		switch {
		case numericScore > 10:
			bullish++
			direction = "haussier"
		case numericScore < -10:
			bearish++
			direction = "baissier"
		default:
			neutral++
		}

		perSignal = append(perSignal, fmt.Sprintf("%s: %s → signal %s", s.Name, s.DisplayValue, direction))
	}

	compositeScore := 0
	if totalWeight > 0 {
		compositeScore = int(math.Round(weightedScoreSum / totalWeight))
	}
	verdict := ScoreToVerdict(compositeScore)

	reasoning := summaryReasoning(compositeScore, verdict, bullish, bearish, neutral)
	reasoning = append(reasoning, "---")
	reasoning = append(reasoning, perSignal...)

	return models.DecisionResult{
		CompositeScore: compositeScore,
		Verdict:        verdict,
		Confidence:     int(math.Round(float64(totalConfidence) / float64(len(valid)))),
		SignalBreakdown: models.SignalBreakdown{
			Bullish: bullish,
			Bearish: bearish,
			Neutral: neutral,
		},
		Reasoning: reasoning,
	}
}

// verdictScores is the fixed symmetric verdict-to-score scale.
var verdictScores = map[models.SignalVerdict]int{
	models.VerdictStrongBuy:  80,
	models.VerdictBuy:        40,
	models.VerdictNeutral:    0,
	models.VerdictSell:       -40,
	models.VerdictStrongSell: -80,
}

// VerdictToScore exposes the score table for callers and tests.
func VerdictToScore(v models.SignalVerdict) int { return verdictScores[v] }

// ScoreToVerdict classifies a composite score into the decision bands.
// Note BUY's +40 falls in the BUY band while ±50 marks the strong bands;
// this asymmetry against the score table is intentional.
func ScoreToVerdict(score int) models.SignalVerdict {
	switch {
	case score >= 50:
		return models.VerdictStrongBuy
	case score >= 20:
		return models.VerdictBuy
	case score <= -50:
		return models.VerdictStrongSell
	case score <= -20:
		return models.VerdictSell
	default:
		return models.VerdictNeutral
	}
}

var verdictLabels = map[models.SignalVerdict]string{
	models.VerdictStrongBuy:  "ACHAT FORT",
	models.VerdictBuy:        "ACHAT",
	models.VerdictNeutral:    "NEUTRE",
	models.VerdictSell:       "VENTE",
	models.VerdictStrongSell: "VENTE FORTE",
}

func summaryReasoning(score int, verdict models.SignalVerdict, bullish, bearish, neutral int) []string {
	lines := []string{
		fmt.Sprintf("Verdict: %s (score: %d/100)", verdictLabels[verdict], score),
		fmt.Sprintf("Répartition: %d haussier(s), %d baissier(s), %d neutre(s)", bullish, bearish, neutral),
	}

	switch verdict {
	case models.VerdictStrongBuy, models.VerdictBuy:
		lines = append(lines, "La majorité des signaux indiquent une opportunité d'achat. Cependant, faites toujours vos propres recherches (DYOR).")
	case models.VerdictStrongSell, models.VerdictSell:
		lines = append(lines, "Les signaux suggèrent de la prudence. Ce n'est peut-être pas le meilleur moment pour acheter.")
	default:
		lines = append(lines, "Les signaux sont mitigés. Pas de direction claire. Patience recommandée.")
	}

	return lines
}

package alerts

import (
	"fmt"
	"math"
	"sort"
	"time"

	"BtcPulse/internal/domain/models"
)

// Generator turns signals, the composite decision and the price snapshot
// into a severity-ordered alert list. Time and id generation are injected
// so snapshot tests stay deterministic; the production defaults are
// wall-clock time and time-suffixed ids.
type Generator struct {
	now   func() time.Time
	newID func(prefix string) string
}

// Option configures Generator.
type Option func(*Generator)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithIDGenerator overrides alert id generation.
func WithIDGenerator(newID func(prefix string) string) Option {
	return func(g *Generator) { g.newID = newID }
}

func NewGenerator(opts ...Option) *Generator {
	g := &Generator{now: time.Now}
	g.newID = func(prefix string) string {
		return fmt.Sprintf("%s-%d", prefix, g.now().UnixMilli())
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

var severityRank = map[models.AlertSeverity]int{
	models.SeverityCritical: 0,
	models.SeverityWarning:  1,
	models.SeverityInfo:     2,
}

// Generate runs the four independent checks and returns the concatenated
// results, stably sorted critical first.
func (g *Generator) Generate(signals []models.Signal, dec models.DecisionResult, price models.PriceData) []models.Alert {
	alerts := make([]models.Alert, 0, 4)
	alerts = append(alerts, g.checkCompositeThresholds(dec)...)
	alerts = append(alerts, g.checkExtremeSignals(signals)...)
	alerts = append(alerts, g.checkDivergence(dec)...)
	alerts = append(alerts, g.checkPriceMove(price)...)

	sort.SliceStable(alerts, func(i, j int) bool {
		return severityRank[alerts[i].Severity] < severityRank[alerts[j].Severity]
	})
	return alerts
}

// checkCompositeThresholds emits at most one alert; the first matching
// band wins.
func (g *Generator) checkCompositeThresholds(dec models.DecisionResult) []models.Alert {
	score := dec.CompositeScore
	switch {
	case score >= 50:
		return []models.Alert{g.alert("composite-strong-buy", models.AlertCompositeThreshold, models.SeverityCritical,
			"Signal d'ACHAT FORT détecté",
			fmt.Sprintf("Le score composite est à %d/100. La majorité des indicateurs sont haussiers. C'est potentiellement un bon moment pour considérer un achat.", score))}
	case score >= 20:
		return []models.Alert{g.alert("composite-buy", models.AlertCompositeThreshold, models.SeverityWarning,
			"Signal d'ACHAT modéré",
			fmt.Sprintf("Le score composite est à %d/100. Plusieurs indicateurs sont positifs.", score))}
	case score <= -50:
		return []models.Alert{g.alert("composite-strong-sell", models.AlertCompositeThreshold, models.SeverityCritical,
			"Signal de VENTE FORT détecté",
			fmt.Sprintf("Le score composite est à %d/100. La majorité des indicateurs sont baissiers. Prudence maximale recommandée.", score))}
	case score <= -20:
		return []models.Alert{g.alert("composite-sell", models.AlertCompositeThreshold, models.SeverityWarning,
			"Signal de VENTE modéré",
			fmt.Sprintf("Le score composite est à %d/100. Plusieurs indicateurs sont négatifs.", score))}
	}
	return nil
}

// checkExtremeSignals raises one warning per STRONG_BUY/STRONG_SELL
// signal, with no cap on count.
func (g *Generator) checkExtremeSignals(signals []models.Signal) []models.Alert {
	var alerts []models.Alert
	for _, s := range signals {
		switch s.Verdict {
		case models.VerdictStrongBuy:
			alerts = append(alerts, g.alert("extreme-buy-"+s.ID, models.AlertSignalChange, models.SeverityWarning,
				fmt.Sprintf("%s: Signal extrême haussier", s.Name),
				fmt.Sprintf("%s à %s. %s", s.Name, s.DisplayValue, s.Details)))
		case models.VerdictStrongSell:
			alerts = append(alerts, g.alert("extreme-sell-"+s.ID, models.AlertSignalChange, models.SeverityWarning,
				fmt.Sprintf("%s: Signal extrême baissier", s.Name),
				fmt.Sprintf("%s à %s. %s", s.Name, s.DisplayValue, s.Details)))
		}
	}
	return alerts
}

// checkDivergence fires when both camps are populated and the minority
// side exceeds half the majority side.
func (g *Generator) checkDivergence(dec models.DecisionResult) []models.Alert {
	bullish := dec.SignalBreakdown.Bullish
	bearish := dec.SignalBreakdown.Bearish
	if bullish+bearish < 4 || bullish < 2 || bearish < 2 {
		return nil
	}

	minority, majority := bullish, bearish
	if minority > majority {
		minority, majority = majority, minority
	}
	if float64(minority)/float64(majority) <= 0.5 {
		return nil
	}

	return []models.Alert{g.alert("divergence", models.AlertDivergence, models.SeverityWarning,
		"Divergence entre les signaux",
		fmt.Sprintf("Les signaux sont contradictoires: %d haussiers vs %d baissiers. Le marché est indécis. Attendre une confirmation avant d'agir.", bullish, bearish))}
}

// checkPriceMove emits at most one alert for a large 24h move.
func (g *Generator) checkPriceMove(price models.PriceData) []models.Alert {
	abs := math.Abs(price.Change24h)
	direction := "baisse"
	if price.Change24h > 0 {
		direction = "hausse"
	}

	switch {
	case abs > 8:
		moved := "baissé"
		if price.Change24h > 0 {
			moved = "augmenté"
		}
		return []models.Alert{g.alert("price-move", models.AlertPrice, models.SeverityCritical,
			fmt.Sprintf("Mouvement de prix important (%s)", direction),
			fmt.Sprintf("Bitcoin a %s de %.1f%% en 24h. Prix actuel: $%.0f.", moved, abs, price.Current))}
	case abs > 5:
		sign := ""
		if price.Change24h > 0 {
			sign = "+"
		}
		return []models.Alert{g.alert("price-move", models.AlertPrice, models.SeverityInfo,
			fmt.Sprintf("Mouvement de prix notable (%s)", direction),
			fmt.Sprintf("Variation de %s%.1f%% en 24h. Prix: $%.0f.", sign, price.Change24h, price.Current))}
	}
	return nil
}

func (g *Generator) alert(prefix string, typ models.AlertType, severity models.AlertSeverity, title, message string) models.Alert {
	return models.Alert{
		ID:        g.newID(prefix),
		Type:      typ,
		Severity:  severity,
		Title:     title,
		Message:   message,
		Timestamp: g.now(),
	}
}

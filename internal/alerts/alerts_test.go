package alerts

import (
	"strings"
	"testing"
	"time"

	"BtcPulse/internal/domain/models"
)

func newTestGenerator() *Generator {
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return NewGenerator(
		WithClock(func() time.Time { return fixed }),
		WithIDGenerator(func(prefix string) string { return prefix }),
	)
}

func countSeverity(alerts []models.Alert, sev models.AlertSeverity) int {
	n := 0
	for _, a := range alerts {
		if a.Severity == sev {
			n++
		}
	}
	return n
}

func TestGenerateSeverityOrder(t *testing.T) {
	g := newTestGenerator()

	signals := []models.Signal{
		{ID: "rsi", Name: "RSI", Verdict: models.VerdictStrongSell, DisplayValue: "85.0", Details: "Surachat."},
	}
	dec := models.DecisionResult{CompositeScore: -55}
	price := models.PriceData{Current: 60000, Change24h: 6.3}

	got := g.Generate(signals, dec, price)
	if len(got) != 3 {
		t.Fatalf("expected 3 alerts, got %d", len(got))
	}

	rank := map[models.AlertSeverity]int{
		models.SeverityCritical: 0,
		models.SeverityWarning:  1,
		models.SeverityInfo:     2,
	}
	for i := 1; i < len(got); i++ {
		if rank[got[i-1].Severity] > rank[got[i].Severity] {
			t.Fatalf("alerts not sorted by severity: %s before %s", got[i-1].Severity, got[i].Severity)
		}
	}
	if got[0].Severity != models.SeverityCritical || got[2].Severity != models.SeverityInfo {
		t.Fatalf("unexpected order: %s ... %s", got[0].Severity, got[2].Severity)
	}
}

func TestCompositeThresholdSingleBand(t *testing.T) {
	g := newTestGenerator()

	// 55 crosses both the strong-buy and buy bands; only the strong one fires.
	got := g.Generate(nil, models.DecisionResult{CompositeScore: 55}, models.PriceData{})
	if len(got) != 1 {
		t.Fatalf("expected exactly 1 alert, got %d", len(got))
	}
	if got[0].Type != models.AlertCompositeThreshold || got[0].Severity != models.SeverityCritical {
		t.Fatalf("unexpected alert %+v", got[0])
	}
	if !strings.Contains(got[0].Message, "55/100") {
		t.Fatalf("message should carry the score: %q", got[0].Message)
	}
}

func TestCompositeThresholdBands(t *testing.T) {
	g := newTestGenerator()
	cases := []struct {
		score int
		count int
		sev   models.AlertSeverity
	}{
		{50, 1, models.SeverityCritical},
		{20, 1, models.SeverityWarning},
		{19, 0, ""},
		{-19, 0, ""},
		{-20, 1, models.SeverityWarning},
		{-50, 1, models.SeverityCritical},
	}
	for _, c := range cases {
		got := g.Generate(nil, models.DecisionResult{CompositeScore: c.score}, models.PriceData{})
		if len(got) != c.count {
			t.Fatalf("score %d: expected %d alerts, got %d", c.score, c.count, len(got))
		}
		if c.count > 0 && got[0].Severity != c.sev {
			t.Fatalf("score %d: expected %s, got %s", c.score, c.sev, got[0].Severity)
		}
	}
}

func TestExtremeSignalsOnePerSignal(t *testing.T) {
	g := newTestGenerator()

	signals := []models.Signal{
		{ID: "fg", Name: "Fear & Greed Index", Verdict: models.VerdictStrongBuy, DisplayValue: "12 - Extreme Fear", Details: "Peur extrême."},
		{ID: "rsi", Name: "RSI", Verdict: models.VerdictStrongSell, DisplayValue: "82.0", Details: "Surachat."},
		{ID: "mom", Name: "Momentum", Verdict: models.VerdictBuy},
	}
	got := g.Generate(signals, models.DecisionResult{}, models.PriceData{})
	if len(got) != 2 {
		t.Fatalf("expected 2 extreme-signal alerts, got %d", len(got))
	}
	for _, a := range got {
		if a.Type != models.AlertSignalChange || a.Severity != models.SeverityWarning {
			t.Fatalf("unexpected alert %+v", a)
		}
	}
	if !strings.Contains(got[0].Title, "Fear & Greed Index") {
		t.Fatalf("unexpected title %q", got[0].Title)
	}
}

func TestDivergence(t *testing.T) {
	g := newTestGenerator()

	cases := []struct {
		bullish, bearish int
		fires            bool
	}{
		{3, 3, true},
		{2, 2, true},
		{3, 2, true},
		{4, 2, false}, // ratio exactly 0.5
		{3, 1, false}, // minority below 2
		{5, 0, false},
		{1, 2, false}, // fewer than 4 total
	}
	for _, c := range cases {
		dec := models.DecisionResult{SignalBreakdown: models.SignalBreakdown{Bullish: c.bullish, Bearish: c.bearish}}
		got := g.Generate(nil, dec, models.PriceData{})
		fired := false
		for _, a := range got {
			if a.Type == models.AlertDivergence {
				fired = true
			}
		}
		if fired != c.fires {
			t.Fatalf("%d vs %d: expected fires=%v", c.bullish, c.bearish, c.fires)
		}
	}
}

func TestPriceMoveCritical(t *testing.T) {
	g := newTestGenerator()

	got := g.Generate(nil, models.DecisionResult{}, models.PriceData{Current: 64150, Change24h: 9.2})
	if len(got) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(got))
	}
	a := got[0]
	if a.Type != models.AlertPrice || a.Severity != models.SeverityCritical {
		t.Fatalf("unexpected alert %+v", a)
	}
	if !strings.Contains(a.Message, "9.2") {
		t.Fatalf("message should carry the change: %q", a.Message)
	}
	if !strings.Contains(a.Title, "hausse") {
		t.Fatalf("title should carry the direction: %q", a.Title)
	}
}

func TestPriceMoveBands(t *testing.T) {
	g := newTestGenerator()

	cases := []struct {
		change float64
		count  int
		sev    models.AlertSeverity
	}{
		{-9.5, 1, models.SeverityCritical},
		{6.0, 1, models.SeverityInfo},
		{-5.5, 1, models.SeverityInfo},
		{4.9, 0, ""},
		{0, 0, ""},
	}
	for _, c := range cases {
		got := g.Generate(nil, models.DecisionResult{}, models.PriceData{Current: 60000, Change24h: c.change})
		if len(got) != c.count {
			t.Fatalf("change %.1f: expected %d alerts, got %d", c.change, c.count, len(got))
		}
		if c.count > 0 && got[0].Severity != c.sev {
			t.Fatalf("change %.1f: expected %s, got %s", c.change, c.sev, got[0].Severity)
		}
	}
}

func TestDeterministicIDsAndTimestamps(t *testing.T) {
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	g := NewGenerator(
		WithClock(func() time.Time { return fixed }),
		WithIDGenerator(func(prefix string) string { return prefix }),
	)

	got := g.Generate(nil, models.DecisionResult{CompositeScore: 60}, models.PriceData{})
	if got[0].ID != "composite-strong-buy" {
		t.Fatalf("unexpected id %q", got[0].ID)
	}
	if !got[0].Timestamp.Equal(fixed) {
		t.Fatalf("unexpected timestamp %v", got[0].Timestamp)
	}
}

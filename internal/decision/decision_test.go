package decision

import (
	"strings"
	"testing"

	"BtcPulse/internal/domain/models"
)

func sig(id string, verdict models.SignalVerdict, weight float64, conf int) models.Signal {
	return models.Signal{
		ID:           id,
		Name:         id,
		DisplayValue: "42",
		Verdict:      verdict,
		Weight:       weight,
		Confidence:   conf,
	}
}

func TestComputeNoSignals(t *testing.T) {
	got := Compute(nil)
	if got.Verdict != models.VerdictNeutral {
		t.Fatalf("expected NEUTRAL, got %s", got.Verdict)
	}
	if got.CompositeScore != 0 || got.Confidence != 0 {
		t.Fatalf("expected zero score and confidence, got %d/%d", got.CompositeScore, got.Confidence)
	}
	if len(got.Reasoning) != 1 || got.Reasoning[0] != "Aucun signal disponible." {
		t.Fatalf("unexpected reasoning %v", got.Reasoning)
	}
}

func TestComputeAllZeroConfidence(t *testing.T) {
	in := []models.Signal{
		sig("a", models.VerdictStrongBuy, 0.5, 0),
		sig("b", models.VerdictStrongSell, 0.5, 0),
	}
	got := Compute(in)
	if got.Verdict != models.VerdictNeutral {
		t.Fatalf("expected NEUTRAL, got %s", got.Verdict)
	}
	if got.SignalBreakdown.Bullish != 0 || got.SignalBreakdown.Bearish != 0 {
		t.Fatalf("zero-confidence signals must not be counted: %+v", got.SignalBreakdown)
	}
}

func TestComputeSingleDominantSignal(t *testing.T) {
	in := []models.Signal{sig("fg", models.VerdictStrongBuy, 0.15, 80)}
	got := Compute(in)
	if got.CompositeScore != 80 {
		t.Fatalf("expected score 80, got %d", got.CompositeScore)
	}
	if got.Verdict != models.VerdictStrongBuy {
		t.Fatalf("expected STRONG_BUY, got %s", got.Verdict)
	}
	if got.Confidence != 80 {
		t.Fatalf("expected confidence 80, got %d", got.Confidence)
	}
}

func TestComputeWeightedMix(t *testing.T) {
	// 80*0.2 + (-40)*0.2 over 0.4 total weight = 20
	in := []models.Signal{
		sig("up", models.VerdictStrongBuy, 0.2, 100),
		sig("down", models.VerdictSell, 0.2, 100),
	}
	got := Compute(in)
	if got.CompositeScore != 20 {
		t.Fatalf("expected score 20, got %d", got.CompositeScore)
	}
	if got.Verdict != models.VerdictBuy {
		t.Fatalf("expected BUY, got %s", got.Verdict)
	}
	if got.SignalBreakdown.Bullish != 1 || got.SignalBreakdown.Bearish != 1 || got.SignalBreakdown.Neutral != 0 {
		t.Fatalf("unexpected breakdown %+v", got.SignalBreakdown)
	}
}

func TestConfidenceScalesWeight(t *testing.T) {
	// Same weight but low confidence shifts the average toward the
	// high-confidence signal.
	in := []models.Signal{
		sig("strong", models.VerdictStrongBuy, 0.3, 90),
		sig("weak", models.VerdictStrongSell, 0.3, 10),
	}
	got := Compute(in)
	if got.CompositeScore <= 0 {
		t.Fatalf("high-confidence bullish signal should dominate, got %d", got.CompositeScore)
	}
}

func TestVerdictScoreAsymmetry(t *testing.T) {
	// BUY maps to +40 but the STRONG band starts at ±50, so a pure BUY
	// score round-trips to BUY, not STRONG_BUY.
	if got := ScoreToVerdict(VerdictToScore(models.VerdictBuy)); got != models.VerdictBuy {
		t.Fatalf("score 40 should classify as BUY, got %s", got)
	}
	if got := ScoreToVerdict(VerdictToScore(models.VerdictSell)); got != models.VerdictSell {
		t.Fatalf("score -40 should classify as SELL, got %s", got)
	}
	if got := ScoreToVerdict(VerdictToScore(models.VerdictStrongBuy)); got != models.VerdictStrongBuy {
		t.Fatalf("score 80 should classify as STRONG_BUY, got %s", got)
	}
	if got := ScoreToVerdict(VerdictToScore(models.VerdictStrongSell)); got != models.VerdictStrongSell {
		t.Fatalf("score -80 should classify as STRONG_SELL, got %s", got)
	}
	if got := ScoreToVerdict(0); got != models.VerdictNeutral {
		t.Fatalf("score 0 should classify as NEUTRAL, got %s", got)
	}
}

func TestScoreToVerdictBands(t *testing.T) {
	cases := []struct {
		score int
		want  models.SignalVerdict
	}{
		{50, models.VerdictStrongBuy},
		{49, models.VerdictBuy},
		{20, models.VerdictBuy},
		{19, models.VerdictNeutral},
		{-19, models.VerdictNeutral},
		{-20, models.VerdictSell},
		{-49, models.VerdictSell},
		{-50, models.VerdictStrongSell},
	}
	for _, c := range cases {
		if got := ScoreToVerdict(c.score); got != c.want {
			t.Fatalf("score %d: expected %s, got %s", c.score, c.want, got)
		}
	}
}

func TestReasoningFormat(t *testing.T) {
	in := []models.Signal{
		sig("RSI", models.VerdictBuy, 0.2, 70),
		sig("Momentum", models.VerdictNeutral, 0.15, 75),
	}
	got := Compute(in)

	if !strings.HasPrefix(got.Reasoning[0], "Verdict: ") {
		t.Fatalf("first line should be the verdict summary, got %q", got.Reasoning[0])
	}
	if !strings.HasPrefix(got.Reasoning[1], "Répartition: ") {
		t.Fatalf("second line should be the breakdown, got %q", got.Reasoning[1])
	}

	sep := -1
	for i, line := range got.Reasoning {
		if line == "---" {
			sep = i
			break
		}
	}
	if sep == -1 {
		t.Fatalf("expected separator line in reasoning %v", got.Reasoning)
	}
	perSignal := got.Reasoning[sep+1:]
	if len(perSignal) != 2 {
		t.Fatalf("expected 2 per-signal lines, got %v", perSignal)
	}
	if !strings.Contains(perSignal[0], "RSI") || !strings.Contains(perSignal[0], "haussier") {
		t.Fatalf("unexpected per-signal line %q", perSignal[0])
	}
	if !strings.Contains(perSignal[1], "neutre") {
		t.Fatalf("unexpected per-signal line %q", perSignal[1])
	}
}

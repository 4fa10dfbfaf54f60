package signals

import (
	"strings"
	"testing"

	"BtcPulse/internal/domain/models"
)

func TestMarketCapLevelBands(t *testing.T) {
	cases := []struct {
		mcap float64
		want models.SignalVerdict
	}{
		{0.4e12, models.VerdictStrongBuy},
		{0.8e12, models.VerdictBuy},
		{1.5e12, models.VerdictNeutral},
		{3.0e12, models.VerdictSell},
	}
	for _, c := range cases {
		got := computeMarketCapLevel(models.PriceData{MarketCap: c.mcap}, testNow)
		if got.Verdict != c.want {
			t.Fatalf("mcap %.1fT: expected %s, got %s", c.mcap/1e12, c.want, got.Verdict)
		}
	}
}

func TestMarketCapLevelDisplay(t *testing.T) {
	got := computeMarketCapLevel(models.PriceData{MarketCap: 1.25e12}, testNow)
	if got.DisplayValue != "1.25T $" {
		t.Fatalf("unexpected display value %q", got.DisplayValue)
	}
	if got.Value != 1.25 {
		t.Fatalf("expected value in trillions, got %v", got.Value)
	}
}

func Test30dTrendBands(t *testing.T) {
	cases := []struct {
		change float64
		want   models.SignalVerdict
	}{
		{-35, models.VerdictStrongBuy},
		{-20, models.VerdictBuy},
		{10, models.VerdictNeutral},
		{25, models.VerdictSell},
		{45, models.VerdictStrongSell},
	}
	for _, c := range cases {
		got := compute30dTrend(models.PriceData{Change30d: c.change}, testNow)
		if got.Verdict != c.want {
			t.Fatalf("change %.0f%%: expected %s, got %s", c.change, c.want, got.Verdict)
		}
	}
}

func Test30dTrendDetailsUseAbsoluteDrop(t *testing.T) {
	got := compute30dTrend(models.PriceData{Change30d: -22.5}, testNow)
	if !strings.Contains(got.Details, "22.5") {
		t.Fatalf("details should carry the absolute drop: %q", got.Details)
	}
	if got.DisplayValue != "-22.5%" {
		t.Fatalf("unexpected display value %q", got.DisplayValue)
	}
}

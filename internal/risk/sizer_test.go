package risk_test

import (
	"errors"
	"math"
	"testing"

	"github.com/mkrebs/gridline/internal/risk"
	"github.com/mkrebs/gridline/pkg/models"
)

func playableEdge(stars float64, class models.Classification) models.EdgeAnalysis {
	return models.EdgeAnalysis{
		GameID:         "2026-wk5-KC-LV",
		Sport:          models.SportNFL,
		MarketLine:     -3.5,
		EdgePoints:     -1.44,
		EdgePercent:    -8.0,
		Side:           models.SideAway,
		Classification: class,
		StarRating:     stars,
	}
}

func TestStarStakeFraction(t *testing.T) {
	tests := []struct {
		stars float64
		want  float64
	}{
		{0.5, 0.005},
		{1.0, 0.010},
		{1.5, 0.015},
		{2.0, 0.020},
		{2.5, 0.025},
		{3.0, 0.030},
	}

	for _, tt := range tests {
		if got := risk.StarStakeFraction(tt.stars, risk.DefaultMaxBetPct); got != tt.want {
			t.Errorf("StarStakeFraction(%.1f) = %f, want %f", tt.stars, got, tt.want)
		}
	}
}

func TestStarStakeFractionRespectsCap(t *testing.T) {
	if got := risk.StarStakeFraction(3.0, 0.02); got != 0.02 {
		t.Errorf("StarStakeFraction(3.0, cap 0.02) = %f, want 0.02", got)
	}
	if got := risk.StarStakeFraction(2.75, risk.DefaultMaxBetPct); got != 0 {
		t.Errorf("StarStakeFraction(2.75) = %f, want 0 for an unknown rating", got)
	}
}

func TestSizeBetMaxBet(t *testing.T) {
	ledger := risk.NewLedger(5, risk.DefaultWeeklyLimit, risk.DefaultStopLossTrigger, risk.DefaultRecovery)
	sizer := risk.NewSizer(ledger, risk.DefaultMaxBetPct)

	rec, err := sizer.SizeBet(playableEdge(3.0, models.ClassMaxBet), 10000, -110)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.StakeFraction != 0.03 {
		t.Errorf("StakeFraction = %f, want 0.03", rec.StakeFraction)
	}
	if rec.StakeAmount != 300.00 {
		t.Errorf("StakeAmount = %f, want 300.00", rec.StakeAmount)
	}
	if rec.Capped {
		t.Error("Capped = true, want false with a fresh ledger")
	}
	if rec.ID == "" {
		t.Error("ID is empty")
	}
	// Away side takes the flipped line.
	if rec.Line != 3.5 {
		t.Errorf("Line = %f, want +3.5 for the away side", rec.Line)
	}
}

func TestSizeBetRejectsNoPlay(t *testing.T) {
	ledger := risk.NewLedger(5, risk.DefaultWeeklyLimit, risk.DefaultStopLossTrigger, risk.DefaultRecovery)
	sizer := risk.NewSizer(ledger, risk.DefaultMaxBetPct)

	if _, err := sizer.SizeBet(playableEdge(0, models.ClassNoPlay), 10000, -110); err == nil {
		t.Error("SizeBet accepted a NO_PLAY analysis")
	}
	if len(ledger.Snapshot().Bets) != 0 {
		t.Error("rejected bet reached the ledger")
	}
}

func TestSizeBetRejectsInvalidInputs(t *testing.T) {
	ledger := risk.NewLedger(5, risk.DefaultWeeklyLimit, risk.DefaultStopLossTrigger, risk.DefaultRecovery)
	sizer := risk.NewSizer(ledger, risk.DefaultMaxBetPct)

	if _, err := sizer.SizeBet(playableEdge(3.0, models.ClassMaxBet), 0, -110); err == nil {
		t.Error("SizeBet accepted a zero bankroll")
	}
	if _, err := sizer.SizeBet(playableEdge(2.75, models.ClassStrong), 10000, -110); err == nil {
		t.Error("SizeBet accepted an unknown star rating")
	}
}

func TestSizeBetRejectsInvalidOdds(t *testing.T) {
	ledger := risk.NewLedger(5, risk.DefaultWeeklyLimit, risk.DefaultStopLossTrigger, risk.DefaultRecovery)
	sizer := risk.NewSizer(ledger, risk.DefaultMaxBetPct)

	// No American odds exist in (-100, 100); an absent feed shows up as 0.
	for _, odds := range []int{0, 50, -99} {
		_, err := sizer.SizeBet(playableEdge(2.5, models.ClassStrong), 10000, odds)
		if err == nil {
			t.Errorf("SizeBet accepted odds %d", odds)
			continue
		}
		var valErr *models.ValidationError
		if !errors.As(err, &valErr) {
			t.Errorf("odds %d: error = %v, want ValidationError", odds, err)
		}
	}
	if len(ledger.Snapshot().Bets) != 0 {
		t.Error("rejected bet reached the ledger")
	}
}

func TestSizeBetCapsAtWeeklyLimit(t *testing.T) {
	ledger := risk.NewLedger(5, risk.DefaultWeeklyLimit, risk.DefaultStopLossTrigger, risk.DefaultRecovery)
	sizer := risk.NewSizer(ledger, risk.DefaultMaxBetPct)

	// Four max bets leave 0.15 - 0.12 = 0.03; a fifth fits exactly, the
	// sixth finds nothing left.
	for i := 0; i < 5; i++ {
		rec, err := sizer.SizeBet(playableEdge(3.0, models.ClassMaxBet), 10000, -110)
		if err != nil {
			t.Fatalf("bet %d failed: %v", i, err)
		}
		if rec.Capped {
			t.Errorf("bet %d capped with capacity available", i)
		}
	}

	if _, err := sizer.SizeBet(playableEdge(3.0, models.ClassMaxBet), 10000, -110); err == nil {
		t.Error("SizeBet accepted a bet with the weekly limit exhausted")
	}
}

func TestSizeBetPartialCapacityIsCapped(t *testing.T) {
	ledger := risk.NewLedger(5, risk.DefaultWeeklyLimit, risk.DefaultStopLossTrigger, risk.DefaultRecovery)
	sizer := risk.NewSizer(ledger, risk.DefaultMaxBetPct)

	for i := 0; i < 4; i++ {
		if _, err := sizer.SizeBet(playableEdge(3.0, models.ClassMaxBet), 10000, -110); err != nil {
			t.Fatalf("bet %d failed: %v", i, err)
		}
	}
	// 0.03 capacity left; a 2.5-star wants 0.025 and fits.
	rec, err := sizer.SizeBet(playableEdge(2.5, models.ClassStrong), 10000, -110)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Capped {
		t.Fatal("Capped = true, want false")
	}

	// 0.005 left; a 1-star wants 0.010 and gets capped to the remainder.
	capped, err := sizer.SizeBet(playableEdge(1.0, models.ClassLean), 10000, -110)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !capped.Capped {
		t.Fatal("Capped = false, want true")
	}
	if math.Abs(capped.StakeFraction-0.005) > 1e-9 {
		t.Errorf("StakeFraction = %f, want 0.005", capped.StakeFraction)
	}
	if capped.CapReason == "" {
		t.Error("CapReason empty on a capped recommendation")
	}
}

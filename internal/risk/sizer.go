package risk

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mkrebs/gridline/pkg/models"
	"github.com/mkrebs/gridline/pkg/oddsmath"
)

// Default caps. Tuned constants; preserved as given.
const (
	DefaultMaxBetPct       = 0.03
	DefaultWeeklyLimit     = 0.15
	DefaultStopLossTrigger = 0.10
	DefaultRecovery        = 0.05
)

// starStakeTable maps star ratings to stake fractions of bankroll.
// Monotonically increasing; validated at startup by config.
var starStakeTable = map[float64]float64{
	0.5: 0.005,
	1.0: 0.010,
	1.5: 0.015,
	2.0: 0.020,
	2.5: 0.025,
	3.0: 0.030,
}

// StarStakeFraction returns the stake fraction for a star rating, capped at
// maxBetPct. Unknown star ratings return 0.
func StarStakeFraction(stars, maxBetPct float64) float64 {
	fraction := starStakeTable[stars]
	if fraction > maxBetPct {
		fraction = maxBetPct
	}
	return fraction
}

// StarRatings returns the valid star ratings in ascending order.
func StarRatings() []float64 {
	stars := make([]float64, 0, len(starStakeTable))
	for s := range starStakeTable {
		stars = append(stars, s)
	}
	sort.Float64s(stars)
	return stars
}

// Sizer converts a classified edge into a risk-capped recommendation
// against the weekly ledger.
type Sizer struct {
	maxBetPct float64
	ledger    *Ledger
}

// NewSizer creates a sizer bound to one ledger.
func NewSizer(ledger *Ledger, maxBetPct float64) *Sizer {
	if maxBetPct <= 0 {
		maxBetPct = DefaultMaxBetPct
	}
	return &Sizer{maxBetPct: maxBetPct, ledger: ledger}
}

// SizeBet sizes a bet for a classified edge. NO_PLAY analyses, invalid
// odds and unknown star ratings are rejected before touching the ledger.
// Cap violations
// surface as CapExceededError; a stake that merely exceeds remaining weekly
// capacity is capped, not rejected. The returned recommendation is a new
// immutable record.
func (s *Sizer) SizeBet(analysis models.EdgeAnalysis, bankroll float64, odds int) (models.BetRecommendation, error) {
	if bankroll <= 0 {
		return models.BetRecommendation{}, &models.ValidationError{
			Field: "bankroll", Value: bankroll, Reason: "must be positive",
		}
	}
	if _, err := oddsmath.AmericanToDecimal(odds); err != nil {
		return models.BetRecommendation{}, &models.ValidationError{
			Field: "odds", Value: float64(odds), Reason: "not valid American odds",
		}
	}
	if analysis.Classification == models.ClassNoPlay {
		return models.BetRecommendation{}, fmt.Errorf("game %s: no playable edge", analysis.GameID)
	}

	fraction := StarStakeFraction(analysis.StarRating, s.maxBetPct)
	if fraction <= 0 {
		return models.BetRecommendation{}, &models.ValidationError{
			Field: "star_rating", Value: analysis.StarRating, Reason: "not in star table",
		}
	}

	id := uuid.NewString()
	granted, remaining, capped, err := s.ledger.Reserve(PlacedStake{
		RecommendationID: id,
		GameID:           analysis.GameID,
		Fraction:         fraction,
		Bankroll:         bankroll,
		PlacedAt:         time.Now().UTC(),
	})
	if err != nil {
		return models.BetRecommendation{}, err
	}

	line := analysis.MarketLine
	if analysis.Side == models.SideAway {
		line = -analysis.MarketLine
	}

	rec := models.BetRecommendation{
		ID:                id,
		GameID:            analysis.GameID,
		Side:              analysis.Side,
		Line:              line,
		Odds:              odds,
		EdgePoints:        analysis.EdgePoints,
		EdgePercent:       analysis.EdgePercent,
		Classification:    analysis.Classification,
		StarRating:        analysis.StarRating,
		StakeFraction:     granted,
		StakeAmount:       oddsmath.Round2(bankroll * granted),
		Bankroll:          bankroll,
		RemainingCapacity: remaining,
		Capped:            capped,
		PlacedAt:          time.Now().UTC(),
	}
	if capped {
		rec.CapReason = fmt.Sprintf("stake capped from %.4f to remaining weekly capacity %.4f", fraction, granted)
	}

	return rec, nil
}

// Ledger exposes the sizer's ledger for snapshots and week resets.
func (s *Sizer) Ledger() *Ledger { return s.ledger }

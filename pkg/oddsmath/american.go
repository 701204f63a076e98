// Package oddsmath provides conversions between American odds, decimal odds
// and implied probabilities.
package oddsmath

import (
	"fmt"
	"math"
)

// AmericanToDecimal converts American odds to decimal odds.
// Valid American odds are >= +100 or <= -100.
func AmericanToDecimal(american int) (float64, error) {
	if american > -100 && american < 100 {
		return 0, fmt.Errorf("invalid American odds: %d", american)
	}
	if american > 0 {
		return (float64(american) / 100.0) + 1.0, nil
	}
	return (100.0 / float64(-american)) + 1.0, nil
}

// DecimalToAmerican converts decimal odds to American odds.
func DecimalToAmerican(decimal float64) int {
	if decimal >= 2.0 {
		return int((decimal - 1.0) * 100)
	}
	return int(-100.0 / (decimal - 1.0))
}

// ImpliedProbability returns the implied win probability of American odds.
func ImpliedProbability(american int) (float64, error) {
	decimal, err := AmericanToDecimal(american)
	if err != nil {
		return 0, err
	}
	return 1.0 / decimal, nil
}

// PayoutMultiplier returns the net win per unit staked at the given odds.
func PayoutMultiplier(american int) (float64, error) {
	decimal, err := AmericanToDecimal(american)
	if err != nil {
		return 0, err
	}
	return decimal - 1.0, nil
}

// KellyFraction returns the full-Kelly stake fraction for a bet with win
// probability p at the given American odds. Returns 0 when there is no edge.
func KellyFraction(p float64, american int) (float64, error) {
	if p <= 0 || p >= 1 {
		return 0, fmt.Errorf("invalid win probability: %.4f", p)
	}
	b, err := PayoutMultiplier(american)
	if err != nil {
		return 0, err
	}
	q := 1.0 - p
	k := (b*p - q) / b
	if k < 0 {
		return 0, nil
	}
	return k, nil
}

// Round2 rounds to 2 decimal places. Stake amounts are dollars and cents.
func Round2(val float64) float64 {
	return math.Round(val*100) / 100
}

package oddsmath_test

import (
	"math"
	"testing"

	"github.com/mkrebs/gridline/pkg/oddsmath"
)

func TestAmericanToDecimal(t *testing.T) {
	tests := []struct {
		name     string
		american int
		want     float64
	}{
		{"Even odds +100", 100, 2.0},
		{"Positive odds +150", 150, 2.5},
		{"Positive odds +200", 200, 3.0},
		{"Negative odds -110", -110, 1.909090909},
		{"Negative odds -150", -150, 1.666666667},
		{"Negative odds -200", -200, 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := oddsmath.AmericanToDecimal(tt.american)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			// Allow small floating point differences
			if math.Abs(got-tt.want) > 0.0001 {
				t.Errorf("AmericanToDecimal(%d) = %f, want %f", tt.american, got, tt.want)
			}
		})
	}
}

func TestAmericanToDecimalInvalid(t *testing.T) {
	for _, american := range []int{0, 50, -50, 99, -99} {
		if _, err := oddsmath.AmericanToDecimal(american); err == nil {
			t.Errorf("AmericanToDecimal(%d) expected error, got nil", american)
		}
	}
}

func TestImpliedProbability(t *testing.T) {
	tests := []struct {
		name     string
		american int
		want     float64
	}{
		{"Even odds +100", 100, 0.50},
		{"Favorite -110", -110, 0.5238},
		{"Heavy favorite -200", -200, 0.6667},
		{"Underdog +150", 150, 0.40},
		{"Heavy underdog +300", 300, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := oddsmath.ImpliedProbability(tt.american)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if math.Abs(got-tt.want) > 0.0001 {
				t.Errorf("ImpliedProbability(%d) = %f, want %f", tt.american, got, tt.want)
			}
		})
	}
}

func TestPayoutMultiplier(t *testing.T) {
	tests := []struct {
		name     string
		american int
		want     float64
	}{
		{"Standard juice -110", -110, 0.909090909},
		{"Even money +100", 100, 1.0},
		{"Underdog +150", 150, 1.5},
		{"Favorite -200", -200, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := oddsmath.PayoutMultiplier(tt.american)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if math.Abs(got-tt.want) > 0.0001 {
				t.Errorf("PayoutMultiplier(%d) = %f, want %f", tt.american, got, tt.want)
			}
		})
	}
}

func TestKellyFraction(t *testing.T) {
	tests := []struct {
		name     string
		p        float64
		american int
		want     float64
	}{
		// k = (b*p - q) / b with b = 0.9091 at -110
		{"55% at -110", 0.55, -110, 0.055},
		{"60% at -110", 0.60, -110, 0.16},
		{"No edge 50% at -110", 0.50, -110, 0},
		{"Even money 55% at +100", 0.55, 100, 0.10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := oddsmath.KellyFraction(tt.p, tt.american)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("KellyFraction(%f, %d) = %f, want %f", tt.p, tt.american, got, tt.want)
			}
		})
	}
}

func TestKellyFractionInvalidProbability(t *testing.T) {
	for _, p := range []float64{0, 1, -0.2, 1.5} {
		if _, err := oddsmath.KellyFraction(p, -110); err == nil {
			t.Errorf("KellyFraction(%f, -110) expected error, got nil", p)
		}
	}
}

func TestRound2(t *testing.T) {
	if got := oddsmath.Round2(123.4567); got != 123.46 {
		t.Errorf("Round2(123.4567) = %f, want 123.46", got)
	}
	if got := oddsmath.Round2(0.005); got != 0.01 {
		t.Errorf("Round2(0.005) = %f, want 0.01", got)
	}
}

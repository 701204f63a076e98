// Package keynum values the gap between a model line and a market line by
// the margin-of-victory key numbers the gap crosses.
package keynum

import (
	"fmt"
	"math"

	"github.com/mkrebs/gridline/pkg/contracts"
	"github.com/mkrebs/gridline/pkg/models"
)

const (
	// EdgeFloorPct is the minimum aggregate key-number value for a playable
	// edge. Below it the recommendation is NO BET regardless of sign.
	EdgeFloorPct = 5.5

	// zeroCrossPenaltyPct is applied when the interval crosses zero: an
	// upset reversal of the favorite is a penalty, never a bonus.
	zeroCrossPenaltyPct = 2.0

	// urgencyWindow is how close the current line must sit to a key number
	// before the line is expected to move toward or through it.
	urgencyWindow = 0.5
)

// Valuation is the key-number portion of an edge analysis.
type Valuation struct {
	EdgePercent    float64          `json:"edge_pct"` // signed, positive = home value
	KeyNumbers     []int            `json:"key_numbers_crossed"`
	CrossesZero    bool             `json:"crosses_zero"`
	Side           models.Side      `json:"side"`
	Recommendation string           `json:"recommendation"`
	Timing         models.BetTiming `json:"timing"`
}

// Value walks every integer between modelLine and marketLine (inclusive,
// sign-aware) and sums the key-number values crossed. Lines use the
// home-perspective convention: negative means home favored.
func Value(modelLine, marketLine float64, profile contracts.SportProfile) Valuation {
	lo, hi := modelLine, marketLine
	if lo > hi {
		lo, hi = hi, lo
	}

	magnitude := 0.0
	crossed := []int{}
	crossesZero := false
	for n := int(math.Ceil(lo)); float64(n) <= hi; n++ {
		if n == 0 {
			crossesZero = true
			magnitude -= zeroCrossPenaltyPct
			continue
		}
		if v := profile.KeyNumberValue(n); v > 0 {
			magnitude += v
			crossed = append(crossed, abs(n))
		}
	}

	// Positive when the market overrates the away side (value on home).
	direction := marketLine - modelLine
	side := models.SideNone
	switch {
	case direction > 0:
		side = models.SideHome
	case direction < 0:
		side = models.SideAway
	}

	signed := magnitude
	if side == models.SideAway {
		signed = -magnitude
	}

	v := Valuation{
		EdgePercent: signed,
		KeyNumbers:  crossed,
		CrossesZero: crossesZero,
		Side:        side,
		Timing:      timing(marketLine, side, profile),
	}
	v.Recommendation = recommendation(v, marketLine)
	return v
}

// HalfPointValue prices a single line position. A line sitting exactly on a
// number takes that number's table value; a line between two numbers takes
// the arithmetic mean of the adjacent values.
func HalfPointValue(line float64, profile contracts.SportProfile) float64 {
	if line == math.Trunc(line) {
		return profile.KeyNumberValue(int(line))
	}
	below := profile.KeyNumberValue(int(math.Floor(line)))
	above := profile.KeyNumberValue(int(math.Ceil(line)))
	return (below + above) / 2.0
}

// ShouldBuyHalfPoint decides the buy-a-half-point question: buy only when
// the key-number value at the current line exceeds the quoted price of the
// half point (both in percent).
func ShouldBuyHalfPoint(line, quotedPricePct float64, profile contracts.SportProfile) bool {
	return HalfPointValue(line, profile) > quotedPricePct
}

// timing applies the standard discipline: bet favorites as early as
// possible and underdogs as late as possible. Urgency is elevated when the
// current market line sits within half a point of a key number, since the
// line is expected to move toward or through it before kickoff.
func timing(marketLine float64, side models.Side, profile contracts.SportProfile) models.BetTiming {
	betLine := marketLine
	if side == models.SideAway {
		betLine = -marketLine
	}

	when := "LATE" // underdog or pick'em
	if betLine < 0 {
		when = "EARLY"
	}

	urgent := false
	for _, k := range profile.KeyNumbers() {
		if math.Abs(math.Abs(marketLine)-float64(k)) <= urgencyWindow {
			urgent = true
			break
		}
	}

	return models.BetTiming{When: when, Urgent: urgent}
}

func recommendation(v Valuation, marketLine float64) string {
	if math.Abs(v.EdgePercent) < EdgeFloorPct || v.Side == models.SideNone {
		return "NO BET"
	}
	betLine := marketLine
	if v.Side == models.SideAway {
		betLine = -marketLine
	}
	return fmt.Sprintf("BET %s %+.1f (%s)", v.Side, betLine, v.Timing.When)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

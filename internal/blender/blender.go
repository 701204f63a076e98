// Package blender merges baseline power ratings with current-season
// performance. The baseline dominates: performance only ever influences the
// blend weight's share of the final number (10% by default, the "90/10" rule).
package blender

import (
	"time"

	"github.com/mkrebs/gridline/pkg/contracts"
	"github.com/mkrebs/gridline/pkg/models"
)

const (
	// DefaultWeight is the share of the final rating the performance
	// adjustment can influence.
	DefaultWeight = 0.10

	// maxAdjustment clamps the raw performance adjustment. Outlier weeks
	// (blowouts, turnover flukes) cannot move a rating more than this many
	// points before blending.
	maxAdjustment = 10.0

	offenseFactor  = 0.15
	defenseFactor  = 0.15
	turnoverFactor = 0.30
)

// Blender produces blended ratings against a sport's league averages.
type Blender struct {
	profile contracts.SportProfile
	weight  float64
}

// New creates a Blender with the default 90/10 weight.
func New(profile contracts.SportProfile) *Blender {
	return &Blender{profile: profile, weight: DefaultWeight}
}

// NewWithWeight creates a Blender with a custom blend weight.
func NewWithWeight(profile contracts.SportProfile, weight float64) *Blender {
	return &Blender{profile: profile, weight: weight}
}

// Blend merges a baseline rating with performance metrics and returns the
// published rating for the week. A nil metrics input returns the baseline
// unchanged with a zero adjustment; missing data is an expected outcome, not
// an error.
func (b *Blender) Blend(team string, week int, baseline float64, metrics *models.PerformanceMetrics) models.TeamRating {
	rating := models.TeamRating{
		Team:      team,
		Week:      week,
		Baseline:  baseline,
		Blended:   baseline,
		UpdatedAt: time.Now().UTC(),
	}

	if metrics == nil {
		return rating
	}

	adj := b.rawAdjustment(metrics)
	adj = clamp(adj, -maxAdjustment, maxAdjustment)

	rating.Adjustment = adj
	rating.Blended = baseline*(1.0-b.weight) + (baseline+adj)*b.weight
	return rating
}

// rawAdjustment sums the three independent performance signals: scoring
// offense vs league average, scoring defense vs league average (points
// allowed below average is good), and turnover margin.
func (b *Blender) rawAdjustment(m *models.PerformanceMetrics) float64 {
	offense := (m.PointsPerGame - b.profile.LeagueAveragePPG()) * offenseFactor
	defense := (b.profile.LeagueAveragePA() - m.PointsAllowedPerGame) * defenseFactor
	turnover := m.TurnoverMargin * turnoverFactor
	return offense + defense + turnover
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

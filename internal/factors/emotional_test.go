package factors_test

import (
	"math"
	"testing"

	"github.com/mkrebs/gridline/internal/factors"
	"github.com/mkrebs/gridline/pkg/models"
)

func TestEmotionalHomeElimination(t *testing.T) {
	ctx := models.GameContext{
		HomeMotivation: models.Motivation{Elimination: true},
	}

	result := factors.Emotional(ctx)

	if result.Points != 5.0 {
		t.Fatalf("Points = %f, want 5.0", result.Points)
	}
	if math.Abs(result.SpreadAdj-1.0) > 0.0001 {
		t.Errorf("SpreadAdj = %f, want 1.0", result.SpreadAdj)
	}
}

func TestEmotionalSymmetricMotivationCancels(t *testing.T) {
	ctx := models.GameContext{
		HomeMotivation: models.Motivation{Elimination: true},
		AwayMotivation: models.Motivation{Clinch: true, Seeding: true},
	}

	result := factors.Emotional(ctx)

	// Home +5, away -(3+2) = net 0.
	if result.Points != 0 {
		t.Errorf("Points = %f, want 0", result.Points)
	}
}

func TestEmotionalCoachingChange(t *testing.T) {
	defaulted := factors.Emotional(models.GameContext{
		HomeMotivation: models.Motivation{CoachingChange: true},
	})
	if defaulted.Breakdown["home"] != 2.0 {
		t.Errorf("default coach boost = %f, want 2.0", defaulted.Breakdown["home"])
	}

	overridden := factors.Emotional(models.GameContext{
		HomeMotivation: models.Motivation{CoachingChange: true, CoachBoost: 3.5},
	})
	if overridden.Breakdown["home"] != 3.5 {
		t.Errorf("overridden coach boost = %f, want 3.5", overridden.Breakdown["home"])
	}
}

func TestEmotionalInjuryMotivationPassthrough(t *testing.T) {
	ctx := models.GameContext{
		AwayMotivation: models.Motivation{InjuryMotivation: 2.5},
	}

	result := factors.Emotional(ctx)

	if result.Breakdown["away"] != -2.5 {
		t.Errorf("away = %f, want -2.5", result.Breakdown["away"])
	}
}

package factors

import "github.com/mkrebs/gridline/pkg/models"

// Emotional factor point values. Tuned constants; preserved as given.
const (
	eliminationPts    = 5.0
	clinchPts         = 3.0
	seedingPts        = 2.0
	defaultCoachBoost = 2.0
)

// Emotional scores playoff implications, coaching changes and injury-driven
// motivation for both sides. Same 5:1 point-to-spread ratio as the
// situational factors; total is home-perspective.
func Emotional(ctx models.GameContext) Result {
	breakdown := map[string]float64{}

	if v := sideMotivation(ctx.HomeMotivation); v != 0 {
		breakdown["home"] = v
	}
	if v := sideMotivation(ctx.AwayMotivation); v != 0 {
		breakdown["away"] = -v
	}

	return spreadResult(breakdown)
}

func sideMotivation(m models.Motivation) float64 {
	pts := 0.0
	if m.Elimination {
		pts += eliminationPts
	}
	if m.Clinch {
		pts += clinchPts
	}
	if m.Seeding {
		pts += seedingPts
	}
	if m.CoachingChange {
		boost := m.CoachBoost
		if boost == 0 {
			boost = defaultCoachBoost
		}
		pts += boost
	}
	pts += m.InjuryMotivation
	return pts
}

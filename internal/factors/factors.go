// Package factors scores situational, weather, emotional and injury context
// into point totals and spread/total-equivalent adjustments.
//
// Situational and emotional points convert at the fixed ratio of 5 points to
// 1.0 spread point. Weather severity converts on its own scale directly into
// a total-score adjustment. All point totals use the home-perspective sign
// convention: positive favors the home team.
package factors

// PointsPerSpreadPoint is the fixed conversion ratio for situational and
// emotional factors: 5 points = 1.0 spread point.
const PointsPerSpreadPoint = 5.0

// Result holds one sub-calculation's raw points, per-factor breakdown and
// spread-equivalent adjustment.
type Result struct {
	Points    float64            `json:"points"`
	Breakdown map[string]float64 `json:"breakdown"`
	SpreadAdj float64            `json:"spread_adjustment"`
}

func spreadResult(breakdown map[string]float64) Result {
	total := 0.0
	for _, v := range breakdown {
		total += v
	}
	return Result{
		Points:    total,
		Breakdown: breakdown,
		SpreadAdj: total / PointsPerSpreadPoint,
	}
}

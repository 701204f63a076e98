package factors

import (
	"strings"

	"github.com/mkrebs/gridline/pkg/models"
)

// Injury-impact point table by position, same pattern as the other factor
// tables. A starting quarterback dwarfs everything else. Tuned constants;
// preserved as given.
var injuryPositionPts = map[string]float64{
	"QB": 7.0,
	"RB": 1.5,
	"WR": 1.2,
	"TE": 0.8,
	"OL": 0.8,
	"OT": 0.8,
	"OG": 0.6,
	"C":  0.6,
	"DE": 1.0,
	"DT": 0.8,
	"LB": 0.8,
	"CB": 1.0,
	"S":  0.8,
	"K":  0.5,
}

// Injury status multipliers: how much of the positional value is expected to
// be lost.
var injuryStatusWeight = map[string]float64{
	"OUT":          1.0,
	"DOUBTFUL":     0.75,
	"QUESTIONABLE": 0.4,
}

// maxInjuryPts caps either side's injury total. One decimated depth chart
// should not swamp the power-rating differential.
const maxInjuryPts = 7.0

// InjuryImpact scores both teams' injury reports into a home-perspective
// point total. Home injuries count against the home side.
func InjuryImpact(ctx models.GameContext) Result {
	breakdown := map[string]float64{}

	if v := teamInjuryPoints(ctx.HomeInjuries); v > 0 {
		breakdown["home_injuries"] = -v
	}
	if v := teamInjuryPoints(ctx.AwayInjuries); v > 0 {
		breakdown["away_injuries"] = v
	}

	return spreadResult(breakdown)
}

func teamInjuryPoints(reports []models.InjuryReport) float64 {
	total := 0.0
	for _, r := range reports {
		pos := injuryPositionPts[strings.ToUpper(r.Position)]
		weight := injuryStatusWeight[strings.ToUpper(r.Status)]
		total += pos * weight
	}
	if total > maxInjuryPts {
		total = maxInjuryPts
	}
	return total
}

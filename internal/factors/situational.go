package factors

import "github.com/mkrebs/gridline/pkg/models"

// Situational factor point values. Tuned constants; preserved as given.
const (
	restAdvantagePts    = 1.5  // >= 2 extra rest days
	restDisadvantagePts = -2.0 // >= 2 fewer rest days
	restDayThreshold    = 2

	travelLongPts  = -1.5 // away trip > 1500 miles
	travelMidPts   = -0.8 // 500-1500 miles
	travelShortPts = -0.3 // anything shorter

	travelLongMiles = 1500.0
	travelMidMiles  = 500.0

	divisionalPts = 1.0
	rivalryPts    = 2.0 // supersedes divisional
	revengePts    = 1.2

	atsHotPts      = 1.0 // >= 4 of last 5 covers
	atsColdPts     = -1.0
	atsStreakScale = 0.25 // extra per game beyond the threshold
)

// Situational scores rest, travel, divisional/rivalry, revenge and ATS
// streak context for a game. The total is home-perspective: away-team
// penalties (travel, cold streaks) show up as positive home points.
func Situational(ctx models.GameContext) Result {
	breakdown := map[string]float64{}

	// Rest-day differential. Asymmetric on purpose: short rest hurts more
	// than long rest helps.
	restDiff := ctx.HomeRestDays - ctx.AwayRestDays
	switch {
	case restDiff >= restDayThreshold:
		breakdown["rest_differential"] = restAdvantagePts
	case restDiff <= -restDayThreshold:
		breakdown["rest_differential"] = restDisadvantagePts
	}

	// Travel burden falls entirely on the away team; the home team is
	// exempt. Away-team point deductions net positive for home.
	switch {
	case ctx.TravelMiles > travelLongMiles:
		breakdown["travel"] = -travelLongPts
	case ctx.TravelMiles >= travelMidMiles:
		breakdown["travel"] = -travelMidPts
	default:
		breakdown["travel"] = -travelShortPts
	}

	// Rivalry supersedes divisional; never both.
	if ctx.Rivalry {
		breakdown["rivalry"] = rivalryPts
	} else if ctx.Divisional {
		breakdown["divisional"] = divisionalPts
	}

	if ctx.RevengeHome {
		breakdown["revenge_home"] = revengePts
	}
	if ctx.RevengeAway {
		breakdown["revenge_away"] = -revengePts
	}

	if v := atsStreakPoints(ctx.HomeATS); v != 0 {
		breakdown["ats_home"] = v
	}
	if v := atsStreakPoints(ctx.AwayATS); v != 0 {
		breakdown["ats_away"] = -v
	}

	return spreadResult(breakdown)
}

// atsStreakPoints scores a hot or cold against-the-spread run over the last
// five games, scaled by streak magnitude: 4-of-5 is +1.0, 5-of-5 is +1.25,
// 1-of-5 is -1.0, 0-of-5 is -1.25.
func atsStreakPoints(rec models.ATSRecord) float64 {
	if rec.Games < 5 {
		return 0
	}
	switch {
	case rec.Covers >= 4:
		return atsHotPts + atsStreakScale*float64(rec.Covers-4)
	case rec.Covers <= 1:
		return atsColdPts - atsStreakScale*float64(1-rec.Covers)
	}
	return 0
}

package factors

import "github.com/mkrebs/gridline/pkg/models"

// Weather severity thresholds and point values. Severity points are their
// own scale, not spread points: the sum converts directly into a negative
// total-score adjustment. Tuned constants; preserved as given.
const (
	windModerateMPH = 15.0
	windHighMPH     = 20.0
	windExtremeMPH  = 25.0

	windModeratePts = 20.0
	windHighPts     = 35.0
	windExtremePts  = 50.0

	precipHeavyProb = 60.0
	precipLightProb = 30.0

	snowHeavyPts = 30.0
	snowLightPts = 15.0
	rainHeavyPts = 20.0
	rainLightPts = 10.0

	tempExtremeColdF = 20.0
	tempVeryColdF    = 25.0
	tempFreezingF    = 32.0
	tempColdF        = 40.0

	tempExtremeColdPts = 25.0
	tempVeryColdPts    = 15.0
	tempFreezingPts    = 10.0
	tempColdPts        = 5.0

	// totalPointsPerSeverity converts summed severity into the expected
	// drop in combined score.
	totalPointsPerSeverity = 0.1
)

// WeatherResult holds the weather severity score and the resulting
// total-score adjustment. The adjustment is always <= 0: bad weather lowers
// the expected combined score, it never raises it.
type WeatherResult struct {
	Severity  float64            `json:"severity"`
	Breakdown map[string]float64 `json:"breakdown"`
	TotalAdj  float64            `json:"total_adjustment"`
}

// WeatherImpact scores wind, precipitation and temperature into a
// total-score adjustment. Dome games always return zero regardless of the
// outdoor readings attached to the context.
func WeatherImpact(w models.Weather) WeatherResult {
	if w.Dome {
		return WeatherResult{Breakdown: map[string]float64{}}
	}

	breakdown := map[string]float64{}

	switch {
	case w.WindSpeedMPH >= windExtremeMPH:
		breakdown["wind"] = windExtremePts
	case w.WindSpeedMPH >= windHighMPH:
		breakdown["wind"] = windHighPts
	case w.WindSpeedMPH >= windModerateMPH:
		breakdown["wind"] = windModeratePts
	}

	if pts := precipPoints(w.PrecipType, w.PrecipProbability); pts > 0 {
		breakdown["precipitation"] = pts
	}

	switch {
	case w.TemperatureF < tempExtremeColdF:
		breakdown["temperature"] = tempExtremeColdPts
	case w.TemperatureF < tempVeryColdF:
		breakdown["temperature"] = tempVeryColdPts
	case w.TemperatureF < tempFreezingF:
		breakdown["temperature"] = tempFreezingPts
	case w.TemperatureF < tempColdF:
		breakdown["temperature"] = tempColdPts
	}

	severity := 0.0
	for _, v := range breakdown {
		severity += v
	}

	return WeatherResult{
		Severity:  severity,
		Breakdown: breakdown,
		TotalAdj:  -severity * totalPointsPerSeverity,
	}
}

func precipPoints(precipType string, probability float64) float64 {
	switch precipType {
	case "snow":
		if probability > precipHeavyProb {
			return snowHeavyPts
		}
		if probability > precipLightProb {
			return snowLightPts
		}
	case "rain":
		if probability > precipHeavyProb {
			return rainHeavyPts
		}
		if probability > precipLightProb {
			return rainLightPts
		}
	}
	return 0
}

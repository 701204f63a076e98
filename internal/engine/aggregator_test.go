package engine_test

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/mkrebs/gridline/internal/engine"
	"github.com/mkrebs/gridline/pkg/models"
	"github.com/mkrebs/gridline/sports/football_nfl"
)

// evenGame is a dome game between equal teams with no season metrics: the
// prediction reduces to home-field advantage plus the short-travel credit.
func evenGame() models.SlateGame {
	return models.SlateGame{
		Context: models.GameContext{
			GameID:       "2026-wk5-KC-LV",
			Sport:        models.SportNFL,
			Week:         5,
			HomeTeam:     "KC",
			AwayTeam:     "LV",
			HomeRestDays: 7,
			AwayRestDays: 7,
			TravelMiles:  200,
			Weather:      &models.Weather{Dome: true},
		},
		HomeBaseline: 90.0,
		AwayBaseline: 90.0,
		MarketLine:   -3.5,
		MarketTotal:  44.5,
	}
}

func TestAggregateEvenMatchup(t *testing.T) {
	agg := engine.NewAggregator(football_nfl.NewProfile())

	analysis, err := agg.Aggregate(evenGame())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Margin = 0 rating diff + 2.0 HFA + 0.06 travel credit = 2.06.
	if math.Abs(analysis.PredictedLine-(-2.06)) > 0.0001 {
		t.Fatalf("PredictedLine = %f, want -2.06", analysis.PredictedLine)
	}
	if math.Abs(analysis.EdgePoints-(-1.44)) > 0.0001 {
		t.Errorf("EdgePoints = %f, want -1.44", analysis.EdgePoints)
	}
	if analysis.Classification != models.ClassLean {
		t.Errorf("Classification = %s, want LEAN", analysis.Classification)
	}
	if analysis.Side != models.SideAway {
		t.Errorf("Side = %s, want AWAY", analysis.Side)
	}
	if analysis.StarRating != 0.5 {
		t.Errorf("StarRating = %f, want 0.5", analysis.StarRating)
	}

	// No season metrics: total prediction falls back to league averages.
	if math.Abs(analysis.PredictedTotal-45.0) > 0.0001 {
		t.Errorf("PredictedTotal = %f, want 45.0", analysis.PredictedTotal)
	}
	if math.Abs(analysis.TotalEdge-0.5) > 0.0001 {
		t.Errorf("TotalEdge = %f, want 0.5", analysis.TotalEdge)
	}
}

func TestAggregateDeterministic(t *testing.T) {
	agg := engine.NewAggregator(football_nfl.NewProfile())

	first, err := agg.Aggregate(evenGame())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := agg.Aggregate(evenGame())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical inputs produced different analyses:\n%+v\n%+v", first, second)
	}
}

func TestAggregateMaxBet(t *testing.T) {
	game := evenGame()
	game.HomeBaseline = 100.0

	agg := engine.NewAggregator(football_nfl.NewProfile())
	analysis, err := agg.Aggregate(game)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Margin 12.06 against a -3.5 market: 8.56 points of home value, crossing
	// 4, 6, 7 and 10 on the way.
	if math.Abs(analysis.EdgePoints-8.56) > 0.0001 {
		t.Fatalf("EdgePoints = %f, want 8.56", analysis.EdgePoints)
	}
	if analysis.Classification != models.ClassMaxBet {
		t.Errorf("Classification = %s, want MAX_BET", analysis.Classification)
	}
	if analysis.Side != models.SideHome {
		t.Errorf("Side = %s, want HOME", analysis.Side)
	}
	if analysis.StarRating != 3.0 {
		t.Errorf("StarRating = %f, want 3.0", analysis.StarRating)
	}
	if math.Abs(analysis.EdgePercent-15.5) > 0.0001 {
		t.Errorf("EdgePercent = %f, want 15.5", analysis.EdgePercent)
	}
}

func TestAggregatePercentageFloorGatesPointEdge(t *testing.T) {
	// 2.56 points of edge but the gap only crosses the 10 (3.0%), below the
	// 5.5% floor: downgraded to NO_PLAY regardless of the point tier.
	game := evenGame()
	game.HomeBaseline = 100.0
	game.MarketLine = -9.5

	agg := engine.NewAggregator(football_nfl.NewProfile())
	analysis, err := agg.Aggregate(game)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(analysis.EdgePoints-2.56) > 0.0001 {
		t.Fatalf("EdgePoints = %f, want 2.56", analysis.EdgePoints)
	}
	if analysis.Classification != models.ClassNoPlay {
		t.Errorf("Classification = %s, want NO_PLAY", analysis.Classification)
	}
	if analysis.Side != models.SideNone {
		t.Errorf("Side = %s, want NONE", analysis.Side)
	}
	if analysis.StarRating != 0 {
		t.Errorf("StarRating = %f, want 0", analysis.StarRating)
	}
}

func TestAggregateMissingBaseline(t *testing.T) {
	game := evenGame()
	game.HomeBaseline = 0

	agg := engine.NewAggregator(football_nfl.NewProfile())
	_, err := agg.Aggregate(game)

	var missing *models.MissingDataError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %v, want MissingDataError", err)
	}
	if missing.Field != "home_baseline" {
		t.Errorf("Field = %s, want home_baseline", missing.Field)
	}
}

func TestAggregateMissingWeather(t *testing.T) {
	// No forecast is a skip, not a zero-degree outdoor game.
	game := evenGame()
	game.Context.Weather = nil

	agg := engine.NewAggregator(football_nfl.NewProfile())
	_, err := agg.Aggregate(game)

	var missing *models.MissingDataError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %v, want MissingDataError", err)
	}
	if missing.Field != "weather" {
		t.Errorf("Field = %s, want weather", missing.Field)
	}
}

func TestAggregateImplausibleLine(t *testing.T) {
	game := evenGame()
	game.MarketLine = -40.0

	agg := engine.NewAggregator(football_nfl.NewProfile())
	_, err := agg.Aggregate(game)

	var invalid *models.ValidationError
	if !errors.As(err, &invalid) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
}

func TestAggregateWeatherLowersTotalOnly(t *testing.T) {
	game := evenGame()
	game.Context.Weather = &models.Weather{
		WindSpeedMPH:      18,
		PrecipType:        "snow",
		PrecipProbability: 70,
		TemperatureF:      28,
	}

	agg := engine.NewAggregator(football_nfl.NewProfile())
	analysis, err := agg.Aggregate(game)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Severity 60 knocks 6 points off the total and leaves the spread alone.
	if math.Abs(analysis.PredictedTotal-39.0) > 0.0001 {
		t.Errorf("PredictedTotal = %f, want 39.0", analysis.PredictedTotal)
	}
	if math.Abs(analysis.PredictedLine-(-2.06)) > 0.0001 {
		t.Errorf("PredictedLine = %f, want -2.06 unchanged by weather", analysis.PredictedLine)
	}
	if math.Abs(analysis.Terms.WeatherTotal-(-6.0)) > 0.0001 {
		t.Errorf("Terms.WeatherTotal = %f, want -6.0", analysis.Terms.WeatherTotal)
	}
}

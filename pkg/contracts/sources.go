// Package contracts defines the interfaces between the engine and its
// external collaborators. Scrapers, API clients and persistence supply these;
// the core only consumes them.
package contracts

import (
	"context"

	"github.com/mkrebs/gridline/pkg/models"
)

// RatingSource supplies weekly baseline power ratings per team.
type RatingSource interface {
	BaselineRating(ctx context.Context, team string, week int) (float64, error)
}

// PerformanceSource supplies current-season performance metrics. A nil
// result with nil error means no metrics are available yet; the blender
// treats that as an expected outcome, not a failure.
type PerformanceSource interface {
	Metrics(ctx context.Context, team string) (*models.PerformanceMetrics, error)
}

// MarketSource supplies posted lines and odds per game.
type MarketSource interface {
	MarketLine(ctx context.Context, gameID string) (line, total float64, oddsHome, oddsAway int, err error)
}

// WeatherSource supplies the game-site forecast.
type WeatherSource interface {
	Forecast(ctx context.Context, gameID string) (models.Weather, error)
}

// InjurySource supplies the current injury report per team.
type InjurySource interface {
	Injuries(ctx context.Context, team string) ([]models.InjuryReport, error)
}

// ClosingSource supplies closing lines and final results for CLV resolution.
type ClosingSource interface {
	ClosingLine(ctx context.Context, gameID string) (line float64, odds int, known bool, err error)
	FinalResult(ctx context.Context, gameID string, side models.Side, line float64) (models.BetResult, bool, error)
}

// RecommendationStore persists recommendations and CLV records.
type RecommendationStore interface {
	WriteRecommendation(ctx context.Context, rec models.BetRecommendation) error
	WriteCLVRecord(ctx context.Context, record models.CLVRecord) error
	PendingCLVRecords(ctx context.Context) ([]models.CLVRecord, error)
}

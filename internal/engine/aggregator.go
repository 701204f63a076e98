// Package engine combines rating, situational and key-number signals into
// edge analyses, and evaluates whole slates in parallel.
package engine

import (
	"math"

	"github.com/mkrebs/gridline/internal/blender"
	"github.com/mkrebs/gridline/internal/factors"
	"github.com/mkrebs/gridline/internal/keynum"
	"github.com/mkrebs/gridline/pkg/contracts"
	"github.com/mkrebs/gridline/pkg/models"
)

// Classification tiers in points of spread edge. The percentage floor in
// keynum is an independent gate on top of these.
const (
	maxBetEdgePts   = 7.0
	strongEdgePts   = 4.0
	moderateEdgePts = 2.0
	leanEdgePts     = 1.0
)

// starByClassification maps tiers to star ratings. Must stay monotonic with
// the tier order.
var starByClassification = map[models.Classification]float64{
	models.ClassMaxBet:   3.0,
	models.ClassStrong:   2.5,
	models.ClassModerate: 1.5,
	models.ClassLean:     0.5,
	models.ClassNoPlay:   0,
}

// Aggregator produces one immutable EdgeAnalysis per game.
type Aggregator struct {
	profile contracts.SportProfile
	blender *blender.Blender
}

// NewAggregator creates an aggregator for one sport.
func NewAggregator(profile contracts.SportProfile) *Aggregator {
	return &Aggregator{
		profile: profile,
		blender: blender.New(profile),
	}
}

// Aggregate scores a single game. Market inputs are validated at the
// boundary; implausible lines are rejected before any scoring proceeds.
// Identical inputs always yield identical output.
func (a *Aggregator) Aggregate(game models.SlateGame) (models.EdgeAnalysis, error) {
	ctx := game.Context

	if game.HomeBaseline == 0 {
		return models.EdgeAnalysis{}, &models.MissingDataError{GameID: ctx.GameID, Field: "home_baseline"}
	}
	if game.AwayBaseline == 0 {
		return models.EdgeAnalysis{}, &models.MissingDataError{GameID: ctx.GameID, Field: "away_baseline"}
	}
	if ctx.Weather == nil {
		return models.EdgeAnalysis{}, &models.MissingDataError{GameID: ctx.GameID, Field: "weather"}
	}
	if err := a.profile.ValidateLine(game.MarketLine); err != nil {
		return models.EdgeAnalysis{}, err
	}
	if err := a.profile.ValidateTotal(game.MarketTotal); err != nil {
		return models.EdgeAnalysis{}, err
	}

	home := a.blender.Blend(ctx.HomeTeam, ctx.Week, game.HomeBaseline, game.HomePerformance)
	away := a.blender.Blend(ctx.AwayTeam, ctx.Week, game.AwayBaseline, game.AwayPerformance)

	sit := factors.Situational(ctx)
	emo := factors.Emotional(ctx)
	inj := factors.InjuryImpact(ctx)
	wx := factors.WeatherImpact(*ctx.Weather)

	// Home-perspective margin; positive means home wins by that many.
	margin := home.Blended - away.Blended +
		a.profile.HomeFieldAdvantage() +
		sit.SpreadAdj + emo.SpreadAdj + inj.SpreadAdj

	predictedLine := -margin
	edgePoints := game.MarketLine - predictedLine

	predictedTotal := a.predictTotal(game) + wx.TotalAdj
	totalEdge := predictedTotal - game.MarketTotal

	valuation := keynum.Value(predictedLine, game.MarketLine, a.profile)

	classification := classify(edgePoints)
	// Percentage floor gates every tier: thin key-number value downgrades
	// to NO_PLAY no matter how large the point edge.
	if math.Abs(valuation.EdgePercent) < keynum.EdgeFloorPct {
		classification = models.ClassNoPlay
	}

	side := models.SideNone
	if classification != models.ClassNoPlay {
		if edgePoints > 0 {
			side = models.SideHome
		} else if edgePoints < 0 {
			side = models.SideAway
		}
	}

	return models.EdgeAnalysis{
		GameID:         ctx.GameID,
		Sport:          ctx.Sport,
		PredictedLine:  predictedLine,
		MarketLine:     game.MarketLine,
		PredictedTotal: predictedTotal,
		MarketTotal:    game.MarketTotal,
		EdgePoints:     edgePoints,
		TotalEdge:      totalEdge,
		EdgePercent:    valuation.EdgePercent,
		Side:           side,
		KeyNumbers:     valuation.KeyNumbers,
		Classification: classification,
		StarRating:     starByClassification[classification],
		Recommendation: valuation.Recommendation,
		Timing:         valuation.Timing,
		Terms: models.EdgeTerms{
			RatingDiff:        home.Blended - away.Blended,
			HomeField:         a.profile.HomeFieldAdvantage(),
			SituationalSpread: sit.SpreadAdj,
			EmotionalSpread:   emo.SpreadAdj,
			InjurySpread:      inj.SpreadAdj,
			WeatherTotal:      wx.TotalAdj,
			KeyNumberPct:      valuation.EdgePercent,
			Situational:       sit.Breakdown,
			Emotional:         emo.Breakdown,
			WeatherSeverity:   wx.Breakdown,
		},
	}, nil
}

// predictTotal estimates the combined score from both teams' scoring rates,
// falling back to league averages when season metrics are absent.
func (a *Aggregator) predictTotal(game models.SlateGame) float64 {
	hp, ap := game.HomePerformance, game.AwayPerformance
	if hp == nil || ap == nil {
		return a.profile.LeagueAveragePPG() + a.profile.LeagueAveragePA()
	}
	return (hp.PointsPerGame + ap.PointsPerGame +
		hp.PointsAllowedPerGame + ap.PointsAllowedPerGame) / 2.0
}

// classify maps a point edge onto its tier. Boundaries are half-open so a
// single value maps to exactly one tier.
func classify(edgePoints float64) models.Classification {
	e := math.Abs(edgePoints)
	switch {
	case e >= maxBetEdgePts:
		return models.ClassMaxBet
	case e >= strongEdgePts:
		return models.ClassStrong
	case e >= moderateEdgePts:
		return models.ClassModerate
	case e >= leanEdgePts:
		return models.ClassLean
	default:
		return models.ClassNoPlay
	}
}

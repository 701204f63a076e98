package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mkrebs/gridline/pkg/models"
)

// GameError pairs a failed game with its cause so batch callers can report
// per-game failures without aborting the slate.
type GameError struct {
	GameID string
	Err    error
}

func (e GameError) Error() string { return e.GameID + ": " + e.Err.Error() }

// Engine evaluates a slate of games. Evaluation is embarrassingly parallel:
// each game reads only immutable inputs, so games fan out across a bounded
// worker pool.
type Engine struct {
	agg     *Aggregator
	workers int
	metrics *Metrics
	log     *logrus.Entry
}

// NewEngine creates a slate engine. workers <= 0 falls back to serial
// evaluation.
func NewEngine(agg *Aggregator, workers int, metrics *Metrics, log *logrus.Entry) *Engine {
	if workers <= 0 {
		workers = 1
	}
	return &Engine{agg: agg, workers: workers, metrics: metrics, log: log}
}

// EvaluateSlate scores every game in the slate. Per-game errors are captured
// and returned alongside the successful analyses; a missing rating or an
// implausible line never aborts the remaining batch. Cancellation is
// cooperative: workers check ctx between games.
func (e *Engine) EvaluateSlate(ctx context.Context, slate []models.SlateGame) ([]models.EdgeAnalysis, []GameError) {
	games := make(chan models.SlateGame)
	var (
		mu       sync.Mutex
		analyses []models.EdgeAnalysis
		failures []GameError
	)

	var wg sync.WaitGroup
	for i := 0; i < e.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for game := range games {
				analysis, err := e.evaluateOne(game)
				mu.Lock()
				if err != nil {
					failures = append(failures, GameError{GameID: game.Context.GameID, Err: err})
				} else {
					analyses = append(analyses, analysis)
				}
				mu.Unlock()
			}
		}()
	}

feed:
	for _, game := range slate {
		select {
		case <-ctx.Done():
			break feed
		case games <- game:
		}
	}
	close(games)
	wg.Wait()

	for _, f := range failures {
		e.log.WithField("game_id", f.GameID).WithError(f.Err).Warn("game skipped")
	}

	return analyses, failures
}

// EvaluateGame scores a single game.
func (e *Engine) EvaluateGame(game models.SlateGame) (models.EdgeAnalysis, error) {
	return e.evaluateOne(game)
}

func (e *Engine) evaluateOne(game models.SlateGame) (models.EdgeAnalysis, error) {
	start := time.Now()
	analysis, err := e.agg.Aggregate(game)
	e.metrics.EvalSeconds.Observe(time.Since(start).Seconds())

	if err != nil {
		e.metrics.GamesSkipped.WithLabelValues(skipReason(err)).Inc()
		return models.EdgeAnalysis{}, err
	}

	e.metrics.GamesScored.Inc()
	e.metrics.Edges.WithLabelValues(string(analysis.Classification)).Inc()
	return analysis, nil
}

func skipReason(err error) string {
	var missing *models.MissingDataError
	var invalid *models.ValidationError
	switch {
	case errors.As(err, &missing):
		return "missing_data"
	case errors.As(err, &invalid):
		return "validation"
	default:
		return "other"
	}
}

package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics instruments slate evaluation.
type Metrics struct {
	GamesScored  prometheus.Counter
	GamesSkipped *prometheus.CounterVec
	Edges        *prometheus.CounterVec
	EvalSeconds  prometheus.Histogram
}

// NewMetrics registers engine metrics on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		GamesScored: factory.NewCounter(prometheus.CounterOpts{
			Name: "gridline_games_scored_total",
			Help: "Games evaluated successfully.",
		}),
		GamesSkipped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gridline_games_skipped_total",
			Help: "Games skipped during slate evaluation.",
		}, []string{"reason"}),
		Edges: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gridline_edges_detected_total",
			Help: "Edges detected by classification tier.",
		}, []string{"classification"}),
		EvalSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "gridline_evaluation_seconds",
			Help:    "Per-game evaluation latency.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
	}
}

package clv

import (
	"gonum.org/v1/gonum/stat"

	"github.com/mkrebs/gridline/pkg/models"
)

// Summary is a pure projection over a set of records; computing it has no
// side effects.
type Summary struct {
	Tracked  int `json:"tracked"`
	Pending  int `json:"pending"`
	Resolved int `json:"resolved"`

	Wins    int     `json:"wins"`
	Losses  int     `json:"losses"`
	Pushes  int     `json:"pushes"`
	WinRate float64 `json:"win_rate"`

	// CLV stats cover only records where both odds legs were known.
	WithCLV   int     `json:"with_clv"`
	AvgCLV    float64 `json:"avg_clv"`
	CLVStdDev float64 `json:"clv_std_dev"`

	TargetLow    float64 `json:"target_low"`
	TargetHigh   float64 `json:"target_high"`
	InTargetBand bool    `json:"in_target_band"`

	TotalROI float64 `json:"total_roi"` // units
}

// Compute aggregates win rate, average CLV against the target band, and
// total ROI across the given records.
func Compute(records []models.CLVRecord, targetLow, targetHigh float64) Summary {
	s := Summary{
		TargetLow:  targetLow,
		TargetHigh: targetHigh,
	}

	var clvs []float64
	for _, r := range records {
		s.Tracked++

		if r.CLVPoints != nil {
			clvs = append(clvs, *r.CLVPoints)
		}

		if r.Status != models.CLVResolved {
			s.Pending++
			continue
		}

		s.Resolved++
		s.TotalROI += r.ROI
		switch r.Result {
		case models.ResultWin:
			s.Wins++
		case models.ResultLoss:
			s.Losses++
		case models.ResultPush:
			s.Pushes++
		}
	}

	// Pushes are no-action for win rate.
	if decided := s.Wins + s.Losses; decided > 0 {
		s.WinRate = float64(s.Wins) / float64(decided)
	}

	s.WithCLV = len(clvs)
	if len(clvs) > 0 {
		s.AvgCLV = stat.Mean(clvs, nil)
		s.InTargetBand = s.AvgCLV >= targetLow && s.AvgCLV <= targetHigh
	}
	if len(clvs) > 1 {
		s.CLVStdDev = stat.StdDev(clvs, nil)
	}

	return s
}

// Summarize computes the summary over every tracked record.
func (t *Tracker) Summarize() Summary {
	return Compute(t.All(), t.targetLow, t.targetHigh)
}

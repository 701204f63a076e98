package clv_test

import (
	"math"
	"testing"

	"github.com/mkrebs/gridline/internal/clv"
	"github.com/mkrebs/gridline/pkg/models"
)

func ptr(v float64) *float64 { return &v }

func TestComputeSummary(t *testing.T) {
	records := []models.CLVRecord{
		{Status: models.CLVResolved, Result: models.ResultWin, ROI: 1.82, CLVPoints: ptr(0.5)},
		{Status: models.CLVResolved, Result: models.ResultWin, ROI: 1.82, CLVPoints: ptr(1.5)},
		{Status: models.CLVResolved, Result: models.ResultLoss, ROI: -2.0, CLVPoints: ptr(1.0)},
		{Status: models.CLVResolved, Result: models.ResultPush, ROI: 0},
		{Status: models.CLVLineKnown, CLVPoints: ptr(3.0)},
		{Status: models.CLVPending},
	}

	s := clv.Compute(records, 0.5, 2.0)

	if s.Tracked != 6 || s.Resolved != 4 || s.Pending != 2 {
		t.Errorf("counts = %d/%d/%d, want 6/4/2", s.Tracked, s.Resolved, s.Pending)
	}
	if s.Wins != 2 || s.Losses != 1 || s.Pushes != 1 {
		t.Errorf("record = %d-%d-%d, want 2-1-1", s.Wins, s.Losses, s.Pushes)
	}

	// Pushes are no-action: 2 of 3 decided.
	if math.Abs(s.WinRate-2.0/3.0) > 0.0001 {
		t.Errorf("WinRate = %f, want 0.6667", s.WinRate)
	}

	if s.WithCLV != 4 {
		t.Fatalf("WithCLV = %d, want 4", s.WithCLV)
	}
	if math.Abs(s.AvgCLV-1.5) > 0.0001 {
		t.Errorf("AvgCLV = %f, want 1.5", s.AvgCLV)
	}
	if s.CLVStdDev <= 0 {
		t.Errorf("CLVStdDev = %f, want positive", s.CLVStdDev)
	}
	if !s.InTargetBand {
		t.Error("InTargetBand = false, want true for avg 1.5 in [0.5, 2.0]")
	}
	if math.Abs(s.TotalROI-1.64) > 0.0001 {
		t.Errorf("TotalROI = %f, want 1.64", s.TotalROI)
	}
}

func TestComputeSummaryEmpty(t *testing.T) {
	s := clv.Compute(nil, 0.5, 2.0)

	if s.Tracked != 0 || s.WinRate != 0 || s.AvgCLV != 0 {
		t.Errorf("empty summary not zero-valued: %+v", s)
	}
	if s.InTargetBand {
		t.Error("InTargetBand = true with no CLV data")
	}
}

func TestComputeSummaryOutsideBand(t *testing.T) {
	records := []models.CLVRecord{
		{Status: models.CLVLineKnown, CLVPoints: ptr(-1.0)},
	}

	s := clv.Compute(records, 0.5, 2.0)
	if s.InTargetBand {
		t.Error("InTargetBand = true for avg -1.0 against [0.5, 2.0]")
	}
}

func TestTrackerSummarize(t *testing.T) {
	tracker := clv.NewTracker(0.5, 2.0)
	tracker.Record(recommendation("r1"))
	tracker.UpdateClosingLine("r1", 2.5, -160)
	tracker.UpdateResult("r1", models.ResultWin)

	s := tracker.Summarize()

	if s.Resolved != 1 || s.Wins != 1 {
		t.Errorf("summary = %+v, want one resolved win", s)
	}
	// (-110 - (-160)) / 100 = +0.50
	if math.Abs(s.AvgCLV-0.50) > 0.0001 {
		t.Errorf("AvgCLV = %f, want 0.50", s.AvgCLV)
	}
}

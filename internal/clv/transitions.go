package clv

import (
	"fmt"
	"math"
	"time"

	"github.com/mkrebs/gridline/pkg/models"
	"github.com/mkrebs/gridline/pkg/oddsmath"
)

// applyClosingLine performs the PENDING -> LINE_KNOWN transition on a copy
// of the record. CLV in points is (opening_odds - closing_odds) / 100,
// computed only when both legs are valid numbers.
func applyClosingLine(record models.CLVRecord, closingLine float64, closingOdds int) (models.CLVRecord, error) {
	if math.IsNaN(closingLine) || math.IsInf(closingLine, 0) {
		return models.CLVRecord{}, &models.ValidationError{
			Field: "closing_line", Value: closingLine, Reason: "not a finite number",
		}
	}
	if _, err := oddsmath.AmericanToDecimal(closingOdds); err != nil {
		return models.CLVRecord{}, &models.ValidationError{
			Field: "closing_odds", Value: float64(closingOdds), Reason: "not valid American odds",
		}
	}
	if record.Status != models.CLVPending {
		return models.CLVRecord{}, &models.StateTransitionError{
			RecordID: record.RecommendationID, From: record.Status, To: models.CLVLineKnown,
		}
	}

	clv := float64(record.OpeningOdds-closingOdds) / 100.0

	record.Status = models.CLVLineKnown
	record.ClosingLine = &closingLine
	record.ClosingOdds = &closingOdds
	record.CLVPoints = &clv
	record.LineAt = time.Now().UTC()
	record.Version++
	return record, nil
}

// applyResult performs the transition to RESOLVED on a copy of the record.
// RESOLVED is terminal. ROI in units: +stake x payout multiplier on a win,
// -stake on a loss, 0 on a push. A record may resolve straight from PENDING
// (final before the closing line was captured); its CLV then stays absent.
func applyResult(record models.CLVRecord, result models.BetResult) (models.CLVRecord, error) {
	if result != models.ResultWin && result != models.ResultLoss && result != models.ResultPush {
		return models.CLVRecord{}, fmt.Errorf("invalid result %q", result)
	}
	if record.Status == models.CLVResolved {
		return models.CLVRecord{}, &models.StateTransitionError{
			RecordID: record.RecommendationID, From: record.Status, To: models.CLVResolved,
		}
	}

	switch result {
	case models.ResultWin:
		multiplier, err := oddsmath.PayoutMultiplier(record.OpeningOdds)
		if err != nil {
			return models.CLVRecord{}, fmt.Errorf("record %s: %w", record.RecommendationID, err)
		}
		record.ROI = record.Stake * multiplier
	case models.ResultLoss:
		record.ROI = -record.Stake
	case models.ResultPush:
		record.ROI = 0
	}

	record.Status = models.CLVResolved
	record.Result = result
	record.ResolvedAt = time.Now().UTC()
	record.Version++
	return record, nil
}

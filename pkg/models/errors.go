package models

import "fmt"

// MissingDataError reports an absent input (rating, odds, weather) for a
// game. Batch scoring skips the game and continues.
type MissingDataError struct {
	GameID string
	Field  string
}

func (e *MissingDataError) Error() string {
	return fmt.Sprintf("missing data for game %s: %s", e.GameID, e.Field)
}

// ValidationError reports an out-of-range input rejected before scoring.
type ValidationError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %.2f: %s", e.Field, e.Value, e.Reason)
}

// CapExceededError reports a bet that would breach a per-bet or weekly cap.
// Cap violations are always surfaced, never silently downgraded.
type CapExceededError struct {
	Reason    string
	Requested float64
	Remaining float64
}

func (e *CapExceededError) Error() string {
	return fmt.Sprintf("cap exceeded: %s (requested %.4f, remaining %.4f)",
		e.Reason, e.Requested, e.Remaining)
}

// StateTransitionError reports an illegal CLV lifecycle transition, such as
// setting a closing line on an already-resolved record.
type StateTransitionError struct {
	RecordID string
	From     CLVStatus
	To       CLVStatus
}

func (e *StateTransitionError) Error() string {
	return fmt.Sprintf("record %s: illegal transition %s -> %s", e.RecordID, e.From, e.To)
}

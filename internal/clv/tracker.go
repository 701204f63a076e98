// Package clv tracks recommendations through closing-line-value resolution.
//
// Each bet moves through a strict lifecycle: PENDING -> LINE_KNOWN ->
// RESOLVED. CLV is defined only when both the opening and closing odds are
// known; a record resolved without a closing line keeps an absent CLV, not a
// zero one.
package clv

import (
	"fmt"
	"sort"
	"sync"

	"github.com/mkrebs/gridline/pkg/models"
	"github.com/mkrebs/gridline/pkg/oddsmath"
)

// Tracker stores CLV records in memory. Mutations to the same record are
// serialized behind one lock, and every mutation bumps the record version so
// a write-behind store can detect lost updates.
type Tracker struct {
	mu      sync.RWMutex
	records map[string]*models.CLVRecord

	targetLow  float64
	targetHigh float64
}

// NewTracker creates a tracker with the given average-CLV target band.
func NewTracker(targetLow, targetHigh float64) *Tracker {
	return &Tracker{
		records:    make(map[string]*models.CLVRecord),
		targetLow:  targetLow,
		targetHigh: targetHigh,
	}
}

// Record registers a placed recommendation and creates its CLV record in
// PENDING with the closing line unset. The opening odds are the first leg
// of the CLV computation, so an invalid opening leg is rejected here rather
// than surfacing as a bogus CLV later.
func (t *Tracker) Record(rec models.BetRecommendation) (models.CLVRecord, error) {
	if _, err := oddsmath.AmericanToDecimal(rec.Odds); err != nil {
		return models.CLVRecord{}, &models.ValidationError{
			Field: "opening_odds", Value: float64(rec.Odds), Reason: "not valid American odds",
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.records[rec.ID]; exists {
		return models.CLVRecord{}, fmt.Errorf("recommendation %s already tracked", rec.ID)
	}

	record := &models.CLVRecord{
		RecommendationID: rec.ID,
		GameID:           rec.GameID,
		Side:             rec.Side,
		Status:           models.CLVPending,
		OpeningLine:      rec.Line,
		OpeningOdds:      rec.Odds,
		Result:           models.ResultPending,
		Stake:            rec.StakeFraction * 100, // betting units: 1 unit = 1% of bankroll
		Version:          1,
		PlacedAt:         rec.PlacedAt,
	}
	t.records[rec.ID] = record
	return *record, nil
}

// UpdateClosingLine transitions a record to LINE_KNOWN and computes CLV in
// points as (opening_odds - closing_odds) / 100. Only legal from PENDING;
// resolved or already-updated records fail with a StateTransitionError.
func (t *Tracker) UpdateClosingLine(id string, closingLine float64, closingOdds int) (models.CLVRecord, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	record, err := t.getLocked(id)
	if err != nil {
		return models.CLVRecord{}, err
	}

	updated, err := applyClosingLine(*record, closingLine, closingOdds)
	if err != nil {
		return models.CLVRecord{}, err
	}
	*record = updated
	return updated, nil
}

// UpdateResult transitions a record to RESOLVED and computes ROI in units:
// +stake x payout multiplier on a win, -stake on a loss, 0 on a push.
// RESOLVED is terminal; resolving twice fails with a StateTransitionError.
// A record may resolve straight from PENDING (final before the closing line
// was captured), in which case its CLV stays absent.
func (t *Tracker) UpdateResult(id string, result models.BetResult) (models.CLVRecord, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	record, err := t.getLocked(id)
	if err != nil {
		return models.CLVRecord{}, err
	}

	updated, err := applyResult(*record, result)
	if err != nil {
		return models.CLVRecord{}, err
	}
	*record = updated
	return updated, nil
}

// Get returns a copy of one record.
func (t *Tracker) Get(id string) (models.CLVRecord, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	record, err := t.getLocked(id)
	if err != nil {
		return models.CLVRecord{}, err
	}
	return *record, nil
}

// Pending lists records not yet resolved, oldest first.
func (t *Tracker) Pending() []models.CLVRecord {
	return t.list(func(r *models.CLVRecord) bool { return r.Status != models.CLVResolved })
}

// Resolved lists settled records, oldest first.
func (t *Tracker) Resolved() []models.CLVRecord {
	return t.list(func(r *models.CLVRecord) bool { return r.Status == models.CLVResolved })
}

// All lists every tracked record, oldest first.
func (t *Tracker) All() []models.CLVRecord {
	return t.list(func(*models.CLVRecord) bool { return true })
}

func (t *Tracker) list(keep func(*models.CLVRecord) bool) []models.CLVRecord {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]models.CLVRecord, 0, len(t.records))
	for _, r := range t.records {
		if keep(r) {
			out = append(out, *r)
		}
	}
	sortByPlacedAt(out)
	return out
}

func (t *Tracker) getLocked(id string) (*models.CLVRecord, error) {
	record, ok := t.records[id]
	if !ok {
		return nil, fmt.Errorf("no CLV record for id %s", id)
	}
	return record, nil
}

func sortByPlacedAt(records []models.CLVRecord) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].PlacedAt.Before(records[j].PlacedAt)
	})
}

// Package risk sizes bets from classification tiers and enforces the weekly
// exposure discipline.
package risk

import (
	"sync"
	"time"

	"github.com/mkrebs/gridline/pkg/models"
)

// PlacedStake is one accepted bet in the weekly ledger.
type PlacedStake struct {
	RecommendationID string    `json:"recommendation_id"`
	GameID           string    `json:"game_id"`
	Fraction         float64   `json:"fraction"`
	Bankroll         float64   `json:"bankroll"`
	PlacedAt         time.Time `json:"placed_at"`
}

// Snapshot is a lock-free copy of the ledger state for readers.
type Snapshot struct {
	Week        int           `json:"week"`
	Bets        []PlacedStake `json:"bets"`
	Cumulative  float64       `json:"cumulative_exposure"`
	RealizedPnL float64       `json:"realized_pnl"`
	Drawdown    float64       `json:"drawdown"`
	Halted      bool          `json:"halted"`
}

// Ledger is the one piece of process-wide mutable state. Acceptance
// decisions are order-dependent, so every reservation runs check-then-act
// under a single lock. The ledger is scoped to one betting week and must be
// reset explicitly at the week boundary; there is no implicit rollover.
type Ledger struct {
	mu sync.Mutex

	week        int
	bets        []PlacedStake
	cumulative  float64
	realizedPnL float64 // fraction of bankroll; negative is a drawdown
	halted      bool

	weeklyLimit     float64
	stopLossTrigger float64
	recovery        float64
}

// NewLedger creates a ledger for one betting week.
func NewLedger(week int, weeklyLimit, stopLossTrigger, recovery float64) *Ledger {
	return &Ledger{
		week:            week,
		weeklyLimit:     weeklyLimit,
		stopLossTrigger: stopLossTrigger,
		recovery:        recovery,
	}
}

// Reserve atomically checks capacity and commits a stake. When the request
// would breach the weekly limit but capacity remains, the stake is capped to
// the remaining capacity rather than rejected; with no capacity left it is
// rejected outright. A stop-loss halt rejects everything until recovery.
// The granted fraction and the capacity remaining after the commit are
// returned.
func (l *Ledger) Reserve(stake PlacedStake) (granted, remaining float64, capped bool, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.halted {
		return 0, l.weeklyLimit - l.cumulative, false, &models.CapExceededError{
			Reason:    "stop-loss active: weekly drawdown exceeded trigger",
			Requested: stake.Fraction,
			Remaining: 0,
		}
	}

	capacity := l.weeklyLimit - l.cumulative
	if capacity <= 1e-9 {
		return 0, 0, false, &models.CapExceededError{
			Reason:    "weekly exposure limit reached",
			Requested: stake.Fraction,
			Remaining: 0,
		}
	}

	granted = stake.Fraction
	if granted > capacity {
		granted = capacity
		capped = true
	}

	stake.Fraction = granted
	l.bets = append(l.bets, stake)
	l.cumulative += granted

	return granted, l.weeklyLimit - l.cumulative, capped, nil
}

// RecordResult applies a settled bet's profit or loss (as a fraction of
// bankroll) and re-evaluates the stop-loss state: sizing halts once the
// realized weekly drawdown reaches the trigger and resumes only after it
// recovers back under the recovery threshold.
func (l *Ledger) RecordResult(pnlFraction float64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.realizedPnL += pnlFraction

	drawdown := l.drawdownLocked()
	if !l.halted && drawdown >= l.stopLossTrigger {
		l.halted = true
	} else if l.halted && drawdown <= l.recovery {
		l.halted = false
	}
}

// ResetWeek clears all exposure and stop-loss state for a new betting week.
func (l *Ledger) ResetWeek(week int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.week = week
	l.bets = nil
	l.cumulative = 0
	l.realizedPnL = 0
	l.halted = false
}

// Snapshot returns a copy of the current state.
func (l *Ledger) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	bets := make([]PlacedStake, len(l.bets))
	copy(bets, l.bets)

	return Snapshot{
		Week:        l.week,
		Bets:        bets,
		Cumulative:  l.cumulative,
		RealizedPnL: l.realizedPnL,
		Drawdown:    l.drawdownLocked(),
		Halted:      l.halted,
	}
}

func (l *Ledger) drawdownLocked() float64 {
	if l.realizedPnL >= 0 {
		return 0
	}
	return -l.realizedPnL
}

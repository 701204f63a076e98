package clv

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mkrebs/gridline/pkg/contracts"
	"github.com/mkrebs/gridline/pkg/models"
)

// Resolver polls pending CLV records against the closing source and advances
// their lifecycle in the store. It is the batch counterpart of the in-memory
// Tracker and applies the same transitions.
type Resolver struct {
	store    contracts.RecommendationStore
	source   contracts.ClosingSource
	interval time.Duration
	log      *logrus.Entry
}

// NewResolver creates a resolver polling at the given interval.
func NewResolver(store contracts.RecommendationStore, source contracts.ClosingSource,
	interval time.Duration, log *logrus.Entry) *Resolver {
	return &Resolver{
		store:    store,
		source:   source,
		interval: interval,
		log:      log,
	}
}

// Run polls until ctx is cancelled. One failing record never blocks the
// rest of the batch.
func (r *Resolver) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.log.WithField("interval", r.interval).Info("clv resolver started")

	for {
		select {
		case <-ctx.Done():
			r.log.Info("clv resolver stopped")
			return ctx.Err()
		case <-ticker.C:
			if err := r.ResolveBatch(ctx); err != nil {
				r.log.WithError(err).Error("resolution pass failed")
			}
		}
	}
}

// ResolveBatch runs one pass over all unresolved records.
func (r *Resolver) ResolveBatch(ctx context.Context) error {
	records, err := r.store.PendingCLVRecords(ctx)
	if err != nil {
		return err
	}

	var advanced int
	for _, record := range records {
		changed, err := r.resolveOne(ctx, record)
		if err != nil {
			r.log.WithError(err).WithField("record_id", record.RecommendationID).
				Warn("record resolution failed")
			continue
		}
		if changed {
			advanced++
		}
	}

	if advanced > 0 {
		r.log.WithField("advanced", advanced).WithField("checked", len(records)).
			Info("resolution pass complete")
	}
	return nil
}

// resolveOne advances a single record as far as the closing source allows:
// capture the closing line if the market has closed, then settle if the game
// has gone final. A concurrent update shows up as a version conflict on
// write-back; skip and pick the record up fresh on the next pass.
func (r *Resolver) resolveOne(ctx context.Context, record models.CLVRecord) (bool, error) {
	var changed bool

	if record.Status == models.CLVPending {
		line, odds, known, err := r.source.ClosingLine(ctx, record.GameID)
		if err != nil {
			return false, err
		}
		if known {
			updated, err := applyClosingLine(record, line, odds)
			if err != nil {
				return false, err
			}
			record = updated
			changed = true
		}
	}

	result, done, resultErr := r.source.FinalResult(ctx, record.GameID, record.Side, record.OpeningLine)
	if resultErr == nil && done {
		updated, err := applyResult(record, result)
		if err != nil {
			return changed, err
		}
		record = updated
		changed = true
	}

	if changed {
		if err := r.store.WriteCLVRecord(ctx, record); err != nil {
			return false, err
		}
	}
	return changed, resultErr
}

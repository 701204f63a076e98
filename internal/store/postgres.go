// Package store persists recommendations and CLV records to postgres.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mkrebs/gridline/pkg/models"
)

// Postgres implements contracts.RecommendationStore over database/sql.
type Postgres struct {
	db *sql.DB
}

// NewPostgres creates a store over an open connection.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// WriteRecommendation inserts an accepted recommendation. Recommendations
// are immutable; a duplicate id is a no-op.
func (s *Postgres) WriteRecommendation(ctx context.Context, rec models.BetRecommendation) error {
	query := `
		INSERT INTO recommendations (
			id, game_id, side, line, odds, edge_points, edge_pct,
			classification, star_rating, stake_fraction, stake_amount,
			bankroll, remaining_capacity, capped, cap_reason, placed_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (id) DO NOTHING
	`

	_, err := s.db.ExecContext(ctx, query,
		rec.ID, rec.GameID, string(rec.Side), rec.Line, rec.Odds,
		rec.EdgePoints, rec.EdgePercent, string(rec.Classification),
		rec.StarRating, rec.StakeFraction, rec.StakeAmount,
		rec.Bankroll, rec.RemainingCapacity, rec.Capped, rec.CapReason,
		rec.PlacedAt,
	)
	if err != nil {
		return fmt.Errorf("insert recommendation %s: %w", rec.ID, err)
	}
	return nil
}

// WriteCLVRecord upserts a CLV record. The version guard makes concurrent
// write-backs safe: a stale snapshot never overwrites a newer row.
func (s *Postgres) WriteCLVRecord(ctx context.Context, record models.CLVRecord) error {
	query := `
		INSERT INTO clv_records (
			recommendation_id, game_id, side, status, opening_line,
			opening_odds, closing_line, closing_odds, result, clv_points,
			roi, stake, version, placed_at, line_at, resolved_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (recommendation_id) DO UPDATE SET
			status       = EXCLUDED.status,
			closing_line = EXCLUDED.closing_line,
			closing_odds = EXCLUDED.closing_odds,
			result       = EXCLUDED.result,
			clv_points   = EXCLUDED.clv_points,
			roi          = EXCLUDED.roi,
			version      = EXCLUDED.version,
			line_at      = EXCLUDED.line_at,
			resolved_at  = EXCLUDED.resolved_at
		WHERE clv_records.version < EXCLUDED.version
	`

	_, err := s.db.ExecContext(ctx, query,
		record.RecommendationID, record.GameID, string(record.Side),
		string(record.Status), record.OpeningLine, record.OpeningOdds,
		record.ClosingLine, record.ClosingOdds, string(record.Result),
		record.CLVPoints, record.ROI, record.Stake, record.Version,
		record.PlacedAt, nullableTime(record.LineAt), nullableTime(record.ResolvedAt),
	)
	if err != nil {
		return fmt.Errorf("upsert clv record %s: %w", record.RecommendationID, err)
	}
	return nil
}

// PendingCLVRecords returns unresolved records, oldest first.
func (s *Postgres) PendingCLVRecords(ctx context.Context) ([]models.CLVRecord, error) {
	return s.queryRecords(ctx, `
		SELECT recommendation_id, game_id, side, status, opening_line,
		       opening_odds, closing_line, closing_odds, result, clv_points,
		       roi, stake, version, placed_at
		FROM clv_records
		WHERE status != 'RESOLVED'
		ORDER BY placed_at
	`)
}

// AllCLVRecords returns every record, oldest first.
func (s *Postgres) AllCLVRecords(ctx context.Context) ([]models.CLVRecord, error) {
	return s.queryRecords(ctx, `
		SELECT recommendation_id, game_id, side, status, opening_line,
		       opening_odds, closing_line, closing_odds, result, clv_points,
		       roi, stake, version, placed_at
		FROM clv_records
		ORDER BY placed_at
	`)
}

func (s *Postgres) queryRecords(ctx context.Context, query string) ([]models.CLVRecord, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query clv records: %w", err)
	}
	defer rows.Close()

	var records []models.CLVRecord
	for rows.Next() {
		var (
			record models.CLVRecord
			side   string
			status string
			result string
		)
		err := rows.Scan(
			&record.RecommendationID, &record.GameID, &side, &status,
			&record.OpeningLine, &record.OpeningOdds, &record.ClosingLine,
			&record.ClosingOdds, &result, &record.CLVPoints, &record.ROI,
			&record.Stake, &record.Version, &record.PlacedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan clv record: %w", err)
		}
		record.Side = models.Side(side)
		record.Status = models.CLVStatus(status)
		record.Result = models.BetResult(result)
		records = append(records, record)
	}

	return records, rows.Err()
}

func nullableTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}

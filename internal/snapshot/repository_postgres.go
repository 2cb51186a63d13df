package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// Append one snapshot (never updated afterwards)
// --------------------------------------------------
func (r *PostgresRepository) Insert(
	ctx context.Context,
	marketID int64,
	userID string,
	p Payload,
) (int64, error) {

	encoded, err := json.Marshal(p)
	if err != nil {
		return 0, err
	}

	var id int64
	err = r.db.QueryRow(ctx, `
		INSERT INTO snapshots (market_id, user_id, payload)
		VALUES ($1, $2, $3)
		RETURNING id
	`, marketID, userID, encoded).Scan(&id)

	return id, err
}

// --------------------------------------------------
// Most recent snapshot for a market
// --------------------------------------------------
func (r *PostgresRepository) Latest(
	ctx context.Context,
	marketID int64,
) (*Snapshot, error) {

	var s Snapshot
	var encoded []byte

	err := r.db.QueryRow(ctx, `
		SELECT id, market_id, user_id, payload, created_at
		FROM snapshots
		WHERE market_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, marketID).Scan(&s.ID, &s.MarketID, &s.UserID, &encoded, &s.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(encoded, &s.Payload); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PostgresRepository) InsertKPI(ctx context.Context, entry KPIEntry) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO kpi_history (
			snapshot_id,
			market_id,
			user_id,
			analysis_date,
			competitor_count,
			avg_rating,
			positive_sentiment,
			neutral_sentiment,
			negative_sentiment,
			executive_summary
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		entry.SnapshotID,
		entry.MarketID,
		entry.UserID,
		entry.AnalysisDate,
		entry.CompetitorCount,
		entry.AvgRating,
		entry.PositiveSentiment,
		entry.NeutralSentiment,
		entry.NegativeSentiment,
		entry.ExecutiveSummary,
	)
	return err
}

// Ascending by date for charting.
func (r *PostgresRepository) KPIHistory(
	ctx context.Context,
	marketID int64,
) ([]KPIEntry, error) {

	rows, err := r.db.Query(ctx, `
		SELECT
			snapshot_id,
			market_id,
			user_id,
			analysis_date,
			competitor_count,
			avg_rating,
			positive_sentiment,
			neutral_sentiment,
			negative_sentiment,
			executive_summary
		FROM kpi_history
		WHERE market_id = $1
		ORDER BY analysis_date ASC
	`, marketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []KPIEntry
	for rows.Next() {
		var e KPIEntry
		if err := rows.Scan(
			&e.SnapshotID,
			&e.MarketID,
			&e.UserID,
			&e.AnalysisDate,
			&e.CompetitorCount,
			&e.AvgRating,
			&e.PositiveSentiment,
			&e.NeutralSentiment,
			&e.NegativeSentiment,
			&e.ExecutiveSummary,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (r *PostgresRepository) LatestDates(
	ctx context.Context,
	marketIDs []int64,
) (map[int64]time.Time, error) {

	dates := make(map[int64]time.Time)
	if len(marketIDs) == 0 {
		return dates, nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT market_id, MAX(created_at)
		FROM snapshots
		WHERE market_id = ANY($1)
		GROUP BY market_id
	`, marketIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var marketID int64
		var latest time.Time
		if err := rows.Scan(&marketID, &latest); err != nil {
			return nil, err
		}
		dates[marketID] = latest
	}
	return dates, nil
}

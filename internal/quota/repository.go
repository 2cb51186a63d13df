package quota

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// AdmitOne performs the whole check-and-increment in one atomic step:
	// a new day resets the counter to 1, an under-limit day increments it,
	// an at-limit day changes nothing and denies.
	AdmitOne(ctx context.Context, userID string, today time.Time, limit int) (bool, error)

	// Usage reads the raw counter without interpretation.
	Usage(ctx context.Context, userID string) (count int, lastDate *time.Time, err error)
}

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Single conditional UPDATE so concurrent requests from the same user
// cannot exceed the limit.
func (r *PostgresRepository) AdmitOne(
	ctx context.Context,
	userID string,
	today time.Time,
	limit int,
) (bool, error) {

	var count int
	err := r.db.QueryRow(ctx, `
		UPDATE users
		SET daily_analysis_count = CASE
				WHEN last_analysis_date IS DISTINCT FROM $2::date THEN 1
				ELSE daily_analysis_count + 1
			END,
			last_analysis_date = $2::date
		WHERE id = $1
		  AND (last_analysis_date IS DISTINCT FROM $2::date
		       OR daily_analysis_count < $3)
		RETURNING daily_analysis_count
	`, userID, today, limit).Scan(&count)

	if errors.Is(err, pgx.ErrNoRows) {
		// At limit, or unknown user: denied without mutation.
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *PostgresRepository) Usage(
	ctx context.Context,
	userID string,
) (int, *time.Time, error) {

	var count int
	var lastDate *time.Time
	err := r.db.QueryRow(ctx, `
		SELECT daily_analysis_count, last_analysis_date
		FROM users
		WHERE id = $1
	`, userID).Scan(&count, &lastDate)
	if err != nil {
		return 0, nil, err
	}
	return count, lastDate, nil
}

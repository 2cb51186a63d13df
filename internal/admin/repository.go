package admin

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Stats is the operator dashboard headline block.
type Stats struct {
	Users     int64 `json:"users"`
	Markets   int64 `json:"markets"`
	Snapshots int64 `json:"snapshots"`
}

// UserRow is the admin view of an account.
type UserRow struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	Role               string    `json:"role"`
	IsActive           bool      `json:"is_active"`
	DailyAnalysisCount int       `json:"daily_analysis_count"`
	CreatedAt          time.Time `json:"created_at"`
}

type Repository interface {
	Stats(ctx context.Context) (*Stats, error)
	ListUsers(ctx context.Context) ([]UserRow, error)
	SetUserActive(ctx context.Context, userID string, active bool) error
}

// --------------------------------------------------
// Postgres implementation
// --------------------------------------------------

type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) Stats(ctx context.Context) (*Stats, error) {
	var s Stats
	err := r.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM markets),
			(SELECT COUNT(*) FROM snapshots)
	`).Scan(&s.Users, &s.Markets, &s.Snapshots)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PostgresRepository) ListUsers(ctx context.Context) ([]UserRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, email, role, is_active, daily_analysis_count, created_at
		FROM users
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []UserRow
	for rows.Next() {
		var u UserRow
		if err := rows.Scan(&u.ID, &u.Email, &u.Role, &u.IsActive,
			&u.DailyAnalysisCount, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *PostgresRepository) SetUserActive(ctx context.Context, userID string, active bool) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET is_active = $2 WHERE id = $1`,
		userID, active,
	)
	return err
}

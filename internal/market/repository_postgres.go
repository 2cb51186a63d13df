package market

import (
	"context"
	"errors"

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
// Dedup lookup (always performed before insert)
// --------------------------------------------------
func (r *PostgresRepository) FindByTermAndLocation(
	ctx context.Context,
	userID, term, location string,
) (*Market, error) {

	var m Market
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, term, location, business_type, created_at
		FROM markets
		WHERE user_id = $1 AND term = $2 AND location = $3
		LIMIT 1
	`, userID, term, location).Scan(
		&m.ID, &m.UserID, &m.Term, &m.Location, &m.BusinessType, &m.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PostgresRepository) Insert(ctx context.Context, m *Market) error {
	query := `
		INSERT INTO markets (user_id, term, location, business_type)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	return r.db.QueryRow(ctx, query,
		m.UserID, m.Term, m.Location, m.BusinessType,
	).Scan(&m.ID, &m.CreatedAt)
}

func (r *PostgresRepository) ListByOwner(
	ctx context.Context,
	userID string,
) ([]*Market, error) {

	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, term, location, business_type, created_at
		FROM markets
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var markets []*Market
	for rows.Next() {
		var m Market
		if err := rows.Scan(
			&m.ID, &m.UserID, &m.Term, &m.Location, &m.BusinessType, &m.CreatedAt,
		); err != nil {
			return nil, err
		}
		markets = append(markets, &m)
	}
	return markets, nil
}

func (r *PostgresRepository) FindByID(
	ctx context.Context,
	marketID int64,
) (*Market, error) {

	var m Market
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, term, location, business_type, created_at
		FROM markets
		WHERE id = $1
	`, marketID).Scan(
		&m.ID, &m.UserID, &m.Term, &m.Location, &m.BusinessType, &m.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// --------------------------------------------------
// Ownership check (SECURITY)
// --------------------------------------------------
func (r *PostgresRepository) IsOwner(
	ctx context.Context,
	marketID int64,
	userID string,
) (bool, error) {

	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM markets
			WHERE id = $1
			  AND user_id = $2
		)
	`, marketID, userID).Scan(&exists)

	return exists, err
}

// Delete cascades to snapshots and kpi_history via FK constraints.
func (r *PostgresRepository) Delete(ctx context.Context, marketID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM markets WHERE id = $1`, marketID)
	return err
}

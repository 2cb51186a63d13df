package settings

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Get(ctx context.Context, name string) (string, error)
	Update(ctx context.Context, name, value string) error
}

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, name string) (string, error) {
	var value string
	err := r.db.QueryRow(ctx, `
		SELECT setting_value
		FROM platform_settings
		WHERE setting_name = $1
	`, name).Scan(&value)
	return value, err
}

func (r *PostgresRepository) Update(ctx context.Context, name, value string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO platform_settings (setting_name, setting_value)
		VALUES ($1, $2)
		ON CONFLICT (setting_name)
		DO UPDATE SET setting_value = EXCLUDED.setting_value
	`, name, value)
	return err
}

package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectPostgres() *pgxpool.Pool {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal(err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatal(err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal("Postgres connection failed:", err)
	}

	log.Println("✅ Connected to PostgreSQL")

	// Initialize schema
	if err := initSchema(pool); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	return pool
}

// initSchema creates or updates the database schema
func initSchema(pool *pgxpool.Pool) error {
	ctx := context.Background()

	// -------------------------------
	// USERS
	// -------------------------------
	userTableSQL := `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			role VARCHAR(50) NOT NULL DEFAULT 'USER',
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			daily_analysis_count INT NOT NULL DEFAULT 0,
			last_analysis_date DATE,
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := pool.Exec(ctx, userTableSQL); err != nil {
		return err
	}

	// -------------------------------
	// MARKETS
	// One row per monitored (term, location) per owner.
	// -------------------------------
	marketTableSQL := `
		CREATE TABLE IF NOT EXISTS markets (
			id SERIAL PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			term VARCHAR(255) NOT NULL,
			location VARCHAR(255) NOT NULL,
			business_type VARCHAR(100) NOT NULL DEFAULT 'Generic / Other',
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (user_id, term, location)
		)
	`
	if _, err := pool.Exec(ctx, marketTableSQL); err != nil {
		return err
	}

	// -------------------------------
	// SNAPSHOTS (append-only, never updated)
	// -------------------------------
	snapshotTableSQL := `
		CREATE TABLE IF NOT EXISTS snapshots (
			id SERIAL PRIMARY KEY,
			market_id INT NOT NULL REFERENCES markets(id) ON DELETE CASCADE,
			user_id UUID NOT NULL,
			payload JSONB NOT NULL,
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := pool.Exec(ctx, snapshotTableSQL); err != nil {
		return err
	}

	// -------------------------------
	// KPI HISTORY (one write-once row per snapshot)
	// -------------------------------
	kpiTableSQL := `
		CREATE TABLE IF NOT EXISTS kpi_history (
			id SERIAL PRIMARY KEY,
			snapshot_id INT NOT NULL UNIQUE REFERENCES snapshots(id) ON DELETE CASCADE,
			market_id INT NOT NULL REFERENCES markets(id) ON DELETE CASCADE,
			user_id UUID NOT NULL,
			analysis_date DATE NOT NULL,
			competitor_count INT NOT NULL,
			avg_rating NUMERIC(4,2) NOT NULL,
			positive_sentiment NUMERIC(5,2) NOT NULL,
			neutral_sentiment NUMERIC(5,2) NOT NULL,
			negative_sentiment NUMERIC(5,2) NOT NULL,
			executive_summary TEXT NOT NULL DEFAULT ''
		)
	`
	if _, err := pool.Exec(ctx, kpiTableSQL); err != nil {
		return err
	}

	// -------------------------------
	// PLATFORM SETTINGS
	// -------------------------------
	settingsTableSQL := `
		CREATE TABLE IF NOT EXISTS platform_settings (
			setting_name VARCHAR(100) PRIMARY KEY,
			setting_value TEXT NOT NULL
		)
	`
	if _, err := pool.Exec(ctx, settingsTableSQL); err != nil {
		return err
	}

	seedSettingsSQL := `
		INSERT INTO platform_settings (setting_name, setting_value)
		VALUES ('daily_analysis_limit', '10')
		ON CONFLICT (setting_name) DO NOTHING
	`
	if _, err := pool.Exec(ctx, seedSettingsSQL); err != nil {
		return err
	}

	log.Println("✅ Schema initialized successfully")
	return nil
}

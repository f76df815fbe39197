package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"saku/internal/platform/config"
)

// Schema creates the tables used by the rule and candidate stores.
const Schema = `
CREATE TABLE IF NOT EXISTS rules (
	key      TEXT PRIMARY KEY,
	value    JSONB NOT NULL,
	citation TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS delegates (
	id               UUID PRIMARY KEY,
	student_id       TEXT NOT NULL UNIQUE,
	full_name        TEXT NOT NULL,
	user_type        TEXT NOT NULL DEFAULT 'DELEGATE',
	council_position TEXT,
	department       TEXT NOT NULL,
	course           TEXT NOT NULL DEFAULT '',
	year_of_study    INTEGER NOT NULL,
	gender           TEXT NOT NULL,
	is_qualified     BOOLEAN NOT NULL DEFAULT FALSE,
	vetting_status   TEXT NOT NULL DEFAULT 'NOT_STARTED',
	eligibility      JSONB,
	created_at       TIMESTAMPTZ NOT NULL,
	vetted_at        TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS delegates_vetting_status_idx ON delegates (vetting_status);
`

// Open connects to PostgreSQL and pings it.
// Returns nil if the URL is empty (PostgreSQL not configured).
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	if cfg.URL == "" {
		return nil, nil
	}
	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	Configure(db, cfg)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}
	return db, nil
}

// Configure applies the pool settings in cfg to db.
func Configure(db *sql.DB, cfg config.DatabaseConfig) {
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
}

// CreateSchema applies Schema. It is safe to run repeatedly.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

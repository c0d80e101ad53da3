package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{pool: pool}, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS analysis_runs (
	id                    uuid PRIMARY KEY,
	analysis_type         text NOT NULL,
	basin                 text NOT NULL DEFAULT '',
	trigger               text NOT NULL DEFAULT '',
	success               boolean NOT NULL,
	overall_prospectivity double precision,
	payload               jsonb,
	error                 text NOT NULL DEFAULT '',
	duration_ms           bigint NOT NULL DEFAULT 0,
	created_at            timestamptz NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS analysis_runs_created_at_idx ON analysis_runs (created_at DESC);`

// Migrate creates the analysis_runs table if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (s *Store) Close() {
	s.pool.Close()
}

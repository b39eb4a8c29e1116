package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"postgen/internal/post"
)

const postgresTimeout = 10 * time.Second

const postgresSchema = `
CREATE TABLE IF NOT EXISTS slots (
    key        TEXT PRIMARY KEY,
    value      BYTEA NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
)`

// PostgresSlot implements post.Slot as one row of a Postgres slots table.
type PostgresSlot struct {
	pool *pgxpool.Pool
	key  string
}

// NewPostgresSlot connects to dsn, creates the slots table if needed and
// returns a slot for key.
func NewPostgresSlot(dsn, key string) (*PostgresSlot, error) {
	ctx, cancel := context.WithTimeout(context.Background(), postgresTimeout)
	defer cancel()

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing postgres dsn: %w", err)
	}
	cfg.MaxConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("creating slots table: %w", err)
	}

	return &PostgresSlot{pool: pool, key: key}, nil
}

// Load returns the blob stored under the slot key, or nil if the row does not exist.
func (s *PostgresSlot) Load() ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), postgresTimeout)
	defer cancel()

	var value []byte
	err := s.pool.QueryRow(ctx, "SELECT value FROM slots WHERE key = $1", s.key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading slot %q: %w", s.key, err)
	}
	return value, nil
}

// Save inserts or replaces the row for the slot key.
func (s *PostgresSlot) Save(data []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), postgresTimeout)
	defer cancel()

	_, err := s.pool.Exec(ctx, `
		INSERT INTO slots (key, value, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		s.key, data, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("writing slot %q: %w", s.key, err)
	}
	return nil
}

// Close closes the connection pool.
func (s *PostgresSlot) Close() error {
	s.pool.Close()
	return nil
}

var _ post.Slot = (*PostgresSlot)(nil)

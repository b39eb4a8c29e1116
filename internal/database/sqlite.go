package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"postgen/internal/database/migrations"
	"postgen/internal/post"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteSlot implements post.Slot as one row of the slots table.
type SQLiteSlot struct {
	db   *sql.DB
	key  string
	path string
}

// NewSQLiteSlot opens the database at path, applies pending migrations and
// returns a slot for key. path can be a file path or ":memory:".
func NewSQLiteSlot(path, key string) (*SQLiteSlot, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}

	return &SQLiteSlot{db: db, key: key, path: path}, nil
}

// NewSQLiteSlotFromDB wraps an existing, already migrated connection.
func NewSQLiteSlotFromDB(db *sql.DB, key string) *SQLiteSlot {
	return &SQLiteSlot{db: db, key: key}
}

// OpenConnection opens and configures a SQLite database connection with appropriate PRAGMAs.
// path can be a file path or ":memory:" for in-memory database.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection: ":memory:" databases are per-connection, and the
	// slot has a single writer anyway.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return db, nil
}

// Load returns the blob stored under the slot key, or nil if the row does not exist.
func (s *SQLiteSlot) Load() ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(context.Background(),
		"SELECT value FROM slots WHERE key = ?", s.key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading slot %q: %w", s.key, err)
	}
	return value, nil
}

// Save inserts or replaces the row for the slot key.
func (s *SQLiteSlot) Save(data []byte) error {
	_, err := s.db.ExecContext(context.Background(), `
		INSERT INTO slots (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.key, data, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("writing slot %q: %w", s.key, err)
	}
	return nil
}

// Path returns the database path, or "" when wrapping an existing connection.
func (s *SQLiteSlot) Path() string {
	return s.path
}

// CheckMigrations verifies the database schema is up-to-date.
func (s *SQLiteSlot) CheckMigrations() error {
	return migrations.CheckDBMigrationStatus(s.db)
}

// Close closes the database connection.
func (s *SQLiteSlot) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Compile-time check that SQLiteSlot implements post.Slot interface
var _ post.Slot = (*SQLiteSlot)(nil)

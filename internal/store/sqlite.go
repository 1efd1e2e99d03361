package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SchemaVersion is the current schema version of the slot database
const SchemaVersion = 1

// SQLiteSlot keeps slots as rows of a local SQLite database
type SQLiteSlot struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLiteSlot opens (or creates) the database at dbPath and applies migrations
func OpenSQLiteSlot(dbPath string) (*SQLiteSlot, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("open: empty db path")
	}

	err := os.MkdirAll(filepath.Dir(dbPath), 0o755)
	if err != nil {
		return nil, fmt.Errorf("open: create db dir: %w", err)
	}

	dsn := "file:" + dbPath + "?mode=rwc&_pragma=busy_timeout(5000)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open: sql open: %w", err)
	}

	err = db.Ping()
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open: ping: %w", err)
	}

	err = Migrate(db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open: migrate: %w", err)
	}

	return &SQLiteSlot{db: db, now: time.Now}, nil
}

// Migrate ensures the slots schema exists and is at SchemaVersion
func Migrate(db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("migrate: db is nil")
	}

	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (version INTEGER PRIMARY KEY);`)
	if err != nil {
		return fmt.Errorf("migrate: create schema_migrations: %w", err)
	}

	var current int
	err = db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_migrations;`).Scan(&current)
	if err != nil {
		return fmt.Errorf("migrate: read current version: %w", err)
	}
	if current >= SchemaVersion {
		return nil
	}

	transaction, err := db.Begin()
	if err != nil {
		return fmt.Errorf("migrate: begin transaction: %w", err)
	}
	defer func() { _ = transaction.Rollback() }()

	_, err = transaction.Exec(`
		CREATE TABLE IF NOT EXISTS slots (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("migrate: create slots table: %w", err)
	}

	_, err = transaction.Exec(`INSERT INTO schema_migrations(version) VALUES (?);`, SchemaVersion)
	if err != nil {
		return fmt.Errorf("migrate: record schema version: %w", err)
	}

	err = transaction.Commit()
	if err != nil {
		return fmt.Errorf("migrate: commit transaction: %w", err)
	}

	return nil
}

func (s *SQLiteSlot) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM slots WHERE key = ?;`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNoState
	}
	if err != nil {
		return "", fmt.Errorf("get slot: %w", err)
	}
	return value, nil
}

func (s *SQLiteSlot) Put(ctx context.Context, key, value string) error {
	now := s.now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO slots (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at;
	`, key, value, now)
	if err != nil {
		return fmt.Errorf("put slot: %w", err)
	}
	return nil
}

func (s *SQLiteSlot) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

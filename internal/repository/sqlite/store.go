// Package sqlite persists cart snapshots in a local SQLite file. It backs the
// command-line storefront, where the file plays the part of browser storage.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"github.com/mad-madhu-001/ecommerce/pkg/database"
)

const schema = `
CREATE TABLE IF NOT EXISTS cart_snapshots (
	snapshot_key TEXT PRIMARY KEY,
	payload TEXT NOT NULL,
	updated_at TEXT NOT NULL
)`

// Store implements repository.KeyValueStore on a SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// Open creates or opens the database at path and ensures the schema exists.
// The special path ":memory:" opens a private in-memory database.
func Open(ctx context.Context, path string) (*Store, error) {
	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
		dsn = path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// One connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Get retrieves the payload stored under key.
func (s *Store) Get(ctx context.Context, key string) (value string, ok bool, err error) {
	query, args, err := sq.Select("payload").
		From("cart_snapshots").
		Where(sq.Eq{"snapshot_key": key}).
		ToSql()
	if err != nil {
		return "", false, fmt.Errorf("build get snapshot query: %w", err)
	}

	ctx, end := database.TraceQuery(ctx, "sqlite", "GetSnapshot", query)
	defer func() { end(err) }()

	err = s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		err = nil
		return "", false, nil
	case err != nil:
		return "", false, fmt.Errorf("get snapshot %s: %w", key, err)
	}
	return value, true, nil
}

// Set upserts the payload stored under key.
func (s *Store) Set(ctx context.Context, key, value string) (err error) {
	query, args, err := sq.Insert("cart_snapshots").
		Columns("snapshot_key", "payload", "updated_at").
		Values(key, value, time.Now().UTC().Format(time.RFC3339Nano)).
		Suffix("ON CONFLICT (snapshot_key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build put snapshot query: %w", err)
	}

	ctx, end := database.TraceQuery(ctx, "sqlite", "PutSnapshot", query)
	defer func() { end(err) }()

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("put snapshot %s: %w", key, err)
	}
	return nil
}

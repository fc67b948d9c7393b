package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/mad-madhu-001/ecommerce/pkg/database"
)

const snapshotTable = "cart_snapshots"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Store implements repository.KeyValueStore on the cart_snapshots table.
type Store struct {
	pool database.DBTX
	now  func() time.Time
}

// NewStore creates a new PostgreSQL-backed key-value store.
func NewStore(pool database.DBTX) *Store {
	return &Store{pool: pool, now: time.Now}
}

// Get retrieves the payload stored under key.
func (s *Store) Get(ctx context.Context, key string) (value string, ok bool, err error) {
	query, args, err := psql.Select("payload").
		From(snapshotTable).
		Where(sq.Eq{"snapshot_key": key}).
		ToSql()
	if err != nil {
		return "", false, fmt.Errorf("build get snapshot query: %w", err)
	}

	ctx, end := database.TraceQuery(ctx, "postgresql", "GetSnapshot", query)
	defer func() { end(err) }()

	if err = s.pool.QueryRow(ctx, query, args...).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = nil
			return "", false, nil
		}
		return "", false, fmt.Errorf("get snapshot %s: %w", key, err)
	}
	return value, true, nil
}

// Set upserts the payload stored under key.
func (s *Store) Set(ctx context.Context, key, value string) (err error) {
	query, args, err := psql.Insert(snapshotTable).
		Columns("snapshot_key", "payload", "updated_at").
		Values(key, value, s.now().UTC()).
		Suffix("ON CONFLICT (snapshot_key) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build put snapshot query: %w", err)
	}

	ctx, end := database.TraceQuery(ctx, "postgresql", "PutSnapshot", query)
	defer func() { end(err) }()

	if _, err = s.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("put snapshot %s: %w", key, err)
	}
	return nil
}

// Ping checks that the snapshot table is reachable.
func (s *Store) Ping(ctx context.Context) error {
	var one int
	if err := s.pool.QueryRow(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("ping postgres: %w", err)
	}
	return nil
}

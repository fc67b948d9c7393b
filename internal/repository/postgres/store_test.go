package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mad-madhu-001/ecommerce/internal/repository"
	"github.com/mad-madhu-001/ecommerce/pkg/database"
)

var _ repository.KeyValueStore = (*Store)(nil)

const selectSnapshot = `SELECT payload FROM cart_snapshots WHERE snapshot_key = \$1`

func newTestStore(t *testing.T) (*Store, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := database.NewMockPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	s := NewStore(mock)
	s.now = func() time.Time { return time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC) }
	return s, mock
}

// ─── Get ─────────────────────────────────────────────────────────────────────

func TestStore_Get_Success(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectQuery(selectSnapshot).
		WithArgs(repository.CartKey).
		WillReturnRows(pgxmock.NewRows([]string{"payload"}).AddRow(`[{"quantity":1}]`))

	v, ok, err := s.Get(context.Background(), repository.CartKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"quantity":1}]`, v)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Get_Absent(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectQuery(selectSnapshot).
		WithArgs("fashion-cart:s1").
		WillReturnRows(pgxmock.NewRows([]string{"payload"}))

	v, ok, err := s.Get(context.Background(), "fashion-cart:s1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Get_QueryError(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectQuery(selectSnapshot).
		WithArgs(repository.CartKey).
		WillReturnError(errors.New("connection refused"))

	_, ok, err := s.Get(context.Background(), repository.CartKey)
	require.Error(t, err)
	assert.False(t, ok)
	assert.Contains(t, err.Error(), "get snapshot fashion-cart")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ─── Set ─────────────────────────────────────────────────────────────────────

func TestStore_Set_Upserts(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectExec(`INSERT INTO cart_snapshots .* ON CONFLICT \(snapshot_key\) DO UPDATE`).
		WithArgs(repository.CartKey, "[]", time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := s.Set(context.Background(), repository.CartKey, "[]")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Set_ExecError(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectExec("INSERT INTO cart_snapshots").
		WithArgs(repository.CartKey, "[]", pgxmock.AnyArg()).
		WillReturnError(errors.New("disk full"))

	err := s.Set(context.Background(), repository.CartKey, "[]")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ─── Ping ────────────────────────────────────────────────────────────────────

func TestStore_Ping(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectQuery("SELECT 1").WillReturnRows(pgxmock.NewRows([]string{"?column?"}).AddRow(1))

	assert.NoError(t, s.Ping(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

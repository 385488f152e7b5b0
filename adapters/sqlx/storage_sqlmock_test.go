package sqlx_test

import (
	"context"
	"database/sql"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	libsqlx "github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	storage "greenkit/adapters/sqlx"
)

func newMockStore(t *testing.T, driver storage.Driver) (*storage.Store, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	xdb := storage.NewWithDB(libsqlx.NewDb(db, string(driver)), driver)
	cleanup := func() {
		_ = db.Close()
	}
	return xdb, mock, cleanup
}

func TestSQLMock_GetHit(t *testing.T) {
	store, mock, cleanup := newMockStore(t, storage.DriverPostgres)
	defer cleanup()

	mock.ExpectQuery(`SELECT kv_value FROM greenkit_kv`).
		WithArgs("user:alice:xp").
		WillReturnRows(sqlmock.NewRows([]string{"kv_value"}).AddRow("550"))

	v, ok, err := store.Get(context.Background(), "user:alice:xp")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "550", v)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLMock_GetMissing(t *testing.T) {
	store, mock, cleanup := newMockStore(t, storage.DriverPostgres)
	defer cleanup()

	mock.ExpectQuery(`SELECT kv_value FROM greenkit_kv`).
		WithArgs("user:bob:points").
		WillReturnError(sql.ErrNoRows)

	_, ok, err := store.Get(context.Background(), "user:bob:points")
	require.NoError(t, err)
	require.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLMock_SetUpsertPostgres(t *testing.T) {
	store, mock, cleanup := newMockStore(t, storage.DriverPostgres)
	defer cleanup()

	mock.ExpectExec(`INSERT INTO greenkit_kv .+ ON CONFLICT`).
		WithArgs("user:alice:points", "850", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Set(context.Background(), "user:alice:points", "850"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLMock_SetUpsertMySQL(t *testing.T) {
	store, mock, cleanup := newMockStore(t, storage.DriverMySQL)
	defer cleanup()

	mock.ExpectExec(`INSERT INTO greenkit_kv .+ ON DUPLICATE KEY UPDATE`).
		WithArgs("user:alice:rewards", `["mem-1"]`, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Set(context.Background(), "user:alice:rewards", `["mem-1"]`))
	require.NoError(t, mock.ExpectationsWereMet())
}

package storage

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockPostgres(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS kv_entries")).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	store, err := newPostgresStore(context.Background(), mock)
	require.NoError(t, err)
	return store, mock
}

func TestPostgresGet(t *testing.T) {
	store, mock := newMockPostgres(t)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM kv_entries WHERE key = $1")).
		WithArgs("linkedin_api_key").
		WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow("secret"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM kv_entries WHERE key = $1")).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	v, err := store.Get(ctx, "linkedin_api_key")
	require.NoError(t, err)
	assert.Equal(t, "secret", v)

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSetDelete(t *testing.T) {
	store, mock := newMockPostgres(t)
	ctx := context.Background()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO kv_entries")).
		WithArgs("linkedin_ai_settings", `{"preferredTone":"Casual"}`).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM kv_entries WHERE key = $1")).
		WithArgs("linkedin_ai_settings").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, store.Set(ctx, "linkedin_ai_settings", `{"preferredTone":"Casual"}`))
	require.NoError(t, store.Delete(ctx, "linkedin_ai_settings"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresKeys(t *testing.T) {
	store, mock := newMockPostgres(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT key FROM kv_entries ORDER BY key")).
		WillReturnRows(pgxmock.NewRows([]string{"key"}).AddRow("a").AddRow("b"))

	keys, err := store.Keys(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)

	mock.ExpectClose()
	require.NoError(t, store.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSetError(t *testing.T) {
	store, mock := newMockPostgres(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO kv_entries")).
		WithArgs("k", "v").
		WillReturnError(errors.New("connection reset"))

	err := store.Set(context.Background(), "k", "v")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestPostgresSchemaFailure(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS kv_entries")).
		WillReturnError(errors.New("permission denied"))

	_, err = newPostgresStore(context.Background(), mock)
	assert.Error(t, err)
}

package store_test

import (
	"context"
	"errors"
	"testing"

	perr "ticketdesk/internal/platform/errors"
	"ticketdesk/internal/platform/store"
	"ticketdesk/internal/platform/store/storetest"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanTitle(r store.Row) (string, error) {
	var s string
	err := r.Scan(&s)
	return s, err
}

func TestExecOne(t *testing.T) {
	ctx := context.Background()
	db := storetest.New(
		storetest.Result{Affected: 1},
		storetest.Result{Affected: 0},
		storetest.Result{Affected: 3},
		storetest.Result{Err: errors.New("conn reset")},
	)
	const sql = `update tickets set status = 'RESOLVED' where id = $1 and deleted_at is null`

	require.NoError(t, store.ExecOne(ctx, db, sql, "t1"))
	assert.ErrorIs(t, store.ExecOne(ctx, db, sql, "gone"), perr.ErrNotFound)
	assert.Equal(t, perr.ErrorCodeDB, perr.CodeOf(store.ExecOne(ctx, db, sql, "dup")))
	assert.EqualError(t, store.ExecOne(ctx, db, sql, "t1"), "conn reset")
}

func TestScalar(t *testing.T) {
	ctx := context.Background()
	db := storetest.New(storetest.Result{Rows: [][]any{{int64(42)}}}, storetest.Result{})

	n, err := store.Scalar[int](ctx, db, `select count(*) from tickets`)
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	_, err = store.Scalar[int](ctx, db, `select count(*) from tickets`)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestOne(t *testing.T) {
	ctx := context.Background()
	db := storetest.New(
		storetest.Result{Rows: [][]any{{"Cannot log in"}}},
		storetest.Result{},
		storetest.Result{Rows: [][]any{{"a"}, {"b"}}},
	)
	const sql = `select title from tickets where id = $1`

	got, err := store.One(ctx, db, scanTitle, sql, "t1")
	require.NoError(t, err)
	assert.Equal(t, "Cannot log in", got)

	_, err = store.One(ctx, db, scanTitle, sql, "t2")
	assert.ErrorIs(t, err, perr.ErrNotFound)

	_, err = store.One(ctx, db, scanTitle, sql, "t3")
	assert.ErrorIs(t, err, store.ErrTooManyRows)
}

func TestMany(t *testing.T) {
	ctx := context.Background()
	db := storetest.New(
		storetest.Result{Rows: [][]any{{"first"}, {"second"}}},
		storetest.Result{},
		storetest.Result{Err: errors.New("boom")},
	)
	const sql = `select title from tickets order by created_at`

	got, err := store.Many(ctx, db, scanTitle, sql)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, got)

	got, err = store.Many(ctx, db, scanTitle, sql)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	_, err = store.Many(ctx, db, scanTitle, sql)
	assert.EqualError(t, err, "boom")
}

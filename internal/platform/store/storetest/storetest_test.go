package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"ticketdesk/internal/platform/store"

	"github.com/jackc/pgx/v5"
)

func TestDB_ScriptsAndRecords(t *testing.T) {
	now := time.Now()
	db := New(
		Result{Rows: [][]any{{"a", int64(2), now, nil}}},
		Result{Affected: 1},
	)
	ctx := context.Background()

	var (
		s    string
		n    int
		at   time.Time
		gone *time.Time
	)
	err := db.ReadTx(ctx, func(q store.RowQuerier) error {
		return q.QueryRow(ctx, "select  1\n from x where id = $1", "id-1").Scan(&s, &n, &at, &gone)
	})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if s != "a" || n != 2 || !at.Equal(now) || gone != nil {
		t.Fatalf("got %q %d %v %v", s, n, at, gone)
	}

	tag, err := db.Exec(ctx, "update x")
	if err != nil || tag.RowsAffected() != 1 {
		t.Fatalf("exec = %v, %v", tag, err)
	}

	if err := db.QueryRow(ctx, "select").Scan(&s); !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("empty queue should be no rows, got %v", err)
	}

	calls := db.Statements()
	if len(calls) != 4 || calls[0].Kind != "begin-read" || calls[1].Args[0] != "id-1" {
		t.Fatalf("calls = %+v", calls)
	}
	if Normalize(calls[1].SQL) != "select 1 from x where id = $1" {
		t.Fatalf("normalize = %q", Normalize(calls[1].SQL))
	}
	if len(db.Statements("exec")) != 1 {
		t.Fatalf("exec filter")
	}
}

func TestAssign_PointerFromValue(t *testing.T) {
	now := time.Now()
	var p *time.Time
	if err := assign([]any{now}, []any{&p}); err != nil || p == nil || !p.Equal(now) {
		t.Fatalf("assign = %v, %v", p, err)
	}
	var s string
	if err := assign([]any{1.5}, []any{&s}); err == nil {
		t.Fatalf("float into string should fail")
	}
}

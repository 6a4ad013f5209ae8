// Package storetest provides a scripted, recording stand-in for the store seams
package storetest

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"ticketdesk/internal/platform/store"

	"github.com/jackc/pgx/v5"
)

// Call is one statement the fake saw
type Call struct {
	Kind string // exec, query, queryrow, begin, begin-read
	SQL  string
	Args []any
}

// Result scripts the answer to one statement
type Result struct {
	Rows     [][]any
	Affected int64
	Err      error
}

// DB records every statement and answers them from a queue of results
// an empty queue answers with no rows; transaction begins are recorded but take no result
type DB struct {
	mu      sync.Mutex
	Calls   []Call
	results []Result
	TxErr   error
}

var (
	_ store.TxRunner     = (*DB)(nil)
	_ store.ReadTxRunner = (*DB)(nil)
)

// New returns a fake answering with results in order
func New(results ...Result) *DB { return &DB{results: results} }

// Push queues more results
func (d *DB) Push(results ...Result) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.results = append(d.results, results...)
}

func (d *DB) record(kind string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Calls = append(d.Calls, Call{Kind: kind})
}

func (d *DB) next(kind, sql string, args []any) Result {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Calls = append(d.Calls, Call{Kind: kind, SQL: sql, Args: args})
	if len(d.results) == 0 {
		return Result{}
	}
	r := d.results[0]
	d.results = d.results[1:]
	return r
}

// Statements returns the calls of the given kinds, all calls when none given
func (d *DB) Statements(kinds ...string) []Call {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(kinds) == 0 {
		return append([]Call(nil), d.Calls...)
	}
	var out []Call
	for _, c := range d.Calls {
		for _, k := range kinds {
			if c.Kind == k {
				out = append(out, c)
			}
		}
	}
	return out
}

// Exec implements store.RowQuerier
func (d *DB) Exec(_ context.Context, sql string, args ...any) (store.CommandTag, error) {
	r := d.next("exec", sql, args)
	if r.Err != nil {
		return nil, r.Err
	}
	return tag(r.Affected), nil
}

// Query implements store.RowQuerier
func (d *DB) Query(_ context.Context, sql string, args ...any) (store.Rows, error) {
	r := d.next("query", sql, args)
	if r.Err != nil {
		return nil, r.Err
	}
	return &rows{data: r.Rows, idx: -1}, nil
}

// QueryRow implements store.RowQuerier
func (d *DB) QueryRow(_ context.Context, sql string, args ...any) store.Row {
	r := d.next("queryrow", sql, args)
	if r.Err != nil {
		return row{err: r.Err}
	}
	if len(r.Rows) == 0 {
		return row{err: pgx.ErrNoRows}
	}
	return row{vals: r.Rows[0]}
}

// Tx implements store.TxRunner
func (d *DB) Tx(_ context.Context, fn func(q store.RowQuerier) error) error {
	d.record("begin")
	if d.TxErr != nil {
		return d.TxErr
	}
	return fn(d)
}

// ReadTx implements store.ReadTxRunner
func (d *DB) ReadTx(_ context.Context, fn func(q store.RowQuerier) error) error {
	d.record("begin-read")
	if d.TxErr != nil {
		return d.TxErr
	}
	return fn(d)
}

// Normalize squeezes whitespace so SQL can be matched without caring about layout
func Normalize(sql string) string {
	return strings.ToLower(strings.Join(strings.Fields(sql), " "))
}

type tag int64

func (t tag) String() string      { return fmt.Sprintf("FAKE %d", int64(t)) }
func (t tag) RowsAffected() int64 { return int64(t) }

type row struct {
	vals []any
	err  error
}

func (r row) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return assign(r.vals, dest)
}

type rows struct {
	data [][]any
	idx  int
}

func (r *rows) Next() bool {
	r.idx++
	return r.idx < len(r.data)
}

func (r *rows) Scan(dest ...any) error {
	if r.idx < 0 || r.idx >= len(r.data) {
		return errors.New("storetest: scan out of range")
	}
	return assign(r.data[r.idx], dest)
}

func (r *rows) Err() error { return nil }
func (r *rows) Close()     {}

// assign copies vals into dest pointers, converting where the kinds allow
func assign(vals []any, dest []any) error {
	if len(vals) != len(dest) {
		return fmt.Errorf("storetest: %d values for %d destinations", len(vals), len(dest))
	}
	for i, v := range vals {
		dv := reflect.ValueOf(dest[i])
		if dv.Kind() != reflect.Pointer || dv.IsNil() {
			return fmt.Errorf("storetest: destination %d is not a pointer", i)
		}
		target := dv.Elem()
		if v == nil {
			target.Set(reflect.Zero(target.Type()))
			continue
		}
		sv := reflect.ValueOf(v)
		switch {
		case sv.Type().AssignableTo(target.Type()):
			target.Set(sv)
		case sv.Type().ConvertibleTo(target.Type()):
			target.Set(sv.Convert(target.Type()))
		case target.Kind() == reflect.Pointer && sv.Type().AssignableTo(target.Type().Elem()):
			p := reflect.New(target.Type().Elem())
			p.Elem().Set(sv)
			target.Set(p)
		default:
			return fmt.Errorf("storetest: cannot put %T into %s", v, target.Type())
		}
	}
	return nil
}

package store

import (
	"context"
	"fmt"
	"time"

	"ticketdesk/internal/platform/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sethvargo/go-retry"
)

// pgxConn is what a pool and a transaction have in common
type pgxConn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// traced runs statements on c and hands each one to the query log
type traced struct {
	c   pgxConn
	log *queryLog
}

func (t traced) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	start := time.Now()
	ct, err := t.c.Exec(ctx, sql, args...)
	t.log.record(sql, len(args), start, err)
	return ct, err
}

// Query logs when the result opens; row iteration is not timed
func (t traced) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := t.c.Query(ctx, sql, args...)
	t.log.record(sql, len(args), start, err)
	if err != nil {
		return nil, err
	}
	return rs, nil
}

// QueryRow logs after Scan so the scan error is part of the line
func (t traced) QueryRow(ctx context.Context, sql string, args ...any) Row {
	start := time.Now()
	return scanLogged{r: t.c.QueryRow(ctx, sql, args...), done: func(err error) {
		t.log.record(sql, len(args), start, err)
	}}
}

type scanLogged struct {
	r    pgx.Row
	done func(error)
}

func (s scanLogged) Scan(dest ...any) error {
	err := s.r.Scan(dest...)
	s.done(err)
	return err
}

// postgres is the pool backed TxRunner
type postgres struct {
	traced
	pool *pgxpool.Pool
}

func (p *postgres) Ping(ctx context.Context) error { return p.pool.Ping(ctx) }

func (p *postgres) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	return p.inTx(ctx, pgx.TxOptions{}, fn)
}

// ReadTx runs fn in a read only repeatable read snapshot so a page and its total agree
func (p *postgres) ReadTx(ctx context.Context, fn func(q RowQuerier) error) error {
	return p.inTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}, fn)
}

func (p *postgres) inTx(ctx context.Context, opts pgx.TxOptions, fn func(q RowQuerier) error) error {
	return pgx.BeginTxFunc(ctx, p.pool, opts, func(tx pgx.Tx) error {
		return fn(traced{c: tx, log: p.log})
	})
}

// dial opens the pool and waits for postgres with capped exponential backoff
func dial(ctx context.Context, cfg Config, log logger.Logger) (*postgres, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse postgres url: %w", err)
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	if cfg.AppName != "" {
		pcfg.ConnConfig.RuntimeParams["application_name"] = cfg.AppName
	}
	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, err
	}

	backoff := retry.WithMaxRetries(uint64(cfg.attempts()-1),
		retry.WithCappedDuration(2*time.Second, retry.NewExponential(150*time.Millisecond)))
	attempt := 0
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		pctx, cancel := context.WithTimeout(ctx, cfg.pingTimeout())
		defer cancel()
		if err := pool.Ping(pctx); err != nil {
			log.Warn().Err(err).Int("attempt", attempt).Msg("postgres not ready")
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping failed after %d attempts: %w", attempt, err)
	}

	p := &postgres{pool: pool}
	p.traced = traced{c: pool}
	if cfg.LogSQL {
		p.log = newQueryLog(log, cfg.SlowQuery)
	}
	return p, nil
}

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const connectTimeout = 10 * time.Second

// DB is the record-store handle. The pool is opened on first use and shared
// by every caller afterwards.
type DB struct {
	pool *Lazy[*pgxpool.Pool]
}

type Options struct {
	MaxConns int32
	MinConns int32
}

// NewPostgreSQLDB returns a handle without dialing. Connection happens on the
// first call to Pool.
func NewPostgreSQLDB(dsn string, opts Options) (*DB, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database dsn: %w", err)
	}

	// Connection pool settings
	config.MaxConns = 25
	config.MinConns = 5
	if opts.MaxConns > 0 {
		config.MaxConns = opts.MaxConns
	}
	if opts.MinConns > 0 {
		config.MinConns = opts.MinConns
	}

	return &DB{
		pool: NewLazy(func(ctx context.Context) (*pgxpool.Pool, error) {
			ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), connectTimeout)
			defer cancel()

			pool, err := pgxpool.NewWithConfig(ctx, config)
			if err != nil {
				return nil, err
			}
			if err := pool.Ping(ctx); err != nil {
				pool.Close()
				return nil, err
			}
			return pool, nil
		}),
	}, nil
}

// Pool returns the shared pool, connecting if this is the first use.
func (db *DB) Pool(ctx context.Context) (*pgxpool.Pool, error) {
	pool, err := db.pool.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return pool, nil
}

func (db *DB) BeginTx(ctx context.Context) (pgx.Tx, error) {
	pool, err := db.Pool(ctx)
	if err != nil {
		return nil, err
	}
	return pool.Begin(ctx)
}

func (db *DB) Ping(ctx context.Context) error {
	pool, err := db.Pool(ctx)
	if err != nil {
		return err
	}
	return pool.Ping(ctx)
}

// Close releases the pool if it was ever opened.
func (db *DB) Close() {
	if pool, ok := db.pool.Peek(); ok {
		pool.Close()
	}
}

type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, arguments ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// Transactor runs fn so that every repository call made with the ctx it
// receives shares one transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

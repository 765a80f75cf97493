package repository

import (
	"context"
	"errors"
	"time"

	"github.com/OVantsevich/Position-Service/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type pgxTxKey struct{}

// TxFunc unit of work run inside a transaction
type TxFunc = func(context.Context) error

// injects pgx.Tx into context
func injectTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, pgxTxKey{}, tx)
}

// retrieves pgx.Tx from context
func extractTx(ctx context.Context) pgx.Tx {
	if tx, ok := ctx.Value(pgxTxKey{}).(pgx.Tx); ok {
		return tx
	}
	return nil
}

// PgxTransactor represents pgx transactor behavior
type PgxTransactor interface {
	WithinTransaction(ctx context.Context, txFn TxFunc) error
	WithinTransactionWithOptions(ctx context.Context, txFn TxFunc, opts pgx.TxOptions) error
}

type pgxTransactor struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

// NewPgxTransactor builds new PgxTransactor. A positive timeout bounds every transaction;
// exceeding it yields model.ErrTimeout.
func NewPgxTransactor(p *pgxpool.Pool, timeout time.Duration) PgxTransactor {
	return &pgxTransactor{pool: p, timeout: timeout}
}

// WithinTransaction runs WithinTransactionWithOptions with default tx options
func (t *pgxTransactor) WithinTransaction(ctx context.Context, txFunc TxFunc) error {
	return t.WithinTransactionWithOptions(ctx, txFunc, pgx.TxOptions{})
}

// WithinTransactionWithOptions runs logic within transaction passing context with pgx.Tx injected into it,
// so you can retrieve it via PgxWithinTransactionRunner function Runner
func (t *pgxTransactor) WithinTransactionWithOptions(ctx context.Context, txFunc TxFunc, opts pgx.TxOptions) error {
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}
	err := WithinTransactionWithOptions(ctx, t.pool, txFunc, opts)
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errors.Join(model.ErrTimeout, err)
	}
	return err
}

// PgxQueryRunner represents query runner behavior
type PgxQueryRunner interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, optionsAndArgs ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, optionsAndArgs ...interface{}) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// PgxWithinTransactionRunner represents query runner retriever for pgx
type PgxWithinTransactionRunner interface {
	PgxQueryRunner
	Runner(ctx context.Context) PgxQueryRunner
}

type pgxWithinTransactionRunner struct {
	pool *pgxpool.Pool
}

// NewPgxWithinTransactionRunner builds new PgxWithinTransactionRunner
func NewPgxWithinTransactionRunner(p *pgxpool.Pool) PgxWithinTransactionRunner {
	return &pgxWithinTransactionRunner{pool: p}
}

// Runner extracts query runner from context, if pgx.Tx is injected into context it is returned and pgxpool.Pool otherwise
func (r *pgxWithinTransactionRunner) Runner(ctx context.Context) PgxQueryRunner {
	tx := extractTx(ctx)
	if tx != nil {
		return tx
	}
	return r.pool
}

// Exec calls pgxpool.Pool.Exec or pgx.Tx.Exec depending on execution context
func (r *pgxWithinTransactionRunner) Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error) {
	return r.Runner(ctx).Exec(ctx, sql, arguments...)
}

// Query calls pgxpool.Pool.Query or pgx.Tx.Query depending on execution context
func (r *pgxWithinTransactionRunner) Query(ctx context.Context, sql string, optionsAndArgs ...interface{}) (pgx.Rows, error) {
	return r.Runner(ctx).Query(ctx, sql, optionsAndArgs...)
}

// QueryRow calls pgxpool.Pool.QueryRow or pgx.Tx.QueryRow depending on execution context
func (r *pgxWithinTransactionRunner) QueryRow(ctx context.Context, sql string, optionsAndArgs ...interface{}) pgx.Row {
	return r.Runner(ctx).QueryRow(ctx, sql, optionsAndArgs...)
}

// SendBatch calls pgxpool.Pool.SendBatch or pgx.Tx.SendBatch depending on execution context
func (r *pgxWithinTransactionRunner) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	return r.Runner(ctx).SendBatch(ctx, b)
}

// PgxTransactionInitiator represents transaction initiator
type PgxTransactionInitiator interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// WithinTransactionWithOptions runs logic within transaction passing context with pgx.Tx injected into it.
// A transaction already present in ctx is joined instead of nesting a new one.
func WithinTransactionWithOptions(ctx context.Context, txInit PgxTransactionInitiator, txFunc TxFunc, opts pgx.TxOptions) (err error) {
	if extractTx(ctx) != nil {
		return txFunc(ctx)
	}
	tx, err := txInit.BeginTx(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		var txErr error
		if err != nil {
			txErr = tx.Rollback(ctx)
		} else {
			txErr = tx.Commit(ctx)
		}

		if txErr != nil && !errors.Is(txErr, pgx.ErrTxClosed) {
			err = txErr
		}
	}()

	err = txFunc(injectTx(ctx, tx))
	return err
}

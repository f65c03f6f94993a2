package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	pkgpostgres "github.com/TechTyphoon/Credit-Approval-System/pkg/postgres"
)

// txKey carries an open transaction through context so repositories join it
// transparently.
type txKey struct{}

// withTx returns a context that routes repository calls through tx.
func withTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// querier resolves the active transaction, falling back to the pool.
func querier(ctx context.Context, pool *pgxpool.Pool) pkgpostgres.Querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return pool
}

// TxManager implements port.TxManager on a pgx pool.
type TxManager struct {
	pool *pgxpool.Pool
}

// NewTxManager creates a transaction manager for the given pool.
func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return &TxManager{pool: pool}
}

// Within runs fn inside one transaction; repositories called with the
// derived context join it.
func (m *TxManager) Within(ctx context.Context, fn func(ctx context.Context) error) error {
	return pkgpostgres.WithTransaction(ctx, m.pool, func(tx pgx.Tx) error {
		return fn(withTx(ctx, tx))
	})
}

// WithinCustomer runs fn inside one transaction holding a per-customer
// advisory lock, serializing concurrent evaluate-then-create sequences for
// the same customer. The lock releases with the transaction.
func (m *TxManager) WithinCustomer(ctx context.Context, customerID int64, fn func(ctx context.Context) error) error {
	return pkgpostgres.WithTransaction(ctx, m.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, customerID); err != nil {
			return fmt.Errorf("acquire customer lock: %w", err)
		}
		return fn(withTx(ctx, tx))
	})
}

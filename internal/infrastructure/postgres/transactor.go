package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	pkgpostgres "github.com/remy-crypto/dunkuloans-sub000/pkg/postgres"
)

// Transactor implements port.Transactor over the shared pgx pool. The
// repositories in this package pick the transaction up from the context, so
// use cases can group writes without depending on pgx.
type Transactor struct {
	pool *pgxpool.Pool
}

// NewTransactor creates a Transactor bound to the pool.
func NewTransactor(pool *pgxpool.Pool) *Transactor {
	return &Transactor{pool: pool}
}

// WithinTransaction runs fn inside a single database transaction.
func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return pkgpostgres.WithTransaction(ctx, t.pool, fn)
}

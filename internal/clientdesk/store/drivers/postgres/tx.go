package postgres

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/clientdesk/internal/clientdesk/store"
	"github.com/jackc/pgx/v5"
)

var errNestedTx = errors.New("postgres: nested transactions are not supported")

// txStore binds the repos to a pgx.Tx. pgx needs a context to end the
// transaction, so the one the tx was started with is kept.
type txStore struct {
	tx  pgx.Tx
	ctx context.Context
}

func (t *txStore) Commit() error { return t.tx.Commit(t.ctx) }

func (t *txStore) Rollback() error {
	err := t.tx.Rollback(t.ctx)
	if errors.Is(err, pgx.ErrTxClosed) {
		return nil
	}
	return err
}

func (t *txStore) Close() error { return nil }

func (t *txStore) Ping(ctx context.Context) error { return nil }

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) { return nil, errNestedTx }

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return errNestedTx
}

func (t *txStore) Clients() store.Clients { return &clientsRepo{db: t.tx} }

func (t *txStore) ApplyMigrations() error { return nil }

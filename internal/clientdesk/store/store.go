package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/clientdesk/internal/clientdesk/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement this. Sub-repositories are reached through methods so a
// Tx-scoped Store can hand out the same repos bound to the transaction.
type Store interface {
	Clients() Clients

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Clients interface {
	// CreateClient inserts a new client (id is provided by the service via
	// ULID). A duplicate email yields ErrAlreadyExists.
	CreateClient(ctx context.Context, c domain.Client) error

	// GetClientByID returns a client by id.
	GetClientByID(ctx context.Context, id string) (domain.Client, error)

	// GetClientByEmail is used during signin. email must be normalised.
	GetClientByEmail(ctx context.Context, email string) (domain.Client, error)

	// UpdatePasswordHash sets the password_hash and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, clientID string, newHash string) error
}

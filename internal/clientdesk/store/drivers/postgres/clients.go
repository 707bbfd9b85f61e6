package postgres

import (
	"context"
	"time"

	"github.com/aussiebroadwan/clientdesk/internal/clientdesk/domain"
	"github.com/aussiebroadwan/clientdesk/internal/clientdesk/store"
)

type clientsRepo struct {
	db DBTX
}

const selectClient = `
SELECT id, name, email, password_hash, created_at, updated_at
FROM clients`

func (r *clientsRepo) CreateClient(ctx context.Context, c domain.Client) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = c.CreatedAt
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO clients (id, name, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.Name, c.Email, c.PasswordHash, c.CreatedAt, c.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *clientsRepo) GetClientByID(ctx context.Context, id string) (domain.Client, error) {
	return scanClient(r.db.QueryRow(ctx, selectClient+` WHERE id = $1`, id))
}

func (r *clientsRepo) GetClientByEmail(ctx context.Context, email string) (domain.Client, error) {
	return scanClient(r.db.QueryRow(ctx, selectClient+` WHERE lower(email) = lower($1)`, email))
}

func (r *clientsRepo) UpdatePasswordHash(ctx context.Context, clientID, newHash string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE clients SET password_hash = $1, updated_at = now() WHERE id = $2`,
		newHash, clientID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/clientdesk/internal/clientdesk/domain"
	"github.com/aussiebroadwan/clientdesk/internal/clientdesk/store"
)

type clientsRepo struct {
	q *queries
}

func (r *clientsRepo) CreateClient(ctx context.Context, c domain.Client) error {
	now := time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = c.CreatedAt
	}

	return mapConstraint(r.q.createClient(ctx, clientRow{
		ID:           c.ID,
		Name:         c.Name,
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		CreatedAt:    c.CreatedAt.UTC(),
		UpdatedAt:    c.UpdatedAt.UTC(),
	}))
}

func (r *clientsRepo) GetClientByID(ctx context.Context, id string) (domain.Client, error) {
	row, err := r.q.getClientByID(ctx, id)
	if err != nil {
		return domain.Client{}, mapNotFound(err)
	}
	return mapClient(row), nil
}

func (r *clientsRepo) GetClientByEmail(ctx context.Context, email string) (domain.Client, error) {
	row, err := r.q.getClientByEmail(ctx, email)
	if err != nil {
		return domain.Client{}, mapNotFound(err)
	}
	return mapClient(row), nil
}

func (r *clientsRepo) UpdatePasswordHash(ctx context.Context, clientID, newHash string) error {
	n, err := r.q.updateClientPasswordHash(ctx, clientID, newHash, time.Now().UTC())
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

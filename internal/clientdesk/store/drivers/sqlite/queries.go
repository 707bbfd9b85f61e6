package sqlite

import (
	"context"
	"database/sql"
	"time"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx so the same queries run
// inside and outside a transaction.
type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

type queries struct {
	db DBTX
}

type clientRow struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

const createClient = `
INSERT INTO clients (id, name, email, password_hash, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)`

func (q *queries) createClient(ctx context.Context, r clientRow) error {
	_, err := q.db.ExecContext(ctx, createClient,
		r.ID, r.Name, r.Email, r.PasswordHash, r.CreatedAt, r.UpdatedAt)
	return err
}

const selectClient = `
SELECT id, name, email, password_hash, created_at, updated_at
FROM clients`

func (q *queries) getClientByID(ctx context.Context, id string) (clientRow, error) {
	return scanClient(q.db.QueryRowContext(ctx, selectClient+` WHERE id = ?`, id))
}

func (q *queries) getClientByEmail(ctx context.Context, email string) (clientRow, error) {
	return scanClient(q.db.QueryRowContext(ctx, selectClient+` WHERE email = ?`, email))
}

const updateClientPasswordHash = `
UPDATE clients SET password_hash = ?, updated_at = ? WHERE id = ?`

func (q *queries) updateClientPasswordHash(ctx context.Context, id, hash string, now time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, updateClientPasswordHash, hash, now, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanClient(row *sql.Row) (clientRow, error) {
	var r clientRow
	err := row.Scan(&r.ID, &r.Name, &r.Email, &r.PasswordHash, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}

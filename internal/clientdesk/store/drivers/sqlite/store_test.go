package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/clientdesk/internal/clientdesk/domain"
	"github.com/aussiebroadwan/clientdesk/internal/clientdesk/store"
	"github.com/aussiebroadwan/clientdesk/internal/clientdesk/store/drivers/sqlite"
	"github.com/aussiebroadwan/clientdesk/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "clientdesk.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func newClient(email string) domain.Client {
	return domain.Client{
		ID:           idx.New().String(),
		Name:         "Ada Lovelace",
		Email:        email,
		PasswordHash: "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
	}
}

func TestApplyMigrations_Idempotent(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.ApplyMigrations())
	require.NoError(t, st.Ping(context.Background()))
}

func TestClients_CreateAndGet(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	c := newClient("ada@example.com")
	require.NoError(t, st.Clients().CreateClient(ctx, c))

	byID, err := st.Clients().GetClientByID(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, c.ID, byID.ID)
	require.Equal(t, c.Name, byID.Name)
	require.Equal(t, c.Email, byID.Email)
	require.Equal(t, c.PasswordHash, byID.PasswordHash)
	require.WithinDuration(t, time.Now(), byID.CreatedAt, time.Minute)
	require.Equal(t, byID.CreatedAt, byID.UpdatedAt)

	byEmail, err := st.Clients().GetClientByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	require.Equal(t, c.ID, byEmail.ID)
}

func TestClients_NotFound(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	_, err := st.Clients().GetClientByID(ctx, idx.New().String())
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = st.Clients().GetClientByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)

	err = st.Clients().UpdatePasswordHash(ctx, idx.New().String(), "x")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestClients_DuplicateEmail(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Clients().CreateClient(ctx, newClient("ada@example.com")))

	err := st.Clients().CreateClient(ctx, newClient("ada@example.com"))
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	// The column collates case-insensitively as a second line of defence.
	err = st.Clients().CreateClient(ctx, newClient("ADA@example.com"))
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestClients_DuplicateID(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	c := newClient("one@example.com")
	require.NoError(t, st.Clients().CreateClient(ctx, c))

	dup := newClient("two@example.com")
	dup.ID = c.ID
	require.ErrorIs(t, st.Clients().CreateClient(ctx, dup), store.ErrAlreadyExists)
}

func TestClients_UpdatePasswordHash(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	c := newClient("ada@example.com")
	c.CreatedAt = time.Now().Add(-time.Hour).UTC()
	require.NoError(t, st.Clients().CreateClient(ctx, c))

	require.NoError(t, st.Clients().UpdatePasswordHash(ctx, c.ID, "new-hash"))

	got, err := st.Clients().GetClientByID(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, "new-hash", got.PasswordHash)
	require.True(t, got.UpdatedAt.After(got.CreatedAt))
}

func TestWithTx(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	t.Run("commit", func(t *testing.T) {
		c := newClient("commit@example.com")
		err := st.WithTx(ctx, func(tx store.Tx) error {
			if err := tx.Clients().CreateClient(ctx, c); err != nil {
				return err
			}
			_, err := tx.Clients().GetClientByID(ctx, c.ID)
			return err
		})
		require.NoError(t, err)

		_, err = st.Clients().GetClientByID(ctx, c.ID)
		require.NoError(t, err)
	})

	t.Run("rollback", func(t *testing.T) {
		c := newClient("rollback@example.com")
		boom := errors.New("boom")
		err := st.WithTx(ctx, func(tx store.Tx) error {
			require.NoError(t, tx.Clients().CreateClient(ctx, c))
			return boom
		})
		require.ErrorIs(t, err, boom)

		_, err = st.Clients().GetClientByID(ctx, c.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("nested tx rejected", func(t *testing.T) {
		err := st.WithTx(ctx, func(tx store.Tx) error {
			return tx.WithTx(ctx, func(store.Tx) error { return nil })
		})
		require.Error(t, err)
	})
}

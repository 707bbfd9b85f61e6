//go:build e2e

package clientdesk_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/aussiebroadwan/clientdesk/pkg/clientsdk"
	"github.com/stretchr/testify/require"
)

func TestSignupAndSignin(t *testing.T) {
	client := setupContainer(t)
	ctx := context.Background()

	created := signupClient(t, client, "Ada Lovelace", "Ada@Example.com")
	require.Equal(t, "ada@example.com", created.Email)

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		_, err := client.Signup(ctx, clientsdk.SignupRequest{
			Name: "Someone Else", Email: "ada@example.com", Password: testPassword,
		})
		assertStatus(t, err, http.StatusConflict)

		var apiErr *clientsdk.APIError
		require.True(t, errors.As(err, &apiErr))
		require.Equal(t, clientsdk.ErrorCodeEmailTaken, apiErr.Code)
	})

	t.Run("invalid fields are rejected with details", func(t *testing.T) {
		_, err := client.Signup(ctx, clientsdk.SignupRequest{Name: "X", Email: "bad", Password: "short"})
		assertStatus(t, err, http.StatusBadRequest)

		var apiErr *clientsdk.APIError
		require.True(t, errors.As(err, &apiErr))
		require.Equal(t, clientsdk.ErrorCodeValidation, apiErr.Code)
		require.Contains(t, apiErr.Details, "email")
		require.Contains(t, apiErr.Details, "password")
	})

	t.Run("signin returns a token for the stored identity", func(t *testing.T) {
		session, err := client.Signin(ctx, "ada@example.com", testPassword)
		require.NoError(t, err)
		require.Equal(t, created.ID, session.ID)
		require.Equal(t, created.Email, session.Email)
		require.Equal(t, created.Name, session.Name)
		require.NotEmpty(t, session.Token)

		me, err := client.Me(ctx, session.Token)
		require.NoError(t, err)
		require.Equal(t, created.ID, me.ID)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := client.Signin(ctx, "nobody@example.com", testPassword)
		require.ErrorIs(t, err, clientsdk.ErrClientNotFound)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := client.Signin(ctx, "ada@example.com", "not-the-password")
		assertStatus(t, err, http.StatusForbidden)
	})

	t.Run("me requires a valid token", func(t *testing.T) {
		_, err := client.Me(ctx, "garbage")
		assertStatus(t, err, http.StatusUnauthorized)
	})
}

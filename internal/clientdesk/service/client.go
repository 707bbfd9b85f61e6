package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/aussiebroadwan/clientdesk/internal/clientdesk/domain"
	"github.com/aussiebroadwan/clientdesk/internal/clientdesk/store"
	"github.com/aussiebroadwan/clientdesk/pkg/clientsdk"
	"github.com/aussiebroadwan/clientdesk/pkg/cryptox"
	"github.com/aussiebroadwan/clientdesk/pkg/idx"
	"github.com/aussiebroadwan/clientdesk/pkg/slogx"
)

var (
	ErrInvalidSignup      = errors.New("invalid_signup")
	ErrEmailAlreadyExists = errors.New("email_taken")
	ErrInvalidSignin      = errors.New("invalid_signin")
	ErrClientNotFound     = errors.New("client_not_found")
	ErrWrongPassword      = errors.New("wrong_password")
)

// ValidationError carries the per-field reasons a signup was rejected.
// It matches ErrInvalidSignup under errors.Is.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return ErrInvalidSignup.Error() + ": " + strings.Join(parts, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidSignup }

type ClientService struct {
	Store  store.Store
	Tokens *TokenService
}

// Signup creates a client account. The email uniqueness check is left to the
// store's constraint so concurrent signups for the same address cannot both
// succeed.
func (s *ClientService) Signup(ctx context.Context, in domain.SignupData) (domain.Client, error) {
	l := slogx.FromContext(ctx)

	req := clientsdk.SignupRequest{
		Name:     strings.TrimSpace(in.Name),
		Email:    clientsdk.NormalizeEmail(in.Email),
		Password: in.Password,
	}
	if fields := req.Validate(); fields != nil {
		return domain.Client{}, &ValidationError{Fields: fields}
	}

	hash, err := cryptox.HashPassword(req.Password)
	if err != nil {
		return domain.Client{}, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	c := domain.Client{
		ID:           idx.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var created domain.Client
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Clients().CreateClient(ctx, c); err != nil {
			return err
		}
		got, err := tx.Clients().GetClientByID(ctx, c.ID)
		if err != nil {
			return err
		}
		created = got
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Client{}, ErrEmailAlreadyExists
		}
		return domain.Client{}, fmt.Errorf("create client: %w", err)
	}

	l.Info("client signed up", slog.String("client_id", created.ID))
	return created, nil
}

// Signin authenticates a client by email and password and issues a session
// token.
//
// An unknown email yields ErrClientNotFound and a bad password yields
// ErrWrongPassword; the HTTP layer reports the two differently.
func (s *ClientService) Signin(ctx context.Context, email, password string) (domain.Session, error) {
	l := slogx.FromContext(ctx)

	email = clientsdk.NormalizeEmail(email)
	if email == "" || password == "" {
		return domain.Session{}, ErrInvalidSignin
	}

	c, err := s.Store.Clients().GetClientByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Session{}, ErrClientNotFound
		}
		return domain.Session{}, fmt.Errorf("lookup client: %w", err)
	}

	if err := cryptox.VerifyPassword(password, c.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			l.Info("signin password mismatch", slog.String("client_id", c.ID))
			return domain.Session{}, ErrWrongPassword
		}
		return domain.Session{}, fmt.Errorf("verify password: %w", err)
	}

	if cryptox.NeedsRehash(c.PasswordHash) {
		s.upgradeHash(ctx, &c, password)
	}

	token, exp, err := s.Tokens.Issue(ctx, c)
	if err != nil {
		return domain.Session{}, err
	}

	l.Info("client signed in", slog.String("client_id", c.ID))
	return domain.Session{Client: c, Token: token, ExpiresAt: exp}, nil
}

// upgradeHash rewrites a legacy hash with the current algorithm. Failures are
// logged only; the client already proved the password.
func (s *ClientService) upgradeHash(ctx context.Context, c *domain.Client, password string) {
	l := slogx.FromContext(ctx).With(slog.String("client_id", c.ID))

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		l.Warn("password rehash failed", slog.Any("error", err))
		return
	}
	if err := s.Store.Clients().UpdatePasswordHash(ctx, c.ID, hash); err != nil {
		l.Warn("password rehash not persisted", slog.Any("error", err))
		return
	}
	c.PasswordHash = hash
	l.Info("password hash upgraded")
}

// GetClientByID fetches a client by id.
func (s *ClientService) GetClientByID(ctx context.Context, id string) (domain.Client, error) {
	c, err := s.Store.Clients().GetClientByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Client{}, ErrClientNotFound
		}
		return domain.Client{}, err
	}
	return c, nil
}

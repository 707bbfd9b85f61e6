package service

import (
	"context"
	"fmt"
	"time"

	"github.com/aussiebroadwan/clientdesk/internal/clientdesk/domain"
	"github.com/aussiebroadwan/clientdesk/pkg/jwtx"
)

// TokenService issues signed session tokens for authenticated clients.
type TokenService struct {
	Signer jwtx.Signer
	Issuer string
	TTL    time.Duration
}

// Issue signs a session token carrying the client's identity fields.
func (s *TokenService) Issue(_ context.Context, c domain.Client) (string, time.Time, error) {
	ttl := s.TTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}

	now := time.Now().UTC()
	claims := jwtx.NewClientClaims(c.ID, c.Email, c.Name, ttl, s.Issuer, now)

	token, err := s.Signer.Sign(claims)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}
	return token, claims.ExpiresAt.Time, nil
}

package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is the lifetime of a client session token when no
// expiry is configured.
const DefaultSessionTTL = time.Hour

// Claims are the session-token claims issued at signin. The identity fields
// mirror the client record so a consumer can render the session without a
// lookup.
type Claims struct {
	jwt.RegisteredClaims

	// Client ID, duplicated from "sub" for consumers that read the payload
	// directly.
	ClientID string `json:"id"`

	Email string `json:"email"`
	Name  string `json:"name"`
}

// NewClientClaims builds claims for the given client identity.
func NewClientClaims(
	clientID, email, name string,
	ttl time.Duration,
	issuer string,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   clientID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		ClientID: clientID,
		Email:    email,
		Name:     name,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}

	if c.Issuer != expected {
		return ErrIssuer
	}

	return nil
}

// ValidateSubject requires "sub" to be present and to agree with the
// duplicated "id" claim.
func (c *Claims) ValidateSubject() error {
	if c.Subject == "" || c.Subject != c.ClientID {
		return ErrInvalidClaim
	}
	return nil
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't before nbf.
func (c *Claims) ValidateExpiry() error {
	return c.ValidateExpiryWithLeeway(0)
}

// ValidateExpiryWithLeeway adds a small grace period for clock skew.
func (c *Claims) ValidateExpiryWithLeeway(leeway time.Duration) error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}

	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}

	return nil
}

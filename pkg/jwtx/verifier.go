package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates a JWT and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// VerifyOptions captures common expectations used by verifiers.
type VerifyOptions struct {
	// Issuer the token must have (claims.iss). Empty means "don't care".
	Issuer string

	// Leeway allows small clock skew when validating exp/nbf.
	Leeway time.Duration
}

var (
	ErrMalformed  = errors.New("jwtx: malformed token")
	ErrInvalidSig = errors.New("jwtx: invalid signature")
	ErrWeakSecret = errors.New("jwtx: signing secret too short")

	ErrIssuer       = errors.New("jwtx: issuer mismatch")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrNotYetValid  = errors.New("jwtx: token not yet valid")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")
)

// HS256Verifier validates JWTs signed using HS256.
type HS256Verifier struct {
	secret []byte
	opts   VerifyOptions
}

// NewVerifierHS256 creates a verifier for tokens signed with secret.
func NewVerifierHS256(secret []byte, opts VerifyOptions) (*HS256Verifier, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("%w: need at least %d bytes, got %d", ErrWeakSecret, MinSecretLength, len(secret))
	}
	return &HS256Verifier{secret: append([]byte(nil), secret...), opts: opts}, nil
}

// Verify validates the JWT string and returns its parsed Claims.
func (v *HS256Verifier) Verify(tokenStr string) (Claims, error) {
	// exp/nbf are checked below with our own leeway so the error values are
	// the package sentinels rather than the library's.
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	claims := &Claims{}
	token, err := parser.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Claims{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
			return Claims{}, fmt.Errorf("%w: %v", ErrInvalidSig, err)
		default:
			return Claims{}, fmt.Errorf("jwtx: parse or verify: %w", err)
		}
	}
	if !token.Valid {
		return Claims{}, ErrInvalidSig
	}

	if err := claims.ValidateIssuer(v.opts.Issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateSubject(); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateExpiryWithLeeway(v.opts.Leeway); err != nil {
		return Claims{}, err
	}

	return *claims, nil
}

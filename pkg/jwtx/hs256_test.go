package jwtx_test

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/clientdesk/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const exampleIssuer = "clientdesk"

var exampleSecret = []byte("0123456789abcdef0123456789abcdef")

func newSigner(t *testing.T) *jwtx.HS256Signer {
	t.Helper()
	s, err := jwtx.NewSignerHS256(exampleSecret)
	require.NoError(t, err)
	return s
}

func TestHS256SignAndVerify(t *testing.T) {
	signer := newSigner(t)
	require.Equal(t, "HS256", signer.Alg())

	claims := jwtx.NewClientClaims("01JNCLIENT", "ada@example.com", "Ada", 2*time.Minute, exampleIssuer, time.Now().UTC())

	token, err := signer.Sign(claims)
	require.NoError(t, err)
	require.Len(t, strings.Split(token, "."), 3)

	verifier, err := jwtx.NewVerifierHS256(exampleSecret, jwtx.VerifyOptions{Issuer: exampleIssuer})
	require.NoError(t, err)

	parsed, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, claims.Subject, parsed.Subject)
	require.Equal(t, claims.ClientID, parsed.ClientID)
	require.Equal(t, claims.Email, parsed.Email)
	require.Equal(t, claims.Name, parsed.Name)
	require.Equal(t, claims.ID, parsed.ID)
}

func TestHS256PayloadCarriesIdentity(t *testing.T) {
	signer := newSigner(t)
	token, err := signer.Sign(jwtx.NewClientClaims("01JNCLIENT", "ada@example.com", "Ada", time.Minute, exampleIssuer, time.Now()))
	require.NoError(t, err)

	raw, err := base64.RawURLEncoding.DecodeString(strings.Split(token, ".")[1])
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(raw, &payload))
	require.Equal(t, "01JNCLIENT", payload["id"])
	require.Equal(t, "ada@example.com", payload["email"])
	require.Equal(t, "Ada", payload["name"])
	require.Equal(t, "01JNCLIENT", payload["sub"])
	require.Contains(t, payload, "exp")
	require.Contains(t, payload, "jti")
}

func TestHS256VerifyFailures(t *testing.T) {
	signer := newSigner(t)
	verifier, err := jwtx.NewVerifierHS256(exampleSecret, jwtx.VerifyOptions{Issuer: exampleIssuer})
	require.NoError(t, err)

	t.Run("wrong issuer", func(t *testing.T) {
		token, err := signer.Sign(jwtx.NewClientClaims("c1", "a@b.c", "A", time.Minute, "elsewhere", time.Now()))
		require.NoError(t, err)
		_, err = verifier.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := signer.Sign(jwtx.NewClientClaims("c1", "a@b.c", "A", time.Minute, exampleIssuer, time.Now().Add(-time.Hour)))
		require.NoError(t, err)
		_, err = verifier.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("different secret", func(t *testing.T) {
		other, err := jwtx.NewSignerHS256([]byte(strings.Repeat("z", 32)))
		require.NoError(t, err)
		token, err := other.Sign(jwtx.NewClientClaims("c1", "a@b.c", "A", time.Minute, exampleIssuer, time.Now()))
		require.NoError(t, err)
		_, err = verifier.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("tampered payload", func(t *testing.T) {
		token, err := signer.Sign(jwtx.NewClientClaims("c1", "a@b.c", "A", time.Minute, exampleIssuer, time.Now()))
		require.NoError(t, err)
		forged, err := signer.Sign(jwtx.NewClientClaims("c2", "x@y.z", "X", time.Minute, exampleIssuer, time.Now()))
		require.NoError(t, err)

		parts := strings.Split(token, ".")
		parts[1] = strings.Split(forged, ".")[1]
		_, err = verifier.Verify(strings.Join(parts, "."))
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := verifier.Verify("not-a-jwt")
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})

	t.Run("alg none rejected", func(t *testing.T) {
		c := jwtx.NewClientClaims("c1", "a@b.c", "A", time.Minute, exampleIssuer, time.Now())
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, c).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = verifier.Verify(token)
		require.Error(t, err)
	})
}

func TestNewSignerHS256_RejectsShortSecret(t *testing.T) {
	_, err := jwtx.NewSignerHS256([]byte("short"))
	require.ErrorIs(t, err, jwtx.ErrWeakSecret)

	_, err = jwtx.NewVerifierHS256([]byte("short"), jwtx.VerifyOptions{})
	require.ErrorIs(t, err, jwtx.ErrWeakSecret)
}

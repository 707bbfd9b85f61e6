package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

// Token sizes in bytes before encoding.
const (
	TokenSize128 = 16 // 22 chars base64url
	TokenSize256 = 32 // 43 chars base64url
	TokenSize512 = 64 // 86 chars base64url
)

// GenerateToken returns size random bytes as an unpadded base64url string.
// Used for ephemeral signing secrets.
func GenerateToken(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("token size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Fingerprint returns a deterministic SHA-256 digest of s, base64url encoded.
// Used where a value must be keyed on without storing it verbatim (client
// IPs in shared rate limit buckets).
func Fingerprint(s string) string {
	sum := sha256.Sum256([]byte(s))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

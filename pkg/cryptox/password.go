package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrPasswordMismatch is returned when a password does not match its hash.
	ErrPasswordMismatch = errors.New("password does not match")

	// ErrInvalidHash is returned when a stored hash cannot be parsed.
	ErrInvalidHash = errors.New("invalid hash format")
)

// HashPassword returns a PHC-format argon2id hash of password+pepper:
//
//	$argon2id$v=19$m=19456,t=2,p=1$<salt>$<hash>
func HashPassword(password string) (string, error) {
	p, err := Pepper()
	if err != nil {
		return "", err
	}

	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password+p), salt, iterations, memory, parallelism, keyLength)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		memory,
		iterations,
		parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

// VerifyPassword checks password against an argon2id PHC hash, or against a
// bcrypt hash carried over from accounts created before argon2id. Bcrypt
// hashes were produced without the pepper.
func VerifyPassword(password, encodedHash string) error {
	if isBcrypt(encodedHash) {
		err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password))
		switch {
		case err == nil:
			return nil
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return ErrPasswordMismatch
		default:
			return fmt.Errorf("%w: %v", ErrInvalidHash, err)
		}
	}

	params, salt, want, err := decodeArgon2id(encodedHash)
	if err != nil {
		return err
	}

	p, err := Pepper()
	if err != nil {
		return err
	}

	got := argon2.IDKey(
		[]byte(password+p),
		salt,
		params.iterations,
		params.memory,
		params.parallelism,
		uint32(len(want)), // #nosec G115 - decoded hash length is small
	)

	if subtle.ConstantTimeCompare(got, want) == 1 {
		return nil
	}
	return ErrPasswordMismatch
}

// NeedsRehash reports whether encodedHash should be replaced by a fresh
// HashPassword result: legacy bcrypt hashes and argon2id hashes created with
// weaker parameters than the current ones.
func NeedsRehash(encodedHash string) bool {
	if isBcrypt(encodedHash) {
		return true
	}

	params, _, _, err := decodeArgon2id(encodedHash)
	if err != nil {
		return false
	}
	return params.memory < memory || params.iterations < iterations
}

type argon2Params struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
}

// decodeArgon2id splits ["", "argon2id", "v=19", "m=X,t=Y,p=Z", salt, hash].
func decodeArgon2id(encodedHash string) (argon2Params, []byte, []byte, error) {
	var params argon2Params

	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[0] != "" {
		return params, nil, nil, fmt.Errorf("%w: expected 6 parts", ErrInvalidHash)
	}
	if parts[1] != "argon2id" {
		return params, nil, nil, fmt.Errorf("%w: not argon2id", ErrInvalidHash)
	}
	if parts[2] != fmt.Sprintf("v=%d", argon2.Version) {
		return params, nil, nil, fmt.Errorf("%w: wrong version", ErrInvalidHash)
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.memory, &params.iterations, &params.parallelism); err != nil {
		return params, nil, nil, fmt.Errorf("%w: parameters: %v", ErrInvalidHash, err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return params, nil, nil, fmt.Errorf("%w: salt: %v", ErrInvalidHash, err)
	}
	hash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(hash) == 0 {
		return params, nil, nil, fmt.Errorf("%w: hash", ErrInvalidHash)
	}

	return params, salt, hash, nil
}

func isBcrypt(h string) bool {
	return strings.HasPrefix(h, "$2a$") || strings.HasPrefix(h, "$2b$") || strings.HasPrefix(h, "$2y$")
}

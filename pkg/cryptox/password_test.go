package cryptox

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "cryptox-pepper")
	if err != nil {
		panic(err)
	}
	SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "password123"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"long password", strings.Repeat("a", 128)},
		{"unicode password", "пароль🔒密码"},
		{"whitespace password", "   spaces   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)
			require.NoError(t, err)
			require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"), "hash should be in PHC format")

			parts := strings.Split(hash, "$")
			require.Len(t, parts, 6)
			require.Equal(t, "m=19456,t=2,p=1", parts[3])
			require.NotEmpty(t, parts[4], "salt")
			require.NotEmpty(t, parts[5], "hash")

			require.NoError(t, VerifyPassword(tt.password, hash))
		})
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	h1, err := HashPassword("samepassword")
	require.NoError(t, err)
	h2, err := HashPassword("samepassword")
	require.NoError(t, err)

	require.NotEqual(t, h1, h2, "hashes should differ due to unique salts")
	require.NoError(t, VerifyPassword("samepassword", h1))
	require.NoError(t, VerifyPassword("samepassword", h2))
}

func TestVerifyPassword_WrongPassword(t *testing.T) {
	hash, err := HashPassword("correct-password")
	require.NoError(t, err)

	for _, wrong := range []string{
		"wrong-password",
		"Correct-Password",
		"correct-password ",
		"",
		strings.Repeat("x", 10000),
	} {
		require.ErrorIs(t, VerifyPassword(wrong, hash), ErrPasswordMismatch, "input %q", wrong)
	}
}

func TestVerifyPassword_InvalidHashFormat(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{"empty hash", ""},
		{"wrong algorithm", "$argon2i$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"missing parts", "$argon2id$v=19$m=19456"},
		{"malformed parameters", "$argon2id$v=19$invalid$c2FsdA$aGFzaA"},
		{"invalid base64 salt", "$argon2id$v=19$m=19456,t=2,p=1$!!!invalid!!!$aGFzaA"},
		{"invalid base64 hash", "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$!!!invalid!!!"},
		{"wrong version", "$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"broken bcrypt", "$2b$10$tooshort"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, VerifyPassword("test-password", tt.hash), ErrInvalidHash)
		})
	}
}

func TestVerifyPassword_LegacyBcrypt(t *testing.T) {
	legacy, err := bcrypt.GenerateFromPassword([]byte("hunter2-hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	require.NoError(t, VerifyPassword("hunter2-hunter2", string(legacy)))
	require.ErrorIs(t, VerifyPassword("hunter3-hunter3", string(legacy)), ErrPasswordMismatch)
}

func TestNeedsRehash(t *testing.T) {
	current, err := HashPassword("password123")
	require.NoError(t, err)

	legacy, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	require.False(t, NeedsRehash(current))
	require.True(t, NeedsRehash(string(legacy)))
	require.True(t, NeedsRehash("$argon2id$v=19$m=4096,t=1,p=1$c2FsdA$aGFzaA"), "weaker parameters")
	require.False(t, NeedsRehash("garbage"), "unparseable hashes are left for VerifyPassword to reject")
}

func TestPepper_PersistsAcrossReload(t *testing.T) {
	p1, err := Pepper()
	require.NoError(t, err)
	require.NotEmpty(t, p1)

	hash, err := HashPassword("persisted")
	require.NoError(t, err)

	// Forget the cached pepper; it must be read back from the same file.
	SetPepperPath(pepperFile)
	p2, err := Pepper()
	require.NoError(t, err)
	require.Equal(t, p1, p2)
	require.NoError(t, VerifyPassword("persisted", hash))
}

func TestPepper_DifferentPepperRejects(t *testing.T) {
	hash, err := HashPassword("peppered")
	require.NoError(t, err)

	original := pepperFile
	t.Cleanup(func() { SetPepperPath(original) })

	SetPepperPath(filepath.Join(t.TempDir(), "other-pepper"))
	require.ErrorIs(t, VerifyPassword("peppered", hash), ErrPasswordMismatch)
}

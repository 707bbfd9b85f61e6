package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Argon2id parameters for newly hashed passwords. Stored hashes carry their
// own parameters so these can be raised without breaking verification.
const (
	memory      = 19 * 1024 // KiB
	iterations  = 2
	parallelism = 1
	keyLength   = 32
	saltLength  = 16
)

const defaultPepperFile = "pepper"

var (
	pepperMu   sync.Mutex
	pepper     string
	pepperFile = defaultPepperFile
)

// SetPepperPath points the package at the pepper file. Any pepper already
// loaded is dropped so the next hash or verify reads the new file.
func SetPepperPath(file string) {
	pepperMu.Lock()
	defer pepperMu.Unlock()

	pepperFile = file
	pepper = ""
}

// Pepper returns the server-side secret appended to argon2id inputs, loading
// it from disk (or generating and persisting it) on first use.
func Pepper() (string, error) {
	pepperMu.Lock()
	defer pepperMu.Unlock()

	if pepper != "" {
		return pepper, nil
	}

	p, err := loadOrGeneratePepper(pepperFile)
	if err != nil {
		return "", fmt.Errorf("cryptox: pepper: %w", err)
	}
	pepper = p
	return pepper, nil
}

func loadOrGeneratePepper(file string) (string, error) {
	file = filepath.Clean(file)

	b, err := os.ReadFile(file)
	if err == nil {
		p := strings.TrimSpace(string(b))
		if p == "" {
			return "", fmt.Errorf("pepper file %s is empty", file)
		}
		return p, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(file), 0o750); err != nil {
		return "", err
	}

	raw := make([]byte, keyLength)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	p := base64.RawURLEncoding.EncodeToString(raw)

	if err := os.WriteFile(file, []byte(p), 0o600); err != nil {
		return "", err
	}
	return p, nil
}

package security

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// PBKDF2 parameters for password storage. Iterations is configurable per Hasher;
// salt and key sizes are fixed because stored hashes depend on them.
const (
	saltLen = 32
	keyLen  = 64

	// DefaultIterations is the PBKDF2 iteration count used when no override is given.
	DefaultIterations = 310000
)

// ErrEmptyPassword is returned when Hash is called with an empty password.
var ErrEmptyPassword = errors.New("password is required")

// Hasher derives and verifies salted PBKDF2-SHA512 password hashes stored as
// "saltHex:keyHex". Callers must not log or persist plaintext passwords.
type Hasher struct {
	Iterations int
}

// NewHasher returns a Hasher with the given PBKDF2 iteration count.
// Non-positive counts fall back to DefaultIterations.
func NewHasher(iterations int) *Hasher {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	return &Hasher{Iterations: iterations}
}

// Hash derives a stored hash for password using a fresh random salt.
// The returned form is "saltHex:keyHex". Returns ErrEmptyPassword for empty input.
func (h *Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	saltHex := hex.EncodeToString(salt)
	key := pbkdf2.Key([]byte(password), []byte(saltHex), h.Iterations, keyLen, sha512.New)
	return saltHex + ":" + hex.EncodeToString(key), nil
}

// Verify re-derives password with the salt extracted from stored and compares
// the result in constant time. Returns false for malformed stored forms.
func (h *Hasher) Verify(password, stored string) bool {
	salt, want, ok := strings.Cut(stored, ":")
	if !ok || salt == "" || want == "" {
		return false
	}
	key := pbkdf2.Key([]byte(password), []byte(salt), h.Iterations, keyLen, sha512.New)
	got := hex.EncodeToString(key)
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

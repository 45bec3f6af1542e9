// Package password derives and verifies salted password hashes and issues
// opaque random tokens for sessions, email verification and password resets.
package password

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltLen    = 16
	keyLen     = 32
	iterations = 100_000
)

// Hash derives a PBKDF2-SHA256 hash with a fresh random salt.
// The stored form is "hex(salt):hex(derived)".
func Hash(plain string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	derived := pbkdf2.Key([]byte(plain), salt, iterations, keyLen, sha256.New)
	return hex.EncodeToString(salt) + ":" + hex.EncodeToString(derived), nil
}

// Verify re-derives using the stored salt and compares in constant time.
// A malformed stored value (missing separator, bad hex) fails verification
// rather than erroring out.
func Verify(plain, stored string) bool {
	salt64, hash64, ok := strings.Cut(stored, ":")
	if !ok {
		return false
	}
	salt, err := hex.DecodeString(salt64)
	if err != nil {
		return false
	}
	want, err := hex.DecodeString(hash64)
	if err != nil {
		return false
	}
	got := pbkdf2.Key([]byte(plain), salt, iterations, keyLen, sha256.New)
	return subtle.ConstantTimeCompare(got, want) == 1
}

// NewToken returns 256 bits of cryptographic randomness, hex-encoded.
// Tokens carry no embedded metadata; expiry and usage live in the owning row.
func NewToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// PBKDF2-HMAC-SHA256 parameters. Stored hashes use the format
// "<hex salt>:<hex derived key>" so the salt travels with the credential.
const (
	pbkdf2Iterations = 100_000
	saltLength       = 16
	keyLength        = 32
)

// HashPassword derives a salted PBKDF2 hash for storage.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, keyLength, sha256.New)
	return hex.EncodeToString(salt) + ":" + hex.EncodeToString(key), nil
}

// CheckPassword verifies a password against a stored salt:key hash.
// Malformed stored values simply fail verification.
func CheckPassword(stored, password string) bool {
	saltHex, keyHex, ok := strings.Cut(stored, ":")
	if !ok {
		return false
	}

	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false
	}
	key, err := hex.DecodeString(keyHex)
	if err != nil {
		return false
	}

	derived := pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, len(key), sha256.New)
	return subtle.ConstantTimeCompare(derived, key) == 1
}

// Package secrets generates and verifies API credentials.
package secrets

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Generate returns a new random API key. The caller sees it exactly once;
// only the hash is stored.
func Generate() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate secret: %w", err)
	}
	return "ids_" + base64.RawURLEncoding.EncodeToString(raw), nil
}

// Hash returns the bcrypt hash of a key for storage.
func Hash(key string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash secret: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether key matches the stored bcrypt hash.
func Verify(hash, key string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) == nil
}

package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"io"
)

// NewResetToken returns a hex-encoded 32-byte random token. The plaintext is
// mailed to the user; only its hash is stored.
func NewResetToken() (string, error) {
	b := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// HashToken returns the hex sha256 of a token for storage and lookup.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

package utils

import (
	"crypto/rand"
	"encoding/base64"
)

// GenerateToken returns a url-safe random token built from n random bytes.
func GenerateToken(n int) (string, error) {
	if n <= 0 {
		n = 16
	}
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

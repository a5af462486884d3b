package helpers

import (
	"crypto/rand"
	"encoding/hex"
)

// TokenKeyBytes yields a 40 character hex key.
const TokenKeyBytes = 20

// GenTokenKey returns a random lowercase hex API key.
func GenTokenKey() (string, error) {
	b := make([]byte, TokenKeyBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// KeyAuthToken is the Redis key caching the owner of an API token
func KeyAuthToken(key string) string {
	return "auth:token:" + key
}

package api

import (
	"crypto/rand"
	"crypto/rsa"
)

// generateTestKey makes a throwaway RSA key for signing tests.
func generateTestKey() (*rsa.PrivateKey, error) {
	return rsa.GenerateKey(rand.Reader, 2048)
}

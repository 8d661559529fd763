package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const tokenCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateRandomString returns a cryptographically secure random string
// of the given length drawn from charset.
func GenerateRandomString(length int, charset string) string {
	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			panic(fmt.Sprintf("failed to generate random string: %v", err))
		}
		b[i] = charset[n.Int64()]
	}
	return string(b)
}

// GenerateToken returns a random alphanumeric opaque token, used for
// account activation and password reset links. Tokens have no structure
// and are compared by exact equality.
func GenerateToken(length int) string {
	return GenerateRandomString(length, tokenCharset)
}

package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateResetToken returns a 256-bit random token, hex encoded.
func GenerateResetToken() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return hex.EncodeToString(buf)
}

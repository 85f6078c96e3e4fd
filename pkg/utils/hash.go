package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashString returns a short stable hex id for the input
func HashString(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:8])
}

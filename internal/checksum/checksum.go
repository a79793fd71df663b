// Package checksum fingerprints ADR documents so the index can skip
// files that have not changed since the last sync.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
)

// Sum returns the hex-encoded SHA-256 digest of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Matches reports whether sum is the digest of data. An empty sum never
// matches.
func Matches(data []byte, sum string) bool {
	return sum != "" && Sum(data) == sum
}

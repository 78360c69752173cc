package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// IsEmptyValue reports whether a raw cell value should be treated as empty.
// Tabular exports leave "nan"/"none"/"null" literals behind for missing
// cells; those count as empty alongside blank and whitespace-only strings.
func IsEmptyValue(s string) bool {
	t := strings.ToLower(strings.TrimSpace(s))
	switch t {
	case "", "nan", "none", "null":
		return true
	}
	return false
}

// HashAddress returns the SHA-256 hex digest of the trimmed address.
// The digest is used as a cache key so that raw addresses are never
// persisted; it is never reversed.
func HashAddress(address string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(address)))
	return hex.EncodeToString(sum[:])
}

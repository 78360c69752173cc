package config

import (
	"os"
	"strconv"
	"strings"
)

// Get returns the env var value for key, or fallback when unset or
// blank.
func Get(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

// GetBool reads a boolean env var; anything strconv.ParseBool rejects
// falls back.
func GetBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return v
}

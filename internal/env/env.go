// Package env reads typed configuration values from environment variables,
// falling back to a default when a variable is unset or malformed.
package env

import (
	"os"
	"strconv"
	"strings"
	"time"
)

func String(key, fallback string) string {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	return v
}

func Int(key string, fallback int) int {
	v, err := strconv.Atoi(String(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

// Bool accepts "1" and "true" (any case) as true and "0" and "false" as
// false.
func Bool(key string, fallback bool) bool {
	switch strings.ToLower(String(key, "")) {
	case "1", "true":
		return true
	case "0", "false":
		return false
	default:
		return fallback
	}
}

// Duration parses values such as "250ms" or "2s".
func Duration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(String(key, ""))
	if err != nil {
		return fallback
	}
	return d
}

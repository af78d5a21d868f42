package main

import (
	"os"
	"strconv"
)

// envOr returns the value of the environment variable or the fallback
// when unset. Used to seed flag defaults so TESSERA_* variables (and a
// .env file) configure the CLI without repeating flags.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

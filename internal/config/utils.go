package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// parseEnv reads key and runs it through parse, falling back to defaultVal
// when the variable is unset or malformed.
func parseEnv[T any](key string, parse func(string) (T, error), defaultVal T) T {
	if value, ok := os.LookupEnv(key); ok {
		if v, err := parse(value); err == nil {
			return v
		}
	}
	return defaultVal
}

func getEnv(key, defaultVal string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	return parseEnv(key, strconv.Atoi, defaultVal)
}

func getEnvAsBool(key string, defaultVal bool) bool {
	return parseEnv(key, strconv.ParseBool, defaultVal)
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	return parseEnv(key, time.ParseDuration, defaultVal)
}

func getEnvAsStringSlice(key string, defaults []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaults
	}
	parts := strings.Split(value, ",")
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if p := strings.TrimSpace(part); p != "" {
			filtered = append(filtered, p)
		}
	}
	if len(filtered) == 0 {
		return defaults
	}
	return filtered
}

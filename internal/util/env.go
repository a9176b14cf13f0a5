package util

import (
	"os"
	"strconv"
	"strings"
)

// GetEnv returns the env variable identified by key or defaultVal if unset.
func GetEnv(key string, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}

	return defaultVal
}

// GetEnvAsInt returns the env variable as int or defaultVal if unset/unparsable.
func GetEnvAsInt(key string, defaultVal int) int {
	strVal := GetEnv(key, "")

	if val, err := strconv.Atoi(strVal); err == nil {
		return val
	}

	return defaultVal
}

// GetEnvAsBool returns the env variable as bool or defaultVal if unset/unparsable.
func GetEnvAsBool(key string, defaultVal bool) bool {
	strVal := GetEnv(key, "")

	if val, err := strconv.ParseBool(strVal); err == nil {
		return val
	}

	return defaultVal
}

// GetEnvAsStringArr splits the env variable on "," (empty entries dropped) or
// returns defaultVal if unset or empty.
func GetEnvAsStringArr(key string, defaultVal []string) []string {
	strVal := GetEnv(key, "")
	if strVal == "" {
		return defaultVal
	}

	parts := strings.Split(strVal, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}

	return out
}

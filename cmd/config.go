package cmd

import (
	"strconv"
	"time"
)

// Config holds process-level settings loaded from the environment.
type Config struct {
	HTTPPort      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSslMode     string
	MaxWeightLbs  int
	ExpiryEnabled bool
	ExpiryGrace   time.Duration
}

// BoolSetting parses an environment value as a boolean. An empty value
// selects the fallback.
func BoolSetting(raw string, fallback bool) (bool, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.ParseBool(raw)
}

// IntSetting parses an environment value as an integer. An empty value
// selects the fallback.
func IntSetting(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

// DurationSetting parses an environment value as a duration in Go syntax,
// for example "24h" or "90m". An empty value selects the fallback.
func DurationSetting(raw string, fallback time.Duration) (time.Duration, error) {
	if raw == "" {
		return fallback, nil
	}
	return time.ParseDuration(raw)
}

package jwtmw

import (
	"log/slog"
	"os"
	"time"
)

const (
	// EnvKeyJWTSecret is the environment variable holding the HMAC signing secret.
	EnvKeyJWTSecret = "JWT_SECRET"
	// EnvKeyJWTExpiration is the environment variable holding the token lifetime (time.ParseDuration syntax).
	EnvKeyJWTExpiration = "JWT_EXPIRATION"

	// DefaultExpiration matches the 360000 second lifetime the web client was built around.
	DefaultExpiration = 100 * time.Hour
)

// Config holds token signing settings. It is read once at startup and passed
// to NewService; rotating Secret invalidates every previously issued token.
type Config struct {
	Secret     string
	Expiration time.Duration
}

// LoadConfig reads the token configuration from environment variables.
func LoadConfig() Config {
	cfg := Config{
		Secret:     os.Getenv(EnvKeyJWTSecret),
		Expiration: DefaultExpiration,
	}
	if raw := os.Getenv(EnvKeyJWTExpiration); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			slog.Warn("invalid JWT_EXPIRATION, using default", "value", raw, "default", DefaultExpiration)
		} else {
			cfg.Expiration = d
		}
	}
	return cfg
}

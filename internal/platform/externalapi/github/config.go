// Package github looks up a user's public repositories on the GitHub REST API.
package github

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

const (
	DefaultBaseURL   = "https://api.github.com"
	DefaultTimeout   = 10 * time.Second
	DefaultCacheTTL  = 10 * time.Minute
	DefaultRateLimit = 30
)

// Config holds configuration for the GitHub API client.
type Config struct {
	BaseURL   string        // e.g. "https://api.github.com"
	Token     string        // optional; raises the upstream rate limit
	Timeout   time.Duration // HTTP request timeout
	CacheTTL  time.Duration // lifetime of cached repo lists
	RateLimit int           // outbound requests per minute; 0 disables throttling
}

// LoadConfig loads GitHub configuration from environment variables.
func LoadConfig() Config {
	cfg := Config{
		BaseURL:   os.Getenv("GITHUB_BASE_URL"),
		Token:     os.Getenv("GITHUB_TOKEN"),
		Timeout:   envDuration("GITHUB_TIMEOUT", DefaultTimeout),
		CacheTTL:  envDuration("GITHUB_CACHE_TTL", DefaultCacheTTL),
		RateLimit: DefaultRateLimit,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if v := os.Getenv("GITHUB_RATE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			slog.Warn("invalid GITHUB_RATE_LIMIT, using default", "value", v, "default", DefaultRateLimit)
		} else {
			cfg.RateLimit = n
		}
	}
	return cfg
}

func envDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

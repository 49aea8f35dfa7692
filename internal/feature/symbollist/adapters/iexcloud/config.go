// Package iexcloud provides a client for the IEX Cloud reference data API.
package iexcloud

import (
	"os"
	"strconv"
	"time"
)

const (
	defaultBaseURL   = "https://api.iex.cloud/v1"
	defaultRateLimit = 60
)

// Config holds configuration for the IEX Cloud API client.
type Config struct {
	APIKey    string        // API token, sent as the token query parameter
	BaseURL   string        // Base URL for the API (e.g., "https://api.iex.cloud/v1")
	Timeout   time.Duration // HTTP request timeout
	RateLimit int           // requests per minute, 0 disables limiting
}

// LoadConfig loads IEX Cloud configuration from environment variables.
func LoadConfig() Config {
	cfg := Config{
		APIKey:    os.Getenv("IEX_CLOUD_API_KEY"),
		BaseURL:   os.Getenv("IEX_CLOUD_BASE_URL"),
		Timeout:   10 * time.Second,
		RateLimit: defaultRateLimit,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if v, err := strconv.Atoi(os.Getenv("IEX_CLOUD_RATE_LIMIT")); err == nil && v >= 0 {
		cfg.RateLimit = v
	}
	return cfg
}

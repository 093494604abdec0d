// File: internal/services/api/config.go
package api

import (
	"errors"
	"strings"
	"time"
)

type Config struct {
	// Connection settings
	BaseURL string // Server base URL, e.g. http://localhost:3000
	Token   string // Optional session token carried as a bearer header

	// Operation settings
	Timeout time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		Timeout: 60 * time.Second,
	}
}

func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("server base URL is required")
	}
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return errors.New("server base URL must be http or https")
	}
	if c.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	return nil
}

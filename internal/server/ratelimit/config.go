package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (prefix matching)
	Method string        // HTTP method
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Config holds limiter configuration
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	EndpointConfigs []EndpointConfig
}

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	enabled := getEnvBool("RATE_LIMIT_ENABLED", true)
	if !enabled {
		return &Config{Enabled: false, DefaultLimit: 1000}
	}

	return &Config{
		Enabled:         enabled,
		DefaultLimit:    getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 1000),
		DefaultWindow:   getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Write operations
		{Path: "/candidates", Method: "POST", Limit: 300, Window: time.Minute, Burst: 30},
		{Path: "/opportunities/", Method: "POST", Limit: 300, Window: time.Minute, Burst: 30},
		{Path: "/agent-instances", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},

		// Read operations (looser limits)
		{Path: "/candidates", Method: "GET", Limit: 1200, Window: time.Minute, Burst: 100},
		{Path: "/opportunities/", Method: "GET", Limit: 1200, Window: time.Minute, Burst: 100},
	}
}

// lookup resolves the limit for a method and path, falling back to the
// defaults when no endpoint config matches
func (c *Config) lookup(method, path string) (limit int, window time.Duration, burst int) {
	for _, ec := range c.EndpointConfigs {
		if ec.Method == method && strings.HasPrefix(path, ec.Path) {
			burst = ec.Burst
			if burst == 0 {
				burst = ec.Limit
			}
			return ec.Limit, ec.Window, burst
		}
	}
	return c.DefaultLimit, c.DefaultWindow, c.DefaultLimit
}

func getEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

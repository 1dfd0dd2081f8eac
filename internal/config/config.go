package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the console service
type Config struct {
	API     APIConfig
	Backend BackendConfig
	Logging LoggingConfig
}

// APIConfig holds the console HTTP server settings
type APIConfig struct {
	Host string
	Port string
}

// BackendConfig holds the backend devis API settings
type BackendConfig struct {
	URL     string
	Timeout time.Duration
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables, reading a .env file
// first when one is present
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		API: APIConfig{
			Host: getEnv("CONSOLE_HOST", "0.0.0.0"),
			Port: getEnv("CONSOLE_PORT", "8090"),
		},
		Backend: BackendConfig{
			URL:     getEnv("BACKEND_API_URL", "http://localhost:8080/api"),
			Timeout: parseDuration(getEnv("BACKEND_API_TIMEOUT", "30s"), 30*time.Second),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration fields are set
func (c *Config) Validate() error {
	if c.Backend.URL == "" {
		return fmt.Errorf("BACKEND_API_URL is required")
	}
	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("BACKEND_API_TIMEOUT must be positive")
	}
	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(value string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}

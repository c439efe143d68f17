// ABOUTME: Configuration management for the aggregator with environment variable support
// ABOUTME: Defines configuration structures for updates, downloads, caching and logging

package config

import (
	"errors"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	// Update contains the fetch scheduling configuration
	Update UpdateConfig

	// Download contains the HTTP download configuration
	Download DownloadConfig

	// Cache contains document cache configuration
	Cache CacheConfig

	// State contains scheduler state persistence configuration
	State StateConfig

	// Log contains logging configuration
	Log LogConfig
}

// UpdateConfig holds the fetch scheduling configuration
type UpdateConfig struct {
	// IntervalMinutes is the global update interval; zero disables the
	// global timer
	IntervalMinutes int

	// UpdateOnStartup forces a quick update run after startup
	UpdateOnStartup bool

	// Silent suppresses user-facing notifications about fetch failures
	Silent bool
}

// DownloadConfig holds the HTTP download configuration
type DownloadConfig struct {
	// TimeoutSeconds bounds a single download attempt
	TimeoutSeconds int

	// MaxConcurrent bounds how many downloads run at once
	MaxConcurrent int

	// RequestsPerSecond paces outgoing requests; zero means unpaced
	RequestsPerSecond float64
}

// CacheConfig holds document cache configuration
type CacheConfig struct {
	// DocumentTTLSeconds is how long a downloaded document is reused
	DocumentTTLSeconds int
}

// StateConfig holds scheduler state persistence configuration
type StateConfig struct {
	// Path is the SQLite database file for scheduler timestamps
	Path string
}

// LogConfig holds logging configuration
type LogConfig struct {
	// Level is the minimum log level (debug/info/warn/error)
	Level string

	// JSON switches log output to JSON formatting
	JSON bool
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Update: UpdateConfig{
			IntervalMinutes: getEnvAsIntOrDefault("UPDATE_INTERVAL_MINUTES", 30),
			UpdateOnStartup: getEnvAsBoolOrDefault("UPDATE_ON_STARTUP", true),
			Silent:          getEnvAsBoolOrDefault("SILENT_UPDATES", false),
		},
		Download: DownloadConfig{
			TimeoutSeconds:    getEnvAsIntOrDefault("DOWNLOAD_TIMEOUT_SECONDS", 30),
			MaxConcurrent:     getEnvAsIntOrDefault("DOWNLOAD_MAX_CONCURRENT", 4),
			RequestsPerSecond: getEnvAsFloatOrDefault("DOWNLOAD_REQUESTS_PER_SECOND", 0),
		},
		Cache: CacheConfig{
			DocumentTTLSeconds: getEnvAsIntOrDefault("DOCUMENT_CACHE_TTL_SECONDS", 300),
		},
		State: StateConfig{
			Path: getEnvOrDefault("STATE_DB_PATH", "scheduler_state.db"),
		},
		Log: LogConfig{
			Level: getEnvOrDefault("LOG_LEVEL", "info"),
			JSON:  getEnvAsBoolOrDefault("LOG_JSON", false),
		},
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloatOrDefault returns the environment variable as float64 or a default
func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsBoolOrDefault returns the environment variable as bool or a default
func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Update.IntervalMinutes < 0 {
		return errors.New("update interval cannot be negative")
	}

	if c.Download.TimeoutSeconds < 1 {
		return errors.New("download timeout must be at least 1 second")
	}

	if c.Download.MaxConcurrent < 1 {
		return errors.New("max concurrent downloads must be at least 1")
	}

	if c.Download.RequestsPerSecond < 0 {
		return errors.New("requests per second cannot be negative")
	}

	if c.Cache.DocumentTTLSeconds < 0 {
		return errors.New("document cache TTL cannot be negative")
	}

	if c.State.Path == "" {
		return errors.New("state database path cannot be empty")
	}

	return nil
}

// Package config loads process configuration from the environment: no
// files, just environment variables with sane defaults. The command line can
// still override the log level on top of it (see runner.Options.LogLevel).
package config

import "os"

// Config is the complete set of environment-driven settings for a run.
// Only logging is configurable; the server, rate-limit, and CORS sections
// the reference config carried have no referent once the surface is a CLI
// instead of an HTTP API, so they are not carried over.
type Config struct {
	Logging LoggingConfig
}

// LoggingConfig controls verbosity and output shape of diagnostics.
type LoggingConfig struct {
	Level  string
	Format string
}

// Load reads Config from the environment, falling back to defaults for any
// variable that is unset or empty.
func Load() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// Package config provides functionality for loading environment variables
// and the application configuration.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"fjacquet/fintrack/internal/logging"

	"github.com/joho/godotenv"
)

// LoadEnv loads environment variables from a .env file in the current or
// parent directory, if one exists. It returns the file that was loaded.
func LoadEnv() (string, error) {
	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return "", nil
		}
	}

	if err := godotenv.Load(envFile); err != nil {
		return "", err
	}
	return envFile, nil
}

// GetEnv retrieves an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	return value
}

// ConfigureLoggingFromConfig builds the application logger from cfg.
func ConfigureLoggingFromConfig(cfg *Config) logging.Logger {
	if cfg == nil {
		return logging.GetLogger()
	}
	return logging.NewLogrusAdapter(strings.ToLower(cfg.Log.Level), strings.ToLower(cfg.Log.Format))
}

package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

// Config holds the application configuration.
type Config struct {
	// GeminiAPIKey is only needed for the AI reviewer rule.
	GeminiAPIKey string
	ContentPath  string
	LogFile      string
	LogLevel     string
	GitHubAPI    string
}

// LoadConfig loads the configuration from environment variables, reading a
// .env file in the working directory first if there is one. Values are not
// validated here; see Validate.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		ContentPath:  os.Getenv("COMMIT_GAME_CONTENT"),
		LogFile:      os.Getenv("COMMIT_GAME_LOG_FILE"),
		LogLevel:     os.Getenv("COMMIT_GAME_LOG_LEVEL"),
		GitHubAPI:    os.Getenv("COMMIT_GAME_GITHUB_API"),
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late. Call it once
// command-line overrides have been applied.
func (c *Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("COMMIT_GAME_LOG_LEVEL: %w", err)
	}
	return nil
}

// Package config loads process configuration from the environment and an optional
// dotenv file.
package config

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pfrederiksen/promiedos-alerts/internal/logger"
	"github.com/pfrederiksen/promiedos-alerts/internal/match"
	"github.com/pfrederiksen/promiedos-alerts/internal/scraper"
)

// DefaultEnvFile is the dotenv file read when none is given
const DefaultEnvFile = ".env"

// Config holds the settings for one run
type Config struct {
	SourceURL     string   `validate:"required,url"`
	SourceZone    string   `validate:"required,timezone"`
	DisplayZone   string   `validate:"required,timezone"`
	LogLevel      string   `validate:"omitempty,oneof=debug info warn warning error DEBUG INFO WARN WARNING ERROR"`
	SelectorsFile string   `validate:"omitempty,file"`
	Telegram      Telegram `validate:"-"` // checked by Telegram.Validate
}

// Telegram holds the bot credentials
type Telegram struct {
	Token  string `validate:"required"`
	ChatID string `validate:"required"`
}

var validate = validator.New()

// Load reads the dotenv file at envFile, if it exists, and then the environment.
// Variables already set in the environment take precedence over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, errors.Wrapf(err, "loading env file %s", envFile)
			}
			logger.Debug("No env file found", logger.Fields{"path": envFile})
		}
	}

	return &Config{
		SourceURL:     getEnvOrDefault("PROMIEDOS_URL", scraper.ResultsURL),
		SourceZone:    getEnvOrDefault("SOURCE_TZ", match.SourceZone),
		DisplayZone:   getEnvOrDefault("DISPLAY_TZ", match.DisplayZone),
		LogLevel:      getEnvOrDefault("LOG_LEVEL", "info"),
		SelectorsFile: os.Getenv("SELECTORS_FILE"),
		Telegram: Telegram{
			Token:  firstEnv("TELEGRAM_TOKEN", "TELEGRAM_BOT_TOKEN"),
			ChatID: os.Getenv("TELEGRAM_CHAT_ID"),
		},
	}, nil
}

// Validate checks the run settings. Telegram credentials are checked separately
// so a dry run can go without them.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	return nil
}

// Validate checks that both credentials are present
func (t Telegram) Validate() error {
	if err := validate.Struct(t); err != nil {
		return errors.Wrap(err, "telegram credentials (TELEGRAM_TOKEN, TELEGRAM_CHAT_ID)")
	}
	return nil
}

// Level returns the configured log level
func (c *Config) Level() logger.Level {
	level, err := logger.ParseLevel(c.LogLevel)
	if err != nil {
		return logger.LevelInfo
	}
	return level
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return defaultVal
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if val := strings.TrimSpace(os.Getenv(key)); val != "" {
			return val
		}
	}
	return ""
}

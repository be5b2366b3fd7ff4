// Package config loads runtime settings for the quiz result notifier.
//
// Settings come from environment variables and, optionally, a YAML file.
// Environment variables win over the file. Missing Telegram credentials are
// not a load error: the handler checks them on every request and answers
// with a configuration error instead.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/pfrederiksen/quiz-results/internal/handler"
	"github.com/pfrederiksen/quiz-results/internal/logger"
	"github.com/pfrederiksen/quiz-results/internal/telegram"
)

// Config holds everything the hosting shells need to build a handler
type Config struct {
	Telegram TelegramConfig `mapstructure:"telegram"`
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	// Timezone is an IANA zone name for message timestamps; empty means the process zone
	Timezone string `mapstructure:"timezone"`
}

// TelegramConfig holds the Bot API credentials and endpoint
type TelegramConfig struct {
	BotToken string        `mapstructure:"bot_token"`
	ChatID   string        `mapstructure:"chat_id"`
	APIURL   string        `mapstructure:"api_url"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// ServerConfig configures the standalone HTTP server
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// LogConfig configures logging
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// env variable names per config key
var envBindings = map[string]string{
	"telegram.bot_token": "TELEGRAM_BOT_TOKEN",
	"telegram.chat_id":   "TELEGRAM_CHAT_ID",
	"telegram.api_url":   "TELEGRAM_API_URL",
	"telegram.timeout":   "QUIZ_DELIVERY_TIMEOUT",
	"server.addr":        "QUIZ_LISTEN_ADDR",
	"log.level":          "QUIZ_LOG_LEVEL",
	"timezone":           "QUIZ_TIMEZONE",
}

// Load reads configuration from the environment and, when path is not empty,
// from the YAML file at path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetDefault("telegram.api_url", telegram.DefaultBaseURL)
	v.SetDefault("telegram.timeout", telegram.DefaultTimeout)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("log.level", "info")

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file failed (%s): %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config failed: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.Telegram.Timeout < 0 {
		return fmt.Errorf("invalid delivery timeout %s: must not be negative", c.Telegram.Timeout)
	}
	return nil
}

// Location resolves Timezone, falling back to the process local zone
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// LogLevel returns the parsed log level
func (c *Config) LogLevel() logger.Level {
	level, _ := logger.ParseLevel(c.Log.Level)
	return level
}

// HasCredentials reports whether both Telegram credentials are set
func (t TelegramConfig) HasCredentials() bool {
	return t.BotToken != "" && t.ChatID != ""
}

// Handler returns the settings the result notifier is built from
func (c *Config) Handler() (handler.Config, error) {
	loc, err := c.Location()
	if err != nil {
		return handler.Config{}, err
	}
	return handler.Config{
		BotToken: c.Telegram.BotToken,
		ChatID:   c.Telegram.ChatID,
		APIURL:   c.Telegram.APIURL,
		Timeout:  c.Telegram.Timeout,
		Location: loc,
	}, nil
}

// Package config provides configuration loading from environment variables.
package config

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sethvargo/go-envconfig"
)

// Config holds the settings that can come from the environment.
// Command line flags override them.
type Config struct {
	FFmpegPath string `env:"MKVCUT_FFMPEG, default=ffmpeg" validate:"required"`

	// HistoryDB is the SQLite history file. Empty means the default location.
	HistoryDB string `env:"MKVCUT_HISTORY_DB"`
	NoHistory bool   `env:"MKVCUT_NO_HISTORY, default=false"`

	// Plain disables the interactive progress display.
	Plain bool `env:"MKVCUT_PLAIN, default=false"`

	LogLevel string `env:"MKVCUT_LOG_LEVEL, default=warn" validate:"oneof=debug info warn warning error"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	cfg := &Config{}
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints. It is run again after flags are applied.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// NewLogger creates a text logger writing to w at the configured level.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: parseLogLevel(c.LogLevel),
	}))
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{FFmpegPath: %s, HistoryDB: %s, NoHistory: %t, Plain: %t, LogLevel: %s}",
		c.FFmpegPath,
		c.HistoryDB,
		c.NoHistory,
		c.Plain,
		c.LogLevel,
	)
}

// parseLogLevel converts a string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

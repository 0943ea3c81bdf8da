package config

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chessrules-go/internal/errors"
)

// LogConfig holds settings for the structured logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level"`

	// Format is console or json
	Format string `yaml:"format"`

	// File, when set, receives a copy of every entry
	File string `yaml:"file"`

	// Caller adds the calling file and line to entries
	Caller bool `yaml:"caller"`
}

// NewLogConfig creates a LogConfig with default values.
func NewLogConfig() *LogConfig {
	return &LogConfig{
		Level:  "info",
		Format: "console",
	}
}

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}

// Validate checks the level and format names.
func (l *LogConfig) Validate() error {
	if !logLevels[strings.ToLower(l.Level)] {
		return fmt.Errorf("log level %q: %w", l.Level, errors.ErrInvalidConfig)
	}
	switch strings.ToLower(l.Format) {
	case "console", "json":
		return nil
	}
	return fmt.Errorf("log format %q: %w", l.Format, errors.ErrInvalidConfig)
}

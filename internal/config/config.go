// Package config provides configuration for the chess rules engine tools.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	yaml "gopkg.in/yaml.v3"

	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/errors"
)

// Environment variables that override file settings.
const (
	EnvLogLevel    = "CHESS_LOG_LEVEL"
	EnvLogFormat   = "CHESS_LOG_FORMAT"
	EnvRedisURL    = "CHESS_REDIS_URL"
	EnvDatabaseURL = "CHESS_DATABASE_URL"
	EnvWorkers     = "CHESS_WORKERS"
)

// Config holds all program configuration.
type Config struct {
	Rules    engine.Rules   `yaml:"rules"`
	Log      LogConfig      `yaml:"log"`
	Store    StoreConfig    `yaml:"store"`
	SelfPlay SelfPlayConfig `yaml:"selfplay"`
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Rules:    engine.DefaultRules(),
		Log:      *NewLogConfig(),
		Store:    *NewStoreConfig(),
		SelfPlay: *NewSelfPlayConfig(),
	}
}

// Load reads a YAML file over the defaults and applies environment
// overrides. An empty path skips the file. The result is not validated:
// callers layer command-line settings on top and then call Validate.
func Load(path string) (*Config, error) {
	cfg := NewConfig()

	if strings.TrimSpace(path) != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %v: %w", path, err, errors.ErrInvalidConfig)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides settings from the environment. lookup has the
// signature of os.LookupEnv.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookupTrimmed(lookup, EnvLogLevel); ok {
		c.Log.Level = v
	}
	if v, ok := lookupTrimmed(lookup, EnvLogFormat); ok {
		c.Log.Format = v
	}
	if v, ok := lookupTrimmed(lookup, EnvRedisURL); ok {
		c.Store.RedisURL = v
	}
	if v, ok := lookupTrimmed(lookup, EnvDatabaseURL); ok {
		c.Store.DatabaseURL = v
	}
	if v, ok := lookupTrimmed(lookup, EnvWorkers); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", EnvWorkers, v, errors.ErrInvalidConfig)
		}
		c.SelfPlay.Workers = n
	}
	return nil
}

func lookupTrimmed(lookup func(string) (string, bool), key string) (string, bool) {
	v, ok := lookup(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Rules.Validate(); err != nil {
		return err
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if err := c.Store.Validate(); err != nil {
		return err
	}
	return c.SelfPlay.Validate()
}

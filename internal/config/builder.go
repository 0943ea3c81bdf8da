package config

import (
	"time"

	"github.com/lgbarn/chessrules-go/internal/engine"
)

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithRules sets the game rules.
func (b *ConfigBuilder) WithRules(r engine.Rules) *ConfigBuilder {
	b.cfg.Rules = r
	return b
}

// WithLogLevel sets the log level.
func (b *ConfigBuilder) WithLogLevel(level string) *ConfigBuilder {
	b.cfg.Log.Level = level
	return b
}

// WithJSONLogs switches the log format to JSON.
func (b *ConfigBuilder) WithJSONLogs(enabled bool) *ConfigBuilder {
	if enabled {
		b.cfg.Log.Format = "json"
	} else {
		b.cfg.Log.Format = "console"
	}
	return b
}

// WithRedis stores snapshots in Redis at url with the given TTL.
func (b *ConfigBuilder) WithRedis(url string, ttl time.Duration) *ConfigBuilder {
	b.cfg.Store.RedisURL = url
	b.cfg.Store.TTL = ttl
	return b
}

// WithSelfPlay sets the number of games and workers.
func (b *ConfigBuilder) WithSelfPlay(games, workers int) *ConfigBuilder {
	b.cfg.SelfPlay.Games = games
	b.cfg.SelfPlay.Workers = workers
	return b
}

// WithSeed sets the self-play seed.
func (b *ConfigBuilder) WithSeed(seed int64) *ConfigBuilder {
	b.cfg.SelfPlay.Seed = seed
	return b
}

// WithMaxPlies caps self-play games.
func (b *ConfigBuilder) WithMaxPlies(n int) *ConfigBuilder {
	b.cfg.SelfPlay.MaxPlies = n
	return b
}

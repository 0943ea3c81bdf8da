package config

import (
	"fmt"
	"time"

	"github.com/lgbarn/chessrules-go/internal/errors"
)

// StoreConfig holds settings for the position snapshot store.
type StoreConfig struct {
	// RedisURL selects the Redis store; empty keeps snapshots in memory
	RedisURL string `yaml:"redis_url"`

	// DatabaseURL selects the PostgreSQL store
	DatabaseURL string `yaml:"database_url"`

	// KeyPrefix is prepended to every snapshot key
	KeyPrefix string `yaml:"key_prefix"`

	// TTL is how long a snapshot lives; zero keeps it forever
	TTL time.Duration `yaml:"ttl"`
}

// NewStoreConfig creates a StoreConfig with default values.
func NewStoreConfig() *StoreConfig {
	return &StoreConfig{
		KeyPrefix: "chess:fen:",
		TTL:       24 * time.Hour,
	}
}

// UseRedis reports whether snapshots go to Redis.
func (s *StoreConfig) UseRedis() bool {
	return s.RedisURL != ""
}

// UsePostgres reports whether snapshots go to PostgreSQL.
func (s *StoreConfig) UsePostgres() bool {
	return s.DatabaseURL != ""
}

// Validate checks the TTL and that at most one backend is selected.
func (s *StoreConfig) Validate() error {
	if s.TTL < 0 {
		return fmt.Errorf("store ttl %v is negative: %w", s.TTL, errors.ErrInvalidConfig)
	}
	if s.UseRedis() && s.UsePostgres() {
		return fmt.Errorf("both redis_url and database_url are set: %w", errors.ErrInvalidConfig)
	}
	return nil
}

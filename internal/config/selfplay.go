package config

import (
	"fmt"
	"runtime"

	"github.com/lgbarn/chessrules-go/internal/errors"
)

// SelfPlayConfig holds settings for random self-play runs.
type SelfPlayConfig struct {
	// Games is the number of games to play
	Games int `yaml:"games"`

	// Workers is the number of games played concurrently
	Workers int `yaml:"workers"`

	// MaxPlies caps each game; 0 plays until the game ends
	MaxPlies int `yaml:"max_plies"`

	// Seed makes runs repeatable; game i uses Seed+i
	Seed int64 `yaml:"seed"`

	// BufferSize is the capacity of the job and result queues
	BufferSize int `yaml:"buffer_size"`
}

// NewSelfPlayConfig creates a SelfPlayConfig with default values.
func NewSelfPlayConfig() *SelfPlayConfig {
	return &SelfPlayConfig{
		Games:      100,
		Workers:    runtime.NumCPU(),
		Seed:       1,
		BufferSize: 64,
	}
}

// Validate checks that the self-play configuration is valid.
func (s *SelfPlayConfig) Validate() error {
	if s.Games < 0 {
		return fmt.Errorf("games (%d) must not be negative: %w", s.Games, errors.ErrInvalidConfig)
	}
	if s.Workers < 1 {
		return fmt.Errorf("workers (%d) must be at least 1: %w", s.Workers, errors.ErrInvalidConfig)
	}
	if s.MaxPlies < 0 {
		return fmt.Errorf("max plies (%d) must not be negative: %w", s.MaxPlies, errors.ErrInvalidConfig)
	}
	return nil
}

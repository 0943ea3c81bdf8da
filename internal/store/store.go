// Package store keeps named FEN snapshots in memory, Redis or PostgreSQL.
package store

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/errors"
)

// Store saves positions under caller-chosen names.
type Store interface {
	// Save stores fen under id, replacing any earlier value. The FEN must
	// parse.
	Save(ctx context.Context, id, fen string) error
	// Load returns the FEN stored under id or ErrSnapshotNotFound.
	Load(ctx context.Context, id string) (string, error)
	// Delete removes id. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error
}

// NewID returns a fresh snapshot name.
func NewID() string {
	return uuid.NewString()
}

// New returns the store cfg selects: Redis, PostgreSQL or, when neither
// URL is set, memory. ctx bounds the PostgreSQL connection check.
func New(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch {
	case cfg.UseRedis():
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("redis url %q: %v: %w", cfg.RedisURL, err, errors.ErrInvalidConfig)
		}
		return NewRedisStore(redis.NewClient(opts), cfg.KeyPrefix, cfg.TTL), nil
	case cfg.UsePostgres():
		return OpenPostgres(ctx, cfg.DatabaseURL, cfg.TTL)
	}
	return NewMemoryStore(), nil
}

func checkArgs(id, fen string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("empty snapshot id: %w", errors.ErrInvalidConfig)
	}
	if _, err := engine.NewBoardFromFEN(fen); err != nil {
		return err
	}
	return nil
}

// MemoryStore is a Store backed by a map. It is safe for concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	fens map[string]string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{fens: make(map[string]string)}
}

// Save stores fen under id.
func (s *MemoryStore) Save(_ context.Context, id, fen string) error {
	if err := checkArgs(id, fen); err != nil {
		return err
	}
	s.mu.Lock()
	s.fens[id] = fen
	s.mu.Unlock()
	return nil
}

// Load returns the FEN stored under id.
func (s *MemoryStore) Load(_ context.Context, id string) (string, error) {
	s.mu.RLock()
	fen, ok := s.fens[id]
	s.mu.RUnlock()
	if !ok {
		return "", errors.Wrapf(errors.ErrSnapshotNotFound, "snapshot %q", id)
	}
	return fen, nil
}

// Delete removes id.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.fens, id)
	s.mu.Unlock()
	return nil
}

// Len returns the number of stored snapshots.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.fens)
}

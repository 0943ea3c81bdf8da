package store

import (
	"context"
	goerrors "errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lgbarn/chessrules-go/internal/errors"
)

// RedisStore is a Store backed by Redis string keys.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore wraps rdb. Keys are prefix+id and expire after ttl; a zero
// ttl never expires.
func NewRedisStore(rdb *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) key(id string) string { return s.prefix + strings.TrimSpace(id) }

// Save writes fen under id, replacing any earlier value.
func (s *RedisStore) Save(ctx context.Context, id, fen string) error {
	if err := checkArgs(id, fen); err != nil {
		return err
	}
	return errors.Wrap(s.rdb.Set(ctx, s.key(id), fen, s.ttl).Err(), "redis set")
}

// Load returns the FEN stored under id.
func (s *RedisStore) Load(ctx context.Context, id string) (string, error) {
	fen, err := s.rdb.Get(ctx, s.key(id)).Result()
	if goerrors.Is(err, redis.Nil) {
		return "", errors.Wrapf(errors.ErrSnapshotNotFound, "snapshot %q", id)
	}
	if err != nil {
		return "", errors.Wrap(err, "redis get")
	}
	return fen, nil
}

// Delete removes id. Deleting a missing id is not an error.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return errors.Wrap(s.rdb.Del(ctx, s.key(id)).Err(), "redis del")
}

// Ping checks the connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// Close releases the client.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

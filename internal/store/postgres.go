package store

import (
	"context"
	"database/sql"
	goerrors "errors"
	"strings"
	"time"

	_ "github.com/lib/pq" // registers the "postgres" driver

	"github.com/lgbarn/chessrules-go/internal/errors"
)

const snapshotTable = `CREATE TABLE IF NOT EXISTS chess_snapshots (
    id         TEXT PRIMARY KEY,
    fen        TEXT NOT NULL,
    saved_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
    expires_at TIMESTAMPTZ
)`

// PostgresStore is a Store backed by the chess_snapshots table.
type PostgresStore struct {
	db  *sql.DB
	ttl time.Duration
}

// OpenPostgres connects to databaseURL, checks the connection and creates
// the snapshot table if needed.
func OpenPostgres(ctx context.Context, databaseURL string, ttl time.Duration) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "open postgres")
	}
	db.SetMaxOpenConns(16)
	db.SetMaxIdleConns(8)
	db.SetConnMaxLifetime(30 * time.Minute)

	s := NewPostgresStore(db, ttl)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "ping postgres")
	}
	if err := s.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewPostgresStore wraps db. Rows expire after ttl; a zero ttl never expires.
func NewPostgresStore(db *sql.DB, ttl time.Duration) *PostgresStore {
	return &PostgresStore{db: db, ttl: ttl}
}

// EnsureSchema creates the snapshot table.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, snapshotTable)
	return errors.Wrap(err, "create chess_snapshots")
}

// Save upserts fen under id and resets its expiry.
func (s *PostgresStore) Save(ctx context.Context, id, fen string) error {
	if err := checkArgs(id, fen); err != nil {
		return err
	}
	var expires sql.NullTime
	if s.ttl > 0 {
		expires = sql.NullTime{Time: time.Now().Add(s.ttl), Valid: true}
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO chess_snapshots (id, fen, expires_at)
        VALUES ($1, $2, $3)
        ON CONFLICT (id) DO UPDATE SET
          fen=EXCLUDED.fen,
          saved_at=now(),
          expires_at=EXCLUDED.expires_at`,
		strings.TrimSpace(id), fen, expires)
	return errors.Wrap(err, "postgres save")
}

// Load returns the FEN stored under id unless the row has expired.
func (s *PostgresStore) Load(ctx context.Context, id string) (string, error) {
	var fen string
	err := s.db.QueryRowContext(ctx, `SELECT fen FROM chess_snapshots
        WHERE id=$1 AND (expires_at IS NULL OR expires_at > now())`,
		strings.TrimSpace(id)).Scan(&fen)
	if goerrors.Is(err, sql.ErrNoRows) {
		return "", errors.Wrapf(errors.ErrSnapshotNotFound, "snapshot %q", id)
	}
	if err != nil {
		return "", errors.Wrap(err, "postgres load")
	}
	return fen, nil
}

// Delete removes the row for id.
func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM chess_snapshots WHERE id=$1`, strings.TrimSpace(id))
	return errors.Wrap(err, "postgres delete")
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

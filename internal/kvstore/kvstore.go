package kvstore

import (
	"context"
	"database/sql"
	"errors"
)

var ErrNotFound = errors.New("key not found")

// Store is a small persistent key-value store. Writes are idempotent
// last-writer-wins; there is exactly one writer per key (the owning
// client's requests), so no transactional guarantees are needed.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

type pgStore struct {
	db *sql.DB
}

// NewPostgres returns a Store backed by the client_state table.
func NewPostgres(db *sql.DB) Store {
	return &pgStore{db: db}
}

func (s *pgStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM client_state WHERE key = $1", key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (s *pgStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO client_state (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = NOW()`,
		key, value,
	)
	return err
}

func (s *pgStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM client_state WHERE key = $1", key,
	)
	return err
}

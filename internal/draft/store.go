package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"flavis-be/internal/kvstore"
)

const keyPrefix = "draft:"

var ErrNotFound = errors.New("draft not found")

// Store persists one draft per client key so an in-progress form survives
// reloads. Writes are last-writer-wins; the single writer is the owning
// client.
type Store struct {
	kv kvstore.Store
}

func NewStore(kv kvstore.Store) *Store {
	return &Store{kv: kv}
}

func (s *Store) Save(ctx context.Context, key string, d *Draft) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("draft: marshal: %w", err)
	}
	return s.kv.Set(ctx, keyPrefix+key, raw)
}

func (s *Store) Load(ctx context.Context, key string) (*Draft, error) {
	raw, err := s.kv.Get(ctx, keyPrefix+key)
	if errors.Is(err, kvstore.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var d Draft
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("draft: unmarshal: %w", err)
	}
	return &d, nil
}

// Clear drops the persisted draft, called after a successful order.
func (s *Store) Clear(ctx context.Context, key string) error {
	return s.kv.Delete(ctx, keyPrefix+key)
}

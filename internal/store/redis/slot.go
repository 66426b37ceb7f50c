// Package redis stores the listing slot under a single Redis key.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/marketboard/internal/store"
)

// Slot is one Redis string key. Values never expire.
type Slot struct {
	client redis.UniversalClient
	key    string
}

// New returns a Slot for key on client. See ListingsKey for key naming.
func New(client redis.UniversalClient, key string) *Slot {
	return &Slot{
		client: client,
		key:    ListingsKey(key),
	}
}

// Key returns the Redis key backing the slot.
func (s *Slot) Key() string { return s.key }

func (s *Slot) Read(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, store.ErrEmpty
		}
		return nil, fmt.Errorf("failed to get %s: %w", s.key, err)
	}
	return data, nil
}

func (s *Slot) Write(ctx context.Context, data []byte) error {
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", s.key, err)
	}
	return nil
}

func (s *Slot) Check(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Slot) Name() string { return "redis:" + s.key }

// Compile-time assertion that Slot implements store.Slot.
var _ store.Slot = (*Slot)(nil)

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"eventhub/models"

	"github.com/redis/go-redis/v9"
)

// KV persists ordered event snapshots under plain string keys. Cart and
// wishlist each get their own key per user; every mutation rewrites the
// whole sequence, mirroring how the stored value is consumed (read all,
// mutate, write all).
type KV struct {
	Redis *redis.Client
}

func NewKV(redisClient *redis.Client) *KV {
	return &KV{Redis: redisClient}
}

// GetItems returns the sequence stored under key. A missing key is an
// empty sequence, not an error.
func (s *KV) GetItems(ctx context.Context, key string) ([]models.Event, error) {
	data, err := s.Redis.Get(ctx, key).Result()
	if err == redis.Nil {
		return []models.Event{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("kv get %s: %w", key, err)
	}

	var items []models.Event
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, fmt.Errorf("kv decode %s: %w", key, err)
	}
	return items, nil
}

// SetItems replaces the sequence stored under key. A zero ttl keeps the
// key forever.
func (s *KV) SetItems(ctx context.Context, key string, items []models.Event, ttl time.Duration) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("kv encode %s: %w", key, err)
	}
	if err := s.Redis.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("kv set %s: %w", key, err)
	}
	return nil
}

// DeleteKey drops a stored sequence entirely.
func (s *KV) DeleteKey(ctx context.Context, key string) error {
	if err := s.Redis.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("kv del %s: %w", key, err)
	}
	return nil
}

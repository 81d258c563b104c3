package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisBackend persists the table snapshot under a single Redis key. It
// keeps the Store's load/save reconciliation contract: the whole table moves
// in one GET or SET, never entry by entry.
type RedisBackend struct {
	client *redis.Client
	key    string
}

// RedisConfig holds configuration for the Redis backend.
type RedisConfig struct {
	URL string // Redis connection URL (e.g., "redis://localhost:6379")
	Key string // Key holding the snapshot (default: "gotms:cache")
}

// NewRedisBackend creates a Redis backend from the given configuration and
// verifies the connection.
func NewRedisBackend(cfg RedisConfig) (*RedisBackend, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return NewRedisBackendFromClient(client, cfg.Key), nil
}

// NewRedisBackendFromClient creates a RedisBackend from an existing client.
func NewRedisBackendFromClient(client *redis.Client, key string) *RedisBackend {
	if key == "" {
		key = "gotms:cache"
	}
	return &RedisBackend{client: client, key: key}
}

// Load reads the snapshot. A missing key yields an empty table.
func (b *RedisBackend) Load() (map[string]any, error) {
	ctx := context.Background()
	data, err := b.client.Get(ctx, b.key).Bytes()
	if err == redis.Nil {
		return make(map[string]any), nil
	}
	if err != nil {
		return nil, err
	}

	var table map[string]any
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, &CorruptError{Path: b.key, Err: err}
	}
	if table == nil {
		table = make(map[string]any)
	}
	return table, nil
}

// Save overwrites the snapshot. No expiry: invalidation is manual, via
// Clear.
func (b *RedisBackend) Save(table map[string]any) error {
	data, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		return err
	}
	return b.client.Set(context.Background(), b.key, data, 0).Err()
}

// Clear deletes the snapshot key.
func (b *RedisBackend) Clear() error {
	return b.client.Del(context.Background(), b.key).Err()
}

// Location returns the snapshot key.
func (b *RedisBackend) Location() string {
	return b.key
}

// Close closes the Redis connection.
func (b *RedisBackend) Close() error {
	return b.client.Close()
}

// Verify RedisBackend implements Backend
var _ Backend = (*RedisBackend)(nil)

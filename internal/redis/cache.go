package redis

import (
	"context"
	"encoding/json"
	"log"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// ViewCache is a JSON-backed Redis cache for a single entity type T. The
// repository uses it to serve repeated single-account reads without hitting
// Postgres; a TTL of 0 keeps entries until they are explicitly invalidated.
type ViewCache[T any] struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewViewCache[T any](client *goredis.Client, ttl time.Duration) *ViewCache[T] {
	return &ViewCache[T]{client: client, ttl: ttl}
}

// Get retrieves and unmarshals a value. A miss, an expired key, and a
// corrupt entry all report (nil, false); the caller falls back to the store.
func (c *ViewCache[T]) Get(ctx context.Context, key string) (*T, bool) {
	data, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}
	var v T
	if err := json.Unmarshal([]byte(data), &v); err != nil {
		return nil, false
	}
	return &v, true
}

// Set stores value under key. Cache write failures are logged and swallowed:
// the database remains the source of truth.
func (c *ViewCache[T]) Set(ctx context.Context, key string, value *T) {
	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("ViewCache: marshal error for key %s: %v", key, err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		log.Printf("ViewCache: write error for key %s: %v", key, err)
	}
}

// Delete removes a key.
func (c *ViewCache[T]) Delete(ctx context.Context, key string) {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		log.Printf("ViewCache: delete error for key %s: %v", key, err)
	}
}

package cache

import (
	"context"
	"time"
)

// Store байтовое key/value хранилище с TTL.
// Реализации: MemoryStore (в процессе) и RedisStore (общий кэш для нескольких инстансов).
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Cache key generators
const keyPrefix = "skills:"

func CategoriesKey() string {
	return keyPrefix + "categories"
}

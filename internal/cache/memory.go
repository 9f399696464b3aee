package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

// MemoryStore provides in-memory caching with TTL and invalidation support.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]*entry
	now   func() time.Time
}

type entry struct {
	data      []byte
	expiresAt time.Time
}

// NewMemoryStore creates a new in-process cache.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string]*entry),
		now:   time.Now,
	}
}

// Get retrieves a value from cache.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, exists := s.items[key]
	if !exists || s.now().After(e.expiresAt) {
		return nil, false, nil
	}

	out := make([]byte, len(e.data))
	copy(out, e.data)
	return out, true, nil
}

// Set stores a value in cache with TTL. Expired entries are swept on write.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, e := range s.items {
		if now.After(e.expiresAt) {
			delete(s.items, k)
		}
	}

	data := make([]byte, len(value))
	copy(data, value)
	s.items[key] = &entry{data: data, expiresAt: now.Add(ttl)}
	return nil
}

// Delete removes keys from cache.
func (s *MemoryStore) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		delete(s.items, key)
	}
	return nil
}

// InvalidateByPrefix removes all keys with the given prefix.
func (s *MemoryStore) InvalidateByPrefix(prefix string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key := range s.items {
		if strings.HasPrefix(key, prefix) {
			delete(s.items, key)
		}
	}
}

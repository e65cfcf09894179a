package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryCache is a process-local Repository for single-instance runs.
// Expired entries are dropped lazily on read.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry)}
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return "", false
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return "", false
	}
	return e.value, true
}

func (m *MemoryCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	var expires time.Time
	if ttl > 0 {
		expires = time.Now().Add(ttl)
	}
	m.mu.Lock()
	m.entries[key] = memoryEntry{value: value, expiresAt: expires}
	m.mu.Unlock()
	return nil
}

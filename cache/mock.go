package cache

import (
	"context"
	"time"
)

// MockCache records cache traffic for tests.
type MockCache struct {
	Store   map[string]string
	GetKeys []string
	SetKeys []string
	FailSet error
}

func NewMockCache() *MockCache {
	return &MockCache{Store: make(map[string]string)}
}

func (m *MockCache) Get(_ context.Context, key string) (string, bool) {
	m.GetKeys = append(m.GetKeys, key)
	v, ok := m.Store[key]
	return v, ok
}

func (m *MockCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	m.SetKeys = append(m.SetKeys, key)
	if m.FailSet != nil {
		return m.FailSet
	}
	m.Store[key] = value
	return nil
}

package storage

import (
	"context"
	"fmt"

	"github.com/patrickmn/go-cache"
)

// Memory implements Provider in process memory. Nothing survives a restart.
type Memory struct {
	cache *cache.Cache
}

// NewMemory creates an empty in-memory provider.
func NewMemory() *Memory {
	// No expiration and no janitor: entries live until removed.
	return &Memory{cache: cache.New(cache.NoExpiration, 0)}
}

// Get returns the value stored under key.
func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	x, found := m.cache.Get(key)
	if !found {
		return "", false, nil
	}
	s, ok := x.(string)
	if !ok {
		return "", false, fmt.Errorf("storage: memory: key %q holds %T", key, x)
	}
	return s, true, nil
}

// Set stores value under key.
func (m *Memory) Set(_ context.Context, key, value string) error {
	m.cache.Set(key, value, cache.NoExpiration)
	return nil
}

// Remove deletes key.
func (m *Memory) Remove(_ context.Context, key string) error {
	m.cache.Delete(key)
	return nil
}

// Close flushes all entries.
func (m *Memory) Close() error {
	m.cache.Flush()
	return nil
}

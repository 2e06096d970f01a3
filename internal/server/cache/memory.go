package cache

import (
	"context"
	"path"
	"sync"
	"time"

	"github.com/tuanis-rp/roleplay-api/internal/common"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time // zero => no expiry
}

// Memory is an in-process Cache used by tests and local development. TTL
// handling is lazy: expired entries are dropped on access. Pattern matching
// in Keys supports the same globs the key families use (prefix + '*').
type Memory struct {
	mu sync.RWMutex
	m  map[string]memoryEntry
}

var _ Cache = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{m: make(map[string]memoryEntry)}
}

func (c *Memory) Get(_ context.Context, key string) (string, error) {
	c.mu.RLock()
	e, ok := c.m[key]
	c.mu.RUnlock()

	if !ok {
		return "", common.ErrorNotFound
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		// recheck under the write lock: a Set may have replaced the entry
		// between releasing the read lock and acquiring the write lock
		c.mu.Lock()
		if cur, ok := c.m[key]; ok && !cur.expiresAt.IsZero() && time.Now().After(cur.expiresAt) {
			delete(c.m, key)
		}
		c.mu.Unlock()
		return "", common.ErrorNotFound
	}
	return e.value, nil
}

func (c *Memory) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	e := memoryEntry{value: value}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}
	c.mu.Lock()
	c.m[key] = e
	c.mu.Unlock()
	return nil
}

func (c *Memory) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	for _, k := range keys {
		delete(c.m, k)
	}
	c.mu.Unlock()
	return nil
}

func (c *Memory) Keys(_ context.Context, pattern string) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	now := time.Now()
	keys := []string{}
	for k, e := range c.m {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			continue
		}
		if ok, _ := path.Match(pattern, k); ok {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

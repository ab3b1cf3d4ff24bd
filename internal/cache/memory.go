package cache

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"
)

type memEntry struct {
	data      []byte
	expiresAt time.Time
}

// Memory is an in-process Store for development and single-instance
// deployments. Expiry is lazy: entries are evicted when a Get or Exists
// observes them past their deadline; there is no background sweep.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memEntry
	now     func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]memEntry),
		now:     time.Now,
	}
}

func (c *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		observe(false)
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		delete(c.entries, key)
		observe(false)
		return nil, false
	}
	observe(true)
	return e.data, true
}

func (c *Memory) Set(_ context.Context, key string, value any, ttl time.Duration) bool {
	b, err := json.Marshal(value)
	if err != nil {
		log.Printf("cache: marshal %s error: %v", key, err)
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memEntry{data: b, expiresAt: c.now().Add(ttl)}
	return true
}

func (c *Memory) SetNX(ctx context.Context, key string, value any, ttl time.Duration) bool {
	c.mu.Lock()
	e, ok := c.entries[key]
	live := ok && !c.now().After(e.expiresAt)
	c.mu.Unlock()

	if live {
		return false
	}
	return c.Set(ctx, key, value, ttl)
}

func (c *Memory) Delete(_ context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

func (c *Memory) Exists(_ context.Context, key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return false
	}
	if c.now().After(e.expiresAt) {
		delete(c.entries, key)
		return false
	}
	return true
}

func (c *Memory) TTL(_ context.Context, key string) (time.Duration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return 0, false
	}
	remaining := e.expiresAt.Sub(c.now())
	if remaining <= 0 {
		delete(c.entries, key)
		return 0, false
	}
	return remaining, true
}

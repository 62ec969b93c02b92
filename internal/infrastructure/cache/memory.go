package cache

import (
	"context"
	"sync"
	"time"

	"ArticleRater/internal/ports"
)

const sweepInterval = time.Minute

type entry struct {
	value     []byte
	expiresAt time.Time
}

// Memory is an in-process TTL key-value cache. Entries are immutable
// once written; expired entries are invisible to readers and swept by a
// background ticker.
type Memory struct {
	mu         sync.RWMutex
	entries    map[string]entry
	defaultTTL time.Duration
	stop       chan struct{}
	once       sync.Once
}

var _ ports.ResultCache = (*Memory)(nil)

// NewMemory starts the cache with its sweeper goroutine. A non-positive
// ttl falls back to 300 seconds.
func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = 300 * time.Second
	}

	m := &Memory{
		entries:    map[string]entry{},
		defaultTTL: ttl,
		stop:       make(chan struct{}),
	}
	go m.sweep()
	return m
}

// Get returns the value for key if present and unexpired.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[key]
	if !ok || time.Now().After(e.expiresAt) {
		return nil, false, nil
	}

	value := make([]byte, len(e.value))
	copy(value, e.value)
	return value, true, nil
}

// Set stores a copy of value under key; a non-positive ttl uses the
// cache default.
func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = m.defaultTTL
	}

	stored := make([]byte, len(value))
	copy(stored, value)

	m.mu.Lock()
	m.entries[key] = entry{value: stored, expiresAt: time.Now().Add(ttl)}
	m.mu.Unlock()
	return nil
}

// Close halts the sweeper goroutine.
func (m *Memory) Close() {
	m.once.Do(func() { close(m.stop) })
}

func (m *Memory) sweep() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			m.mu.Lock()
			for key, e := range m.entries {
				if now.After(e.expiresAt) {
					delete(m.entries, key)
				}
			}
			m.mu.Unlock()
		case <-m.stop:
			return
		}
	}
}

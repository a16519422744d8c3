package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value  []byte
	expiry time.Time
}

// Memory is a concurrency-safe in-memory Cache. It is the default backend
// for tests and local development; entries do not survive a restart.
type Memory struct {
	mu   sync.Mutex
	data map[string]memoryEntry

	// now is swappable so tests can control expiry.
	now func() time.Time
}

// NewMemory creates an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{
		data: make(map[string]memoryEntry),
		now:  time.Now,
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.data[key]
	if !ok {
		return nil, false
	}
	if !m.now().Before(entry.expiry) {
		// Lazy expiry: purge on read rather than via a background sweep.
		delete(m.data, key)
		return nil, false
	}

	// Copy so callers cannot mutate the stored value.
	out := make([]byte, len(entry.value))
	copy(out, entry.value)
	return out, true
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	stored := make([]byte, len(value))
	copy(stored, value)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = memoryEntry{
		value:  stored,
		expiry: m.now().Add(ttl),
	}
}

func (m *Memory) Clear(_ context.Context, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
}

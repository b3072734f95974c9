package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value    string
	deadline time.Time
}

// Memory is an in process Manager. Safe for concurrent use.
//
// Expired entries are dropped lazily, on access. Suitable for tests and
// single process deployments only: sessions do not survive a restart.
type Memory struct {
	mu       sync.Mutex
	sessions map[string]map[string]memoryEntry
}

var _ Manager = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{sessions: map[string]map[string]memoryEntry{}}
}

func (m *Memory) Get(ctx context.Context, id, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.sessions[id][key]
	if !ok {
		return "", nil
	}
	if !entry.deadline.IsZero() && time.Now().After(entry.deadline) {
		delete(m.sessions[id], key)
		return "", nil
	}
	return entry.value, nil
}

func (m *Memory) Set(ctx context.Context, id, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	values, ok := m.sessions[id]
	if !ok {
		values = map[string]memoryEntry{}
		m.sessions[id] = values
	}

	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.deadline = time.Now().Add(ttl)
	}
	values[key] = entry
	return nil
}

func (m *Memory) Delete(ctx context.Context, id, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions[id], key)
	if len(m.sessions[id]) == 0 {
		delete(m.sessions, id)
	}
	return nil
}

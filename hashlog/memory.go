package hashlog

import (
	"context"
	"maps"
	"sync"
)

// Memory keeps the log in-process. Entries are lost on exit, which turns every
// existing entry file into a miss on the next run.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]string
}

var _ Log = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{entries: make(map[string]string)}
}

func (m *Memory) Lookup(_ context.Context, filename string) (string, bool, error) {
	m.mu.RLock()
	h, ok := m.entries[filename]
	m.mu.RUnlock()
	return h, ok, nil
}

func (m *Memory) Update(_ context.Context, filename, hash string) error {
	m.mu.Lock()
	m.entries[filename] = hash
	m.mu.Unlock()
	return nil
}

// Entries returns a copy of the log.
func (m *Memory) Entries(context.Context) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.entries), nil
}

func (m *Memory) Close(context.Context) error { return nil }

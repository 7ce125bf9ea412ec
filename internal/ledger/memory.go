package ledger

import (
	"context"
	"sync"
)

// Memory is a mutex-guarded in-process ledger used for tests and local
// development.
type Memory struct {
	mu      sync.RWMutex
	records map[string][]byte
}

// NewMemory creates an empty in-memory ledger.
func NewMemory() *Memory {
	return &Memory{records: make(map[string][]byte)}
}

// Get returns a copy of the stored value or ErrKeyAbsent.
func (m *Memory) Get(_ context.Context, key Key) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.records[key.String()]
	if !ok {
		return nil, ErrKeyAbsent
	}
	return clone(value), nil
}

// Put stores a single value.
func (m *Memory) Put(_ context.Context, key Key, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[key.String()] = clone(value)
	return nil
}

// Apply commits all writes under one lock acquisition.
func (m *Memory) Apply(_ context.Context, writes []Write) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, w := range writes {
		m.records[w.Key.String()] = clone(w.Value)
	}
	return nil
}

func clone(value []byte) []byte {
	out := make([]byte, len(value))
	copy(out, value)
	return out
}

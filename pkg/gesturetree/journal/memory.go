package journal

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory journal for testing and examples.
// Entries are lost when the process exits.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []*Entry
	closed  bool
}

// NewMemoryStore creates a new in-memory journal.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Append implements Store.
func (m *MemoryStore) Append(_ context.Context, entry *Entry) error {
	if entry == nil {
		return ErrNilEntry
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	// Copy so later caller mutation doesn't reach the journal.
	stored := *entry
	stored.Path = append([]string(nil), entry.Path...)
	m.entries = append(m.entries, &stored)
	return nil
}

// List implements Store.
func (m *MemoryStore) List(_ context.Context, eventType string, limit int) ([]*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	var result []*Entry
	for i := len(m.entries) - 1; i >= 0; i-- {
		if eventType != "" && m.entries[i].EventType != eventType {
			continue
		}
		copied := *m.entries[i]
		copied.Path = append([]string(nil), m.entries[i].Path...)
		result = append(result, &copied)
		if limit > 0 && len(result) >= limit {
			break
		}
	}
	return result, nil
}

// Count implements Store.
func (m *MemoryStore) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return 0, ErrStoreClosed
	}
	return len(m.entries), nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.entries = nil
	return nil
}

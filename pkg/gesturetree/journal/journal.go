// Package journal provides persistent records of completed dispatch
// walks, for debugging propagation behavior and auditing what handlers
// ran for a given input.
package journal

import (
	"context"
	"errors"
	"time"
)

// Entry describes one completed ancestor walk.
type Entry struct {
	// EventID is the dispatched event's unique ID.
	EventID string `json:"event_id"`

	// EventType is the gesture event type.
	EventType string `json:"event_type"`

	// SourceID identifies the physical input occurrence, when known.
	SourceID string `json:"source_id,omitempty"`

	// TargetID is the node the walk started from.
	TargetID string `json:"target_id"`

	// Path lists, in walk order, the nodes whose handlers ran.
	// Elements crossed without handlers don't appear.
	Path []string `json:"path,omitempty"`

	// Handled is the number of handler invocations.
	Handled int `json:"handled"`

	// Stopped reports whether a handler stopped propagation.
	Stopped bool `json:"stopped"`

	// Error holds the message of the handler error that aborted the
	// walk, if any.
	Error string `json:"error,omitempty"`

	// Timestamp is when the walk started.
	Timestamp time.Time `json:"timestamp"`
}

// Store persists dispatch entries.
// Implementations must be safe for concurrent use.
type Store interface {
	// Append records one completed walk.
	Append(ctx context.Context, entry *Entry) error

	// List returns entries newest-first, optionally filtered by event
	// type (empty string matches all). A limit <= 0 means no limit.
	List(ctx context.Context, eventType string, limit int) ([]*Entry, error)

	// Count returns the number of recorded entries.
	Count(ctx context.Context) (int, error)

	// Close releases any resources (connections, files).
	Close() error
}

// Sentinel errors for journal operations.
var (
	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("journal store closed")

	// ErrNilEntry indicates Append was called with a nil entry.
	ErrNilEntry = errors.New("journal entry cannot be nil")
)

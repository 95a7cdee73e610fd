package gesturetree

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// SourceEvent identifies one physical input occurrence (a touch, a
// pointer press) shared by every engine that might observe the same
// gesture. It carries the handled marker the dispatcher uses to make
// sure the ancestor walk runs at most once per occurrence.
//
// The engine contract requires a fresh SourceEvent per physical
// occurrence; the marker is never cleared.
type SourceEvent struct {
	id        string
	kind      string
	timestamp time.Time
	handled   atomic.Bool
}

// NewSourceEvent creates a source event for one physical input
// occurrence. Kind names the raw input (e.g. "touchstart").
func NewSourceEvent(kind string) *SourceEvent {
	return &SourceEvent{
		id:        uuid.New().String(),
		kind:      kind,
		timestamp: time.Now(),
	}
}

// ID returns the unique identifier of the occurrence.
func (s *SourceEvent) ID() string {
	return s.id
}

// Kind returns the raw input kind.
func (s *SourceEvent) Kind() string {
	return s.kind
}

// Timestamp returns when the input occurred.
func (s *SourceEvent) Timestamp() time.Time {
	return s.timestamp
}

// Handled reports whether a dispatcher has already processed this
// occurrence.
func (s *SourceEvent) Handled() bool {
	return s.handled.Load()
}

// markHandled claims the occurrence. Returns true exactly once, for the
// first dispatcher to get here.
func (s *SourceEvent) markHandled() bool {
	return s.handled.CompareAndSwap(false, true)
}

// Event is one recognized gesture firing. The engine produces it; the
// dispatcher walks it up the tree from Target.
//
// An Event is confined to the goroutine delivering the underlying
// input: dispatch is synchronous and handlers must not retain the event
// past their own invocation.
type Event struct {
	// Type is the gesture event type (e.g. "tap", "press").
	Type string

	// Target is the node the gesture originated on.
	Target Node

	// Source is the underlying physical input occurrence. All events
	// synthesized from the same input share one SourceEvent.
	Source *SourceEvent

	// Data is an optional engine-specific payload.
	Data any

	id        string
	timestamp time.Time

	// stop is wired by the dispatcher for the duration of one walk.
	stop func()
}

// EventOption configures event creation.
type EventOption func(*Event)

// WithEventID sets a specific event ID (default: auto-generated UUID).
func WithEventID(id string) EventOption {
	return func(e *Event) {
		e.id = id
	}
}

// WithTimestamp sets a specific timestamp (default: time.Now()).
func WithTimestamp(t time.Time) EventOption {
	return func(e *Event) {
		e.timestamp = t
	}
}

// WithData sets the engine-specific payload.
func WithData(data any) EventOption {
	return func(e *Event) {
		e.Data = data
	}
}

// NewEvent creates a gesture event of the given type originating at
// target, caused by the given physical source.
func NewEvent(eventType string, target Node, source *SourceEvent, opts ...EventOption) *Event {
	e := &Event{
		Type:      eventType,
		Target:    target,
		Source:    source,
		id:        uuid.New().String(),
		timestamp: time.Now(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ID returns the unique event identifier.
func (e *Event) ID() string {
	return e.id
}

// Timestamp returns when the event was synthesized.
func (e *Event) Timestamp() time.Time {
	return e.timestamp
}

// StopPropagation stops the in-progress ancestor walk. No handler at a
// farther ancestor runs, and no later handler at the current node runs.
//
// Outside an active dispatch this is a no-op: the flag it sets belongs
// to a single firing and is detached once the walk finishes.
func (e *Event) StopPropagation() {
	if e.stop != nil {
		e.stop()
	}
}

// setStop wires (or detaches, with nil) the per-firing stop closure.
func (e *Event) setStop(fn func()) {
	e.stop = fn
}

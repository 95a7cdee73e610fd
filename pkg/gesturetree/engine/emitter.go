// Package engine provides a reference implementation of the
// gesturetree.Engine boundary: an in-memory emitter bound to one node.
//
// Emitter does no gesture recognition. It exists so tests, examples,
// and engines without their own listener plumbing have a conforming
// delivery substrate; Emit stands in for the engine's firing routine.
package engine

import (
	"reflect"
	"sync"

	"github.com/randalmurphal/gesturetree/pkg/gesturetree"
)

// Emitter is an in-memory gesturetree.Engine bound to one node.
// It is safe for concurrent use.
type Emitter struct {
	element gesturetree.Node

	mu        sync.Mutex
	listeners map[string][]gesturetree.ListenerFunc
	destroyed bool
}

// Compile-time interface check.
var _ gesturetree.Engine = (*Emitter)(nil)

// NewEmitter creates an emitter permanently bound to element.
func NewEmitter(element gesturetree.Node) *Emitter {
	return &Emitter{
		element:   element,
		listeners: make(map[string][]gesturetree.ListenerFunc),
	}
}

// Element implements gesturetree.Engine.
func (e *Emitter) Element() gesturetree.Node {
	return e.element
}

// On implements gesturetree.Engine. Listeners for a type fire in
// registration order.
func (e *Emitter) On(eventType string, fn gesturetree.ListenerFunc) {
	if fn == nil {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.destroyed {
		return
	}
	e.listeners[eventType] = append(e.listeners[eventType], fn)
}

// Off implements gesturetree.Engine. The listener is matched by
// function identity; unknown listeners are a no-op.
func (e *Emitter) Off(eventType string, fn gesturetree.ListenerFunc) {
	if fn == nil {
		return
	}
	target := reflect.ValueOf(fn).Pointer()

	e.mu.Lock()
	defer e.mu.Unlock()

	list := e.listeners[eventType]
	filtered := list[:0]
	for _, existing := range list {
		if reflect.ValueOf(existing).Pointer() != target {
			filtered = append(filtered, existing)
		}
	}
	if len(filtered) == 0 {
		delete(e.listeners, eventType)
	} else {
		e.listeners[eventType] = filtered
	}
}

// Destroy implements gesturetree.Engine. All listeners are dropped and
// later Emit calls deliver nothing.
func (e *Emitter) Destroy() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.destroyed = true
	e.listeners = make(map[string][]gesturetree.ListenerFunc)
}

// Destroyed reports whether Destroy has been called.
func (e *Emitter) Destroyed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.destroyed
}

// ListenerCount returns the number of installed listeners for a type.
func (e *Emitter) ListenerCount(eventType string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.listeners[eventType])
}

// Emit synthesizes an event of the given type originating at target and
// fires the emitter's listeners for that type. A nil target defaults to
// the bound element. The first listener error aborts delivery and is
// returned, mirroring how a handler error surfaces from a real engine's
// firing routine.
func (e *Emitter) Emit(eventType string, target gesturetree.Node, source *gesturetree.SourceEvent, opts ...gesturetree.EventOption) error {
	if target == nil {
		target = e.element
	}
	return e.EmitEvent(gesturetree.NewEvent(eventType, target, source, opts...))
}

// EmitEvent fires the emitter's listeners for an already-built event.
func (e *Emitter) EmitEvent(evt *gesturetree.Event) error {
	if evt == nil {
		return nil
	}

	e.mu.Lock()
	list := e.listeners[evt.Type]
	snapshot := make([]gesturetree.ListenerFunc, len(list))
	copy(snapshot, list)
	e.mu.Unlock()

	for _, fn := range snapshot {
		if err := fn(evt); err != nil {
			return err
		}
	}
	return nil
}

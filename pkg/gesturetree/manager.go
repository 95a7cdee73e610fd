package gesturetree

import (
	"reflect"
	"strings"
	"sync"
	"sync/atomic"
)

// ListenerFunc is the raw listener an Engine invokes when it recognizes
// an event. The error return travels back to the caller of the engine's
// firing routine.
type ListenerFunc func(evt *Event) error

// Engine is the boundary with the underlying gesture engine: an opaque
// recognizer bound to exactly one node. gesturetree installs at most
// one listener per event type on it and never fans out through it.
type Engine interface {
	// On registers a raw listener for an event type.
	On(eventType string, fn ListenerFunc)

	// Off removes a previously installed listener.
	Off(eventType string, fn ListenerFunc)

	// Destroy releases engine resources.
	Destroy()

	// Element returns the node the engine is permanently bound to.
	// Read once at Wrap time.
	Element() Node
}

// Handler is a user callback registered for one or more event types on
// one element. Returning an error aborts the in-progress walk and
// propagates the error to the engine's emit caller.
type Handler func(evt *Event) error

// Manager wraps an Engine with propagation-aware registration. It owns
// the per-type handler lists and installs a single dispatcher listener
// per type on the engine; fan-out to handlers happens entirely inside
// the manager during the ancestor walk.
//
// Manager is safe for concurrent registration, though dispatch itself
// is synchronous within the goroutine delivering the input.
type Manager struct {
	engine  Engine
	element Node
	cfg     managerConfig

	mu        sync.Mutex
	handlers  map[string][]Handler
	listeners map[string]ListenerFunc

	destroyed atomic.Bool
}

// Wrap converts a bare engine into a propagation-capable manager. The
// engine's element is read once and entered into the binding table so
// dispatchers walking past it can find this manager.
//
// Wrapping an engine whose element is already bound (including wrapping
// the same engine twice) returns ErrAlreadyBound.
func Wrap(engine Engine, opts ...Option) (*Manager, error) {
	if engine == nil {
		return nil, ErrNilEngine
	}
	element := engine.Element()
	if element == nil {
		return nil, ErrNilElement
	}

	cfg := defaultManagerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	m := &Manager{
		engine:    engine,
		element:   element,
		cfg:       cfg,
		handlers:  make(map[string][]Handler),
		listeners: make(map[string]ListenerFunc),
	}

	if err := cfg.bindings.Bind(element, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Engine returns the wrapped engine, for operations beyond On, Off, and
// Destroy. Registration and teardown must go through the manager.
func (m *Manager) Engine() Engine {
	return m.engine
}

// Element returns the node the manager is bound to.
func (m *Manager) Element() Node {
	return m.element
}

// On registers a handler for one or more whitespace-separated event
// types. An empty or whitespace-only string registers nothing. The same
// handler may be registered twice and will then run twice per firing.
// Returns the manager for chaining.
func (m *Manager) On(events string, handler Handler) *Manager {
	if handler == nil {
		return m
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.destroyed.Load() {
		return m
	}

	for _, eventType := range strings.Fields(events) {
		if m.cfg.eventTypes != nil {
			if _, ok := m.cfg.eventTypes[eventType]; !ok {
				continue
			}
		}

		if _, exists := m.handlers[eventType]; !exists {
			// First handler for this type: install the single
			// dispatcher listener on the engine.
			listener := m.newListener()
			m.listeners[eventType] = listener
			m.engine.On(eventType, listener)
		}
		m.handlers[eventType] = append(m.handlers[eventType], handler)
	}
	return m
}

// Off removes handlers for one or more whitespace-separated event
// types. With handlers given, every occurrence of each handler(s) is
// removed, compared by function identity; with none, the type's whole
// list is cleared. When a type's list becomes empty its engine-level
// listener is uninstalled, so a later On starts from a clean state.
// Unknown types are a no-op. Returns the manager for chaining.
//
// Function identity note: distinct closures compiled from the same
// function literal compare equal. Keep a reference to the registered
// Handler value if you need selective removal.
func (m *Manager) Off(events string, handlers ...Handler) *Manager {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, eventType := range strings.Fields(events) {
		list, exists := m.handlers[eventType]
		if !exists {
			continue
		}

		if len(handlers) == 0 {
			list = nil
		} else {
			for _, h := range handlers {
				list = removeHandler(list, h)
			}
		}

		if len(list) == 0 {
			if listener, ok := m.listeners[eventType]; ok {
				m.engine.Off(eventType, listener)
				delete(m.listeners, eventType)
			}
			delete(m.handlers, eventType)
		} else {
			m.handlers[eventType] = list
		}
	}
	return m
}

// Destroy tears the manager down: releases the element's binding so
// later walks no longer find it, clears the handler registry,
// uninstalls every engine-level listener, then destroys the engine.
// Destroy is idempotent; only the first call reaches the engine.
func (m *Manager) Destroy() {
	if !m.destroyed.CompareAndSwap(false, true) {
		return
	}

	m.cfg.bindings.Unbind(m.element)

	m.mu.Lock()
	for eventType, listener := range m.listeners {
		m.engine.Off(eventType, listener)
	}
	m.listeners = make(map[string]ListenerFunc)
	m.handlers = make(map[string][]Handler)
	m.mu.Unlock()

	m.engine.Destroy()
}

// newListener creates the dispatcher listener installed on the engine
// for one event type. Each type gets its own closure so Off can hand
// the engine back the exact reference it was given.
func (m *Manager) newListener() ListenerFunc {
	return func(evt *Event) error {
		return m.dispatch(evt)
	}
}

// handlersFor snapshots the handler list for a type. The walk iterates
// the snapshot, so a handler calling On or Off mid-walk affects later
// firings, not the one in progress at this node.
func (m *Manager) handlersFor(eventType string) []Handler {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := m.handlers[eventType]
	if len(list) == 0 {
		return nil
	}
	snapshot := make([]Handler, len(list))
	copy(snapshot, list)
	return snapshot
}

// removeHandler filters every occurrence of h out of list, comparing by
// function identity.
func removeHandler(list []Handler, h Handler) []Handler {
	target := reflect.ValueOf(h).Pointer()
	filtered := list[:0]
	for _, existing := range list {
		if reflect.ValueOf(existing).Pointer() != target {
			filtered = append(filtered, existing)
		}
	}
	return filtered
}

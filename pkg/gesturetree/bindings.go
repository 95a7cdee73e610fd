package gesturetree

import (
	"fmt"
	"sync"
)

// Bindings maps nodes to the manager wrapped around the engine bound to
// them. It is the side table the dispatcher consults at every step of
// the ancestor walk, standing in for attaching a property to the node
// itself.
//
// Bindings is safe for concurrent use.
type Bindings struct {
	mu       sync.RWMutex
	managers map[Node]*Manager
}

// NewBindings creates an empty binding table.
func NewBindings() *Bindings {
	return &Bindings{
		managers: make(map[Node]*Manager),
	}
}

// DefaultBindings is the table managers share unless WithBindings is
// given. Managers must share a table to discover each other during
// propagation.
var DefaultBindings = NewBindings()

// Bind associates a node with its manager. Returns ErrAlreadyBound if
// the node already has a manager; stale entries must be released via
// Unbind (Manager.Destroy does this) before the node can be rebound.
func (b *Bindings) Bind(n Node, m *Manager) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.managers[n]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyBound, nodeID(n))
	}
	b.managers[n] = m
	return nil
}

// Lookup returns the manager bound to a node, or nil.
func (b *Bindings) Lookup(n Node) *Manager {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.managers[n]
}

// Unbind removes a node's entry. Removing an unbound node is a no-op.
func (b *Bindings) Unbind(n Node) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.managers, n)
}

// Len returns the number of bound nodes.
func (b *Bindings) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.managers)
}

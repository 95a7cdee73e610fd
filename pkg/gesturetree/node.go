package gesturetree

import "fmt"

// Node is one element in the tree events propagate through.
//
// Implementations must be comparable (managers are looked up through a
// map keyed by Node) and Parent must return an untyped nil at the root,
// not an interface holding a nil pointer.
type Node interface {
	// Parent returns the node's parent, or nil at the root.
	Parent() Node
}

// Element is a ready-made Node for building trees.
//
// Element is NOT thread-safe during building. Construct the tree from a
// single goroutine before wiring managers to it.
type Element struct {
	id       string
	parent   *Element
	children []*Element
}

// NewElement creates an element with the given ID under parent.
// A nil parent creates a root. The new element is appended to the
// parent's children.
func NewElement(id string, parent *Element) *Element {
	e := &Element{id: id, parent: parent}
	if parent != nil {
		parent.children = append(parent.children, e)
	}
	return e
}

// ID returns the element's identifier.
func (e *Element) ID() string {
	return e.id
}

// Parent implements Node. Returns nil at the root.
func (e *Element) Parent() Node {
	if e.parent == nil {
		return nil
	}
	return e.parent
}

// Children returns the element's children in insertion order.
func (e *Element) Children() []*Element {
	return e.children
}

// String returns the element ID for logging.
func (e *Element) String() string {
	return e.id
}

// nodeID extracts an identifier from a node for logging, tracing, and
// the dispatch journal. Nodes without an ID or String method fall back
// to their type name.
func nodeID(n Node) string {
	if n == nil {
		return ""
	}
	if ider, ok := n.(interface{ ID() string }); ok {
		return ider.ID()
	}
	if s, ok := n.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", n)
}

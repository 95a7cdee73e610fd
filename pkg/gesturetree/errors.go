package gesturetree

import "errors"

// Sentinel errors for wrapping and binding.
var (
	// ErrNilEngine indicates Wrap() was called with a nil engine.
	ErrNilEngine = errors.New("engine cannot be nil")

	// ErrNilElement indicates the engine reports no bound element.
	ErrNilElement = errors.New("engine has no bound element")

	// ErrAlreadyBound indicates the element already has a manager in the
	// binding table. Wrapping the same engine twice, or two engines bound
	// to one element, both surface as this error.
	ErrAlreadyBound = errors.New("element already bound to a manager")
)

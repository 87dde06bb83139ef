package cells

import "errors"

var (
	// ErrReadOnly reports a write to a cell that has no setter, such as
	// a computed cell addressed through the property registry.
	ErrReadOnly = errors.New("cells: cell is read only")

	// ErrNoSetter reports a Set on a Reactive cell declared without one.
	ErrNoSetter = errors.New("cells: no setter configured")

	// ErrNoDeleter reports a Delete on a cell declared without one.
	ErrNoDeleter = errors.New("cells: no deleter configured")

	// ErrComputeCycle reports a compute function that reads its own cell,
	// directly or through other computed cells.
	ErrComputeCycle = errors.New("cells: compute cycle")

	// ErrTokenBusy reports a concurrent second Wait on a wait token.
	ErrTokenBusy = errors.New("cells: wait token already being awaited")

	// ErrTokenClosed reports a Wait on a closed wait token.
	ErrTokenClosed = errors.New("cells: wait token closed")

	// ErrUnknownProp reports a name that no cell on the instance's type
	// was declared with.
	ErrUnknownProp = errors.New("cells: unknown property")

	// ErrWrongType reports a dynamic read or write whose instance or
	// value type does not match the cell's declaration.
	ErrWrongType = errors.New("cells: wrong type")
)

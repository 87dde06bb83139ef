package cells

import (
	"fmt"
	"reflect"
)

// Reactive declares a cell backed by user accessors instead of storage.
// Every read re-runs the getter; there is no caching and no dirty
// flag. Reads the getter performs are not isolated, so they flow into
// whatever Track scope surrounds the caller.
type Reactive[M Instance, T any] struct {
	id   uint64
	name string
	get  func(M) (T, error)
	set  func(M, T) error
	del  func(M) error
}

// NewReactive declares an accessor-backed cell. Attach a setter or
// deleter by chaining; without one, Set and Delete report ErrNoSetter
// and ErrNoDeleter.
func NewReactive[M Instance, T any](name string, getter func(M) (T, error)) *Reactive[M, T] {
	if getter == nil {
		panic("cells: reactive cell needs a getter")
	}
	r := &Reactive[M, T]{
		id:   nextDefID(),
		name: name,
		get:  getter,
	}
	registerProp(reflect.TypeOf((*M)(nil)).Elem(), r)
	return r
}

// Setter attaches the write accessor. Chain at declaration time.
func (r *Reactive[M, T]) Setter(fn func(M, T) error) *Reactive[M, T] {
	r.set = fn
	return r
}

// Deleter attaches the delete accessor. Chain at declaration time.
func (r *Reactive[M, T]) Deleter(fn func(M) error) *Reactive[M, T] {
	r.del = fn
	return r
}

// Name reports the property name the cell was declared with.
func (r *Reactive[M, T]) Name() string { return r.name }

type reactiveState struct {
	notifier Notifier
}

func (r *Reactive[M, T]) state(m M) *reactiveState {
	return m.cellState().slot(r.id, func() any {
		return &reactiveState{}
	}).(*reactiveState)
}

// Notifier returns the cell's change notifier for m without recording a
// dependency.
func (r *Reactive[M, T]) Notifier(m M) *Notifier {
	return &r.state(m).notifier
}

// Get records the cell in any active Track scope, then runs the getter.
func (r *Reactive[M, T]) Get(m M) (T, error) {
	st := r.state(m)
	Announce(&st.notifier)
	val, err := r.get(m)
	if err != nil {
		var zero T
		return zero, err
	}
	announceValue(val)
	return val, nil
}

func (r *Reactive[M, T]) read(m M) (T, error) {
	return r.Get(m)
}

// Set runs the setter, then fires the cell's notifier. Unlike a value
// cell there is no equality skip: the setter decides what a write
// means, so every successful one notifies.
func (r *Reactive[M, T]) Set(m M, val T) error {
	if r.set == nil {
		return fmt.Errorf("%w: %s", ErrNoSetter, r.name)
	}
	if err := r.set(m, val); err != nil {
		return err
	}
	return r.state(m).notifier.Fire()
}

// Delete runs the deleter, then fires the cell's notifier.
func (r *Reactive[M, T]) Delete(m M) error {
	if r.del == nil {
		return fmt.Errorf("%w: %s", ErrNoDeleter, r.name)
	}
	if err := r.del(m); err != nil {
		return err
	}
	return r.state(m).notifier.Fire()
}

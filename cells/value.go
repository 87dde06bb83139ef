package cells

import (
	"reflect"
	"sync"
)

// Value declares a stored reactive cell on M. Declare one per property
// at package level and share it across all instances; the per-instance
// value lives in each instance's State.
type Value[M Instance, T comparable] struct {
	id        uint64
	name      string
	defaultFn func(M) T
}

// NewValue declares a stored cell. The default factory runs at most
// once per instance, lazily, the first time the stored value is needed;
// a nil factory means the zero value.
func NewValue[M Instance, T comparable](name string, defaultFn func(M) T) *Value[M, T] {
	v := &Value[M, T]{
		id:        nextDefID(),
		name:      name,
		defaultFn: defaultFn,
	}
	registerProp(reflect.TypeOf((*M)(nil)).Elem(), v)
	return v
}

// Default swaps the default factory. Instances that already
// materialized a value are unaffected. Returns the definition for
// chaining at declaration time.
func (v *Value[M, T]) Default(fn func(M) T) *Value[M, T] {
	v.defaultFn = fn
	return v
}

// Name reports the property name the cell was declared with.
func (v *Value[M, T]) Name() string { return v.name }

type valueState[T any] struct {
	mu  sync.Mutex
	has bool
	val T

	notifier Notifier
}

func (v *Value[M, T]) state(m M) *valueState[T] {
	return m.cellState().slot(v.id, func() any {
		return &valueState[T]{}
	}).(*valueState[T])
}

// Notifier returns the cell's change notifier for m without recording a
// dependency.
func (v *Value[M, T]) Notifier(m M) *Notifier {
	return &v.state(m).notifier
}

// Get returns the current value for m, materializing the default on
// first touch. The read is recorded in any active Track scope whether
// or not default-initialization happened.
func (v *Value[M, T]) Get(m M) T {
	st := v.state(m)
	Announce(&st.notifier)
	val := v.load(m, st)
	announceValue(val)
	return val
}

func (v *Value[M, T]) read(m M) (T, error) {
	return v.Get(m), nil
}

// load returns the stored value, running the default factory on first
// touch. It never records a dependency; Set compares through it.
func (v *Value[M, T]) load(m M, st *valueState[T]) T {
	st.mu.Lock()
	if st.has {
		val := st.val
		st.mu.Unlock()
		return val
	}
	st.mu.Unlock()

	// The factory may read other cells, so it runs unlocked.
	var val T
	if v.defaultFn != nil {
		val = v.defaultFn(m)
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if !st.has {
		st.val = val
		st.has = true
	}
	return st.val
}

// Set stores val for m and fires the cell's notifier. Writing a value
// equal to the current one touches nothing and notifies nobody. Handler
// errors from the fire come back joined, after the value has already
// been committed.
func (v *Value[M, T]) Set(m M, val T) error {
	st := v.state(m)
	if v.load(m, st) == val {
		return nil
	}
	st.mu.Lock()
	st.val = val
	st.has = true
	st.mu.Unlock()
	return st.notifier.Fire()
}

package cells

import (
	"fmt"
	"reflect"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/petermattis/goid"
)

// Computed declares a derived reactive cell on M. The compute function
// reads other cells; whichever it actually read last time around form
// the cell's live dependency set, and only a change to one of those
// marks it dirty. Computed cells have no setter.
type Computed[M Instance, T comparable] struct {
	id   uint64
	name string
	fn   func(M) (T, error)
}

// NewComputed declares a derived cell. fn runs lazily: never at
// declaration, only on the first read and again on the first read after
// a dependency changed.
func NewComputed[M Instance, T comparable](name string, fn func(M) (T, error)) *Computed[M, T] {
	c := &Computed[M, T]{
		id:   nextDefID(),
		name: name,
		fn:   fn,
	}
	registerProp(reflect.TypeOf((*M)(nil)).Elem(), c)
	return c
}

// Name reports the property name the cell was declared with.
func (c *Computed[M, T]) Name() string { return c.name }

type computedState[T any] struct {
	mu           sync.Mutex
	dirty        bool
	computingGID int64
	val          T
	deps         mapset.Set[*Notifier]

	notifier Notifier
	onDep    *Handler
}

func (c *Computed[M, T]) state(m M) *computedState[T] {
	return m.cellState().slot(c.id, func() any {
		st := &computedState[T]{
			dirty: true,
			deps:  mapset.NewThreadUnsafeSet[*Notifier](),
		}
		// Marking dirty and firing is all a dependency change does;
		// recomputation waits for the next Get.
		st.onDep = NewHandler(func() error {
			st.mu.Lock()
			st.dirty = true
			st.mu.Unlock()
			return st.notifier.Fire()
		})
		return st
	}).(*computedState[T])
}

// Notifier returns the cell's change notifier for m without recording a
// dependency and without recomputing.
func (c *Computed[M, T]) Notifier(m M) *Notifier {
	return &c.state(m).notifier
}

// Get returns the cell's value for m, recomputing only when a
// dependency changed since the last computation. The read itself is
// recorded in any active Track scope; the compute runs in a fresh scope
// of its own, so its reads never leak into the caller's.
//
// On compute failure the cached value is untouched, the cell stays
// dirty so the next read retries, and the error propagates. The
// dependency set still follows whatever was read before the failure.
func (c *Computed[M, T]) Get(m M) (T, error) {
	st := c.state(m)
	Announce(&st.notifier)

	gid := goid.Get()
	st.mu.Lock()
	if !st.dirty {
		val := st.val
		st.mu.Unlock()
		announceValue(val)
		return val, nil
	}
	if st.computingGID == gid {
		st.mu.Unlock()
		var zero T
		return zero, fmt.Errorf("%w: %s", ErrComputeCycle, c.name)
	}
	st.computingGID = gid
	st.mu.Unlock()

	var (
		reads    = mapset.NewThreadUnsafeSet[*Notifier]()
		val      T
		err      error
		finished bool
	)
	func() {
		// Reconciliation keys off whatever was actually read, even when
		// the compute failed or panicked partway through.
		defer func() {
			// A failed cyclic read announces the cell to itself; drop
			// the self-edge.
			reads.Remove(&st.notifier)
			st.mu.Lock()
			if st.computingGID == gid {
				st.computingGID = 0
			}
			old := st.deps
			st.deps = reads
			if finished && err == nil {
				st.val = val
				st.dirty = false
			}
			st.mu.Unlock()

			for _, dep := range reads.Difference(old).ToSlice() {
				dep.AddHandler(st.onDep)
			}
			for _, dep := range old.Difference(reads).ToSlice() {
				dep.RemoveHandler(st.onDep)
			}
		}()
		err = Track(reads, func() error {
			var innerErr error
			val, innerErr = c.fn(m)
			return innerErr
		})
		finished = true
	}()
	if err != nil {
		var zero T
		return zero, fmt.Errorf("compute %s: %w", c.name, err)
	}
	announceValue(val)
	return val, nil
}

func (c *Computed[M, T]) read(m M) (T, error) {
	return c.Get(m)
}

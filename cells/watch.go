package cells

import (
	"context"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
)

// Cell is any declared cell a watcher can follow; Value, Computed and
// Reactive definitions all satisfy it.
type Cell[M Instance, T any] interface {
	Name() string
	Notifier(m M) *Notifier
	read(m M) (T, error)
}

// Watcher adapts change notifications into an asynchronous stream of
// values. Obtain one from Watch, WatchFunc or WatchProp.
type Watcher[T any] struct {
	ch  chan T
	mu  sync.Mutex
	err error
}

// Values yields the current value first, then the value after each
// change. Delivery is latest-wins: a consumer slower than the producer
// skips intermediate values instead of accumulating a backlog. The
// channel closes when the watch ends.
func (w *Watcher[T]) Values() <-chan T { return w.ch }

// Err reports why the watch ended: nil after context cancellation, the
// read error otherwise. Meaningful once Values is closed.
func (w *Watcher[T]) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

func (w *Watcher[T]) fail(err error) {
	w.mu.Lock()
	w.err = err
	w.mu.Unlock()
}

// push delivers val, replacing an undelivered previous value.
func (w *Watcher[T]) push(ctx context.Context, val T) {
	select {
	case w.ch <- val:
		return
	default:
	}
	// Buffer full: drop the stale value for the fresh one.
	select {
	case <-w.ch:
	default:
	}
	select {
	case w.ch <- val:
	case <-ctx.Done():
	}
}

func (w *Watcher[T]) run(ctx context.Context, tok *WaitToken, read func() (T, error)) {
	defer close(w.ch)
	defer tok.Close()

	for {
		if err := tok.Wait(ctx); err != nil {
			if ctx.Err() == nil {
				w.fail(err)
			}
			return
		}
		val, err := read()
		if err != nil {
			w.fail(err)
			return
		}
		w.push(ctx, val)
		if ctx.Err() != nil {
			return
		}
	}
}

// newWatcher reads once synchronously on the caller's goroutine, then
// re-reads on its own goroutine after every fire of n. The token is
// registered before the initial read, so a change landing between the
// two is never lost.
func newWatcher[T any](ctx context.Context, n *Notifier, read func() (T, error)) *Watcher[T] {
	w := &Watcher[T]{ch: make(chan T, 1)}
	tok := n.NewWaitToken()

	val, err := read()
	if err != nil {
		tok.Close()
		w.fail(err)
		close(w.ch)
		return w
	}
	w.ch <- val

	go w.run(ctx, tok, read)
	return w
}

// Watch follows one cell on m until ctx is done. The initial read
// happens synchronously at the call site, so it lands in any Track
// scope active there; later re-reads happen on the watch goroutine,
// outside every scope. Each call is an independent subscription, and
// ending the watch deterministically releases its registration on the
// cell's notifier.
func Watch[M Instance, T any](ctx context.Context, m M, cell Cell[M, T]) *Watcher[T] {
	return newWatcher(ctx, cell.Notifier(m), func() (T, error) {
		return cell.read(m)
	})
}

// WatchFunc follows an arbitrary function of many cells until ctx is
// done. Each evaluation runs in its own Track scope; the watcher
// re-subscribes to exactly the cells that evaluation read, so a
// function whose reads are conditional is re-evaluated only when a cell
// it currently depends on changes.
func WatchFunc[T any](ctx context.Context, fn func() (T, error)) *Watcher[T] {
	var changed Notifier
	relay := NewHandler(changed.Fire)
	deps := mapset.NewThreadUnsafeSet[*Notifier]()

	// deps is handed off between the constructing goroutine and the
	// watch goroutine; the reads are strictly sequential.
	read := func() (T, error) {
		reads := mapset.NewThreadUnsafeSet[*Notifier]()
		var val T
		err := Track(reads, func() error {
			var innerErr error
			val, innerErr = fn()
			return innerErr
		})
		for _, dep := range reads.Difference(deps).ToSlice() {
			dep.AddHandler(relay)
		}
		for _, dep := range deps.Difference(reads).ToSlice() {
			dep.RemoveHandler(relay)
		}
		deps = reads
		return val, err
	}

	w := &Watcher[T]{ch: make(chan T, 1)}
	tok := changed.NewWaitToken()

	release := func() {
		for _, dep := range deps.ToSlice() {
			dep.RemoveHandler(relay)
		}
		tok.Close()
	}

	val, err := read()
	if err != nil {
		release()
		w.fail(err)
		close(w.ch)
		return w
	}
	w.ch <- val

	go func() {
		defer close(w.ch)
		defer release()

		for {
			if err := tok.Wait(ctx); err != nil {
				if ctx.Err() == nil {
					w.fail(err)
				}
				return
			}
			val, err := read()
			if err != nil {
				w.fail(err)
				return
			}
			w.push(ctx, val)
			if ctx.Err() != nil {
				return
			}
		}
	}()
	return w
}

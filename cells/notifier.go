package cells

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// Handler wraps a notification callback. Handlers are compared by
// pointer, so the same *Handler can be registered on several notifiers,
// or several times on one.
type Handler struct {
	fn func() error
}

func NewHandler(fn func() error) *Handler {
	return &Handler{fn: fn}
}

// Notifier fans change notifications out to registered handlers. Every
// cell owns one per instance. The zero value is ready to use.
type Notifier struct {
	mu     sync.Mutex
	counts map[*Handler]int
	order  []*Handler
}

// AddHandler registers h. Registering the same handler again only bumps
// its reference count; it still runs once per fire.
func (n *Notifier) AddHandler(h *Handler) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.counts == nil {
		n.counts = make(map[*Handler]int)
	}
	if n.counts[h] == 0 {
		n.order = append(n.order, h)
	}
	n.counts[h]++
}

// RemoveHandler drops one reference to h, unregistering it when the
// count reaches zero. Removing an unknown handler is a no-op.
func (n *Notifier) RemoveHandler(h *Handler) {
	n.mu.Lock()
	defer n.mu.Unlock()
	c, ok := n.counts[h]
	if !ok {
		return
	}
	if c > 1 {
		n.counts[h] = c - 1
		return
	}
	delete(n.counts, h)
	for i, reg := range n.order {
		if reg == h {
			n.order = append(n.order[:i], n.order[i+1:]...)
			break
		}
	}
}

// Subscribe registers h and returns a release func that unregisters it.
// Release is idempotent, so it is safe to both defer it and call it
// early.
func (n *Notifier) Subscribe(h *Handler) (release func()) {
	n.AddHandler(h)
	var once sync.Once
	return func() {
		once.Do(func() {
			n.RemoveHandler(h)
		})
	}
}

// HandlerCount reports how many distinct handlers are registered.
func (n *Notifier) HandlerCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.order)
}

// Fire invokes every handler registered at the moment of the call, in
// registration order. Handlers added mid-fire wait for the next fire;
// handlers removed mid-fire still run this one. A failing handler does
// not stop the sweep: every handler in the snapshot runs, and their
// errors come back joined.
func (n *Notifier) Fire() error {
	n.mu.Lock()
	snapshot := make([]*Handler, len(n.order))
	copy(snapshot, n.order)
	n.mu.Unlock()

	var errs []error
	for _, h := range snapshot {
		if err := h.fn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// WaitToken is a single-consumer signal bound to one notifier. It
// observes every fire from its creation until Close, buffering at most
// one pending signal: a fire that lands before the first Wait is not
// lost, and fires while a signal is already pending coalesce into it.
type WaitToken struct {
	n         *Notifier
	h         *Handler
	signal    chan struct{}
	done      chan struct{}
	waiting   atomic.Bool
	closed    atomic.Bool
	closeOnce sync.Once
}

// NewWaitToken registers a fresh wait token on n. Close it when done,
// or the registration lives as long as the notifier does.
func (n *Notifier) NewWaitToken() *WaitToken {
	t := &WaitToken{
		n:      n,
		signal: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	t.h = NewHandler(func() error {
		select {
		case t.signal <- struct{}{}:
		default: // a signal is already pending, coalesce
		}
		return nil
	})
	n.AddHandler(t.h)
	return t
}

// Wait blocks until the notifier fires, returning immediately when a
// fire is already pending. Consuming the signal re-arms the token for
// the next Wait. A second concurrent Wait fails with ErrTokenBusy and a
// Wait on a closed token with ErrTokenClosed; neither hangs.
func (t *WaitToken) Wait(ctx context.Context) error {
	if t.closed.Load() {
		return ErrTokenClosed
	}
	if !t.waiting.CompareAndSwap(false, true) {
		return ErrTokenBusy
	}
	defer t.waiting.Store(false)

	select {
	case <-t.signal:
		return nil
	case <-t.done:
		return ErrTokenClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Signaled exposes the pending-fire channel for use in select loops.
// Receiving from it consumes the signal exactly like Wait does.
func (t *WaitToken) Signaled() <-chan struct{} { return t.signal }

// Reset discards a pending signal, if any.
func (t *WaitToken) Reset() {
	select {
	case <-t.signal:
	default:
	}
}

// Close releases the token's registration on its notifier and unblocks
// any in-flight Wait with ErrTokenClosed. Idempotent.
func (t *WaitToken) Close() {
	t.closeOnce.Do(func() {
		t.closed.Store(true)
		close(t.done)
		t.n.RemoveHandler(t.h)
	})
}

// ChangeNotifier is implemented by values that signal their own
// in-place mutations, such as *List. Reading a cell whose value
// implements it also records the value's own notifier as a dependency,
// so mutating the value wakes watchers of the cell.
type ChangeNotifier interface {
	OnChange() *Notifier
}

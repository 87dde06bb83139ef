package cells_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/delaneyj/cellparty/cells"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// should run handlers in registration order, once per fire
func TestNotifierFireOrder(t *testing.T) {
	n := &cells.Notifier{}

	var got []string
	n.AddHandler(cells.NewHandler(func() error { got = append(got, "a"); return nil }))
	n.AddHandler(cells.NewHandler(func() error { got = append(got, "b"); return nil }))
	n.AddHandler(cells.NewHandler(func() error { got = append(got, "c"); return nil }))

	require.NoError(t, n.Fire())
	assert.Equal(t, []string{"a", "b", "c"}, got)

	got = nil
	require.NoError(t, n.Fire())
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

// should keep a double-registered handler until both references are removed
func TestNotifierRefCounting(t *testing.T) {
	n := &cells.Notifier{}

	callCount := 0
	h := cells.NewHandler(func() error { callCount++; return nil })

	n.AddHandler(h)
	n.AddHandler(h)
	assert.Equal(t, 1, n.HandlerCount())

	require.NoError(t, n.Fire())
	assert.Equal(t, 1, callCount) // registered twice, runs once

	n.RemoveHandler(h)
	assert.Equal(t, 1, n.HandlerCount())
	require.NoError(t, n.Fire())
	assert.Equal(t, 2, callCount)

	n.RemoveHandler(h)
	assert.Equal(t, 0, n.HandlerCount())
	require.NoError(t, n.Fire())
	assert.Equal(t, 2, callCount)
}

// should ignore removal of a handler that was never added
func TestNotifierRemoveUnknown(t *testing.T) {
	n := &cells.Notifier{}
	h := cells.NewHandler(func() error { return nil })

	assert.NotPanics(t, func() { n.RemoveHandler(h) })
	assert.Equal(t, 0, n.HandlerCount())
}

// should run every handler even when some fail, and join their errors
func TestNotifierFireJoinsErrors(t *testing.T) {
	n := &cells.Notifier{}

	errA := errors.New("a broke")
	errB := errors.New("b broke")
	ran := 0
	n.AddHandler(cells.NewHandler(func() error { ran++; return errA }))
	n.AddHandler(cells.NewHandler(func() error { ran++; return nil }))
	n.AddHandler(cells.NewHandler(func() error { ran++; return errB }))

	err := n.Fire()
	require.Error(t, err)
	assert.Equal(t, 3, ran)
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
}

// should not run handlers added during a fire until the next fire
func TestNotifierSnapshotAdd(t *testing.T) {
	n := &cells.Notifier{}

	lateCalls := 0
	late := cells.NewHandler(func() error { lateCalls++; return nil })
	n.AddHandler(cells.NewHandler(func() error {
		n.AddHandler(late)
		return nil
	}))

	require.NoError(t, n.Fire())
	assert.Equal(t, 0, lateCalls)

	require.NoError(t, n.Fire())
	assert.Equal(t, 1, lateCalls)
}

// should still run a handler removed mid-fire by an earlier one
func TestNotifierSnapshotRemove(t *testing.T) {
	n := &cells.Notifier{}

	victimCalls := 0
	victim := cells.NewHandler(func() error { victimCalls++; return nil })
	n.AddHandler(cells.NewHandler(func() error {
		n.RemoveHandler(victim)
		return nil
	}))
	n.AddHandler(victim)

	require.NoError(t, n.Fire())
	assert.Equal(t, 1, victimCalls)

	require.NoError(t, n.Fire())
	assert.Equal(t, 1, victimCalls)
}

// should release exactly one reference no matter how often release runs
func TestSubscribeReleaseIdempotent(t *testing.T) {
	n := &cells.Notifier{}
	h := cells.NewHandler(func() error { return nil })

	n.AddHandler(h)
	release := n.Subscribe(h)
	assert.Equal(t, 1, n.HandlerCount())

	release()
	release()
	assert.Equal(t, 1, n.HandlerCount()) // the first reference is still held

	n.RemoveHandler(h)
	assert.Equal(t, 0, n.HandlerCount())
}

// should return immediately when a fire is already pending
func TestWaitTokenPendingFire(t *testing.T) {
	n := &cells.Notifier{}
	tok := n.NewWaitToken()
	defer tok.Close()

	require.NoError(t, n.Fire())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, tok.Wait(ctx))
}

// should coalesce fires that land while one is already pending
func TestWaitTokenCoalesces(t *testing.T) {
	n := &cells.Notifier{}
	tok := n.NewWaitToken()
	defer tok.Close()

	for i := 0; i < 3; i++ {
		require.NoError(t, n.Fire())
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, tok.Wait(ctx))

	short, cancelShort := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancelShort()
	assert.ErrorIs(t, tok.Wait(short), context.DeadlineExceeded)
}

// should reject a second concurrent wait instead of hanging
func TestWaitTokenBusy(t *testing.T) {
	n := &cells.Notifier{}
	tok := n.NewWaitToken()
	defer tok.Close()

	started := make(chan struct{})
	waitDone := make(chan error, 1)
	go func() {
		close(started)
		waitDone <- tok.Wait(context.Background())
	}()
	<-started
	time.Sleep(50 * time.Millisecond)

	assert.ErrorIs(t, tok.Wait(context.Background()), cells.ErrTokenBusy)

	require.NoError(t, n.Fire())
	require.NoError(t, <-waitDone)
}

// should unblock a waiting goroutine on close and drop the registration
func TestWaitTokenClose(t *testing.T) {
	n := &cells.Notifier{}
	tok := n.NewWaitToken()
	assert.Equal(t, 1, n.HandlerCount())

	started := make(chan struct{})
	waitDone := make(chan error, 1)
	go func() {
		close(started)
		waitDone <- tok.Wait(context.Background())
	}()
	<-started
	time.Sleep(20 * time.Millisecond)

	tok.Close()
	assert.ErrorIs(t, <-waitDone, cells.ErrTokenClosed)
	assert.Equal(t, 0, n.HandlerCount())

	tok.Close() // idempotent
	assert.ErrorIs(t, tok.Wait(context.Background()), cells.ErrTokenClosed)
}

// should drop a pending signal on reset
func TestWaitTokenReset(t *testing.T) {
	n := &cells.Notifier{}
	tok := n.NewWaitToken()
	defer tok.Close()

	require.NoError(t, n.Fire())
	tok.Reset()

	short, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, tok.Wait(short), context.DeadlineExceeded)
}

// should expose pending fires for use in selects
func TestWaitTokenSignaled(t *testing.T) {
	n := &cells.Notifier{}
	tok := n.NewWaitToken()
	defer tok.Close()

	select {
	case <-tok.Signaled():
		t.Fatal("no fire happened yet")
	default:
	}

	require.NoError(t, n.Fire())

	select {
	case <-tok.Signaled():
	case <-time.After(time.Second):
		t.Fatal("fire was not signaled")
	}
}

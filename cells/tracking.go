package cells

import (
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/petermattis/goid"
)

// Per-goroutine stacks of dependency buffers. Only the owning goroutine
// ever touches its own stack, so the frames need no locking of their
// own.
var depScopes sync.Map // goroutine id -> *scopeStack

type scopeStack struct {
	frames []scopeFrame
}

type scopeFrame struct {
	buf    mapset.Set[*Notifier]
	paused bool
}

func pushFrame(f scopeFrame) (gid int64, st *scopeStack) {
	gid = goid.Get()
	if v, ok := depScopes.Load(gid); ok {
		st = v.(*scopeStack)
	} else {
		st = &scopeStack{}
		depScopes.Store(gid, st)
	}
	st.frames = append(st.frames, f)
	return gid, st
}

func popFrame(gid int64, st *scopeStack) {
	st.frames = st.frames[:len(st.frames)-1]
	if len(st.frames) == 0 {
		depScopes.Delete(gid)
	}
}

// Track runs fn with buf as the active dependency buffer for this
// goroutine. Every reactive read anywhere in fn's dynamic extent lands
// in buf, once per distinct notifier no matter how often the cell is
// read. Scopes nest: an inner Track fully shadows the outer one until
// it exits, and the two buffers never intermix. The buffer is restored
// on every exit path, panics included.
func Track(buf mapset.Set[*Notifier], fn func() error) error {
	gid, st := pushFrame(scopeFrame{buf: buf})
	defer popFrame(gid, st)
	return fn()
}

// Untracked runs fn with dependency tracking suspended, shadowing any
// active scope on this goroutine.
func Untracked(fn func() error) error {
	gid, st := pushFrame(scopeFrame{paused: true})
	defer popFrame(gid, st)
	return fn()
}

// Announce records n in the innermost active Track buffer on this
// goroutine. Outside any scope, or under Untracked, it records nothing.
// Cell reads call it themselves; custom containers can too.
func Announce(n *Notifier) {
	v, ok := depScopes.Load(goid.Get())
	if !ok {
		return
	}
	st := v.(*scopeStack)
	if len(st.frames) == 0 {
		return
	}
	top := st.frames[len(st.frames)-1]
	if top.paused {
		return
	}
	top.buf.Add(n)
}

// announceValue records the change notifier of a value that signals its
// own mutations.
func announceValue(v any) {
	if cn, ok := v.(ChangeNotifier); ok {
		Announce(cn.OnChange())
	}
}

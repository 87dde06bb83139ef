// Package cells turns struct fields into a reactive dependency graph.
//
// A cell is declared once, at package level, and shared by every
// instance of its owner type; the per-instance value, notifier and
// dirty-tracking live inside the instance itself, in an embedded State.
// Value cells store data, computed cells derive data from whatever
// other cells their compute function actually reads, and any cell can
// be watched as an asynchronous stream of values.
//
//	type Circle struct {
//		cells.State
//	}
//
//	var (
//		radius = cells.NewValue("radius", func(c *Circle) float64 { return 1 })
//		area   = cells.NewComputed("area", func(c *Circle) (float64, error) {
//			r := radius.Get(c)
//			return math.Pi * r * r, nil
//		})
//	)
//
// Reading area records radius as a dependency; setting radius marks
// area dirty and fires its notifier, and the next read recomputes.
// Mutation is single-writer: all sets are expected to happen on one
// goroutine, with watchers as the only concurrent readers.
package cells

import (
	"sync"
	"sync/atomic"
)

// State carries the per-instance storage for every cell declared on its
// owner type. Embed it by value; the zero value is ready to use. When
// the instance becomes unreachable, all of its reactive state goes with
// it.
type State struct {
	mu    sync.Mutex
	slots map[uint64]any
}

func (s *State) cellState() *State { return s }

// slot returns the per-instance state for one cell definition, building
// it on first touch.
func (s *State) slot(id uint64, build func() any) any {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.slots == nil {
		s.slots = make(map[uint64]any)
	}
	v, ok := s.slots[id]
	if !ok {
		v = build()
		s.slots[id] = v
	}
	return v
}

// Instance is satisfied by any struct pointer whose struct embeds
// State. Cell definitions are parameterized on it.
type Instance interface {
	cellState() *State
}

var lastDefID uint64

func nextDefID() uint64 {
	return atomic.AddUint64(&lastDefID, 1)
}

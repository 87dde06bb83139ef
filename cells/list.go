package cells

import (
	"fmt"
	"sync"
)

// List is a reactive slice. Every mutating call fires OnChange, so a
// cell whose value is a *List re-signals when the list changes in
// place, not only when the cell itself is re-assigned. Reads do not
// record dependencies on their own; the cell holding the list does that
// when it is read.
type List[T any] struct {
	mu       sync.Mutex
	items    []T
	onChange Notifier
}

var _ ChangeNotifier = (*List[int])(nil)

func NewList[T any](items ...T) *List[T] {
	l := &List[T]{}
	l.items = append(l.items, items...)
	return l
}

// OnChange is the notifier fired after every mutation.
func (l *List[T]) OnChange() *Notifier { return &l.onChange }

func (l *List[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// At returns the element at i, panicking when i is out of range like a
// plain slice index.
func (l *List[T]) At(i int) T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.items[i]
}

// ToSlice copies out the current elements.
func (l *List[T]) ToSlice() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

func (l *List[T]) Append(items ...T) error {
	l.mu.Lock()
	l.items = append(l.items, items...)
	l.mu.Unlock()
	return l.onChange.Fire()
}

func (l *List[T]) Insert(i int, item T) error {
	l.mu.Lock()
	var zero T
	l.items = append(l.items, zero)
	copy(l.items[i+1:], l.items[i:])
	l.items[i] = item
	l.mu.Unlock()
	return l.onChange.Fire()
}

// Set replaces the element at i.
func (l *List[T]) Set(i int, item T) error {
	l.mu.Lock()
	l.items[i] = item
	l.mu.Unlock()
	return l.onChange.Fire()
}

// RemoveAt deletes the element at i.
func (l *List[T]) RemoveAt(i int) error {
	l.mu.Lock()
	l.items = append(l.items[:i], l.items[i+1:]...)
	l.mu.Unlock()
	return l.onChange.Fire()
}

// Pop removes and returns the last element.
func (l *List[T]) Pop() (T, error) {
	l.mu.Lock()
	last := len(l.items) - 1
	item := l.items[last]
	l.items = l.items[:last]
	l.mu.Unlock()
	return item, l.onChange.Fire()
}

func (l *List[T]) Clear() error {
	l.mu.Lock()
	l.items = nil
	l.mu.Unlock()
	return l.onChange.Fire()
}

func (l *List[T]) Reverse() error {
	l.mu.Lock()
	for i, j := 0, len(l.items)-1; i < j; i, j = i+1, j-1 {
		l.items[i], l.items[j] = l.items[j], l.items[i]
	}
	l.mu.Unlock()
	return l.onChange.Fire()
}

// ReplaceAll swaps the entire contents in a single notification.
func (l *List[T]) ReplaceAll(items ...T) error {
	l.mu.Lock()
	l.items = make([]T, len(items))
	copy(l.items, items)
	l.mu.Unlock()
	return l.onChange.Fire()
}

func (l *List[T]) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return fmt.Sprint(l.items)
}

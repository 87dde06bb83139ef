package cells

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Prop is the dynamic, name-addressed view of a cell definition. Every
// NewValue, NewComputed and NewReactive call registers its definition
// under the owner type, so cells can be reached by (instance, name)
// without static types.
type Prop interface {
	Name() string
	getAny(m Instance) (any, error)
	setAny(m Instance, val any) error
	deleteAny(m Instance) error
	anyNotifier(m Instance) (*Notifier, error)
}

var propRegistry = struct {
	mu      sync.RWMutex
	byOwner map[reflect.Type]map[uint64]Prop
}{byOwner: map[reflect.Type]map[uint64]Prop{}}

func propKey(name string) uint64 {
	return xxhash.Sum64String(name)
}

func registerProp(owner reflect.Type, p Prop) {
	propRegistry.mu.Lock()
	defer propRegistry.mu.Unlock()
	props, ok := propRegistry.byOwner[owner]
	if !ok {
		props = map[uint64]Prop{}
		propRegistry.byOwner[owner] = props
	}
	key := propKey(p.Name())
	if _, ok := props[key]; ok {
		panic(fmt.Sprintf("cells: %s already declares %q", owner, p.Name()))
	}
	props[key] = p
}

// LookupProp finds the cell declared as name on m's concrete type.
func LookupProp(m Instance, name string) (Prop, error) {
	propRegistry.mu.RLock()
	defer propRegistry.mu.RUnlock()
	props, ok := propRegistry.byOwner[reflect.TypeOf(m)]
	if !ok {
		return nil, fmt.Errorf("%w: %T declares no cells", ErrUnknownProp, m)
	}
	p, ok := props[propKey(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %T.%s", ErrUnknownProp, m, name)
	}
	return p, nil
}

// PropNames lists the cells declared on m's concrete type, sorted.
func PropNames(m Instance) []string {
	propRegistry.mu.RLock()
	defer propRegistry.mu.RUnlock()
	names := make([]string, 0, len(propRegistry.byOwner[reflect.TypeOf(m)]))
	for _, p := range propRegistry.byOwner[reflect.TypeOf(m)] {
		names = append(names, p.Name())
	}
	sort.Strings(names)
	return names
}

// GetProp reads the cell declared as name on m.
func GetProp(m Instance, name string) (any, error) {
	p, err := LookupProp(m, name)
	if err != nil {
		return nil, err
	}
	return p.getAny(m)
}

// SetProp writes the cell declared as name on m. Computed cells report
// ErrReadOnly; a value of the wrong type reports ErrWrongType.
func SetProp(m Instance, name string, val any) error {
	p, err := LookupProp(m, name)
	if err != nil {
		return err
	}
	return p.setAny(m, val)
}

// DeleteProp runs the deleter of the cell declared as name on m.
func DeleteProp(m Instance, name string) error {
	p, err := LookupProp(m, name)
	if err != nil {
		return err
	}
	return p.deleteAny(m)
}

// NotifierOf returns the change notifier of the cell declared as name
// on m.
func NotifierOf(m Instance, name string) (*Notifier, error) {
	p, err := LookupProp(m, name)
	if err != nil {
		return nil, err
	}
	return p.anyNotifier(m)
}

// WatchProp watches the cell declared as name on m, without static
// types. Semantics match Watch.
func WatchProp(ctx context.Context, m Instance, name string) (*Watcher[any], error) {
	p, err := LookupProp(m, name)
	if err != nil {
		return nil, err
	}
	n, err := p.anyNotifier(m)
	if err != nil {
		return nil, err
	}
	return newWatcher(ctx, n, func() (any, error) {
		return p.getAny(m)
	}), nil
}

func wrongOwner(name string, m Instance) error {
	return fmt.Errorf("%w: %s is not declared on %T", ErrWrongType, name, m)
}

func (v *Value[M, T]) getAny(m Instance) (any, error) {
	mm, ok := m.(M)
	if !ok {
		return nil, wrongOwner(v.name, m)
	}
	return v.Get(mm), nil
}

func (v *Value[M, T]) setAny(m Instance, val any) error {
	mm, ok := m.(M)
	if !ok {
		return wrongOwner(v.name, m)
	}
	tv, ok := val.(T)
	if !ok {
		return fmt.Errorf("%w: cannot assign %T to %s", ErrWrongType, val, v.name)
	}
	return v.Set(mm, tv)
}

func (v *Value[M, T]) deleteAny(m Instance) error {
	return fmt.Errorf("%w: %s", ErrNoDeleter, v.name)
}

func (v *Value[M, T]) anyNotifier(m Instance) (*Notifier, error) {
	mm, ok := m.(M)
	if !ok {
		return nil, wrongOwner(v.name, m)
	}
	return v.Notifier(mm), nil
}

func (c *Computed[M, T]) getAny(m Instance) (any, error) {
	mm, ok := m.(M)
	if !ok {
		return nil, wrongOwner(c.name, m)
	}
	val, err := c.Get(mm)
	if err != nil {
		return nil, err
	}
	return val, nil
}

func (c *Computed[M, T]) setAny(m Instance, val any) error {
	return fmt.Errorf("%w: %s", ErrReadOnly, c.name)
}

func (c *Computed[M, T]) deleteAny(m Instance) error {
	return fmt.Errorf("%w: %s", ErrReadOnly, c.name)
}

func (c *Computed[M, T]) anyNotifier(m Instance) (*Notifier, error) {
	mm, ok := m.(M)
	if !ok {
		return nil, wrongOwner(c.name, m)
	}
	return c.Notifier(mm), nil
}

func (r *Reactive[M, T]) getAny(m Instance) (any, error) {
	mm, ok := m.(M)
	if !ok {
		return nil, wrongOwner(r.name, m)
	}
	val, err := r.Get(mm)
	if err != nil {
		return nil, err
	}
	return val, nil
}

func (r *Reactive[M, T]) setAny(m Instance, val any) error {
	mm, ok := m.(M)
	if !ok {
		return wrongOwner(r.name, m)
	}
	tv, ok := val.(T)
	if !ok {
		return fmt.Errorf("%w: cannot assign %T to %s", ErrWrongType, val, r.name)
	}
	return r.Set(mm, tv)
}

func (r *Reactive[M, T]) deleteAny(m Instance) error {
	mm, ok := m.(M)
	if !ok {
		return wrongOwner(r.name, m)
	}
	return r.Delete(mm)
}

func (r *Reactive[M, T]) anyNotifier(m Instance) (*Notifier, error) {
	mm, ok := m.(M)
	if !ok {
		return nil, wrongOwner(r.name, m)
	}
	return r.Notifier(mm), nil
}

package container

import (
	"fmt"
	"reflect"
	"sync"
)

// Constructor builds a fresh instance of an implementation type. It takes no
// dependencies; fields are injected afterwards. It runs under the context
// lock and must not look up beans.
type Constructor func() (any, error)

// Bean is a live instance held by the ApplicationContext.
type Bean struct {
	Type     reflect.Type
	Instance any
}

// ApplicationContext caches the single live instance of every resolved
// implementation type.
type ApplicationContext struct {
	mu sync.RWMutex

	// implementation → live instance
	beans map[reflect.Type]any

	// insertion order, for Beans()
	order []reflect.Type

	// implementation → registered constructor
	constructors map[reflect.Type]Constructor
}

// NewApplicationContext creates an empty context.
func NewApplicationContext() *ApplicationContext {
	return &ApplicationContext{
		beans:        make(map[reflect.Type]any),
		constructors: make(map[reflect.Type]Constructor),
	}
}

// SetConstructor installs the constructor used for t instead of reflect.New.
func (c *ApplicationContext) SetConstructor(t reflect.Type, ctor Constructor) {
	if ctor == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.constructors[t] = ctor
}

// Get returns the cached instance of t, if any.
func (c *ApplicationContext) Get(t reflect.Type) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	inst, ok := c.beans[t]
	return inst, ok
}

// GetOrCreate returns the instance of t, constructing and caching it on first
// use. At most one instance is ever constructed per type; failed
// constructions are not cached.
func (c *ApplicationContext) GetOrCreate(t reflect.Type) (any, error) {
	c.mu.RLock()
	if inst, ok := c.beans[t]; ok {
		c.mu.RUnlock()
		return inst, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another caller may have created it while we waited for the lock.
	if inst, ok := c.beans[t]; ok {
		return inst, nil
	}

	inst, err := c.construct(t)
	if err != nil {
		return nil, err
	}
	c.store(t, inst)
	return inst, nil
}

// LoadOrStore caches instance under t unless t already has a live instance,
// in which case that instance is returned and stored is false.
func (c *ApplicationContext) LoadOrStore(t reflect.Type, instance any) (actual any, stored bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if inst, ok := c.beans[t]; ok {
		return inst, false
	}
	c.store(t, instance)
	return instance, true
}

// Len returns the number of live instances.
func (c *ApplicationContext) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.beans)
}

// Beans returns a snapshot of the live instances in creation order.
func (c *ApplicationContext) Beans() []Bean {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Bean, 0, len(c.order))
	for _, t := range c.order {
		out = append(out, Bean{Type: t, Instance: c.beans[t]})
	}
	return out
}

// store must hold mu.Lock.
func (c *ApplicationContext) store(t reflect.Type, instance any) {
	c.beans[t] = instance
	c.order = append(c.order, t)
}

// construct must hold mu.Lock.
func (c *ApplicationContext) construct(t reflect.Type) (inst any, err error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil type", ErrInstantiation)
	}

	ctor, ok := c.constructors[t]
	if !ok {
		if t.Kind() != reflect.Pointer || t.Elem().Kind() != reflect.Struct {
			return nil, fmt.Errorf("%w: %s has no zero-argument constructor", ErrInstantiation, t)
		}
		return reflect.New(t.Elem()).Interface(), nil
	}

	defer func() {
		if r := recover(); r != nil {
			inst = nil
			err = fmt.Errorf("%w: constructor of %s panicked: %v", ErrInstantiation, t, r)
		}
	}()

	inst, err = ctor()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInstantiation, t, err)
	}
	if inst == nil || isNilPointer(inst) {
		return nil, fmt.Errorf("%w: constructor of %s returned nil", ErrInstantiation, t)
	}
	if got := reflect.TypeOf(inst); !got.AssignableTo(t) {
		return nil, fmt.Errorf("%w: constructor of %s returned %s", ErrInstantiation, t, got)
	}
	return inst, nil
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

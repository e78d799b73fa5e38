package discovery

import (
	"fmt"
	"reflect"

	"github.com/km-arc/go-inject/framework/container"
)

// Builder implements the fluent registration API.
//
//	discovery.Type[*BackupService]().
//	    As(discovery.Contract[IService]()).
//	    MustRegister()
type Builder struct {
	def Definition
}

// Type starts a definition for implementation type T.
func Type[T any]() *Builder {
	return &Builder{def: Definition{Type: reflect.TypeFor[T]()}}
}

// As declares the contracts T satisfies.
func (b *Builder) As(contracts ...reflect.Type) *Builder {
	b.def.Contracts = append(b.def.Contracts, contracts...)
	return b
}

// Named adds qualifier names for T.
//
//	discovery.Type[*BackupService]().As(discovery.Contract[IService]()).Named("backup")
func (b *Builder) Named(names ...string) *Builder {
	b.def.Names = append(b.def.Names, names...)
	return b
}

// Using installs a zero-argument constructor in place of reflect.New.
//
//	discovery.Type[*Pool]().Using(func() (any, error) { return NewPool(8), nil })
//
// The constructor runs while the container holds its wiring lock: it must
// not look up beans (Lookup, Get, GetBean), or it deadlocks. Take
// dependencies through inject-tagged fields instead.
func (b *Builder) Using(ctor container.Constructor) *Builder {
	b.def.Constructor = ctor
	return b
}

// Definition returns the definition built so far.
func (b *Builder) Definition() Definition { return b.def }

// Register adds the definition to c, or to Default when c is nil.
func (b *Builder) Register(c *Catalog) error {
	if c == nil {
		c = Default
	}
	return c.Add(b.def)
}

// MustRegister is Register on the Default catalog, panicking on error.
func (b *Builder) MustRegister() {
	if err := b.Register(nil); err != nil {
		panic(fmt.Sprintf("discovery: %v", err))
	}
}

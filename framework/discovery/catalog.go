package discovery

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/km-arc/go-inject/framework/container"
)

var (
	// ErrInvalidDefinition is returned when a definition cannot be registered.
	ErrInvalidDefinition = errors.New("invalid type definition")

	// ErrDuplicateType is returned when a type is added twice.
	ErrDuplicateType = errors.New("type already registered")
)

// Definition is the discovery record of one implementation type.
type Definition struct {
	// Type is the implementation type, normally a struct pointer.
	Type reflect.Type

	// Contracts are the interfaces Type declares it satisfies.
	Contracts []reflect.Type

	// Names are extra qualifier names that select Type when a contract has
	// several implementations.
	Names []string

	// Constructor replaces reflect.New when set.
	Constructor container.Constructor
}

// Namespace returns the package path Type is declared in.
func (d Definition) Namespace() string { return PackageOf(d.Type) }

// Predicate selects definitions in FindTypes.
type Predicate func(Definition) bool

// Any matches every definition.
func Any(Definition) bool { return true }

// Marked adapts a type test such as container.IsComponent into a Predicate.
func Marked(test func(reflect.Type) bool) Predicate {
	return func(d Definition) bool { return test(d.Type) }
}

// Catalog is the set of types an application makes discoverable. Packages
// usually add their types from init(), the way database/sql drivers register
// themselves.
type Catalog struct {
	mu sync.RWMutex

	defs  []Definition
	index map[reflect.Type]int
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{index: make(map[reflect.Type]int)}
}

// Default is the process catalog used by Register and Type(...).Register().
var Default = NewCatalog()

// Add validates def and adds it.
func (c *Catalog) Add(def Definition) error {
	if err := validate(def); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.index[def.Type]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateType, def.Type)
	}
	def.Contracts = append([]reflect.Type(nil), def.Contracts...)
	def.Names = append([]string(nil), def.Names...)
	c.index[def.Type] = len(c.defs)
	c.defs = append(c.defs, def)
	return nil
}

// Lookup returns the definition of t.
func (c *Catalog) Lookup(t reflect.Type) (Definition, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.index[t]
	if !ok {
		return Definition{}, false
	}
	return c.defs[i], true
}

// FindTypes returns, in registration order, the definitions declared in
// namespace (and its sub-packages when recursive) that satisfy match. An
// empty namespace matches every package.
func (c *Catalog) FindTypes(namespace string, recursive bool, match Predicate) []Definition {
	if match == nil {
		match = Any
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []Definition
	for _, d := range c.defs {
		if inNamespace(d.Namespace(), namespace, recursive) && match(d) {
			out = append(out, d)
		}
	}
	return out
}

// Len returns the number of definitions.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.defs)
}

// Register adds T to the Default catalog and panics on error. Call it from
// init().
//
//	func init() {
//	    discovery.Register[*Service](discovery.Contract[IService]())
//	}
func Register[T any](contracts ...reflect.Type) {
	if err := Default.Add(Definition{Type: reflect.TypeFor[T](), Contracts: contracts}); err != nil {
		panic(fmt.Sprintf("discovery: %v", err))
	}
}

// Contract returns the reflect.Type of interface I.
//
//	discovery.Contract[io.Reader]()
func Contract[I any]() reflect.Type { return reflect.TypeFor[I]() }

// Namespace returns the namespace to scan for root: the package path of its
// type, looking through pointers. root may also be a reflect.Type.
func Namespace(root any) string {
	if t, ok := root.(reflect.Type); ok {
		return PackageOf(t)
	}
	return PackageOf(reflect.TypeOf(root))
}

// PackageOf returns the import path of the package declaring t.
func PackageOf(t reflect.Type) string {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	return t.PkgPath()
}

func inNamespace(pkg, namespace string, recursive bool) bool {
	if namespace == "" || pkg == namespace {
		return true
	}
	return recursive && strings.HasPrefix(pkg, namespace+"/")
}

func validate(def Definition) error {
	t := def.Type
	if t == nil {
		return fmt.Errorf("%w: nil type", ErrInvalidDefinition)
	}
	if def.Constructor == nil && (t.Kind() != reflect.Pointer || t.Elem().Kind() != reflect.Struct) {
		return fmt.Errorf("%w: %s is not a struct pointer and has no constructor", ErrInvalidDefinition, t)
	}
	for _, contract := range def.Contracts {
		if contract == nil || contract.Kind() != reflect.Interface {
			return fmt.Errorf("%w: contract %v of %s is not an interface", ErrInvalidDefinition, contract, t)
		}
		if !t.Implements(contract) {
			return fmt.Errorf("%w: %s does not implement %s", ErrInvalidDefinition, t, contract)
		}
	}
	return nil
}

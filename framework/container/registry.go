package container

import (
	"reflect"
	"slices"
	"strings"
	"sync"
)

// ContractMapping records that Implementation satisfies Contract.
type ContractMapping struct {
	Implementation reflect.Type
	Contract       reflect.Type
}

// Registry maps implementation types to the contracts they satisfy.
// Mappings are only ever added.
type Registry struct {
	mu sync.RWMutex

	// registration order, for deterministic candidate lists
	mappings []ContractMapping

	// contract → implementations
	byContract map[reflect.Type][]reflect.Type

	seen map[ContractMapping]struct{}

	// implementation → extra names accepted by the resolver
	names map[reflect.Type][]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byContract: make(map[reflect.Type][]reflect.Type),
		seen:       make(map[ContractMapping]struct{}),
		names:      make(map[reflect.Type][]string),
	}
}

// Register maps impl to each of its contracts, or to itself when it declares
// none. Registering the same mapping twice is a no-op.
//
//	r.Register(reflect.TypeFor[*Service](), reflect.TypeFor[IService]())
//	r.Register(reflect.TypeFor[*Logger]()) // *Logger → *Logger
func (r *Registry) Register(impl reflect.Type, contracts ...reflect.Type) {
	if impl == nil {
		return
	}
	if len(contracts) == 0 {
		contracts = []reflect.Type{impl}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, contract := range contracts {
		if contract == nil {
			continue
		}
		m := ContractMapping{Implementation: impl, Contract: contract}
		if _, ok := r.seen[m]; ok {
			continue
		}
		r.seen[m] = struct{}{}
		r.mappings = append(r.mappings, m)
		r.byContract[contract] = append(r.byContract[contract], impl)
	}
}

// CandidatesFor returns every implementation mapped to contract, in
// registration order.
func (r *Registry) CandidatesFor(contract reflect.Type) []reflect.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()
	impls := r.byContract[contract]
	out := make([]reflect.Type, len(impls))
	copy(out, impls)
	return out
}

// Has reports whether contract has at least one implementation.
func (r *Registry) Has(contract reflect.Type) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byContract[contract]) > 0
}

// Mappings returns a copy of all mappings in registration order.
func (r *Registry) Mappings() []ContractMapping {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ContractMapping, len(r.mappings))
	copy(out, r.mappings)
	return out
}

// Name gives impl extra names that a qualifier or field name may use to
// select it, next to its simple type name.
//
//	r.Name(reflect.TypeFor[*BackupService](), "backup")
func (r *Registry) Name(impl reflect.Type, names ...string) {
	if impl == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || slices.ContainsFunc(r.names[impl], func(have string) bool { return strings.EqualFold(have, n) }) {
			continue
		}
		r.names[impl] = append(r.names[impl], n)
	}
}

// NamesOf returns the names given to impl with Name.
func (r *Registry) NamesOf(impl reflect.Type) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.names[impl])
}

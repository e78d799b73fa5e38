package container

import (
	"reflect"
	"strings"
)

// Resolver picks the single implementation type that should satisfy a
// requested contract.
type Resolver struct {
	registry *Registry
}

// NewResolver creates a resolver backed by registry.
func NewResolver(registry *Registry) *Resolver {
	return &Resolver{registry: registry}
}

// Resolve returns the implementation of contract.
//
// With one candidate the tag is ignored. With several, the candidate whose
// simple type name, or a name given with Registry.Name, equals tag (or
// fieldName when tag is blank), compared case-insensitively, is returned.
// Anything else is ambiguous.
func (r *Resolver) Resolve(contract reflect.Type, fieldName, tag string) (reflect.Type, error) {
	candidates := r.registry.CandidatesFor(contract)
	switch len(candidates) {
	case 0:
		return nil, &ResolutionError{Contract: contract, Err: ErrNoImplementation}
	case 1:
		return candidates[0], nil
	}

	key := strings.TrimSpace(tag)
	if key == "" {
		key = fieldName
	}

	var match reflect.Type
	for _, c := range candidates {
		if key == "" || !r.matches(c, key) {
			continue
		}
		if match != nil {
			// two candidates share the simple name, e.g. from different packages
			match = nil
			break
		}
		match = c
	}
	if match == nil {
		return nil, &ResolutionError{
			Contract:   contract,
			Key:        key,
			Candidates: candidates,
			Err:        ErrAmbiguousImplementation,
		}
	}
	return match, nil
}

func (r *Resolver) matches(impl reflect.Type, key string) bool {
	if strings.EqualFold(SimpleName(impl), key) {
		return true
	}
	for _, n := range r.registry.NamesOf(impl) {
		if strings.EqualFold(n, key) {
			return true
		}
	}
	return false
}

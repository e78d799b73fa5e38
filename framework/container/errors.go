package container

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	// ErrNoImplementation is returned when a contract has no registered
	// implementation.
	ErrNoImplementation = errors.New("no implementation found")

	// ErrAmbiguousImplementation is returned when a contract has several
	// implementations and neither the qualifier nor the field name picks one.
	ErrAmbiguousImplementation = errors.New("ambiguous implementation")

	// ErrInstantiation is returned when a type cannot be constructed: it has
	// no usable zero-argument constructor, or the constructor failed.
	ErrInstantiation = errors.New("instantiation failed")

	// ErrFieldAccess is returned when an injectable field cannot be read or
	// written.
	ErrFieldAccess = errors.New("field access failed")
)

// ResolutionError describes a failed contract resolution. It wraps
// ErrNoImplementation or ErrAmbiguousImplementation.
type ResolutionError struct {
	Contract   reflect.Type
	Key        string
	Candidates []reflect.Type
	Err        error
}

func (e *ResolutionError) Error() string {
	if errors.Is(e.Err, ErrAmbiguousImplementation) {
		names := make([]string, len(e.Candidates))
		for i, c := range e.Candidates {
			names[i] = c.String()
		}
		msg := fmt.Sprintf("%s: %d implementations of %s [%s]", e.Err, len(e.Candidates), e.Contract, strings.Join(names, ", "))
		if e.Key != "" {
			msg += fmt.Sprintf(", none named %q", e.Key)
		}
		return msg + "; use a qualifier tag to pick one"
	}
	return fmt.Sprintf("%s for %s", e.Err, e.Contract)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// FailureKind classifies container errors for callers that want a
// discriminated result instead of matching sentinels themselves.
type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureNoImplementation
	FailureAmbiguous
	FailureInstantiation
	FailureFieldAccess
	FailureOther
)

func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "none"
	case FailureNoImplementation:
		return "no-implementation"
	case FailureAmbiguous:
		return "ambiguous"
	case FailureInstantiation:
		return "instantiation"
	case FailureFieldAccess:
		return "field-access"
	}
	return "other"
}

// KindOf returns the failure kind of err, matching the sentinels with
// errors.Is in declaration order.
func KindOf(err error) FailureKind {
	switch {
	case err == nil:
		return FailureNone
	case errors.Is(err, ErrNoImplementation):
		return FailureNoImplementation
	case errors.Is(err, ErrAmbiguousImplementation):
		return FailureAmbiguous
	case errors.Is(err, ErrInstantiation):
		return FailureInstantiation
	case errors.Is(err, ErrFieldAccess):
		return FailureFieldAccess
	}
	return FailureOther
}

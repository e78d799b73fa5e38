package container

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var errorType = reflect.TypeFor[error]()

// FactoryBinding is a Provide* method of a configuration type that yields an
// additional bean.
type FactoryBinding struct {
	Configuration reflect.Type
	Method        reflect.Method

	// Produces is the declared first return type.
	Produces reflect.Type
}

// Params returns the method's parameter types, excluding the receiver.
func (b FactoryBinding) Params() []reflect.Type {
	mt := b.Method.Type
	params := make([]reflect.Type, 0, mt.NumIn()-1)
	for i := 1; i < mt.NumIn(); i++ {
		params = append(params, mt.In(i))
	}
	return params
}

// NumParams returns the number of parameters, excluding the receiver.
func (b FactoryBinding) NumParams() int { return b.Method.Type.NumIn() - 1 }

func (b FactoryBinding) String() string {
	return fmt.Sprintf("%s.%s", b.Configuration, b.Method.Name)
}

// FactoryMethods returns the Provide* methods of configuration's method set.
// Methods must return (T) or (T, error); any other shape is reported in the
// returned error and skipped.
//
//	func (c *AppConfig) ProvideClock() *Clock                  // zero-argument
//	func (c *AppConfig) ProvideMailer(l *Logger) (*Mailer, error) // parameterized
func FactoryMethods(configuration any) ([]FactoryBinding, error) {
	t := reflect.TypeOf(configuration)
	if t == nil {
		return nil, nil
	}
	var (
		out  []FactoryBinding
		errs []error
	)
	for i := 0; i < t.NumMethod(); i++ {
		m := t.Method(i)
		if !strings.HasPrefix(m.Name, FactoryPrefix) {
			continue
		}
		mt := m.Type
		switch {
		case mt.IsVariadic():
			errs = append(errs, fmt.Errorf("factory %s.%s: variadic factories are not supported", t, m.Name))
			continue
		case mt.NumOut() == 1 && mt.Out(0) != errorType:
		case mt.NumOut() == 2 && mt.Out(1) == errorType:
		default:
			errs = append(errs, fmt.Errorf("factory %s.%s must return (T) or (T, error)", t, m.Name))
			continue
		}
		out = append(out, FactoryBinding{Configuration: t, Method: m, Produces: mt.Out(0)})
	}
	return out, errors.Join(errs...)
}

// Call invokes the factory on receiver with args. A returned error, a panic
// or a nil result are reported as ErrInstantiation.
func (b FactoryBinding) Call(receiver any, args ...any) (bean any, err error) {
	if len(args) != b.NumParams() {
		return nil, fmt.Errorf("%w: factory %s takes %d arguments, got %d", ErrInstantiation, b, b.NumParams(), len(args))
	}
	in := make([]reflect.Value, 0, len(args)+1)
	in = append(in, reflect.ValueOf(receiver))
	for i, a := range args {
		want := b.Method.Type.In(i + 1)
		av := reflect.ValueOf(a)
		if !av.IsValid() || !av.Type().AssignableTo(want) {
			return nil, fmt.Errorf("%w: factory %s argument %d: %T is not assignable to %s", ErrInstantiation, b, i, a, want)
		}
		in = append(in, av)
	}

	defer func() {
		if r := recover(); r != nil {
			bean = nil
			err = fmt.Errorf("%w: factory %s panicked: %v", ErrInstantiation, b, r)
		}
	}()

	out := b.Method.Func.Call(in)
	if len(out) == 2 && !out[1].IsNil() {
		return nil, fmt.Errorf("%w: factory %s: %w", ErrInstantiation, b, out[1].Interface().(error))
	}
	v := out[0]
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if v.IsNil() {
			return nil, fmt.Errorf("%w: factory %s returned nil", ErrInstantiation, b)
		}
	}
	return v.Interface(), nil
}

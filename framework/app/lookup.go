package app

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"github.com/km-arc/go-inject/framework/container"
)

// Lookup returns the bean satisfying contract, creating and wiring it on
// first use. Errors wrap the container sentinels; see container.KindOf.
func (in *Injector) Lookup(contract reflect.Type) (any, error) {
	return in.lookup(contract, "")
}

// LookupNamed is Lookup with a qualifier that picks among several
// implementations by simple type name or registered name.
func (in *Injector) LookupNamed(contract reflect.Type, name string) (any, error) {
	return in.lookup(contract, name)
}

func (in *Injector) lookup(contract reflect.Type, name string) (any, error) {
	if contract == nil {
		return nil, fmt.Errorf("%w: nil contract", container.ErrNoImplementation)
	}
	impl, err := in.resolver.Resolve(contract, "", name)
	if err != nil {
		return nil, err
	}
	if inst, ok := in.wired(impl); ok {
		return inst, nil
	}
	return in.wire(impl)
}

// wired returns the instance of impl if its injection has completed.
func (in *Injector) wired(impl reflect.Type) (any, bool) {
	in.wireMu.RLock()
	defer in.wireMu.RUnlock()
	inst, ok := in.context.Get(impl)
	if !ok || !in.fields.Injected(inst) {
		return nil, false
	}
	return inst, true
}

// GetBean is Lookup for callers that treat a missing bean as optional: any
// failure is logged and nil is returned.
func (in *Injector) GetBean(contract reflect.Type) any {
	bean, err := in.Lookup(contract)
	if err != nil {
		in.logLookupFailure(contract, err)
		return nil
	}
	return bean
}

func (in *Injector) logLookupFailure(contract reflect.Type, err error) {
	in.log.Error("could not get required bean",
		zap.String("contract", fmt.Sprint(contract)),
		zap.String("kind", container.KindOf(err).String()),
		zap.Error(err),
	)
}

// ── Generics helper ───────────────────────────────────────────────────────────

// Get looks up the bean for contract T and type-asserts it.
//
//	svc, err := app.Get[shop.IService](inj)
func Get[T any](in *Injector) (T, error) {
	return GetNamed[T](in, "")
}

// GetNamed is Get with a qualifier.
//
//	backup, err := app.GetNamed[shop.IService](inj, "backupService")
func GetNamed[T any](in *Injector, name string) (T, error) {
	var zero T
	bean, err := in.LookupNamed(reflect.TypeFor[T](), name)
	if err != nil {
		return zero, err
	}
	typed, ok := bean.(T)
	if !ok {
		return zero, fmt.Errorf("app: bean %T is not a %s", bean, reflect.TypeFor[T]())
	}
	return typed, nil
}

// MustGet is like Get but panics on error.
func MustGet[T any](in *Injector) T {
	v, err := Get[T](in)
	if err != nil {
		panic(fmt.Sprintf("app: MustGet[%s]: %v", reflect.TypeFor[T](), err))
	}
	return v
}

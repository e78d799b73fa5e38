package app

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"github.com/km-arc/go-inject/framework/container"
	"github.com/km-arc/go-inject/framework/discovery"
	"github.com/km-arc/go-inject/framework/providers"
)

// bootstrap runs the startup sequence of one Injector:
//
//  1. framework and user providers bind pre-built beans
//  2. every discovered type is registered
//  3. components are instantiated and injected
//  4. configurations are instantiated and injected
//  5. zero-argument Provide* factories run
//  6. parameterized Provide* factories run with resolved arguments
type bootstrap struct {
	in  *Injector
	log *zap.Logger

	namespace string
	recursive bool
	failFast  bool

	errs []error
}

// pendingFactory is a parameterized factory waiting for step 6.
type pendingFactory struct {
	binding  container.FactoryBinding
	receiver any
}

func (b *bootstrap) run() {
	if !b.bindProviders() {
		return
	}

	b.register(b.find(discovery.Any))

	if !b.instantiate("component", b.find(discovery.Marked(container.IsComponent))) {
		return
	}

	configurations := b.find(discovery.Marked(container.IsConfiguration))
	if !b.instantiate("configuration", configurations) {
		return
	}

	b.evaluateFactories(configurations)
}

// fail records err and reports whether bootstrap should go on.
func (b *bootstrap) fail(step string, err error) bool {
	b.log.Error("could not create instance",
		zap.String("step", step),
		zap.String("kind", container.KindOf(err).String()),
		zap.Error(err),
	)
	b.errs = append(b.errs, fmt.Errorf("%s: %w", step, err))
	return !b.failFast
}

func (b *bootstrap) find(match discovery.Predicate) []discovery.Definition {
	return b.in.catalog.FindTypes(b.namespace, b.recursive, match)
}

func (b *bootstrap) bindProviders() bool {
	self := providers.ProviderFunc(func(bd providers.Binder) error {
		return bd.Instance(b.in)
	})
	all := append(providers.Framework(b.in.cfg, b.in.log), self)
	all = append(all, b.in.providers...)
	if err := providers.RegisterAll(b.in, all...); err != nil {
		return b.fail("register providers", err)
	}
	return true
}

func (b *bootstrap) register(defs []discovery.Definition) {
	for _, d := range defs {
		b.in.registry.Register(d.Type, d.Contracts...)
		b.in.registry.Name(d.Type, d.Names...)
		if d.Constructor != nil {
			b.in.context.SetConstructor(d.Type, d.Constructor)
		}
		b.log.Debug("type registered",
			zap.Stringer("type", d.Type),
			zap.Int("contracts", len(d.Contracts)),
		)
	}
}

func (b *bootstrap) instantiate(kind string, defs []discovery.Definition) bool {
	for _, d := range defs {
		if _, err := b.in.wire(d.Type); err != nil {
			if !b.fail(kind+" "+d.Type.String(), err) {
				return false
			}
			continue
		}
		b.log.Debug("bean ready", zap.String("kind", kind), zap.Stringer("type", d.Type))
	}
	return true
}

func (b *bootstrap) evaluateFactories(configurations []discovery.Definition) {
	var pending []pendingFactory
	for _, d := range configurations {
		receiver, ok := b.in.context.Get(d.Type)
		if !ok {
			// instantiation failed and was reported in step 4
			continue
		}
		bindings, err := container.FactoryMethods(receiver)
		if err != nil && !b.fail("factories of "+d.Type.String(), err) {
			return
		}
		for _, fb := range bindings {
			if fb.NumParams() > 0 {
				pending = append(pending, pendingFactory{binding: fb, receiver: receiver})
				continue
			}
			if !b.produce(fb, receiver, nil) {
				return
			}
		}
	}

	for _, p := range pending {
		args, err := b.arguments(p.binding)
		if err != nil {
			if !b.fail("factory "+p.binding.String(), err) {
				return
			}
			continue
		}
		if !b.produce(p.binding, p.receiver, args) {
			return
		}
	}
}

// arguments resolves the parameters of a factory by type. Concrete struct
// pointer parameters nobody registered are registered as themselves first.
// Go keeps no parameter names, so several candidates are always ambiguous.
func (b *bootstrap) arguments(fb container.FactoryBinding) ([]any, error) {
	params := fb.Params()
	args := make([]any, len(params))
	for i, p := range params {
		if !b.in.registry.Has(p) && p.Kind() == reflect.Pointer && p.Elem().Kind() == reflect.Struct {
			b.in.registry.Register(p)
		}
		impl, err := b.in.resolver.Resolve(p, "", "")
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		dep, err := b.in.wire(impl)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		args[i] = dep
	}
	return args, nil
}

// produce calls a factory and registers its result under its runtime type,
// and under the declared return type when that is an interface.
func (b *bootstrap) produce(fb container.FactoryBinding, receiver any, args []any) bool {
	step := "factory " + fb.String()
	bean, err := fb.Call(receiver, args...)
	if err != nil {
		return b.fail(step, err)
	}

	var contracts []reflect.Type
	if fb.Produces.Kind() == reflect.Interface && fb.Produces != reflect.TypeOf(bean) {
		contracts = append(contracts, fb.Produces)
	}
	if err := b.in.Instance(bean, contracts...); err != nil {
		return b.fail(step, err)
	}
	if err := b.in.injectBean(bean); err != nil {
		return b.fail(step, err)
	}
	b.log.Debug("factory bean ready",
		zap.String("factory", fb.String()),
		zap.Stringer("type", reflect.TypeOf(bean)),
	)
	return true
}

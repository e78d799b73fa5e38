package container

import (
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/zap"
)

// FieldInjector populates `inject`-tagged fields of instances, resolving each
// through the Resolver and the ApplicationContext, then recursing into the
// dependency.
type FieldInjector struct {
	resolver *Resolver
	context  *ApplicationContext
	log      *zap.Logger

	mu sync.Mutex

	// instances whose walk is running
	walking map[any]struct{}

	// instances whose walk completed
	done map[any]struct{}
}

// NewFieldInjector creates an injector. A nil logger discards output.
func NewFieldInjector(resolver *Resolver, context *ApplicationContext, log *zap.Logger) *FieldInjector {
	if log == nil {
		log = zap.NewNop()
	}
	return &FieldInjector{
		resolver: resolver,
		context:  context,
		log:      log,
		walking:  make(map[any]struct{}),
		done:     make(map[any]struct{}),
	}
}

// Inject wires every injectable field of target and, recursively, of each
// dependency it receives. Targets that are not struct pointers have nothing
// to inject and are ignored.
//
// Each instance is walked once: wiring a shared singleton into a second
// consumer does not walk it again, and an instance met again while its own
// walk is running is skipped, which lets reference cycles terminate. A failed
// walk is forgotten so it can be retried.
func (fi *FieldInjector) Inject(target any) error {
	if !injectable(target) {
		return nil
	}
	if !fi.begin(target) {
		return nil
	}
	err := fi.inject(target)
	fi.finish(target, err == nil)
	return err
}

// Injected reports whether a walk of target has completed. A walk that is
// still running reports false. Values with nothing to inject always report
// true.
func (fi *FieldInjector) Injected(target any) bool {
	if !injectable(target) {
		return true
	}
	fi.mu.Lock()
	defer fi.mu.Unlock()
	_, ok := fi.done[target]
	return ok
}

func (fi *FieldInjector) inject(target any) error {
	for _, f := range InjectableFields(reflect.TypeOf(target)) {
		impl, err := fi.resolver.Resolve(f.Type, f.Name, f.Qualifier)
		if err != nil {
			return fmt.Errorf("inject %s.%s: %w", f.Owner, f.Name, err)
		}
		dep, err := fi.context.GetOrCreate(impl)
		if err != nil {
			return fmt.Errorf("inject %s.%s: %w", f.Owner, f.Name, err)
		}
		if err := SetField(target, f, dep); err != nil {
			return fmt.Errorf("inject %s.%s: %w", f.Owner, f.Name, err)
		}
		fi.log.Debug("field injected",
			zap.Stringer("owner", f.Owner),
			zap.String("field", f.Name),
			zap.Stringer("contract", f.Type),
			zap.Stringer("implementation", impl),
		)
		if err := fi.Inject(dep); err != nil {
			return err
		}
	}
	return nil
}

// begin returns false if target is walked already or being walked.
func (fi *FieldInjector) begin(target any) bool {
	fi.mu.Lock()
	defer fi.mu.Unlock()
	if _, ok := fi.done[target]; ok {
		return false
	}
	if _, ok := fi.walking[target]; ok {
		return false
	}
	fi.walking[target] = struct{}{}
	return true
}

func (fi *FieldInjector) finish(target any, ok bool) {
	fi.mu.Lock()
	defer fi.mu.Unlock()
	delete(fi.walking, target)
	if ok {
		fi.done[target] = struct{}{}
	}
}

func injectable(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && !rv.IsNil() && rv.Elem().Kind() == reflect.Struct
}

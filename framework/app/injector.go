package app

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/km-arc/go-inject/framework/config"
	"github.com/km-arc/go-inject/framework/container"
	"github.com/km-arc/go-inject/framework/discovery"
	"github.com/km-arc/go-inject/framework/providers"
)

// ErrDuplicateBean is returned when a pre-built bean would replace a live
// instance of the same type.
var ErrDuplicateBean = errors.New("bean already exists")

// Injector is the application container: it discovers component and
// configuration types, wires them, and answers lookups.
//
//	inj := app.New(app.WithConfig(cfg), app.WithLogger(log))
//	if err := inj.Start(&shop.Service{}); err != nil { ... }
//	svc, err := app.Get[shop.IService](inj)
type Injector struct {
	id  uuid.UUID
	cfg *config.Config
	log *zap.Logger

	catalog   *discovery.Catalog
	providers []providers.ServiceProvider

	registry *container.Registry
	context  *container.ApplicationContext
	resolver *container.Resolver
	fields   *container.FieldInjector

	// write-held across create + inject, read-held by the lookup fast path,
	// so no caller sees a half-wired bean
	wireMu sync.RWMutex

	// serializes Start
	startMu sync.Mutex

	stateMu   sync.RWMutex
	started   bool
	namespace string
}

// Option configures an Injector.
type Option func(*Injector)

// WithConfig sets the configuration. Defaults to config.Default().
func WithConfig(cfg *config.Config) Option {
	return func(in *Injector) { in.cfg = cfg }
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(in *Injector) { in.log = log }
}

// WithCatalog sets the catalog types are discovered from. Defaults to
// discovery.Default.
func WithCatalog(c *discovery.Catalog) Option {
	return func(in *Injector) { in.catalog = c }
}

// WithProviders adds service providers run before discovery.
func WithProviders(p ...providers.ServiceProvider) Option {
	return func(in *Injector) { in.providers = append(in.providers, p...) }
}

// New creates an Injector. Nothing is discovered until Start.
func New(opts ...Option) *Injector {
	in := &Injector{
		id:       uuid.New(),
		catalog:  discovery.Default,
		registry: container.NewRegistry(),
		context:  container.NewApplicationContext(),
	}
	for _, opt := range opts {
		opt(in)
	}
	if in.cfg == nil {
		in.cfg = config.Default()
	}
	if in.log == nil {
		in.log = zap.NewNop()
	}
	if in.catalog == nil {
		in.catalog = discovery.Default
	}
	in.log = in.log.With(zap.String("container_id", in.id.String()))
	in.resolver = container.NewResolver(in.registry)
	in.fields = container.NewFieldInjector(in.resolver, in.context, in.log)
	return in
}

// ID identifies this container in logs.
func (in *Injector) ID() uuid.UUID { return in.id }

// Config returns the injector's configuration.
func (in *Injector) Config() *config.Config { return in.cfg }

// Namespace returns the namespace Start scanned, or "" before Start.
func (in *Injector) Namespace() string {
	in.stateMu.RLock()
	defer in.stateMu.RUnlock()
	return in.namespace
}

// Started reports whether Start has run.
func (in *Injector) Started() bool {
	in.stateMu.RLock()
	defer in.stateMu.RUnlock()
	return in.started
}

// Start discovers the types in root's package (or the configured namespace)
// and wires them. Only the first call does anything.
//
// By default failures are logged and bootstrap carries on; the returned
// error joins all of them. With Injector.FailFast configured, bootstrap stops
// at the first failure and returns it.
func (in *Injector) Start(root any) error {
	in.startMu.Lock()
	defer in.startMu.Unlock()
	if in.Started() {
		return nil
	}

	ns := in.cfg.Injector.Namespace
	if ns == "" {
		ns = discovery.Namespace(root)
	}
	in.stateMu.Lock()
	in.started = true
	in.namespace = ns
	in.stateMu.Unlock()

	b := &bootstrap{
		in:        in,
		log:       in.log.With(zap.String("namespace", ns)),
		namespace: ns,
		recursive: in.cfg.Injector.Recursive,
		failFast:  in.cfg.Injector.FailFast,
	}
	began := time.Now()
	b.run()
	err := errors.Join(b.errs...)

	b.log.Info("container started",
		zap.Int("beans", in.context.Len()),
		zap.Int("mappings", len(in.registry.Mappings())),
		zap.Int("failures", len(b.errs)),
		zap.Duration("elapsed", time.Since(began)),
	)
	return err
}

// Instance registers a pre-built bean under its runtime type and maps it to
// contracts, or to itself when none are given. It implements
// providers.Binder.
func (in *Injector) Instance(instance any, contracts ...reflect.Type) error {
	if instance == nil {
		return fmt.Errorf("%w: nil instance", container.ErrInstantiation)
	}
	t := reflect.TypeOf(instance)
	for _, c := range contracts {
		if c == nil || c.Kind() != reflect.Interface || !t.Implements(c) {
			return fmt.Errorf("app: %s cannot be bound to %v", t, c)
		}
	}
	actual, stored := in.context.LoadOrStore(t, instance)
	if !stored && !sameInstance(actual, instance) {
		return fmt.Errorf("%w: %s", ErrDuplicateBean, t)
	}
	in.registry.Register(t)
	if len(contracts) > 0 {
		in.registry.Register(t, contracts...)
	}
	return nil
}

// Beans returns the live beans in creation order.
func (in *Injector) Beans() []container.Bean { return in.context.Beans() }

// Mappings returns every contract mapping in registration order.
func (in *Injector) Mappings() []container.ContractMapping { return in.registry.Mappings() }

// wire returns the instance of impl with its fields injected.
func (in *Injector) wire(impl reflect.Type) (any, error) {
	in.wireMu.Lock()
	defer in.wireMu.Unlock()
	inst, err := in.context.GetOrCreate(impl)
	if err != nil {
		return nil, err
	}
	if err := in.fields.Inject(inst); err != nil {
		return nil, err
	}
	return inst, nil
}

// injectBean injects an instance that is already cached.
func (in *Injector) injectBean(inst any) error {
	in.wireMu.Lock()
	defer in.wireMu.Unlock()
	return in.fields.Inject(inst)
}

func sameInstance(a, b any) bool {
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	// a struct with interface fields has a comparable type but may hold
	// values that panic under ==
	if !reflect.ValueOf(a).Comparable() || !reflect.ValueOf(b).Comparable() {
		return false
	}
	return a == b
}

// Package container is the injection engine: the contract registry, the
// singleton instance cache, the resolution algorithm and the recursive
// field-injection walk.
//
// # Overview
//
// Implementation types are pointer-to-struct types. Each one is mapped to the
// contracts (interfaces) it declares, or to itself when it declares none:
//
//	reg := container.NewRegistry()
//	reg.Register(reflect.TypeFor[*Service](), reflect.TypeFor[IService]())
//	reg.Register(reflect.TypeFor[*Logger]()) // *Logger → *Logger
//
// # Markers
//
// Structs opt in by embedding a marker, fields by tag:
//
//	type Consumer struct {
//	    container.Component
//
//	    Logger  *Logger  `inject:""`
//	    Backup  IService `inject:"" qualifier:"backupService"`
//	    service IService `inject:""` // unexported fields are written too
//	}
//
//	type AppConfig struct{ container.Configuration }
//
//	func (c *AppConfig) ProvideClock() *Clock { return &Clock{} }
//
// # Resolution
//
// A contract with one implementation resolves to it. With several, the
// qualifier tag is matched against the implementations' simple type names
// and the names given with Registry.Name, case-insensitively; without a
// qualifier the field name is used instead. Anything else fails with
// ErrAmbiguousImplementation.
//
//	res := container.NewResolver(reg)
//	impl, err := res.Resolve(reflect.TypeFor[IService](), "backupService", "")
//
// # Instances
//
// ApplicationContext holds one live instance per implementation type and
// creates it on first use with reflect.New or a registered Constructor:
//
//	ctx := container.NewApplicationContext()
//	svc, err := ctx.GetOrCreate(impl)
//
//	fi := container.NewFieldInjector(res, ctx, logger)
//	err = fi.Inject(svc)
//
// # Errors
//
// Failures wrap ErrNoImplementation, ErrAmbiguousImplementation,
// ErrInstantiation or ErrFieldAccess. KindOf classifies them.
package container

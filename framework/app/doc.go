// Package app is the injector: it bootstraps a container from the types a
// discovery.Catalog holds for a namespace and serves bean lookups.
//
// # Bootstrap
//
//	inj := app.New(app.WithConfig(cfg), app.WithLogger(log))
//	err := inj.Start(&shop.Service{}) // namespace = shop's package path
//
// or, for the process-wide container:
//
//	app.StartApplication(&shop.Service{})
//	svc := app.GetBean[shop.IService]()
//
// # Lookups
//
// Lookup and Get return typed errors (see container.KindOf). GetBean and the
// package-level GetBean log failures and return nil or the zero value, for
// callers that treat a bean as optional.
//
// # Concurrency
//
// Creating and injecting a bean happens under one lock, so a concurrent
// lookup never sees a bean whose fields are still being wired. Constructors
// must not look up beans; Provide* factories may.
package app

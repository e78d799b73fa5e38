// Package discovery is the type-discovery collaborator of the injector.
//
// Go cannot enumerate the types of a package at run time, so applications
// list them explicitly in a Catalog, typically from init():
//
//	func init() {
//	    discovery.Register[*Logger]()
//	    discovery.Type[*Service]().As(discovery.Contract[IService]()).MustRegister()
//	}
//
// The injector then asks the catalog for the types of a namespace (a package
// path, optionally with its sub-packages) that satisfy a predicate:
//
//	components := discovery.Default.FindTypes(
//	    discovery.Namespace(&Service{}), true, discovery.Marked(container.IsComponent))
package discovery

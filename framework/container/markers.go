package container

import "reflect"

// ── Markers ───────────────────────────────────────────────────────────────────

// Component marks a struct as a managed component. Embed it to have the type
// instantiated and injected at bootstrap.
//
//	type Service struct {
//	    container.Component
//	    Logger *Logger `inject:""`
//	}
type Component struct{}

// Configuration marks a struct whose exported Provide* methods produce
// additional beans.
//
//	type AppConfig struct{ container.Configuration }
//
//	func (c *AppConfig) ProvideClock() *Clock { return &Clock{} }
type Configuration struct{}

const (
	// TagInject marks a field as injectable. The value is ignored.
	TagInject = "inject"

	// TagQualifier names the implementation to use when a contract has
	// several candidates.
	TagQualifier = "qualifier"

	// FactoryPrefix is the method name prefix of configuration factories.
	FactoryPrefix = "Provide"
)

var (
	componentType     = reflect.TypeFor[Component]()
	configurationType = reflect.TypeFor[Configuration]()
)

// IsComponent reports whether t (or the struct t points to) embeds Component.
func IsComponent(t reflect.Type) bool { return hasMarker(t, componentType) }

// IsConfiguration reports whether t (or the struct t points to) embeds
// Configuration.
func IsConfiguration(t reflect.Type) bool { return hasMarker(t, configurationType) }

func hasMarker(t reflect.Type, marker reflect.Type) bool {
	if t == nil {
		return false
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return false
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous && f.Type == marker {
			return true
		}
	}
	return false
}

// SimpleName returns the unqualified name of t, looking through pointers.
// It is the name qualifiers and field names are matched against.
//
//	SimpleName(reflect.TypeFor[*BackupService]()) // "BackupService"
func SimpleName(t reflect.Type) string {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	return t.Name()
}

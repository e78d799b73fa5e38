package container

import (
	"fmt"
	"reflect"
	"sync"
	"unsafe"
)

// FieldDescriptor is one injectable field of a struct, possibly promoted from
// an embedded struct.
type FieldDescriptor struct {
	// Owner is the struct type that declares the field.
	Owner reflect.Type
	Name  string
	Type  reflect.Type

	// Qualifier is the value of the qualifier tag, if any.
	Qualifier string

	// Index is the path from the outermost struct, as for FieldByIndex.
	Index []int
}

// type → []FieldDescriptor
var fieldCache sync.Map

// InjectableFields returns every field of t tagged with `inject`, walking
// embedded structs (value or pointer) at any depth. Untagged embedded structs
// are descended into; a tagged embedded field is itself an injection target.
func InjectableFields(t reflect.Type) []FieldDescriptor {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	if cached, ok := fieldCache.Load(t); ok {
		return cached.([]FieldDescriptor)
	}
	fields := collectFields(t, nil, map[reflect.Type]bool{})
	actual, _ := fieldCache.LoadOrStore(t, fields)
	return actual.([]FieldDescriptor)
}

func collectFields(t reflect.Type, prefix []int, visiting map[reflect.Type]bool) []FieldDescriptor {
	// guards against self-embedding through pointers
	if visiting[t] {
		return nil
	}
	visiting[t] = true
	defer delete(visiting, t)

	var out []FieldDescriptor
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		index := append(append([]int(nil), prefix...), i)

		if _, ok := f.Tag.Lookup(TagInject); ok {
			out = append(out, FieldDescriptor{
				Owner:     t,
				Name:      f.Name,
				Type:      f.Type,
				Qualifier: f.Tag.Get(TagQualifier),
				Index:     index,
			})
			continue
		}

		if !f.Anonymous {
			continue
		}
		et := f.Type
		if et.Kind() == reflect.Pointer {
			et = et.Elem()
		}
		if et.Kind() == reflect.Struct {
			out = append(out, collectFields(et, index, visiting)...)
		}
	}
	return out
}

// SetField writes value into field f of instance, which must be a non-nil
// pointer to the struct f was collected from. Unexported fields are written
// too. Nil embedded struct pointers on the path are allocated.
func SetField(instance any, f FieldDescriptor, value any) error {
	v, err := fieldValue(instance, f)
	if err != nil {
		return err
	}
	if value == nil {
		return fmt.Errorf("%w: nil value for %s.%s", ErrFieldAccess, f.Owner, f.Name)
	}
	rv := reflect.ValueOf(value)
	if !rv.Type().AssignableTo(v.Type()) {
		return fmt.Errorf("%w: %s is not assignable to %s.%s (%s)", ErrFieldAccess, rv.Type(), f.Owner, f.Name, v.Type())
	}
	v.Set(rv)
	return nil
}

// GetField reads field f of instance. It returns nil for a nil pointer or
// interface field.
func GetField(instance any, f FieldDescriptor) (any, error) {
	v, err := fieldValue(instance, f)
	if err != nil {
		return nil, err
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if v.IsNil() {
			return nil, nil
		}
	}
	return v.Interface(), nil
}

// fieldValue walks f.Index and returns a settable value for the field.
func fieldValue(instance any, f FieldDescriptor) (reflect.Value, error) {
	rv := reflect.ValueOf(instance)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("%w: %T is not a non-nil struct pointer", ErrFieldAccess, instance)
	}
	v := rv.Elem()
	for _, i := range f.Index {
		if v.Kind() == reflect.Pointer {
			if v.IsNil() {
				w := settable(v)
				if !w.IsValid() {
					return reflect.Value{}, fmt.Errorf("%w: cannot allocate embedded %s", ErrFieldAccess, v.Type())
				}
				w.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		if v.Kind() != reflect.Struct || i >= v.NumField() {
			return reflect.Value{}, fmt.Errorf("%w: %s.%s does not match %s", ErrFieldAccess, f.Owner, f.Name, rv.Type())
		}
		v = v.Field(i)
	}
	w := settable(v)
	if !w.IsValid() {
		return reflect.Value{}, fmt.Errorf("%w: %s.%s is not addressable", ErrFieldAccess, f.Owner, f.Name)
	}
	return w, nil
}

// settable returns a writable alias of v, bypassing the export check for
// unexported fields. The zero Value is returned when v is not addressable.
func settable(v reflect.Value) reflect.Value {
	if v.CanSet() {
		return v
	}
	if !v.CanAddr() {
		return reflect.Value{}
	}
	return reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())).Elem()
}

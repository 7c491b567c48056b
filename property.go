package relationship

import (
	"fmt"
	"reflect"
)

// Host is implemented by entities that expose their relationship properties
// through typed accessors instead of relying on reflection of their struct fields.
//
// Relationship returns false, if the entity has no property with the given name.
// Return Ref for singular properties and Many for collections.
type Host interface {
	Relationship(name string) (Property, bool)
}

// Property gives access to the current value of a relationship property.
// Value returns nil for an empty singular property and a Collection for multi-valued properties.
type Property interface {
	Value() any
	// Assign replaces a singular value, nil clears the property.
	Assign(value any) error
	// Assignable reports whether Assign would accept the value.
	Assignable(value any) bool
}

// Ref returns a Property for a singular relationship stored in p.
func Ref[T any](p *T) Property { //nolint:ireturn // the Host contract works on the interface
	return ref[T]{p: p}
}

type ref[T any] struct {
	p *T
}

func (r ref[T]) Value() any {
	v := any(*r.p)
	if isNil(v) {
		return nil
	}

	return v
}

func (r ref[T]) Assign(value any) error {
	if value == nil {
		var zero T
		*r.p = zero

		return nil
	}

	v, ok := value.(T)
	if !ok {
		return fmt.Errorf("%w: cannot assign %T to %T", ErrInvalidArgument, value, *r.p)
	}

	*r.p = v

	return nil
}

func (r ref[T]) Assignable(value any) bool {
	if value == nil {
		return true
	}

	_, ok := value.(T)

	return ok
}

// Many returns a Property for a multi-valued relationship.
func Many(c Collection) Property { //nolint:ireturn // the Host contract works on the interface
	return many{c: c}
}

type many struct {
	c Collection
}

func (m many) Value() any { return m.c }

func (m many) Assign(value any) error {
	return fmt.Errorf("%w: cannot assign %T to a collection", ErrInvalidArgument, value)
}

func (m many) Assignable(_ any) bool { return false }

// field is a Property backed by an exported struct field.
type field struct {
	v reflect.Value
}

var collectionType = reflect.TypeOf((*Collection)(nil)).Elem()

func (f field) Value() any {
	if f.v.Kind() == reflect.Ptr && f.v.Type().Implements(collectionType) && f.v.IsNil() {
		// a nil *OrderedSet is still a collection, allocate it so the shape is detectable
		f.v.Set(reflect.New(f.v.Type().Elem()))
	}

	if f.v.CanAddr() && f.v.Addr().Type().Implements(collectionType) {
		return f.v.Addr().Interface()
	}

	if f.v.Kind() == reflect.Slice {
		return &sliceCollection{slice: f.v}
	}

	v := f.v.Interface()
	if isNil(v) {
		return nil
	}

	return v
}

func (f field) Assign(value any) error {
	if !f.Assignable(value) {
		return fmt.Errorf("%w: cannot assign %T to %s", ErrInvalidArgument, value, f.v.Type())
	}

	if value == nil {
		f.v.Set(reflect.Zero(f.v.Type()))

		return nil
	}

	f.v.Set(reflect.ValueOf(value))

	return nil
}

func (f field) Assignable(value any) bool {
	if value == nil {
		switch f.v.Kind() { //nolint:exhaustive // only nilable kinds can be cleared
		case reflect.Ptr, reflect.Interface, reflect.Map:
			return true
		default:
			return false
		}
	}

	return reflect.TypeOf(value).AssignableTo(f.v.Type())
}

// lookupProperty returns the Property with the given name of the entity.
// The entity is either a Host or a pointer to a struct.
func lookupProperty(entity any, name string) (Property, bool) { //nolint:ireturn // Property is the abstraction
	if host, ok := entity.(Host); ok {
		return host.Relationship(name)
	}

	v, ok := structValue(entity)
	if !ok {
		return nil, false
	}

	fv, ok := fieldByPropertyName(v, name)
	if !ok {
		return nil, false
	}

	return field{v: fv}, true
}

// structValue returns the settable struct the entity points to.
func structValue(entity any) (reflect.Value, bool) {
	v := reflect.ValueOf(entity)
	if v.Kind() != reflect.Ptr || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return reflect.Value{}, false
	}

	return v.Elem(), true
}

// fieldByPropertyName matches an exported field by its `relationship` tag first
// and by its lower-camel name second.
func fieldByPropertyName(v reflect.Value, name string) (reflect.Value, bool) {
	t := v.Type()

	for i := range t.NumField() {
		if tag, ok := t.Field(i).Tag.Lookup("relationship"); ok && t.Field(i).IsExported() && tag == name {
			return v.Field(i), true
		}
	}

	for i := range t.NumField() {
		f := t.Field(i)
		if _, tagged := f.Tag.Lookup("relationship"); tagged || !f.IsExported() || f.Anonymous {
			continue
		}

		if lowerFirst(f.Name) == name {
			return v.Field(i), true
		}
	}

	return reflect.Value{}, false
}

// entityType returns the unqualified type name of the entity.
func entityType(entity any) string {
	if entity == nil {
		return "<nil>"
	}

	t := reflect.TypeOf(entity)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t.Name() == "" {
		return t.String()
	}

	return t.Name()
}

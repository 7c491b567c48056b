package relationship

import (
	"reflect"
)

// CheckPropertyType reports whether the entity has the property and, if so, the category of its current value:
// the concrete type for objects, e.g. "*library.Author", the kind for everything else, e.g. "slice" or "string",
// and "nil" for an empty property. The property name is used literally, there is no plural fallback.
// It does not change the entity.
func (s *Synchronizer) CheckPropertyType(entity any, property string) (string, bool) {
	if isNil(entity) {
		return "", false
	}

	prop, ok := lookupProperty(entity, property)
	if !ok || prop == nil {
		return "", false
	}

	if f, ok := prop.(field); ok {
		// inspect the raw field, as Value allocates empty collections
		return describe(f.v.Interface()), true
	}

	return describe(prop.Value()), true
}

// Isset always reports false, independent of the entity having the property.
//
// Template engines probe for the existence of a member before they access it.
// Answering the probe negatively keeps them from reading struct fields directly,
// which would bypass the Synchronizer. Use CheckPropertyType or Get instead.
func (s *Synchronizer) Isset(_ any, _ string) bool {
	return false
}

func describe(v any) string {
	if isNil(v) {
		return "nil"
	}

	if c, ok := v.(*sliceCollection); ok {
		return c.slice.Kind().String()
	}

	t := reflect.TypeOf(v)

	elem := t
	if elem.Kind() == reflect.Ptr {
		elem = elem.Elem()
	}

	if elem.Kind() == reflect.Struct {
		return t.String()
	}

	return t.Kind().String()
}

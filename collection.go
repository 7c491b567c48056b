package relationship

import (
	"reflect"
)

// Collection is a multi-valued relationship property.
// Membership is unique: Link does nothing if the item is already a member.
// Implementations have to keep the insertion order stable for Values.
type Collection interface {
	Has(item any) bool
	Link(item any)
	Unlink(item any)
	Values() []any
	Len() int
	// Accepts reports whether the item can become a member, e.g. is of the right type.
	Accepts(item any) bool
}

var (
	_ Collection = (*OrderedSet[int])(nil)
	_ Collection = (*sliceCollection)(nil)
)

// NewOrderedSet returns an OrderedSet holding the given items, duplicates are dropped.
func NewOrderedSet[T comparable](items ...T) *OrderedSet[T] {
	set := &OrderedSet[T]{}

	for _, item := range items {
		set.Insert(item)
	}

	return set
}

// OrderedSet is the default Collection for entities.
// The zero value is an empty set ready to use, so it can be embedded
// as a value field in an entity struct.
type OrderedSet[T comparable] struct {
	items []T
}

func (s *OrderedSet[T]) Contains(item T) bool {
	for _, i := range s.items {
		if i == item {
			return true
		}
	}

	return false
}

// Insert adds the item if it is not a member yet.
func (s *OrderedSet[T]) Insert(item T) {
	if !s.Contains(item) {
		s.items = append(s.items, item)
	}
}

// Delete removes the item, if it is a member.
func (s *OrderedSet[T]) Delete(item T) {
	for i, v := range s.items {
		if v == item {
			s.items = append(s.items[:i:i], s.items[i+1:]...)

			return
		}
	}
}

// All returns a copy of the members in insertion order.
func (s *OrderedSet[T]) All() []T {
	all := make([]T, len(s.items))
	copy(all, s.items)

	return all
}

func (s *OrderedSet[T]) Has(item any) bool {
	v, ok := item.(T)

	return ok && s.Contains(v)
}

func (s *OrderedSet[T]) Link(item any) {
	if v, ok := item.(T); ok {
		s.Insert(v)
	}
}

func (s *OrderedSet[T]) Unlink(item any) {
	if v, ok := item.(T); ok {
		s.Delete(v)
	}
}

func (s *OrderedSet[T]) Values() []any {
	values := make([]any, 0, len(s.items))
	for _, i := range s.items {
		values = append(values, i)
	}

	return values
}

func (s *OrderedSet[T]) Len() int {
	return len(s.items)
}

func (s *OrderedSet[T]) Accepts(item any) bool {
	_, ok := item.(T)

	return ok
}

// sliceCollection makes a settable slice field of an entity usable as Collection.
type sliceCollection struct {
	slice reflect.Value
}

func (c *sliceCollection) index(item any) int {
	for i := range c.slice.Len() {
		if same(c.slice.Index(i).Interface(), item) {
			return i
		}
	}

	return -1
}

func (c *sliceCollection) Has(item any) bool {
	return c.index(item) >= 0
}

func (c *sliceCollection) Link(item any) {
	if !c.Accepts(item) || c.Has(item) {
		return
	}

	c.slice.Set(reflect.Append(c.slice, reflect.ValueOf(item)))
}

func (c *sliceCollection) Unlink(item any) {
	i := c.index(item)
	if i < 0 {
		return
	}

	n := c.slice.Len()
	rest := reflect.MakeSlice(c.slice.Type(), 0, n-1)
	rest = reflect.AppendSlice(rest, c.slice.Slice(0, i))
	rest = reflect.AppendSlice(rest, c.slice.Slice(i+1, n))

	c.slice.Set(rest)
}

func (c *sliceCollection) Values() []any {
	values := make([]any, 0, c.slice.Len())
	for i := range c.slice.Len() {
		values = append(values, c.slice.Index(i).Interface())
	}

	return values
}

func (c *sliceCollection) Len() int {
	return c.slice.Len()
}

func (c *sliceCollection) Accepts(item any) bool {
	if item == nil {
		return false
	}

	return reflect.TypeOf(item).AssignableTo(c.slice.Type().Elem())
}

// same compares two values for identity without panicking on uncomparable types.
func same(a, b any) bool {
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}

	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}

	return a == b
}

func isNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() { //nolint:exhaustive // only nilable kinds are of interest
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

package aassert

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-arrower/relationship"
)

// Linked asserts that both sides of a relationship point to each other:
// entity's property contains or equals item, and item's inverse contains or equals entity.
func Linked(t *testing.T, entity any, property string, item any, inverse string, msgAndArgs ...any) bool {
	t.Helper()

	forward, err := refersTo(entity, property, item)
	if err != nil {
		return assert.Fail(t, err.Error(), msgAndArgs...)
	}

	backward, err := refersTo(item, inverse, entity)
	if err != nil {
		return assert.Fail(t, err.Error(), msgAndArgs...)
	}

	switch {
	case !forward && !backward:
		return assert.Fail(t, fmt.Sprintf("entities are not linked via %s/%s", property, inverse), msgAndArgs...)
	case !forward:
		return assert.Fail(t, fmt.Sprintf("only the inverse side %s is linked, %s is not", inverse, property), msgAndArgs...)
	case !backward:
		return assert.Fail(t, fmt.Sprintf("only the side %s is linked, inverse %s is not", property, inverse), msgAndArgs...)
	}

	return true
}

// NotLinked asserts that neither side of a relationship points to the other.
func NotLinked(t *testing.T, entity any, property string, item any, inverse string, msgAndArgs ...any) bool {
	t.Helper()

	forward, err := refersTo(entity, property, item)
	if err != nil {
		return assert.Fail(t, err.Error(), msgAndArgs...)
	}

	backward, err := refersTo(item, inverse, entity)
	if err != nil {
		return assert.Fail(t, err.Error(), msgAndArgs...)
	}

	switch {
	case forward && backward:
		return assert.Fail(t, fmt.Sprintf("entities are linked via %s/%s, should not be", property, inverse), msgAndArgs...)
	case forward:
		return assert.Fail(t, fmt.Sprintf("side %s is still linked", property), msgAndArgs...)
	case backward:
		return assert.Fail(t, fmt.Sprintf("inverse side %s is still linked", inverse), msgAndArgs...)
	}

	return true
}

// Members asserts that the collection property holds exactly the expected items, ignoring the order.
func Members(t *testing.T, entity any, property string, expected []any, msgAndArgs ...any) bool {
	t.Helper()

	value, err := relationship.New().Get(context.Background(), entity, property)
	if err != nil {
		return assert.Fail(t, err.Error(), msgAndArgs...)
	}

	c, ok := value.(relationship.Collection)
	if !ok {
		return assert.Fail(t, fmt.Sprintf("property %s is not a collection, it is: %T", property, value), msgAndArgs...)
	}

	return assert.ElementsMatch(t, expected, c.Values(), msgAndArgs...)
}

func refersTo(entity any, property string, item any) (bool, error) {
	value, err := relationship.New().Get(context.Background(), entity, property)
	if err != nil {
		return false, fmt.Errorf("could not read relationship: %w", err)
	}

	if c, ok := value.(relationship.Collection); ok {
		return c.Has(item), nil
	}

	return value == item, nil
}

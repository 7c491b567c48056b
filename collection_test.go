package relationship_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-arrower/relationship"
)

func TestOrderedSet(t *testing.T) {
	t.Parallel()

	t.Run("zero value is usable", func(t *testing.T) {
		t.Parallel()

		var set relationship.OrderedSet[string]

		assert.Equal(t, 0, set.Len())
		assert.Empty(t, set.All())
		assert.Empty(t, set.Values())

		set.Insert("a")
		assert.True(t, set.Contains("a"))
	})

	t.Run("unique members in insertion order", func(t *testing.T) {
		t.Parallel()

		set := relationship.NewOrderedSet("b", "a", "b", "c")

		assert.Equal(t, []string{"b", "a", "c"}, set.All())
		assert.Equal(t, []any{"b", "a", "c"}, set.Values())
		assert.Equal(t, 3, set.Len())
	})

	t.Run("delete keeps the order", func(t *testing.T) {
		t.Parallel()

		set := relationship.NewOrderedSet(1, 2, 3, 4)
		all := set.All()

		set.Delete(2)
		set.Delete(42)

		assert.Equal(t, []int{1, 3, 4}, set.All())
		assert.Equal(t, []int{1, 2, 3, 4}, all, "copies are not changed")
	})

	t.Run("collection methods ignore other types", func(t *testing.T) {
		t.Parallel()

		set := relationship.NewOrderedSet(1)

		set.Link("1")
		set.Link(nil)
		set.Unlink("1")

		assert.False(t, set.Has("1"))
		assert.False(t, set.Has(nil))
		assert.True(t, set.Has(1))
		assert.True(t, set.Accepts(2))
		assert.False(t, set.Accepts("2"))
		assert.Equal(t, []int{1}, set.All())

		set.Link(2)
		set.Unlink(1)
		assert.Equal(t, []int{2}, set.All())
	})
}

func TestSliceCollection(t *testing.T) {
	t.Parallel()

	// slices are accessed through the Synchronizer only
	s := relationship.New()
	author, b0, b1 := newAuthor(), newBook(), newBook()

	_ = s.Link(ctx, author, "books", b0)
	_ = s.Link(ctx, author, "books", b1)
	_ = s.Link(ctx, author, "books", b0)

	value, err := s.Get(ctx, author, "books")
	assert.NoError(t, err)

	c, ok := value.(relationship.Collection)
	assert.True(t, ok)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []any{b0, b1}, c.Values())
	assert.True(t, c.Accepts(b0))
	assert.False(t, c.Accepts(author))
	assert.False(t, c.Accepts(nil))

	c.Unlink(b0)
	assert.Equal(t, []*Book{b1}, author.Books)

	c.Unlink(b0)
	c.Unlink("not a book")
	assert.Equal(t, []*Book{b1}, author.Books)
}

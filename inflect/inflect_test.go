package inflect_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-arrower/relationship/inflect"
)

func TestEnglish(t *testing.T) {
	t.Parallel()

	tests := []struct {
		testName string
		opts     []inflect.Option
		word     string
		expected string
	}{
		{"empty", nil, "", ""},
		{"regular", nil, "author", "authors"},
		{"ending y", nil, "category", "categories"},
		{"irregular", nil, "person", "people"},
		{"already plural", nil, "books", "books"},
		{"camel case keeps prefix", nil, "coAuthor", "coAuthors"},
		{"custom irregular", []inflect.Option{inflect.WithIrregular("octopus", "octopodes")}, "octopus", "octopodes"},
		{"custom irregular is case insensitive", []inflect.Option{inflect.WithIrregular("Octopus", "octopodes")}, "octopus", "octopodes"},
		{"custom plural is kept", []inflect.Option{inflect.WithIrregular("octopus", "octopodes")}, "octopodes", "octopodes"},
	}

	for _, tt := range tests {
		t.Run(tt.testName, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, inflect.English(tt.opts...).Plural(tt.word))
		})
	}
}

func TestEnglish_IrregularIsLocal(t *testing.T) {
	t.Parallel()

	custom := inflect.English(inflect.WithIrregular("author", "writers"))

	assert.Equal(t, "writers", custom.Plural("author"))
	assert.Equal(t, "authors", inflect.English().Plural("author"), "other pluralizers are not affected")
}

func TestIdentity(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "author", inflect.Identity().Plural("author"))
}

func TestPluralizerFunc(t *testing.T) {
	t.Parallel()

	p := inflect.PluralizerFunc(strings.ToUpper)

	assert.Equal(t, "AUTHOR", p.Plural("author"))
}

// Package inflect provides the naming services used to resolve relationship properties.
//
// A Pluralizer maps a singular word to its plural, e.g. "author" to "authors".
// Words that are plural already or unknown are expected to be returned as they are.
package inflect

import (
	"strings"

	"github.com/jinzhu/inflection"
)

type Pluralizer interface {
	Plural(word string) string
}

// PluralizerFunc is an adapter to use ordinary functions as Pluralizer.
type PluralizerFunc func(word string) string

func (f PluralizerFunc) Plural(word string) string {
	return f(word)
}

// Option configures the English Pluralizer.
type Option func(*english)

// WithIrregular registers an irregular plural, e.g. WithIrregular("cactus", "cacti").
// It only applies to the returned Pluralizer and does not change the global inflection rules.
func WithIrregular(singular string, plural string) Option {
	return func(e *english) {
		e.irregular[strings.ToLower(singular)] = plural
	}
}

// English returns a Pluralizer following the english inflection rules.
func English(opts ...Option) Pluralizer { //nolint:ireturn // callers depend on the interface only
	e := &english{irregular: map[string]string{}}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

type english struct {
	irregular map[string]string
}

func (e *english) Plural(word string) string {
	if word == "" {
		return word
	}

	if plural, ok := e.irregular[strings.ToLower(word)]; ok {
		return plural
	}

	for _, plural := range e.irregular {
		if plural == word {
			return word
		}
	}

	return inflection.Plural(word)
}

// Identity returns a Pluralizer that never changes a word.
// Use it to disable the plural fallback of the property resolution.
func Identity() Pluralizer { //nolint:ireturn // callers depend on the interface only
	return PluralizerFunc(func(word string) string { return word })
}

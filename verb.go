package relationship

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fatih/camelcase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Verb is the operation requested on a relationship property.
type Verb int

const (
	// Access is the bare property access, e.g. used by templates.
	Access Verb = iota
	Set
	Get
	Link
	Unlink
	Add
	Remove
	Has
)

var verbNames = map[Verb]string{
	Access: "",
	Set:    "set",
	Get:    "get",
	Link:   "link",
	Unlink: "unlink",
	Add:    "add",
	Remove: "remove",
	Has:    "has",
}

func (v Verb) String() string {
	if name, ok := verbNames[v]; ok {
		return name
	}

	return "verb(" + strconv.Itoa(int(v)) + ")"
}

// Method returns the method name calling the verb on the given property,
// e.g. Add.Method("author") returns "addAuthor".
func (v Verb) Method(property string) string {
	if v == Access {
		return property
	}

	return v.String() + cases.Title(language.Und, cases.NoLower).String(property)
}

// ParseMethod splits a method name of the form <verb><Property> into its verb
// and the lower-camel property name.
// Names not starting with a known verb are bare property access: the verb is
// Access and the property is the method name as is.
func ParseMethod(method string) (Verb, string) {
	words := camelcase.Split(strings.TrimSpace(method))
	if len(words) < 2 { //nolint:mnd // a verb and at least one word of the property
		return Access, method
	}

	first, rest := words[0], words[1:]

	// unLink is accepted as an alias of unlink
	if first == "un" && rest[0] == "Link" {
		first, rest = "unlink", rest[1:]
	}

	verb, found := lookupVerb(first)
	if !found || len(rest) == 0 || !isUpper(rest[0]) {
		return Access, method
	}

	return verb, lowerFirst(strings.Join(rest, ""))
}

func lookupVerb(word string) (Verb, bool) {
	for verb, name := range verbNames {
		if verb != Access && name == word {
			return verb, true
		}
	}

	return Access, false
}

func isUpper(word string) bool {
	r, _ := utf8.DecodeRuneInString(word)

	return unicode.IsUpper(r)
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}

	return string(unicode.ToLower(r)) + s[size:]
}

package relationship

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Cardinality is the number of entities a relationship property holds.
type Cardinality string

const (
	ToOne  Cardinality = "one"
	ToMany Cardinality = "many"
)

// Cardinalities is the list of all supported cardinalities.
func Cardinalities() []Cardinality {
	return []Cardinality{ToOne, ToMany}
}

// Relation describes one end of a bidirectional relationship:
// the Property of the Owner type points to entities of the Target type,
// which point back through their Inverse property.
// Owner and Target are unqualified type names, e.g. "Book".
type Relation struct {
	Owner       string
	Property    string
	Target      string
	Inverse     string
	Cardinality Cardinality
}

func (r Relation) String() string {
	return r.Owner + "." + r.Property + " -> " + r.Target + "." + r.Inverse
}

func (r Relation) validate() error {
	var missing []string

	for name, v := range map[string]string{
		"owner":    r.Owner,
		"property": r.Property,
		"target":   r.Target,
		"inverse":  r.Inverse,
	} {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		slices.Sort(missing)

		return fmt.Errorf("%w: %s: missing %s", ErrInvalidRelation, r, strings.Join(missing, ", "))
	}

	if r.Cardinality != "" && !slices.Contains(Cardinalities(), r.Cardinality) {
		return fmt.Errorf("%w: %s: unknown cardinality: %s", ErrInvalidRelation, r, r.Cardinality)
	}

	return nil
}

type relationKey struct {
	owner    string
	property string
}

// Registry is a static table of relations.
// If a Synchronizer has a Registry, it is consulted for the inverse property
// instead of deriving the inverse from the entity's type name.
type Registry struct {
	relations map[relationKey]Relation
}

// NewRegistry returns a Registry of the given relations.
// It fails if a relation is incomplete, declared twice, or if both ends
// of a relationship are declared and do not point at each other.
func NewRegistry(relations ...Relation) (*Registry, error) {
	reg := &Registry{relations: make(map[relationKey]Relation, len(relations))}

	var errs []error

	for _, rel := range relations {
		if err := rel.validate(); err != nil {
			errs = append(errs, err)

			continue
		}

		key := relationKey{owner: rel.Owner, property: rel.Property}
		if _, exists := reg.relations[key]; exists {
			errs = append(errs, fmt.Errorf("%w: %s: declared twice", ErrInvalidRelation, rel))

			continue
		}

		reg.relations[key] = rel
	}

	reported := map[Relation]bool{}

	for _, rel := range reg.Relations() {
		inverse, ok := reg.relations[relationKey{owner: rel.Target, property: rel.Inverse}]
		if !ok || reported[rel] {
			continue
		}

		if inverse.Target != rel.Owner || inverse.Inverse != rel.Property {
			reported[inverse] = true

			errs = append(errs, fmt.Errorf("%w: %s does not mirror %s", ErrInvalidRelation, inverse, rel))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return reg, nil
}

// Lookup returns the relation declared for the property of the owner type.
func (r *Registry) Lookup(owner string, property string) (Relation, bool) {
	if r == nil {
		return Relation{}, false
	}

	rel, ok := r.relations[relationKey{owner: owner, property: property}]

	return rel, ok
}

// Relations returns all relations sorted by owner and property.
func (r *Registry) Relations() []Relation {
	if r == nil {
		return nil
	}

	all := make([]Relation, 0, len(r.relations))
	for _, rel := range r.relations {
		all = append(all, rel)
	}

	slices.SortFunc(all, func(a, b Relation) int {
		if c := strings.Compare(a.Owner, b.Owner); c != 0 {
			return c
		}

		return strings.Compare(a.Property, b.Property)
	})

	return all
}

// Verify checks the relations against prototype entities, e.g. &Book{}:
// every declared property of a prototype's type has to exist
// and hold the declared cardinality.
// Relations of types without a prototype are skipped.
func (r *Registry) Verify(prototypes ...any) error {
	byType := make(map[string]any, len(prototypes))
	for _, p := range prototypes {
		byType[entityType(p)] = p
	}

	var errs []error

	for _, rel := range r.Relations() {
		entity, ok := byType[rel.Owner]
		if !ok {
			continue
		}

		prop, ok := lookupProperty(entity, rel.Property)
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %s: %s has no property %s", ErrInvalidRelation, rel, rel.Owner, rel.Property))

			continue
		}

		_, isCollection := prop.Value().(Collection)

		switch {
		case rel.Cardinality == ToMany && !isCollection:
			errs = append(errs, fmt.Errorf("%w: %s: property is not a collection", ErrInvalidRelation, rel))
		case rel.Cardinality == ToOne && isCollection:
			errs = append(errs, fmt.Errorf("%w: %s: property is a collection", ErrInvalidRelation, rel))
		}
	}

	return errors.Join(errs...)
}

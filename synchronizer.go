package relationship

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/go-arrower/relationship/alog"
	"github.com/go-arrower/relationship/inflect"
)

// Option configures a Synchronizer.
type Option func(*Synchronizer)

// WithLogger sets the logger. The Synchronizer logs on alog.LevelDebug and alog.LevelInfo only.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Synchronizer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTracerProvider sets the provider used to trace every call.
func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(s *Synchronizer) {
		if provider != nil {
			s.tracer = provider.Tracer("github.com/go-arrower/relationship")
		}
	}
}

// WithPluralizer sets the naming service used for the plural fallback of property names.
func WithPluralizer(p inflect.Pluralizer) Option {
	return func(s *Synchronizer) {
		if p != nil {
			s.plural = p
		}
	}
}

// WithRelations sets a static relation table. Relations found in it take
// precedence over deriving the inverse property from the entity's type name.
func WithRelations(reg *Registry) Option {
	return func(s *Synchronizer) {
		s.relations = reg
	}
}

// New returns a Synchronizer. Without options, it does not log or trace,
// pluralises english words and derives inverse properties from type names.
func New(opts ...Option) *Synchronizer {
	syncer := &Synchronizer{
		logger:    alog.NewNoop(),
		tracer:    noop.NewTracerProvider().Tracer(""),
		plural:    inflect.English(),
		relations: nil,
	}

	for _, opt := range opts {
		opt(syncer)
	}

	return syncer
}

// Synchronizer keeps both sides of a bidirectional relationship consistent.
// It holds no state about entities and is safe to share. The entities passed
// to it are not synchronised: only one goroutine may mutate a connected part
// of the object graph at a time.
type Synchronizer struct {
	logger    *slog.Logger
	tracer    trace.Tracer
	plural    inflect.Pluralizer
	relations *Registry
}

// Call invokes a method of the form <verb><Property> on the entity,
// e.g. Call(ctx, book, "addAuthor", author). A method without a known verb
// is a bare property access, e.g. Call(ctx, book, "authors").
//
// Set, Add and Remove return the entity itself, Get and Access the property value,
// Has a bool and Link and Unlink nil.
func (s *Synchronizer) Call(ctx context.Context, entity any, method string, args ...any) (any, error) {
	verb, property := ParseMethod(method)

	if len(args) > 1 {
		return nil, &CallError{
			Method:   method,
			Property: property,
			Entity:   entityType(entity),
			Err:      fmt.Errorf("%w: expected at most one argument, got %d", ErrInvalidArgument, len(args)),
		}
	}

	var arg any
	if len(args) == 1 {
		arg = args[0]
	}

	return s.call(ctx, entity, method, verb, property, arg)
}

// Do is the explicit form of Call: it performs the verb on the property of the entity.
func (s *Synchronizer) Do(ctx context.Context, entity any, verb Verb, property string, arg any) (any, error) {
	return s.call(ctx, entity, verb.Method(property), verb, property, arg)
}

// Set replaces the value of a singular property or the members of a collection,
// and updates the inverse side of all entities linked or unlinked.
// A nil value unsets a singular property and empties a collection.
func (s *Synchronizer) Set(ctx context.Context, entity any, property string, value any) error {
	_, err := s.Do(ctx, entity, Set, property, value)

	return err
}

// Get returns the related entity of a singular property or the live Collection.
func (s *Synchronizer) Get(ctx context.Context, entity any, property string) (any, error) {
	return s.Do(ctx, entity, Get, property, nil)
}

// Add adds the item to a collection and links the entity on the item's inverse side.
func (s *Synchronizer) Add(ctx context.Context, entity any, property string, item any) error {
	_, err := s.Do(ctx, entity, Add, property, item)

	return err
}

// Remove removes the item from a collection and unlinks the entity on the item's inverse side.
func (s *Synchronizer) Remove(ctx context.Context, entity any, property string, item any) error {
	_, err := s.Do(ctx, entity, Remove, property, item)

	return err
}

// Has reports whether the item is a member of the collection.
func (s *Synchronizer) Has(ctx context.Context, entity any, property string, item any) (bool, error) {
	has, err := s.Do(ctx, entity, Has, property, item)
	if err != nil {
		return false, err
	}

	return has.(bool), nil //nolint:forcetypeassert // Has always returns a bool
}

// Link changes only the entity's side of the relationship.
// Prefer Set and Add to keep both sides consistent.
func (s *Synchronizer) Link(ctx context.Context, entity any, property string, item any) error {
	_, err := s.Do(ctx, entity, Link, property, item)

	return err
}

// Unlink changes only the entity's side of the relationship.
// Prefer Set and Remove to keep both sides consistent.
func (s *Synchronizer) Unlink(ctx context.Context, entity any, property string, item any) error {
	_, err := s.Do(ctx, entity, Unlink, property, item)

	return err
}

func (s *Synchronizer) call(ctx context.Context, entity any, method string, verb Verb, property string, arg any) (any, error) {
	typ := entityType(entity)

	spanName := verb.String()
	if verb == Access {
		spanName = "access"
	}

	ctx, span := s.tracer.Start(ctx, "relationship."+spanName, trace.WithAttributes(
		attribute.String("entity", typ),
		attribute.String("method", method),
		attribute.String("property", property),
	))
	defer span.End()

	ctx = alog.AddAttrs(ctx, slog.String("entity", typ), slog.String("method", method))

	s.logger.Log(ctx, alog.LevelDebug, "dispatch call", slog.String("verb", verb.String()), slog.String("property", property))

	result, err := s.dispatch(ctx, entity, method, verb, property, arg)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		s.logger.Log(ctx, alog.LevelInfo, "call failed", slog.String("err", err.Error()))

		return nil, err
	}

	return result, nil
}

func (s *Synchronizer) dispatch(ctx context.Context, entity any, method string, verb Verb, property string, arg any) (any, error) {
	self, err := s.resolve(entity, method, property)
	if err != nil {
		return nil, err
	}

	// the shape is detected on every call, the current value is the source of truth
	if c, ok := self.collection(); ok {
		s.logger.Log(ctx, alog.LevelDebug, "use collection strategy", slog.String("property", self.name))

		return s.onCollection(ctx, self, c, verb, arg)
	}

	s.logger.Log(ctx, alog.LevelDebug, "use scalar strategy", slog.String("property", self.name))

	return s.onScalar(ctx, self, verb, arg)
}

func (s *Synchronizer) onScalar(ctx context.Context, self member, verb Verb, arg any) (any, error) {
	switch verb { //nolint:exhaustive // the remaining verbs are not supported for scalars
	case Access, Get:
		return self.prop.Value(), nil
	case Link:
		if !self.prop.Assignable(arg) {
			return nil, self.fail(invalidItem(arg))
		}

		s.linkStep(ctx, self, arg)()

		return nil, nil
	case Unlink:
		if !self.prop.Assignable(nil) {
			return nil, self.fail(fmt.Errorf("%w: property cannot be empty", ErrInvalidArgument))
		}

		if current := self.prop.Value(); current != nil {
			s.unlinkStep(ctx, self, current)()
		}

		return nil, nil
	case Set:
		steps, err := s.planScalarSet(ctx, self, arg)
		if err != nil {
			return nil, err
		}

		steps.apply()

		return self.entity, nil
	default:
		return nil, self.fail(ErrUnsupportedVerb)
	}
}

func (s *Synchronizer) onCollection(ctx context.Context, self member, c Collection, verb Verb, arg any) (any, error) {
	var (
		steps plan
		err   error
	)

	switch verb {
	case Access, Get:
		return c, nil
	case Has:
		return !isNil(arg) && c.Has(arg), nil
	case Link:
		if isNil(arg) || !c.Accepts(arg) {
			return nil, self.fail(invalidItem(arg))
		}

		s.linkStep(ctx, self, arg)()

		return nil, nil
	case Unlink:
		s.unlinkStep(ctx, self, arg)()

		return nil, nil
	case Add:
		steps, err = s.planAdd(ctx, self, c, arg)
	case Remove:
		steps, err = s.planRemove(ctx, self, arg)
	case Set:
		steps, err = s.planCollectionSet(ctx, self, c, arg)
	default:
		return nil, self.fail(ErrUnsupportedVerb)
	}

	if err != nil {
		return nil, err
	}

	steps.apply()

	return self.entity, nil
}

// planScalarSet links the value on both sides. The previous value and
// a previous holder of the value are unlinked on both sides as well.
func (s *Synchronizer) planScalarSet(ctx context.Context, self member, value any) (plan, error) {
	current := self.prop.Value()

	if isNil(value) {
		if current == nil {
			return nil, nil
		}

		inverse, err := s.inverse(self, current, Unlink)
		if err != nil {
			return nil, err
		}

		return plan{s.unlinkStep(ctx, self, current), s.unlinkStep(ctx, inverse, self.entity)}, nil
	}

	if !self.prop.Assignable(value) {
		return nil, self.fail(invalidItem(value))
	}

	inverse, err := s.inverse(self, value, Link)
	if err != nil {
		return nil, err
	}

	var steps plan

	if current != nil && !same(current, value) {
		previous, err := s.inverse(self, current, Unlink)
		if err != nil {
			return nil, err
		}

		steps = append(steps, s.unlinkStep(ctx, previous, self.entity))
	}

	displaced, err := s.planDisplace(ctx, self, inverse)
	if err != nil {
		return nil, err
	}

	steps = append(steps, displaced...)
	steps = append(steps, s.linkStep(ctx, self, value), s.linkStep(ctx, inverse, self.entity))

	return steps, nil
}

func (s *Synchronizer) planAdd(ctx context.Context, self member, c Collection, item any) (plan, error) {
	if isNil(item) || !c.Accepts(item) {
		return nil, self.fail(invalidItem(item))
	}

	inverse, err := s.inverse(self, item, Link)
	if err != nil {
		return nil, err
	}

	displaced, err := s.planDisplace(ctx, self, inverse)
	if err != nil {
		return nil, err
	}

	return append(displaced, s.linkStep(ctx, self, item), s.linkStep(ctx, inverse, self.entity)), nil
}

func (s *Synchronizer) planRemove(ctx context.Context, self member, item any) (plan, error) {
	if isNil(item) {
		return nil, self.fail(invalidItem(item))
	}

	inverse, err := s.inverse(self, item, Unlink)
	if err != nil {
		return nil, err
	}

	return plan{s.unlinkStep(ctx, self, item), s.unlinkStep(ctx, inverse, self.entity)}, nil
}

// planCollectionSet removes all members not in items first and adds all items second.
// Members that stay are not touched, as Add is idempotent.
func (s *Synchronizer) planCollectionSet(ctx context.Context, self member, c Collection, arg any) (plan, error) {
	items, err := toItems(arg)
	if err != nil {
		return nil, self.fail(err)
	}

	var steps plan

	for _, current := range c.Values() {
		if containsItem(items, current) {
			continue
		}

		removal, err := s.planRemove(ctx, self, current)
		if err != nil {
			return nil, err
		}

		steps = append(steps, removal...)
	}

	for _, item := range items {
		addition, err := s.planAdd(ctx, self, c, item)
		if err != nil {
			return nil, err
		}

		steps = append(steps, addition...)
	}

	return steps, nil
}

// planDisplace unlinks the entity that currently holds a singular inverse property,
// before it is overwritten to point to self. Without it, the previous holder would
// still list the item, e.g. an author keeping a book that was moved to another author.
func (s *Synchronizer) planDisplace(ctx context.Context, self member, inverse member) (plan, error) {
	if _, ok := inverse.collection(); ok {
		return nil, nil
	}

	holder := inverse.prop.Value()
	if holder == nil || same(holder, self.entity) {
		return nil, nil
	}

	previous, err := s.resolve(holder, Unlink.Method(self.name), self.name)
	if err != nil {
		return nil, err
	}

	return plan{s.unlinkStep(ctx, previous, inverse.entity)}, nil
}

// inverse resolves the property of the item pointing back to self.
// Its name is taken from the Registry or derived from the type name of self,
// and resolved the same way as the forward property: literal first, plural second.
func (s *Synchronizer) inverse(self member, item any, verb Verb) (member, error) {
	name := lowerFirst(self.typ)

	if rel, ok := s.relations.Lookup(self.typ, self.name); ok {
		if itemType := entityType(item); itemType != rel.Target {
			return member{}, self.fail(fmt.Errorf("%w: %s expects %s, got %s", ErrInvalidRelation, rel, rel.Target, itemType))
		}

		name = rel.Inverse
	}

	inverse, err := s.resolve(item, verb.Method(name), name)
	if err != nil {
		return member{}, err
	}

	if verb == Link && !inverse.accepts(self.entity) {
		return member{}, inverse.fail(invalidItem(self.entity))
	}

	return inverse, nil
}

// resolve looks up the property on the entity, and if it does not exist, its plural.
func (s *Synchronizer) resolve(entity any, method string, property string) (member, error) {
	typ := entityType(entity)

	if isNil(entity) {
		return member{}, &CallError{Method: method, Property: property, Entity: typ, Err: ErrInvalidArgument}
	}

	names := []string{property}
	if plural := s.plural.Plural(property); plural != property {
		names = append(names, plural)
	}

	for _, name := range names {
		if prop, ok := lookupProperty(entity, name); ok && prop != nil {
			return member{entity: entity, typ: typ, name: name, method: method, prop: prop}, nil
		}
	}

	return member{}, &CallError{Method: method, Property: names[len(names)-1], Entity: typ, Err: ErrUnknownMember}
}

func (s *Synchronizer) linkStep(ctx context.Context, m member, item any) func() {
	return func() {
		m.link(item)
		s.logger.Log(ctx, alog.LevelInfo, "link",
			slog.String("property", m.typ+"."+m.name),
			slog.String("item", entityType(item)),
		)
	}
}

func (s *Synchronizer) unlinkStep(ctx context.Context, m member, item any) func() {
	return func() {
		m.unlink(item)
		s.logger.Log(ctx, alog.LevelInfo, "unlink",
			slog.String("property", m.typ+"."+m.name),
			slog.String("item", entityType(item)),
		)
	}
}

// plan is the list of mutations of one call. It is only applied after
// every entity involved has been resolved successfully.
type plan []func()

func (p plan) apply() {
	for _, step := range p {
		step()
	}
}

// member is a resolved relationship property of an entity.
type member struct {
	entity any
	typ    string
	name   string
	method string
	prop   Property
}

func (m member) collection() (Collection, bool) {
	c, ok := m.prop.Value().(Collection)

	return c, ok
}

func (m member) accepts(item any) bool {
	if c, ok := m.collection(); ok {
		return c.Accepts(item)
	}

	return m.prop.Assignable(item)
}

func (m member) link(item any) {
	if c, ok := m.collection(); ok {
		c.Link(item)

		return
	}

	_ = m.prop.Assign(item) // assignability is checked while planning
}

// unlink removes the item. A singular property is only cleared, if it still points to the item.
func (m member) unlink(item any) {
	if c, ok := m.collection(); ok {
		c.Unlink(item)

		return
	}

	if same(m.prop.Value(), item) {
		_ = m.prop.Assign(nil)
	}
}

func (m member) fail(err error) error {
	return &CallError{Method: m.method, Property: m.name, Entity: m.typ, Err: err}
}

func invalidItem(item any) error {
	if isNil(item) {
		return fmt.Errorf("%w: item is nil", ErrInvalidArgument)
	}

	return fmt.Errorf("%w: item of type %T is not accepted", ErrInvalidArgument, item)
}

// toItems returns the members of a Collection, slice or array.
func toItems(arg any) ([]any, error) {
	if isNil(arg) {
		return nil, nil
	}

	if c, ok := arg.(Collection); ok {
		return c.Values(), nil
	}

	v := reflect.ValueOf(arg)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return nil, fmt.Errorf("%w: expected a collection or slice, got %T", ErrInvalidArgument, arg)
	}

	items := make([]any, 0, v.Len())
	for i := range v.Len() {
		items = append(items, v.Index(i).Interface())
	}

	return items, nil
}

func containsItem(items []any, item any) bool {
	for _, i := range items {
		if same(i, item) {
			return true
		}
	}

	return false
}

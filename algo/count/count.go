// Package count builds counters of composite values.
//
// A counter reports how many composite values (objects with at least one
// property) are reachable from a value, following properties, elements, map
// entries, optionals, surrogates and union cases. Scalars, enums and
// functions have nothing to count; their artifact is shape.Absent.
package count

import (
	"context"
	"reflect"

	"github.com/jonwraymond/shapeops/cache"
	"github.com/jonwraymond/shapeops/shape"
)

// Func counts the composite values reachable from v.
type Func func(v any) int

func zero(any) int { return 0 }

// New creates a counter cache over provider.
func New(provider shape.Provider, opts ...cache.Option) (*cache.Cache, error) {
	base := []cache.Option{
		cache.WithDeferred(cache.Deferred(func(get func() Func) Func {
			return func(v any) int { return get()(v) }
		})),
	}
	return cache.New(provider, Factory, append(base, opts...)...)
}

// Factory creates the counting visitor for one generation.
func Factory(r cache.Resolver) shape.Visitor {
	return &builder{r: r}
}

// Of returns the counter for t. Types with nothing to count get a counter
// that always returns zero.
func Of(ctx context.Context, c *cache.Cache, t reflect.Type) (Func, error) {
	v, err := c.GetOrAdd(ctx, t)
	if err != nil {
		return nil, err
	}
	return asFunc(v)
}

// For returns the counter for T.
func For[T any](ctx context.Context, c *cache.Cache) (Func, error) {
	return Of(ctx, c, reflect.TypeFor[T]())
}

func asFunc(v any) (Func, error) {
	if shape.IsAbsent(v) {
		return zero, nil
	}
	return cache.As[Func](v)
}

type builder struct {
	r cache.Resolver
}

// resolve returns the counter for s, or nil when s has nothing to count.
func (b *builder) resolve(s shape.Shape) (Func, error) {
	v, err := b.r.Resolve(s)
	if err != nil {
		return nil, err
	}
	if shape.IsAbsent(v) {
		return nil, nil
	}
	return cache.As[Func](v)
}

func (b *builder) VisitObject(s *shape.Object, _ any) (any, error) {
	if len(s.Properties) == 0 {
		return shape.Absent, nil
	}

	type member struct {
		get   func(any) any
		count Func
	}
	var members []member
	for _, p := range s.Properties {
		if !p.CanRead() {
			continue
		}
		f, err := b.resolve(p.Shape)
		if err != nil {
			return nil, err
		}
		if f != nil {
			members = append(members, member{get: p.Get, count: f})
		}
	}

	return Func(func(v any) int {
		n := 1
		for _, m := range members {
			n += m.count(m.get(v))
		}
		return n
	}), nil
}

func (b *builder) VisitSequence(s *shape.Sequence, _ any) (any, error) {
	elem, err := b.resolve(s.Element)
	if err != nil || elem == nil {
		return shape.Absent, err
	}
	return Func(func(v any) int {
		n := 0
		for e := range s.Elements(v) {
			n += elem(e)
		}
		return n
	}), nil
}

func (b *builder) VisitMap(s *shape.Map, _ any) (any, error) {
	key, err := b.resolve(s.Key)
	if err != nil {
		return nil, err
	}
	value, err := b.resolve(s.Value)
	if err != nil {
		return nil, err
	}
	if key == nil && value == nil {
		return shape.Absent, nil
	}
	if key == nil {
		key = zero
	}
	if value == nil {
		value = zero
	}
	return Func(func(v any) int {
		n := 0
		for k, val := range s.Entries(v) {
			n += key(k) + value(val)
		}
		return n
	}), nil
}

func (b *builder) VisitEnum(*shape.Enum, any) (any, error) {
	return shape.Absent, nil
}

func (b *builder) VisitOptional(s *shape.Optional, _ any) (any, error) {
	elem, err := b.resolve(s.Element)
	if err != nil || elem == nil {
		return shape.Absent, err
	}
	return Func(func(v any) int {
		e, ok := s.Deconstruct(v)
		if !ok {
			return 0
		}
		return elem(e)
	}), nil
}

func (b *builder) VisitSurrogate(s *shape.Surrogate, _ any) (any, error) {
	inner, err := b.resolve(s.Surrogate)
	if err != nil || inner == nil {
		return shape.Absent, err
	}
	return Func(func(v any) int {
		sv, err := s.Marshaller.ToSurrogate(v)
		if err != nil {
			return 0
		}
		return inner(sv)
	}), nil
}

func (b *builder) VisitUnion(s *shape.Union, _ any) (any, error) {
	// The base shares the union's type, so it is visited in place.
	v, err := s.Base.Accept(b, nil)
	if err != nil {
		return nil, err
	}
	var base Func
	if !shape.IsAbsent(v) {
		if base, err = cache.As[Func](v); err != nil {
			return nil, err
		}
	}
	cases := make([]Func, len(s.Cases))
	found := base != nil
	for i, c := range s.Cases {
		if cases[i], err = b.resolve(c.Shape); err != nil {
			return nil, err
		}
		found = found || cases[i] != nil
	}
	if !found {
		return shape.Absent, nil
	}

	return Func(func(v any) int {
		f := base
		if i := s.CaseIndex(v); i >= 0 && i < len(cases) {
			f = cases[i]
		}
		if f == nil {
			return 0
		}
		return f(v)
	}), nil
}

func (b *builder) VisitCallable(*shape.Callable, any) (any, error) {
	return shape.Absent, nil
}

var _ shape.Visitor = (*builder)(nil)

package cache

import (
	"fmt"
	"reflect"

	"github.com/jonwraymond/shapeops/shape"
)

// Resolver returns artifacts for nested shapes during construction.
//
// Contract:
// - Resolve may return a committed artifact, a freshly built one, or a
//   deferred trampoline when the shape's type is still being built.
// - Trampolines must not be invoked until the root build has returned.
type Resolver interface {
	Resolve(s shape.Shape) (any, error)
}

// ResolveAs resolves s and downcasts the artifact to A.
func ResolveAs[A any](r Resolver, s shape.Shape) (A, error) {
	v, err := r.Resolve(s)
	if err != nil {
		var zero A
		return zero, err
	}
	return As[A](v)
}

// generation is the scratch state of one root build. It is owned by a single
// goroutine and discarded after commit or retry.
type generation struct {
	cache   *Cache
	builder shape.Visitor
	slots   map[reflect.Type]*slot
	order   []reflect.Type
}

// slot tracks one type built in this generation.
type slot struct {
	shape   shape.Shape
	value   any
	done    bool
	delayed *Delayed
	handle  any
}

func newGeneration(c *Cache) *generation {
	g := &generation{
		cache: c,
		slots: make(map[reflect.Type]*slot),
	}
	g.builder = c.factory(g)
	return g
}

// Resolve returns the artifact for s, building it within this generation.
func (g *generation) Resolve(s shape.Shape) (any, error) {
	if s == nil {
		return nil, ErrNilShape
	}
	t := s.Type()
	if t == nil {
		return nil, ErrNilType
	}

	if v, ok, err := g.cache.lookup(t); ok {
		return v, err
	}

	if sl, ok := g.slots[t]; ok {
		if sl.done {
			return sl.value, nil
		}
		return g.deferred(sl)
	}

	sl := &slot{shape: s}
	g.slots[t] = sl

	v, err := s.Invoke(g, nil)
	if err != nil {
		return nil, err
	}
	sl.value = v
	sl.done = true
	g.order = append(g.order, t)
	return v, nil
}

// Invoke consults the override table before dispatching to the builder.
func (g *generation) Invoke(s shape.Shape, state any) (any, error) {
	if o, ok := g.cache.overrides[s.Type()]; ok {
		return o.build(s, g)
	}
	return s.Accept(g.builder, state)
}

// deferred returns the trampoline for a type that is still being built.
func (g *generation) deferred(sl *slot) (any, error) {
	if sl.handle != nil {
		return sl.handle, nil
	}
	if g.cache.deferred == nil {
		return nil, fmt.Errorf("%w: %v", ErrCycle, sl.shape.Type())
	}

	d := newDelayed(sl.shape.Type())
	h, err := g.cache.deferred(sl.shape, d)
	if err != nil {
		return nil, err
	}
	sl.delayed = d
	sl.handle = h
	return h, nil
}

// seal fills every delayed cell with its finished artifact.
func (g *generation) seal() {
	for _, t := range g.order {
		sl := g.slots[t]
		if sl.delayed != nil {
			sl.delayed.fill(sl.value)
		}
	}
}

var (
	_ Resolver   = (*generation)(nil)
	_ shape.Func = (*generation)(nil)
)

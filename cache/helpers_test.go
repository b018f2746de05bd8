package cache

import (
	"sync/atomic"
	"time"

	"github.com/jonwraymond/shapeops/shape"
)

type node struct {
	Value int
	Next  *node
}

// counter is the artifact of the test algorithm: it counts struct values.
type counter struct {
	fn func(v any) int
}

func (c *counter) count(v any) int { return c.fn(v) }

// countAlgo builds counters and records how often it was asked to.
type countAlgo struct {
	generations atomic.Int64
	objects     atomic.Int64
	delay       time.Duration
}

func (a *countAlgo) factory(r Resolver) shape.Visitor {
	a.generations.Add(1)
	return &countVisitor{algo: a, r: r}
}

func deferredCounter() Option {
	return WithDeferred(Deferred(func(get func() *counter) *counter {
		return &counter{fn: func(v any) int { return get().count(v) }}
	}))
}

type countVisitor struct {
	shape.Unsupported
	algo *countAlgo
	r    Resolver
}

func (v *countVisitor) VisitObject(s *shape.Object, _ any) (any, error) {
	v.algo.objects.Add(1)
	if v.algo.delay > 0 {
		time.Sleep(v.algo.delay)
	}
	if len(s.Properties) == 0 {
		return &counter{fn: func(any) int { return 0 }}, nil
	}

	props := make([]*shape.Property, len(s.Properties))
	counters := make([]*counter, len(s.Properties))
	for i, p := range s.Properties {
		c, err := ResolveAs[*counter](v.r, p.Shape)
		if err != nil {
			return nil, err
		}
		props[i], counters[i] = p, c
	}
	return &counter{fn: func(val any) int {
		n := 1
		for i, p := range props {
			n += counters[i].count(p.Get(val))
		}
		return n
	}}, nil
}

func (v *countVisitor) VisitOptional(s *shape.Optional, _ any) (any, error) {
	elem, err := ResolveAs[*counter](v.r, s.Element)
	if err != nil {
		return nil, err
	}
	return &counter{fn: func(val any) int {
		e, ok := s.Deconstruct(val)
		if !ok {
			return 0
		}
		return elem.count(e)
	}}, nil
}

var _ shape.Visitor = (*countVisitor)(nil)

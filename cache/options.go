package cache

import (
	"fmt"
	"reflect"

	"github.com/jonwraymond/shapeops/observe"
	"github.com/jonwraymond/shapeops/shape"
)

// BuilderFactory creates the algorithm's visitor for one generation context.
// The visitor resolves nested artifacts through r.
type BuilderFactory func(r Resolver) shape.Visitor

// OverrideFactory builds an artifact for a type in place of the visitor.
type OverrideFactory func(s shape.Shape, r Resolver) (any, error)

type override struct {
	artifact any
	factory  OverrideFactory
}

func (o override) build(s shape.Shape, r Resolver) (any, error) {
	if o.factory != nil {
		return o.factory(s, r)
	}
	return o.artifact, nil
}

// Option configures a Cache.
type Option func(*Cache)

// WithPolicy sets the failure policy.
func WithPolicy(p Policy) Option {
	return func(c *Cache) {
		c.policy = p
	}
}

// WithCacheErrors enables or disables cached-failure replay.
func WithCacheErrors(on bool) Option {
	return func(c *Cache) {
		c.policy.CacheErrors = on
	}
}

// WithDeferred sets the factory that creates trampolines for self-references.
// Without it, building a self-referential shape fails with ErrCycle.
func WithDeferred(f DeferredFactory) Option {
	return func(c *Cache) {
		c.deferred = f
	}
}

// WithOverride registers a pre-built artifact for t. It is returned instead
// of visiting t's shape.
func WithOverride(t reflect.Type, artifact any) Option {
	return func(c *Cache) {
		c.addOverride(t, override{artifact: artifact})
	}
}

// WithOverrideFactory registers a factory that builds t's artifact instead of
// the visitor. The factory may resolve nested shapes through its Resolver.
func WithOverrideFactory(t reflect.Type, f OverrideFactory) Option {
	return func(c *Cache) {
		if f == nil {
			c.optErrs = append(c.optErrs, fmt.Errorf("%w: override for %v", ErrNilFactory, t))
			return
		}
		c.addOverride(t, override{factory: f})
	}
}

// WithMiddleware instruments root builds with tracing, metrics and logging.
func WithMiddleware(m *observe.Middleware) Option {
	return func(c *Cache) {
		c.middleware = m
	}
}

func (c *Cache) addOverride(t reflect.Type, o override) {
	if t == nil {
		c.optErrs = append(c.optErrs, fmt.Errorf("%w: override", ErrNilType))
		return
	}
	c.overrides[t] = o
}

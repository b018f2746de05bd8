package cache

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/jonwraymond/shapeops/observe"
	"github.com/jonwraymond/shapeops/shape"
)

// Cache memoizes artifacts per type for one provider and one algorithm.
//
// Contract:
// - Concurrency: safe for concurrent use. Lookups are lock-free; only the
//   commit of a finished generation takes a lock.
// - Identity: for a given type, every caller observes the same artifact.
// - Immutability: entries are never replaced or removed once stored.
// - Builders: may run more than once per type and must be side-effect free.
type Cache struct {
	provider   shape.Provider
	factory    BuilderFactory
	deferred   DeferredFactory
	overrides  map[reflect.Type]override
	policy     Policy
	middleware *observe.Middleware
	optErrs    []error

	entries sync.Map // reflect.Type -> *entry
	count   atomic.Int64
	mu      sync.Mutex // serializes commits
}

// entry holds either an artifact or a captured failure.
type entry struct {
	value any
	err   error
}

// New creates a cache bound to provider that builds artifacts with the
// visitors created by factory.
func New(provider shape.Provider, factory BuilderFactory, opts ...Option) (*Cache, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	if factory == nil {
		return nil, ErrNilFactory
	}

	c := &Cache{
		provider:  provider,
		factory:   factory,
		overrides: make(map[reflect.Type]override),
		policy:    DefaultPolicy(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if len(c.optErrs) > 0 {
		return nil, errors.Join(c.optErrs...)
	}
	return c, nil
}

// Provider returns the bound shape provider.
func (c *Cache) Provider() shape.Provider {
	return c.provider
}

// Policy returns the failure policy.
func (c *Cache) Policy() Policy {
	return c.policy
}

// Len returns the number of stored entries, including cached failures.
func (c *Cache) Len() int {
	return int(c.count.Load())
}

// Get returns the committed artifact for t without building it.
// Cached failures are reported as misses.
func (c *Cache) Get(t reflect.Type) (any, bool) {
	if t == nil {
		return nil, false
	}
	v, ok, err := c.lookup(t)
	if !ok || err != nil {
		return nil, false
	}
	return v, true
}

// GetOrAdd returns the artifact for t, building it on first use.
func (c *Cache) GetOrAdd(ctx context.Context, t reflect.Type) (any, error) {
	if t == nil {
		return nil, ErrNilType
	}
	if v, ok, err := c.lookup(t); ok {
		return v, err
	}

	s, ok := c.provider.ShapeOf(t)
	if !ok || s == nil {
		return nil, fmt.Errorf("%w: %v", ErrShapeNotFound, t)
	}
	return c.build(ctx, s)
}

// GetOrAddShape returns the artifact for s.Type(), building it from s on
// first use. s must come from the cache's provider, or from a provider the
// bound shape.Composite includes.
func (c *Cache) GetOrAddShape(ctx context.Context, s shape.Shape) (any, error) {
	if s == nil {
		return nil, ErrNilShape
	}
	if s.Type() == nil {
		return nil, ErrNilType
	}
	if !c.owns(s.Provider()) {
		return nil, fmt.Errorf("%w: %v", ErrProviderMismatch, s.Type())
	}
	if v, ok, err := c.lookup(s.Type()); ok {
		return v, err
	}
	return c.build(ctx, s)
}

// TryAdd stores artifact for t unless an entry already exists.
// It reports whether the artifact was stored.
func (c *Cache) TryAdd(t reflect.Type, artifact any) (bool, error) {
	if t == nil {
		return false, ErrNilType
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries.Load(t); exists {
		return false, nil
	}
	c.entries.Store(t, &entry{value: artifact})
	c.count.Add(1)
	return true, nil
}

func (c *Cache) lookup(t reflect.Type) (any, bool, error) {
	e, ok := c.entries.Load(t)
	if !ok {
		return nil, false, nil
	}
	ent := e.(*entry)
	return ent.value, true, ent.err
}

func (c *Cache) owns(p shape.Provider) bool {
	if p == nil {
		return false
	}
	if p == c.provider {
		return true
	}
	if comp, ok := c.provider.(shape.Composite); ok {
		return comp.Includes(p)
	}
	return false
}

// build runs generations for s until one commits.
func (c *Cache) build(ctx context.Context, s shape.Shape) (any, error) {
	meta := observe.TypeMeta{
		Type:   typeName(s.Type()),
		Kind:   s.Kind().String(),
		Source: fmt.Sprintf("%T", c.provider),
	}

	var run observe.BuildFunc = func(ctx context.Context, meta observe.TypeMeta) (any, error) {
		for attempt := 1; ; attempt++ {
			g := newGeneration(c)
			v, err := g.Resolve(s)
			if err != nil {
				return nil, c.fail(s.Type(), err)
			}
			if c.commit(g) {
				return v, nil
			}
			// Another goroutine committed part of this batch. The rebuild
			// reads through the larger cache, so it terminates.
			if c.middleware != nil {
				c.middleware.RecordConflict(ctx, meta, attempt)
			}
		}
	}

	if c.middleware != nil {
		run = c.middleware.Wrap(run)
	}
	return run(ctx, meta)
}

// commit stores every artifact of g if none of its types are present yet.
func (c *Cache) commit(g *generation) bool {
	g.seal()

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, t := range g.order {
		if _, exists := c.entries.Load(t); exists {
			return false
		}
	}
	for _, t := range g.order {
		c.entries.Store(t, &entry{value: g.slots[t].value})
	}
	c.count.Add(int64(len(g.order)))
	return true
}

// fail applies the failure policy to a failed build of t.
func (c *Cache) fail(t reflect.Type, err error) error {
	if !c.policy.CacheErrors {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, exists := c.entries.Load(t); exists {
		if stored := e.(*entry).err; stored != nil {
			return stored
		}
		return err
	}
	c.entries.Store(t, &entry{err: err})
	c.count.Add(1)
	return err
}

func typeName(t reflect.Type) string {
	if t.PkgPath() != "" && t.Name() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}

package cache

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/jonwraymond/shapeops/shape"
)

// Registry scopes one algorithm's caches per shape provider.
//
// Artifacts reference shapes, and shapes reference their provider, so a
// registry keeps its providers reachable. Release a provider to drop its
// cache.
//
// Contract:
// - Concurrency: safe for concurrent use.
// - Identity: For returns the same cache for the same provider instance.
type Registry struct {
	factory BuilderFactory
	opts    []Option

	mu     sync.Mutex
	caches map[shape.Provider]*Cache
}

// NewRegistry creates a registry whose caches use factory and opts.
func NewRegistry(factory BuilderFactory, opts ...Option) *Registry {
	return &Registry{
		factory: factory,
		opts:    opts,
		caches:  make(map[shape.Provider]*Cache),
	}
}

// For returns the cache for p, creating it on first use.
func (r *Registry) For(p shape.Provider) (*Cache, error) {
	if p == nil {
		return nil, ErrNilProvider
	}
	if !reflect.TypeOf(p).Comparable() {
		return nil, fmt.Errorf("%w: %T", ErrProviderNotComparable, p)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.caches[p]; ok {
		return c, nil
	}
	c, err := New(p, r.factory, r.opts...)
	if err != nil {
		return nil, err
	}
	r.caches[p] = c
	return c, nil
}

// Release drops the cache for p. Idempotent.
func (r *Registry) Release(p shape.Provider) {
	if p == nil || !reflect.TypeOf(p).Comparable() {
		return
	}
	r.mu.Lock()
	delete(r.caches, p)
	r.mu.Unlock()
}

// Len returns the number of providers with a cache.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.caches)
}

package shape

import (
	"fmt"
	"reflect"
	"slices"
	"sync"
)

// Provider maps Go types to shapes.
//
// Contract:
// - Determinism: ShapeOf returns the same shape (or an equivalent one) for a
//   type for the provider's lifetime.
// - Concurrency: implementations must be safe for concurrent use.
// - Identity: providers are compared by identity, so implementations should be
//   pointer types.
type Provider interface {
	// ShapeOf returns the shape for t, or (nil, false) if the provider has none.
	ShapeOf(t reflect.Type) (Shape, bool)
}

// Composite is implemented by providers that delegate to other providers.
type Composite interface {
	Provider

	// Includes reports whether p is one of the delegated providers.
	Includes(p Provider) bool
}

// Catalog is a static provider holding hand-assembled shapes.
type Catalog struct {
	mu     sync.RWMutex
	shapes map[reflect.Type]Shape
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{shapes: make(map[reflect.Type]Shape)}
}

// Add registers a shape. The shape's Provider must be c.
func (c *Catalog) Add(s Shape) error {
	if s == nil {
		return ErrNilShape
	}
	if s.Type() == nil {
		return ErrNilType
	}
	if s.Provider() != Provider(c) {
		return fmt.Errorf("%w: %v", ErrForeignShape, s.Type())
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.shapes[s.Type()]; exists {
		return fmt.Errorf("%w: %v", ErrDuplicateShape, s.Type())
	}
	c.shapes[s.Type()] = s
	return nil
}

// MustAdd is like Add but panics on error. Intended for static setup.
func (c *Catalog) MustAdd(shapes ...Shape) *Catalog {
	for _, s := range shapes {
		if err := c.Add(s); err != nil {
			panic(err)
		}
	}
	return c
}

// Remove unregisters the shape for t. Idempotent.
func (c *Catalog) Remove(t reflect.Type) {
	c.mu.Lock()
	delete(c.shapes, t)
	c.mu.Unlock()
}

// ShapeOf returns the registered shape for t.
func (c *Catalog) ShapeOf(t reflect.Type) (Shape, bool) {
	c.mu.RLock()
	s, ok := c.shapes[t]
	c.mu.RUnlock()
	return s, ok
}

// Len returns the number of registered shapes.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.shapes)
}

// Aggregate chains providers and returns the first match.
//
// Aggregate does not memoize: every ShapeOf call queries the providers in
// order. Caching is the responsibility of the underlying providers.
type Aggregate struct {
	providers []Provider
}

// NewAggregate creates an aggregate over providers, in priority order.
// Nil providers are skipped.
func NewAggregate(providers ...Provider) *Aggregate {
	ps := make([]Provider, 0, len(providers))
	for _, p := range providers {
		if p != nil {
			ps = append(ps, p)
		}
	}
	return &Aggregate{providers: ps}
}

// ShapeOf returns the shape from the first provider that knows t.
func (a *Aggregate) ShapeOf(t reflect.Type) (Shape, bool) {
	for _, p := range a.providers {
		if s, ok := p.ShapeOf(t); ok && s != nil {
			return s, true
		}
	}
	return nil, false
}

// Includes reports whether p is the aggregate itself or one of its providers,
// searching nested composites.
func (a *Aggregate) Includes(p Provider) bool {
	if p == Provider(a) {
		return true
	}
	for _, own := range a.providers {
		if own == p {
			return true
		}
		if c, ok := own.(Composite); ok && c.Includes(p) {
			return true
		}
	}
	return false
}

// Providers returns a copy of the chained providers.
func (a *Aggregate) Providers() []Provider {
	return slices.Clone(a.providers)
}

// Ensure providers implement their interfaces
var (
	_ Provider  = (*Catalog)(nil)
	_ Composite = (*Aggregate)(nil)
)

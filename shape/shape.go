package shape

import "reflect"

// Shape is an immutable structural descriptor of a Go type.
//
// Contract:
// - Immutability: a shape must not change after its Provider returns it.
// - Concurrency: shapes are safe for concurrent use because they are immutable.
// - Dispatch: Accept calls exactly one Visitor method, the one matching Kind.
type Shape interface {
	// Type returns the Go type the shape describes.
	Type() reflect.Type

	// Kind returns the structural kind of the shape.
	Kind() Kind

	// Provider returns the source that produced the shape.
	Provider() Provider

	// Attributes returns metadata attached by the provider. May be nil.
	Attributes() Attributes

	// Accept dispatches to the visitor method matching Kind.
	Accept(v Visitor, state any) (any, error)

	// Invoke calls fn with this shape. It is the entry point used by caches,
	// which may intercept before falling through to Accept.
	Invoke(fn Func, state any) (any, error)
}

// Func is the entry point invoked by Shape.Invoke.
type Func interface {
	Invoke(s Shape, state any) (any, error)
}

// FuncOf adapts an ordinary function to Func.
type FuncOf func(s Shape, state any) (any, error)

// Invoke calls f.
func (f FuncOf) Invoke(s Shape, state any) (any, error) {
	return f(s, state)
}

// VisitorFunc returns a Func that dispatches straight to v.
func VisitorFunc(v Visitor) Func {
	return FuncOf(func(s Shape, state any) (any, error) {
		return s.Accept(v, state)
	})
}

// Attributes holds provider-supplied metadata for a shape.
type Attributes map[string]any

// Lookup returns the attribute stored under key. Safe on a nil map.
func (a Attributes) Lookup(key string) (any, bool) {
	if a == nil {
		return nil, false
	}
	v, ok := a[key]
	return v, ok
}

// Info carries the fields common to every shape.
type Info struct {
	GoType reflect.Type
	Source Provider
	Attrs  Attributes
}

// Type returns the described Go type.
func (i *Info) Type() reflect.Type { return i.GoType }

// Provider returns the owning provider.
func (i *Info) Provider() Provider { return i.Source }

// Attributes returns the shape metadata.
func (i *Info) Attributes() Attributes { return i.Attrs }

package cache

import (
	"fmt"
	"reflect"
	"sync/atomic"

	"github.com/jonwraymond/shapeops/shape"
)

// Delayed is a write-once cell holding an artifact that is still being built.
//
// A generation context fills the cell exactly once, before its artifacts are
// committed. Reading it earlier is a builder bug: artifacts must not be
// invoked while they are being constructed.
type Delayed struct {
	typ   reflect.Type
	value atomic.Pointer[delayedBox]
}

type delayedBox struct {
	v any
}

func newDelayed(t reflect.Type) *Delayed {
	return &Delayed{typ: t}
}

// Type returns the type whose artifact the cell will hold.
func (d *Delayed) Type() reflect.Type { return d.typ }

// Ready reports whether the cell has been filled.
func (d *Delayed) Ready() bool { return d.value.Load() != nil }

// Value returns the artifact. It panics if the cell has not been filled.
func (d *Delayed) Value() any {
	b := d.value.Load()
	if b == nil {
		panic(fmt.Sprintf("cache: delayed artifact for %v used before construction completed", d.typ))
	}
	return b.v
}

// fill stores v. Later calls are ignored.
func (d *Delayed) fill(v any) {
	d.value.CompareAndSwap(nil, &delayedBox{v: v})
}

// DeferredFactory creates a trampoline artifact that forwards to d's value.
// It is called when a type is requested while its own artifact is being built.
type DeferredFactory func(s shape.Shape, d *Delayed) (any, error)

// Deferred returns a DeferredFactory for artifacts of type A.
// wrap receives an accessor for the eventual artifact and returns a
// forwarding artifact of the same type:
//
//	cache.Deferred(func(get func() Printer) Printer {
//	    return func(w io.Writer, v any) error { return get()(w, v) }
//	})
func Deferred[A any](wrap func(get func() A) A) DeferredFactory {
	return func(_ shape.Shape, d *Delayed) (any, error) {
		return wrap(func() A {
			a, _ := d.Value().(A)
			return a
		}), nil
	}
}

// DeferredFunc returns a DeferredFactory for function-typed artifacts of
// type F. The trampoline is built with reflect.MakeFunc and forwards every
// call to the filled artifact.
func DeferredFunc[F any]() DeferredFactory {
	ft := reflect.TypeFor[F]()
	return func(s shape.Shape, d *Delayed) (any, error) {
		if ft.Kind() != reflect.Func {
			return nil, fmt.Errorf("%w: DeferredFunc requires a func type, got %v", ErrArtifactType, ft)
		}
		fn := reflect.MakeFunc(ft, func(args []reflect.Value) []reflect.Value {
			target := reflect.ValueOf(d.Value())
			if ft.IsVariadic() {
				return target.CallSlice(args)
			}
			return target.Call(args)
		})
		return fn.Interface(), nil
	}
}

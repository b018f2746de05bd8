// Package printer builds text renderers for Go values from their shapes.
//
// Output is deterministic: map entries are ordered by their rendered keys.
//
//	c, _ := printer.New(reflectshape.New())
//	s, _ := printer.Sprint(ctx, c, Point{X: 1, Y: 2})
//	// Point{X: 1, Y: 2}
package printer

import (
	"context"
	"fmt"
	"io"
	"reflect"
	"slices"
	"strings"

	"github.com/jonwraymond/shapeops/cache"
	"github.com/jonwraymond/shapeops/shape"
)

// Func writes the rendering of v to w.
type Func func(w io.Writer, v any) error

// New creates a printer cache over provider.
func New(provider shape.Provider, opts ...cache.Option) (*cache.Cache, error) {
	base := []cache.Option{
		cache.WithDeferred(cache.Deferred(func(get func() Func) Func {
			return func(w io.Writer, v any) error { return get()(w, v) }
		})),
	}
	return cache.New(provider, Factory, append(base, opts...)...)
}

// Factory creates the printing visitor for one generation.
func Factory(r cache.Resolver) shape.Visitor {
	return &builder{r: r}
}

// Of returns the printer for t.
func Of(ctx context.Context, c *cache.Cache, t reflect.Type) (Func, error) {
	return cache.Artifact[Func](ctx, c, t)
}

// Fprint renders v to w using v's dynamic type.
func Fprint(ctx context.Context, c *cache.Cache, w io.Writer, v any) error {
	if v == nil {
		_, err := io.WriteString(w, "nil")
		return err
	}
	f, err := Of(ctx, c, reflect.TypeOf(v))
	if err != nil {
		return err
	}
	return f(w, v)
}

// Sprint renders v to a string.
func Sprint(ctx context.Context, c *cache.Cache, v any) (string, error) {
	var sb strings.Builder
	if err := Fprint(ctx, c, &sb, v); err != nil {
		return "", err
	}
	return sb.String(), nil
}

type builder struct {
	r cache.Resolver
}

func (b *builder) resolve(s shape.Shape) (Func, error) {
	return cache.ResolveAs[Func](b.r, s)
}

func typeLabel(t reflect.Type) string {
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}

func (b *builder) VisitObject(s *shape.Object, _ any) (any, error) {
	if _, ok := s.Attributes().Lookup("primitive"); ok || len(s.Properties) == 0 {
		return Func(printScalar), nil
	}

	label := typeLabel(s.Type())
	type member struct {
		name  string
		get   func(any) any
		print Func
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
		members = append(members, member{name: p.Name, get: p.Get, print: f})
	}

	return Func(func(w io.Writer, v any) error {
		if _, err := io.WriteString(w, label+"{"); err != nil {
			return err
		}
		for i, m := range members {
			if i > 0 {
				if _, err := io.WriteString(w, ", "); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, m.name+": "); err != nil {
				return err
			}
			if err := m.print(w, m.get(v)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "}")
		return err
	}), nil
}

func printScalar(w io.Writer, v any) error {
	var err error
	if s, ok := v.(string); ok {
		_, err = fmt.Fprintf(w, "%q", s)
	} else {
		_, err = fmt.Fprint(w, v)
	}
	return err
}

func (b *builder) VisitSequence(s *shape.Sequence, _ any) (any, error) {
	elem, err := b.resolve(s.Element)
	if err != nil {
		return nil, err
	}
	return Func(func(w io.Writer, v any) error {
		if _, err := io.WriteString(w, "["); err != nil {
			return err
		}
		i := 0
		for e := range s.Elements(v) {
			if i > 0 {
				if _, err := io.WriteString(w, ", "); err != nil {
					return err
				}
			}
			if err := elem(w, e); err != nil {
				return err
			}
			i++
		}
		_, err := io.WriteString(w, "]")
		return err
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

	return Func(func(w io.Writer, v any) error {
		var entries []string
		for k, val := range s.Entries(v) {
			var sb strings.Builder
			if err := key(&sb, k); err != nil {
				return err
			}
			sb.WriteString(": ")
			if err := value(&sb, val); err != nil {
				return err
			}
			entries = append(entries, sb.String())
		}
		slices.Sort(entries)
		_, err := io.WriteString(w, "{"+strings.Join(entries, ", ")+"}")
		return err
	}), nil
}

func (b *builder) VisitEnum(s *shape.Enum, _ any) (any, error) {
	label := typeLabel(s.Type())
	return Func(func(w io.Writer, v any) error {
		if name, ok := s.Name(v); ok {
			_, err := io.WriteString(w, name)
			return err
		}
		_, err := fmt.Fprintf(w, "%s(%v)", label, v)
		return err
	}), nil
}

func (b *builder) VisitOptional(s *shape.Optional, _ any) (any, error) {
	elem, err := b.resolve(s.Element)
	if err != nil {
		return nil, err
	}
	return Func(func(w io.Writer, v any) error {
		e, ok := s.Deconstruct(v)
		if !ok {
			_, err := io.WriteString(w, "nil")
			return err
		}
		return elem(w, e)
	}), nil
}

func (b *builder) VisitSurrogate(s *shape.Surrogate, _ any) (any, error) {
	inner, err := b.resolve(s.Surrogate)
	if err != nil {
		return nil, err
	}
	return Func(func(w io.Writer, v any) error {
		sv, err := s.Marshaller.ToSurrogate(v)
		if err != nil {
			return fmt.Errorf("printer: marshal %v to surrogate: %w", s.Type(), err)
		}
		return inner(w, sv)
	}), nil
}

func (b *builder) VisitUnion(s *shape.Union, _ any) (any, error) {
	// The base shares the union's type, so it is visited in place.
	bv, err := s.Base.Accept(b, nil)
	if err != nil {
		return nil, err
	}
	base, err := cache.As[Func](bv)
	if err != nil {
		return nil, err
	}

	cases := make([]Func, len(s.Cases))
	for i, c := range s.Cases {
		if cases[i], err = b.resolve(c.Shape); err != nil {
			return nil, err
		}
	}

	return Func(func(w io.Writer, v any) error {
		if v == nil {
			_, err := io.WriteString(w, "nil")
			return err
		}
		if i := s.CaseIndex(v); i >= 0 && i < len(cases) {
			return cases[i](w, v)
		}
		return base(w, v)
	}), nil
}

func (b *builder) VisitCallable(s *shape.Callable, _ any) (any, error) {
	label := s.Type().String()
	return Func(func(w io.Writer, v any) error {
		rv := reflect.ValueOf(v)
		if !rv.IsValid() || (rv.Kind() == reflect.Func && rv.IsNil()) {
			_, err := io.WriteString(w, "nil")
			return err
		}
		_, err := io.WriteString(w, label)
		return err
	}), nil
}

var _ shape.Visitor = (*builder)(nil)

package reflectshape

import (
	"cmp"
	"reflect"
	"slices"

	"github.com/jonwraymond/shapeops/shape"
)

// Option configures a Provider.
type Option func(*Provider)

type integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// WithEnum registers T as an enum with the given member names.
// Members are ordered by value, then by name.
func WithEnum[T integer](members map[string]T) Option {
	t := reflect.TypeFor[T]()
	list := make([]shape.EnumMember, 0, len(members))
	for name, v := range members {
		list = append(list, shape.EnumMember{Name: name, Value: v})
	}
	slices.SortFunc(list, func(a, b shape.EnumMember) int {
		if c := cmp.Compare(a.Value.(T), b.Value.(T)); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return func(p *Provider) {
		p.enums[t] = list
	}
}

// WithSurrogate registers S as the surrogate representation of T.
func WithSurrogate[T, S any](to func(T) (S, error), from func(S) (T, error)) Option {
	t := reflect.TypeFor[T]()
	def := surrogateDef{
		target: reflect.TypeFor[S](),
		marshaller: shape.MarshallerFuncs{
			To: func(v any) (any, error) {
				tv, _ := v.(T)
				return to(tv)
			},
			From: func(s any) (any, error) {
				sv, _ := s.(S)
				return from(sv)
			},
		},
	}
	return func(p *Provider) {
		p.surrogates[t] = def
	}
}

// WithUnion registers the interface type T as a tagged union over cases.
// Case tags are the case type names.
func WithUnion[T any](cases ...reflect.Type) Option {
	t := reflect.TypeFor[T]()
	cs := slices.Clone(cases)
	return func(p *Provider) {
		p.unions[t] = cs
	}
}

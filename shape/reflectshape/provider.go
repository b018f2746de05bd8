package reflectshape

import (
	"errors"
	"fmt"
	"iter"
	"reflect"
	"sync"

	"github.com/jonwraymond/shapeops/shape"
)

// Attribute keys set on derived shapes.
const (
	// AttrPrimitive marks object shapes of scalar Go types.
	AttrPrimitive = "primitive"
	// AttrAbstract marks the base object shape of an interface union.
	AttrAbstract = "abstract"
)

// ErrNilFunc is returned by callable shapes invoked with a nil function.
var ErrNilFunc = errors.New("reflectshape: function is nil")

type surrogateDef struct {
	target     reflect.Type
	marshaller shape.Marshaller
}

// Provider derives shapes from Go types using reflection.
//
// Contract:
// - Concurrency: safe for concurrent use; derivation is serialized.
// - Determinism: a type's shape is derived once and then returned as-is.
type Provider struct {
	mu         sync.Mutex
	shapes     map[reflect.Type]shape.Shape
	enums      map[reflect.Type][]shape.EnumMember
	surrogates map[reflect.Type]surrogateDef
	unions     map[reflect.Type][]reflect.Type
}

// New creates a reflection-based provider.
func New(opts ...Option) *Provider {
	p := &Provider{
		shapes:     make(map[reflect.Type]shape.Shape),
		enums:      make(map[reflect.Type][]shape.EnumMember),
		surrogates: make(map[reflect.Type]surrogateDef),
		unions:     make(map[reflect.Type][]reflect.Type),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ShapeOf returns the shape for t, deriving it on first use.
// Channels, unsafe pointers and unregistered interfaces have no shape.
func (p *Provider) ShapeOf(t reflect.Type) (shape.Shape, bool) {
	if t == nil {
		return nil, false
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	s := p.derive(t)
	return s, s != nil
}

// derive must be called with p.mu held.
func (p *Provider) derive(t reflect.Type) shape.Shape {
	if s, ok := p.shapes[t]; ok {
		return s
	}

	info := shape.Info{GoType: t, Source: p}

	if members, ok := p.enums[t]; ok {
		return p.deriveEnum(info, members)
	}
	if def, ok := p.surrogates[t]; ok {
		return p.deriveSurrogate(info, def)
	}
	if cases, ok := p.unions[t]; ok {
		return p.deriveUnion(info, cases)
	}

	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		info.Attrs = shape.Attributes{AttrPrimitive: true}
		s := &shape.Object{Info: info, Constructor: zeroConstructor(t)}
		p.shapes[t] = s
		return s
	case reflect.Struct:
		return p.deriveStruct(info)
	case reflect.Slice, reflect.Array:
		return p.deriveSequence(info)
	case reflect.Map:
		return p.deriveMap(info)
	case reflect.Pointer:
		return p.deriveOptional(info)
	case reflect.Func:
		return p.deriveCallable(info)
	default:
		return nil
	}
}

func zeroConstructor(t reflect.Type) *shape.Constructor {
	return &shape.Constructor{
		Strategy: shape.ConstructDefault,
		New: func([]any) (any, error) {
			return reflect.Zero(t).Interface(), nil
		},
	}
}

func (p *Provider) deriveStruct(info shape.Info) shape.Shape {
	t := info.GoType
	s := &shape.Object{Info: info, Constructor: zeroConstructor(t)}
	p.shapes[t] = s

	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		fs := p.derive(f.Type)
		if fs == nil {
			continue
		}
		index := i
		ft := f.Type
		s.Properties = append(s.Properties, &shape.Property{
			Name:     f.Name,
			Position: len(s.Properties),
			Shape:    fs,
			Get: func(obj any) any {
				rv := reflect.ValueOf(obj)
				if !rv.IsValid() {
					return reflect.Zero(ft).Interface()
				}
				return rv.Field(index).Interface()
			},
			Set: func(obj any, v any) any {
				rv := reflect.New(t).Elem()
				if obj != nil {
					rv.Set(reflect.ValueOf(obj))
				}
				rv.Field(index).Set(valueOf(v, ft))
				return rv.Interface()
			},
		})
	}
	return s
}

func (p *Provider) deriveSequence(info shape.Info) shape.Shape {
	t := info.GoType
	s := &shape.Sequence{Info: info, Rank: 1}
	p.shapes[t] = s

	elem := p.derive(t.Elem())
	if elem == nil {
		delete(p.shapes, t)
		return nil
	}
	s.Element = elem
	s.Elements = func(seq any) iter.Seq[any] {
		return func(yield func(any) bool) {
			rv := reflect.ValueOf(seq)
			if !rv.IsValid() {
				return
			}
			for i := range rv.Len() {
				if !yield(rv.Index(i).Interface()) {
					return
				}
			}
		}
	}

	et := t.Elem()
	if t.Kind() == reflect.Array {
		s.Construction = shape.ConstructSpan
		s.FromSlice = func(elems []any) (any, error) {
			if len(elems) > t.Len() {
				return nil, fmt.Errorf("reflectshape: %d elements exceed array length %d of %v", len(elems), t.Len(), t)
			}
			rv := reflect.New(t).Elem()
			for i, e := range elems {
				rv.Index(i).Set(valueOf(e, et))
			}
			return rv.Interface(), nil
		}
		return s
	}

	s.Construction = shape.ConstructEnumerable
	s.FromSlice = func(elems []any) (any, error) {
		rv := reflect.MakeSlice(t, len(elems), len(elems))
		for i, e := range elems {
			rv.Index(i).Set(valueOf(e, et))
		}
		return rv.Interface(), nil
	}
	return s
}

func (p *Provider) deriveMap(info shape.Info) shape.Shape {
	t := info.GoType
	s := &shape.Map{Info: info, Construction: shape.ConstructMutable}
	p.shapes[t] = s

	key := p.derive(t.Key())
	value := p.derive(t.Elem())
	if key == nil || value == nil {
		delete(p.shapes, t)
		return nil
	}
	s.Key = key
	s.Value = value
	s.Entries = func(m any) iter.Seq2[any, any] {
		return func(yield func(any, any) bool) {
			rv := reflect.ValueOf(m)
			if !rv.IsValid() {
				return
			}
			it := rv.MapRange()
			for it.Next() {
				if !yield(it.Key().Interface(), it.Value().Interface()) {
					return
				}
			}
		}
	}
	s.FromEntries = func(keys, values []any) (any, error) {
		if len(keys) != len(values) {
			return nil, fmt.Errorf("reflectshape: %d keys but %d values for %v", len(keys), len(values), t)
		}
		rv := reflect.MakeMapWithSize(t, len(keys))
		for i := range keys {
			rv.SetMapIndex(valueOf(keys[i], t.Key()), valueOf(values[i], t.Elem()))
		}
		return rv.Interface(), nil
	}
	return s
}

func (p *Provider) deriveOptional(info shape.Info) shape.Shape {
	t := info.GoType
	s := &shape.Optional{Info: info}
	p.shapes[t] = s

	elem := p.derive(t.Elem())
	if elem == nil {
		delete(p.shapes, t)
		return nil
	}
	s.Element = elem
	s.Deconstruct = func(v any) (any, bool) {
		rv := reflect.ValueOf(v)
		if !rv.IsValid() || rv.IsNil() {
			return nil, false
		}
		return rv.Elem().Interface(), true
	}
	s.None = func() any {
		return reflect.Zero(t).Interface()
	}
	s.Some = func(elem any) any {
		ptr := reflect.New(t.Elem())
		ptr.Elem().Set(valueOf(elem, t.Elem()))
		return ptr.Interface()
	}
	return s
}

func (p *Provider) deriveCallable(info shape.Info) shape.Shape {
	t := info.GoType
	s := &shape.Callable{Info: info}
	p.shapes[t] = s

	for i := range t.NumIn() {
		ps := p.derive(t.In(i))
		if ps == nil {
			delete(p.shapes, t)
			return nil
		}
		s.Parameters = append(s.Parameters, &shape.Parameter{
			Name:     fmt.Sprintf("arg%d", i),
			Position: i,
			Shape:    ps,
		})
	}
	for i := range t.NumOut() {
		rs := p.derive(t.Out(i))
		if rs == nil {
			delete(p.shapes, t)
			return nil
		}
		s.Results = append(s.Results, rs)
	}
	s.Call = func(fn any, args []any) ([]any, error) {
		rv := reflect.ValueOf(fn)
		if !rv.IsValid() || rv.IsNil() {
			return nil, ErrNilFunc
		}
		if len(args) != t.NumIn() {
			return nil, fmt.Errorf("reflectshape: %v takes %d arguments, got %d", t, t.NumIn(), len(args))
		}
		in := make([]reflect.Value, len(args))
		for i, a := range args {
			in[i] = valueOf(a, t.In(i))
		}
		var out []reflect.Value
		if t.IsVariadic() {
			out = rv.CallSlice(in)
		} else {
			out = rv.Call(in)
		}
		results := make([]any, len(out))
		for i, o := range out {
			results[i] = o.Interface()
		}
		return results, nil
	}
	return s
}

func (p *Provider) deriveEnum(info shape.Info, members []shape.EnumMember) shape.Shape {
	t := info.GoType
	s := &shape.Enum{Info: info, Members: members}
	p.shapes[t] = s
	s.Underlying = p.derive(underlyingType(t.Kind()))
	return s
}

func (p *Provider) deriveSurrogate(info shape.Info, def surrogateDef) shape.Shape {
	t := info.GoType
	s := &shape.Surrogate{Info: info, Marshaller: def.marshaller}
	p.shapes[t] = s

	target := p.derive(def.target)
	if target == nil {
		delete(p.shapes, t)
		return nil
	}
	s.Surrogate = target
	return s
}

func (p *Provider) deriveUnion(info shape.Info, cases []reflect.Type) shape.Shape {
	t := info.GoType
	s := &shape.Union{Info: info}
	p.shapes[t] = s

	s.Base = &shape.Object{Info: shape.Info{
		GoType: t,
		Source: p,
		Attrs:  shape.Attributes{AttrAbstract: true},
	}}
	for _, ct := range cases {
		cs := p.derive(ct)
		if cs == nil {
			continue
		}
		s.Cases = append(s.Cases, &shape.UnionCase{
			Tag:   ct.Name(),
			Index: len(s.Cases),
			Shape: cs,
		})
	}

	index := make(map[reflect.Type]int, len(s.Cases))
	for _, c := range s.Cases {
		index[c.Shape.Type()] = c.Index
	}
	s.CaseIndex = func(v any) int {
		if v == nil {
			return -1
		}
		if i, ok := index[reflect.TypeOf(v)]; ok {
			return i
		}
		return -1
	}
	return s
}

// underlyingType returns the predeclared type for an integer kind.
func underlyingType(k reflect.Kind) reflect.Type {
	switch k {
	case reflect.Int8:
		return reflect.TypeFor[int8]()
	case reflect.Int16:
		return reflect.TypeFor[int16]()
	case reflect.Int32:
		return reflect.TypeFor[int32]()
	case reflect.Int64:
		return reflect.TypeFor[int64]()
	case reflect.Uint:
		return reflect.TypeFor[uint]()
	case reflect.Uint8:
		return reflect.TypeFor[uint8]()
	case reflect.Uint16:
		return reflect.TypeFor[uint16]()
	case reflect.Uint32:
		return reflect.TypeFor[uint32]()
	case reflect.Uint64:
		return reflect.TypeFor[uint64]()
	case reflect.Uintptr:
		return reflect.TypeFor[uintptr]()
	default:
		return reflect.TypeFor[int]()
	}
}

// valueOf converts v to a reflect.Value assignable to t.
func valueOf(v any, t reflect.Type) reflect.Value {
	if v == nil {
		return reflect.Zero(t)
	}
	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(t) {
		return rv
	}
	if rv.Type().ConvertibleTo(t) {
		return rv.Convert(t)
	}
	return rv
}

// Ensure Provider implements shape.Provider
var _ shape.Provider = (*Provider)(nil)

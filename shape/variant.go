package shape

import "reflect"

// EnumMember is one named value of an enum.
type EnumMember struct {
	Name  string
	Value any
}

// Enum describes a named set of numeric members.
type Enum struct {
	Info

	// Underlying is the shape of the numeric representation.
	Underlying Shape

	Members []EnumMember
}

// Kind returns KindEnum.
func (s *Enum) Kind() Kind { return KindEnum }

// Accept calls v.VisitEnum.
func (s *Enum) Accept(v Visitor, state any) (any, error) { return v.VisitEnum(s, state) }

// Invoke calls fn.Invoke with s.
func (s *Enum) Invoke(fn Func, state any) (any, error) { return fn.Invoke(s, state) }

// Name returns the member name for v.
func (s *Enum) Name(v any) (string, bool) {
	for _, m := range s.Members {
		if reflect.DeepEqual(m.Value, v) {
			return m.Name, true
		}
	}
	return "", false
}

// Optional describes a value that is either present or absent.
type Optional struct {
	Info

	Element Shape

	// Deconstruct returns the element and true when v holds a value.
	Deconstruct func(v any) (any, bool)

	// None returns the absent value.
	None func() any

	// Some wraps an element into a present value.
	Some func(elem any) any
}

// Kind returns KindOptional.
func (s *Optional) Kind() Kind { return KindOptional }

// Accept calls v.VisitOptional.
func (s *Optional) Accept(v Visitor, state any) (any, error) { return v.VisitOptional(s, state) }

// Invoke calls fn.Invoke with s.
func (s *Optional) Invoke(fn Func, state any) (any, error) { return fn.Invoke(s, state) }

// Marshaller maps values to and from a surrogate representation.
type Marshaller interface {
	ToSurrogate(v any) (any, error)
	FromSurrogate(s any) (any, error)
}

// MarshallerFuncs adapts a pair of functions to Marshaller.
type MarshallerFuncs struct {
	To   func(v any) (any, error)
	From func(s any) (any, error)
}

// ToSurrogate calls m.To.
func (m MarshallerFuncs) ToSurrogate(v any) (any, error) { return m.To(v) }

// FromSurrogate calls m.From.
func (m MarshallerFuncs) FromSurrogate(s any) (any, error) { return m.From(s) }

// Surrogate describes a type traversed through the shape of another type.
type Surrogate struct {
	Info

	Surrogate  Shape
	Marshaller Marshaller
}

// Kind returns KindSurrogate.
func (s *Surrogate) Kind() Kind { return KindSurrogate }

// Accept calls v.VisitSurrogate.
func (s *Surrogate) Accept(v Visitor, state any) (any, error) { return v.VisitSurrogate(s, state) }

// Invoke calls fn.Invoke with s.
func (s *Surrogate) Invoke(fn Func, state any) (any, error) { return fn.Invoke(s, state) }

// UnionCase is one case of a tagged union.
type UnionCase struct {
	Tag   string
	Index int
	Shape Shape
}

// Union describes a tagged union of a base shape and ordered cases.
//
// Base describes the same Go type as the union itself. Visitors accept it
// directly instead of resolving it through a cache, which would find the
// union's own entry.
type Union struct {
	Info

	Base  Shape
	Cases []*UnionCase

	// CaseIndex returns the index of the case v belongs to, or -1 for the base.
	CaseIndex func(v any) int
}

// Kind returns KindUnion.
func (s *Union) Kind() Kind { return KindUnion }

// Accept calls v.VisitUnion.
func (s *Union) Accept(v Visitor, state any) (any, error) { return v.VisitUnion(s, state) }

// Invoke calls fn.Invoke with s.
func (s *Union) Invoke(fn Func, state any) (any, error) { return fn.Invoke(s, state) }

// Case returns the case for v, or nil when v is the base.
func (s *Union) Case(v any) *UnionCase {
	i := s.CaseIndex(v)
	if i < 0 || i >= len(s.Cases) {
		return nil
	}
	return s.Cases[i]
}

// Callable describes a function signature.
type Callable struct {
	Info

	Parameters []*Parameter
	Results    []Shape

	// Call invokes fn with args ordered like Parameters.
	Call func(fn any, args []any) ([]any, error)
}

// Kind returns KindCallable.
func (s *Callable) Kind() Kind { return KindCallable }

// Accept calls v.VisitCallable.
func (s *Callable) Accept(v Visitor, state any) (any, error) { return v.VisitCallable(s, state) }

// Invoke calls fn.Invoke with s.
func (s *Callable) Invoke(fn Func, state any) (any, error) { return fn.Invoke(s, state) }

// Ensure every shape implements Shape
var (
	_ Shape = (*Object)(nil)
	_ Shape = (*Sequence)(nil)
	_ Shape = (*Map)(nil)
	_ Shape = (*Enum)(nil)
	_ Shape = (*Optional)(nil)
	_ Shape = (*Surrogate)(nil)
	_ Shape = (*Union)(nil)
	_ Shape = (*Callable)(nil)
)

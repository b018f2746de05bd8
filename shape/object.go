package shape

// ConstructorStrategy describes how an object constructor takes its inputs.
type ConstructorStrategy int

const (
	// ConstructDefault creates a zero value and assigns properties afterwards.
	ConstructDefault ConstructorStrategy = iota
	// ConstructParameterized passes every value through constructor parameters.
	ConstructParameterized
)

// Object describes a record-like type.
type Object struct {
	Info

	// Properties are ordered by Position.
	Properties []*Property

	// Constructor is nil when the type cannot be constructed.
	Constructor *Constructor
}

// Kind returns KindObject.
func (s *Object) Kind() Kind { return KindObject }

// Accept calls v.VisitObject.
func (s *Object) Accept(v Visitor, state any) (any, error) { return v.VisitObject(s, state) }

// Invoke calls fn.Invoke with s.
func (s *Object) Invoke(fn Func, state any) (any, error) { return fn.Invoke(s, state) }

// Property looks up a property by name.
func (s *Object) Property(name string) (*Property, bool) {
	for _, p := range s.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// Property describes one member of an object.
type Property struct {
	Name     string
	Position int
	Shape    Shape

	// Get reads the property from an object value. Nil when not readable.
	Get func(obj any) any

	// Set returns obj with the property replaced by v. Nil when not writable.
	Set func(obj any, v any) any
}

// CanRead reports whether the property has a getter.
func (p *Property) CanRead() bool { return p.Get != nil }

// CanWrite reports whether the property has a setter.
func (p *Property) CanWrite() bool { return p.Set != nil }

// Constructor describes how to create an object value.
type Constructor struct {
	Parameters []*Parameter
	Strategy   ConstructorStrategy

	// New creates a value from arguments ordered like Parameters.
	New func(args []any) (any, error)
}

// Parameter describes one constructor or callable parameter.
type Parameter struct {
	Name       string
	Position   int
	Shape      Shape
	HasDefault bool
	Default    any
}

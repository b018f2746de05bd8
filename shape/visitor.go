package shape

// Visitor builds an artifact for each shape kind.
//
// Contract:
// - Exhaustive: one method per Kind; a kind without behavior must fail with
//   ErrUnsupportedKind, or return Absent when nothing is needed.
// - Artifacts are opaque to callers that do not own the visitor.
type Visitor interface {
	VisitObject(s *Object, state any) (any, error)
	VisitSequence(s *Sequence, state any) (any, error)
	VisitMap(s *Map, state any) (any, error)
	VisitEnum(s *Enum, state any) (any, error)
	VisitOptional(s *Optional, state any) (any, error)
	VisitSurrogate(s *Surrogate, state any) (any, error)
	VisitUnion(s *Union, state any) (any, error)
	VisitCallable(s *Callable, state any) (any, error)
}

// Unsupported implements every Visitor method by failing with
// *UnsupportedKindError. Embed it and override the kinds you handle.
type Unsupported struct{}

func unsupported(s Shape) (any, error) {
	return nil, &UnsupportedKindError{Kind: s.Kind(), Type: s.Type()}
}

func (Unsupported) VisitObject(s *Object, _ any) (any, error)       { return unsupported(s) }
func (Unsupported) VisitSequence(s *Sequence, _ any) (any, error)   { return unsupported(s) }
func (Unsupported) VisitMap(s *Map, _ any) (any, error)             { return unsupported(s) }
func (Unsupported) VisitEnum(s *Enum, _ any) (any, error)           { return unsupported(s) }
func (Unsupported) VisitOptional(s *Optional, _ any) (any, error)   { return unsupported(s) }
func (Unsupported) VisitSurrogate(s *Surrogate, _ any) (any, error) { return unsupported(s) }
func (Unsupported) VisitUnion(s *Union, _ any) (any, error)         { return unsupported(s) }
func (Unsupported) VisitCallable(s *Callable, _ any) (any, error)   { return unsupported(s) }

var _ Visitor = Unsupported{}

type absent struct{}

func (absent) String() string { return "<absent>" }

// Absent is the artifact a visitor returns when a shape needs no behavior.
var Absent any = absent{}

// IsAbsent reports whether v is the Absent marker.
func IsAbsent(v any) bool {
	_, ok := v.(absent)
	return ok
}

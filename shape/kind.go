package shape

// Kind identifies the structural kind of a shape. The set is closed.
type Kind int

const (
	// KindObject is a record-like type with properties and an optional constructor.
	KindObject Kind = iota
	// KindSequence is an ordered collection of elements.
	KindSequence
	// KindMap is an associative collection of keys to values.
	KindMap
	// KindEnum is a named set of numeric members.
	KindEnum
	// KindOptional is a value that may be absent.
	KindOptional
	// KindSurrogate is a type traversed through another type's shape.
	KindSurrogate
	// KindUnion is a tagged union of a base and ordered cases.
	KindUnion
	// KindCallable is a function signature.
	KindCallable
)

// Kinds lists every kind in declaration order.
var Kinds = []Kind{
	KindObject,
	KindSequence,
	KindMap,
	KindEnum,
	KindOptional,
	KindSurrogate,
	KindUnion,
	KindCallable,
}

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindSequence:
		return "sequence"
	case KindMap:
		return "map"
	case KindEnum:
		return "enum"
	case KindOptional:
		return "optional"
	case KindSurrogate:
		return "surrogate"
	case KindUnion:
		return "union"
	case KindCallable:
		return "callable"
	default:
		return "unknown"
	}
}

// Construction describes how a collection value can be built.
type Construction int

const (
	// ConstructNone means the collection is read-only.
	ConstructNone Construction = iota
	// ConstructMutable means an empty value is created and elements are added.
	ConstructMutable
	// ConstructEnumerable means the value is built from an enumerable of elements.
	ConstructEnumerable
	// ConstructSpan means the value is built from a contiguous buffer.
	ConstructSpan
)

func (c Construction) String() string {
	switch c {
	case ConstructNone:
		return "none"
	case ConstructMutable:
		return "mutable"
	case ConstructEnumerable:
		return "enumerable"
	case ConstructSpan:
		return "span"
	default:
		return "unknown"
	}
}

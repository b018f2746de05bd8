// Package shape describes the structure of Go types as immutable shape graphs.
//
// A Shape tags a type with one of a closed set of kinds (object, sequence,
// map, enum, optional, surrogate, union, callable) and exposes the kind's
// children. Algorithms consume shapes through the Visitor double-dispatch
// protocol: Accept calls exactly the visitor method that matches the kind.
//
// # Providers
//
// Shapes come from a Provider. Catalog is a static, hand-assembled provider;
// Aggregate chains several providers and returns the first match. The
// reflectshape subpackage derives shapes from Go types at runtime.
//
// # Visitors
//
// Embed Unsupported in a visitor to fail fast on kinds it does not handle:
//
//	type sizer struct {
//	    shape.Unsupported
//	}
//
//	func (sizer) VisitSequence(s *shape.Sequence, state any) (any, error) {
//	    ...
//	}
//
// A visitor that deliberately has nothing to do for a shape returns Absent,
// which callers can tell apart from the ErrUnsupportedKind failure.
package shape

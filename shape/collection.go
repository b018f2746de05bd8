package shape

import "iter"

// Sequence describes an ordered collection.
type Sequence struct {
	Info

	Element Shape

	// Rank is the number of dimensions; 1 for ordinary sequences.
	Rank int

	Construction Construction

	// Elements iterates the elements of a sequence value.
	Elements func(seq any) iter.Seq[any]

	// FromSlice builds a sequence value. Nil when Construction is ConstructNone.
	FromSlice func(elems []any) (any, error)
}

// Kind returns KindSequence.
func (s *Sequence) Kind() Kind { return KindSequence }

// Accept calls v.VisitSequence.
func (s *Sequence) Accept(v Visitor, state any) (any, error) { return v.VisitSequence(s, state) }

// Invoke calls fn.Invoke with s.
func (s *Sequence) Invoke(fn Func, state any) (any, error) { return fn.Invoke(s, state) }

// Map describes an associative collection.
type Map struct {
	Info

	Key   Shape
	Value Shape

	Construction Construction

	// Entries iterates the key/value pairs of a map value.
	Entries func(m any) iter.Seq2[any, any]

	// FromEntries builds a map value from parallel key and value slices.
	FromEntries func(keys, values []any) (any, error)
}

// Kind returns KindMap.
func (s *Map) Kind() Kind { return KindMap }

// Accept calls v.VisitMap.
func (s *Map) Accept(v Visitor, state any) (any, error) { return v.VisitMap(s, state) }

// Invoke calls fn.Invoke with s.
func (s *Map) Invoke(fn Func, state any) (any, error) { return fn.Invoke(s, state) }

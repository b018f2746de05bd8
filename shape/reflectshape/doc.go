// Package reflectshape derives shapes from Go types at runtime.
//
// Structs become object shapes over their exported fields, slices and arrays
// become sequences, maps become maps, pointers become optionals of their
// element, and funcs become callables. Named integers, surrogate pairs and
// interface unions are opt-in through options:
//
//	p := reflectshape.New(
//	    reflectshape.WithEnum(map[string]Color{"red": Red, "green": Green}),
//	    reflectshape.WithUnion[Animal](reflect.TypeFor[Dog](), reflect.TypeFor[Cat]()),
//	)
//	s, ok := p.ShapeOf(reflect.TypeFor[Zoo]())
//
// Shapes are memoized per type, and self-referential types terminate because
// a shape is registered before its children are derived.
package reflectshape

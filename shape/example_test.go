package shape_test

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/jonwraymond/shapeops/shape"
)

type Temperature float64

// kindNamer reports the kind of every shape it visits, except callables.
type kindNamer struct {
	shape.Unsupported
}

func (kindNamer) VisitObject(s *shape.Object, _ any) (any, error) {
	return fmt.Sprintf("object %v with %d properties", s.Type(), len(s.Properties)), nil
}

func ExampleCatalog() {
	catalog := shape.NewCatalog()
	catalog.MustAdd(
		&shape.Object{Info: shape.Info{GoType: reflect.TypeFor[Temperature](), Source: catalog}},
		&shape.Callable{Info: shape.Info{GoType: reflect.TypeFor[func()](), Source: catalog}},
	)

	s, _ := catalog.ShapeOf(reflect.TypeFor[Temperature]())
	out, _ := s.Accept(kindNamer{}, nil)
	fmt.Println(out)

	fn, _ := catalog.ShapeOf(reflect.TypeFor[func()]())
	_, err := fn.Accept(kindNamer{}, nil)
	fmt.Println(errors.Is(err, shape.ErrUnsupportedKind))
	// Output:
	// object shape_test.Temperature with 0 properties
	// true
}

func ExampleAggregate() {
	primary, fallback := shape.NewCatalog(), shape.NewCatalog()
	fallback.MustAdd(&shape.Object{Info: shape.Info{GoType: reflect.TypeFor[Temperature](), Source: fallback}})

	agg := shape.NewAggregate(primary, fallback)
	s, ok := agg.ShapeOf(reflect.TypeFor[Temperature]())
	fmt.Println(ok, s.Provider() == shape.Provider(fallback))
	// Output: true true
}

package cache_test

import (
	"context"
	"fmt"
	"reflect"

	"github.com/jonwraymond/shapeops/cache"
	"github.com/jonwraymond/shapeops/shape"
	"github.com/jonwraymond/shapeops/shape/reflectshape"
)

type Tree struct {
	Label    string
	Children []Tree
}

// depth computes the nesting depth of a value.
type depth func(v any) int

type depthVisitor struct {
	shape.Unsupported
	r cache.Resolver
}

func (d depthVisitor) VisitObject(s *shape.Object, _ any) (any, error) {
	var children []depth
	for _, p := range s.Properties {
		f, err := cache.ResolveAs[depth](d.r, p.Shape)
		if err != nil {
			return nil, err
		}
		children = append(children, f)
	}
	if len(children) == 0 {
		return depth(func(any) int { return 0 }), nil
	}
	return depth(func(v any) int {
		deepest := 0
		for i, p := range s.Properties {
			deepest = max(deepest, children[i](p.Get(v)))
		}
		return deepest + 1
	}), nil
}

func (d depthVisitor) VisitSequence(s *shape.Sequence, _ any) (any, error) {
	elem, err := cache.ResolveAs[depth](d.r, s.Element)
	if err != nil {
		return nil, err
	}
	return depth(func(v any) int {
		deepest := 0
		for e := range s.Elements(v) {
			deepest = max(deepest, elem(e))
		}
		return deepest
	}), nil
}

func Example() {
	c, err := cache.New(reflectshape.New(),
		func(r cache.Resolver) shape.Visitor { return depthVisitor{r: r} },
		cache.WithDeferred(cache.Deferred(func(get func() depth) depth {
			return func(v any) int { return get()(v) }
		})),
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	f, err := cache.ArtifactFor[Tree, depth](context.Background(), c)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	tree := Tree{Label: "root", Children: []Tree{{Label: "a", Children: []Tree{{Label: "b"}}}}}
	fmt.Println("depth:", f(tree))
	fmt.Println("entries:", c.Len())
	// Output:
	// depth: 3
	// entries: 3
}

func ExampleCache_TryAdd() {
	c, _ := cache.New(reflectshape.New(), func(r cache.Resolver) shape.Visitor {
		return depthVisitor{r: r}
	})

	added, _ := c.TryAdd(reflect.TypeFor[string](), depth(func(any) int { return 99 }))
	fmt.Println("added:", added)

	f, _ := cache.Artifact[depth](context.Background(), c, reflect.TypeFor[string]())
	fmt.Println(f("x"))
	// Output:
	// added: true
	// 99
}

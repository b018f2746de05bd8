package count

import (
	"context"
	"reflect"
	"testing"

	"github.com/jonwraymond/shapeops/cache"
	"github.com/jonwraymond/shapeops/shape/reflectshape"
)

type node struct {
	Value int
	Next  *node
}

type point struct{ X, Y int }

type polygon struct {
	Name   string
	Points []point
	Tags   map[string]point
}

type level int

type shapeKind interface{ Area() int }

type square struct{ Side int }

func (s square) Area() int { return s.Side * s.Side }

type circle struct{}

func (circle) Area() int { return 3 }

type version struct{ Major, Minor int }

func newProvider() *reflectshape.Provider {
	return reflectshape.New(
		reflectshape.WithEnum(map[string]level{"low": 0, "high": 1}),
		reflectshape.WithUnion[shapeKind](reflect.TypeFor[square](), reflect.TypeFor[circle]()),
		reflectshape.WithSurrogate(
			func(v version) (point, error) { return point{v.Major, v.Minor}, nil },
			func(p point) (version, error) { return version{p.X, p.Y}, nil },
		),
	)
}

func TestCount(t *testing.T) {
	c, err := New(newProvider())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	tests := []struct {
		name string
		v    any
		want int
	}{
		{"scalar", 5, 0},
		{"string", "hi", 0},
		{"linked list", node{Value: 10, Next: &node{Value: 20, Next: &node{Value: 30}}}, 3},
		{"nil pointer", (*node)(nil), 0},
		{"slice", []point{{1, 2}, {3, 4}}, 2},
		{"nested", polygon{Points: []point{{}, {}}, Tags: map[string]point{"a": {}}}, 4},
		{"enum", level(1), 0},
		{"union member", shapeKind(square{Side: 2}), 1},
		{"empty union member", shapeKind(circle{}), 0},
		{"surrogate", version{1, 2}, 1},
		{"func", func() {}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Of(ctx, c, reflect.TypeOf(tt.v))
			if err != nil {
				t.Fatalf("Of() error = %v", err)
			}
			if got := f(tt.v); got != tt.want {
				t.Errorf("count = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCount_UnionInterfaceType(t *testing.T) {
	c, _ := New(newProvider())
	f, err := For[shapeKind](context.Background(), c)
	if err != nil {
		t.Fatalf("For() error = %v", err)
	}
	if got := f(square{Side: 1}); got != 1 {
		t.Errorf("count(square) = %d, want 1", got)
	}
	if got := f(nil); got != 0 {
		t.Errorf("count(nil) = %d, want 0", got)
	}
}

func TestCount_LongChain(t *testing.T) {
	c, _ := New(newProvider())
	f, err := For[node](context.Background(), c)
	if err != nil {
		t.Fatal(err)
	}

	head := &node{}
	for i := range 1000 {
		head = &node{Value: i, Next: head}
	}
	if got := f(*head); got != 1001 {
		t.Errorf("count = %d, want 1001", got)
	}
}

func TestCount_OverrideOnlyType(t *testing.T) {
	c, err := New(newProvider(), cache.WithOverride(reflect.TypeFor[point](), Func(func(v any) int {
		return 100
	})))
	if err != nil {
		t.Fatal(err)
	}
	f, err := For[[]point](context.Background(), c)
	if err != nil {
		t.Fatal(err)
	}
	if got := f([]point{{}, {}}); got != 200 {
		t.Errorf("count = %d, want 200", got)
	}
}

func BenchmarkCount_Cached(b *testing.B) {
	c, _ := New(newProvider())
	ctx := context.Background()
	v := polygon{Name: "bench", Points: make([]point, 16)}

	for b.Loop() {
		f, _ := For[polygon](ctx, c)
		_ = f(v)
	}
}

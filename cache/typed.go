package cache

import (
	"context"
	"reflect"

	"golang.org/x/sync/errgroup"
)

// As downcasts an artifact to A, failing with *ArtifactTypeError.
func As[A any](v any) (A, error) {
	a, ok := v.(A)
	if !ok {
		var zero A
		return zero, &ArtifactTypeError{Want: reflect.TypeFor[A](), Got: v}
	}
	return a, nil
}

// Artifact returns the artifact for t as an A.
func Artifact[A any](ctx context.Context, c *Cache, t reflect.Type) (A, error) {
	v, err := c.GetOrAdd(ctx, t)
	if err != nil {
		var zero A
		return zero, err
	}
	return As[A](v)
}

// ArtifactFor returns the artifact for the Go type T as an A.
func ArtifactFor[T, A any](ctx context.Context, c *Cache) (A, error) {
	return Artifact[A](ctx, c, reflect.TypeFor[T]())
}

// Prewarm builds the artifacts for types concurrently, running at most limit
// builds at once (limit <= 0 means no limit). It returns the first error.
func (c *Cache) Prewarm(ctx context.Context, limit int, types ...reflect.Type) error {
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for _, t := range types {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, err := c.GetOrAdd(ctx, t)
			return err
		})
	}
	return g.Wait()
}

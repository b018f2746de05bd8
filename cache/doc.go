// Package cache builds and memoizes per-type artifacts from shape graphs.
//
// A Cache is bound to one shape.Provider and one algorithm, expressed as a
// BuilderFactory that creates a shape.Visitor around a Resolver. Asking the
// cache for a type's artifact looks up the shape, opens a generation context
// and visits the shape. Nested artifacts are requested through the Resolver,
// which returns committed artifacts, builds new ones, or hands out a deferred
// trampoline when a type refers back to itself.
//
// # Construction
//
//	c, err := cache.New(provider, func(r cache.Resolver) shape.Visitor {
//	    return &counter{resolver: r}
//	}, cache.WithDeferred(cache.DeferredFunc[CountFunc]()))
//
//	count, err := cache.ArtifactFor[Node, CountFunc](ctx, c)
//
// # Concurrency
//
// Lookups are lock-free. A finished generation commits its whole batch of
// artifacts atomically; if another goroutine committed any of the same types
// first, the batch is discarded and the build is redone against the larger
// cache. Builders may therefore run more than once per type and must be free
// of externally observable side effects.
//
// # Failures
//
// Build errors propagate to the caller unchanged. With WithCacheErrors(true)
// the error is stored and every later lookup of that type returns the same
// error value without rebuilding.
package cache

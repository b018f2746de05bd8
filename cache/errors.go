package cache

import (
	"errors"
	"fmt"
	"reflect"
)

// Sentinel errors for cache operations.
var (
	ErrNilProvider = errors.New("cache: provider is nil")
	ErrNilFactory  = errors.New("cache: builder factory is nil")
	ErrNilType     = errors.New("cache: type is nil")
	ErrNilShape    = errors.New("cache: shape is nil")

	// ErrShapeNotFound indicates the bound provider has no shape for a type.
	ErrShapeNotFound = errors.New("cache: no shape for type")

	// ErrProviderMismatch indicates a shape from a provider the cache is not bound to.
	ErrProviderMismatch = errors.New("cache: shape provider does not match cache provider")

	// ErrCycle indicates a self-referential shape built without a DeferredFactory.
	ErrCycle = errors.New("cache: recursive shape requires a deferred factory")

	// ErrArtifactType indicates an artifact is not of the requested type.
	ErrArtifactType = errors.New("cache: artifact has unexpected type")

	// ErrProviderNotComparable indicates a provider that cannot key a Registry.
	ErrProviderNotComparable = errors.New("cache: provider is not comparable")
)

// ArtifactTypeError reports a failed artifact downcast.
type ArtifactTypeError struct {
	Want reflect.Type
	Got  any
}

func (e *ArtifactTypeError) Error() string {
	return fmt.Sprintf("cache: artifact has type %T, want %v", e.Got, e.Want)
}

// Is reports whether target is ErrArtifactType.
func (e *ArtifactTypeError) Is(target error) bool {
	return target == ErrArtifactType
}

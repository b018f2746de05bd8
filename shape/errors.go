package shape

import (
	"errors"
	"fmt"
	"reflect"
)

// Sentinel errors for shape operations.
var (
	// ErrUnsupportedKind indicates a visitor has no case for a shape kind.
	ErrUnsupportedKind = errors.New("shape: unsupported shape kind")

	// ErrNilShape indicates a nil shape was provided.
	ErrNilShape = errors.New("shape: shape is nil")

	// ErrNilType indicates a nil reflect.Type was provided.
	ErrNilType = errors.New("shape: type is nil")

	// ErrDuplicateShape indicates a catalog already holds a shape for the type.
	ErrDuplicateShape = errors.New("shape: shape already registered")

	// ErrForeignShape indicates a shape whose Provider is not the catalog it is added to.
	ErrForeignShape = errors.New("shape: shape belongs to another provider")
)

// UnsupportedKindError reports the kind and type a visitor could not handle.
type UnsupportedKindError struct {
	Kind Kind
	Type reflect.Type
}

func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("shape: visitor does not support %s shape for type %v", e.Kind, e.Type)
}

// Is reports whether target is ErrUnsupportedKind.
func (e *UnsupportedKindError) Is(target error) bool {
	return target == ErrUnsupportedKind
}

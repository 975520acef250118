package tess

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sentinel errors returned by [Tessellate] and [NewSurface]. Returned errors
// wrap these with context; test for them with errors.Is.
var (
	// ErrIndexOverflow is returned when subdivision needs more resolution than
	// the parameter grid provides. The requested tolerance cannot be met at
	// the configured maximum depth.
	ErrIndexOverflow = errors.New("tess: grid index overflow")

	// ErrInvalidDirection is returned when a direction other than U or V
	// reaches the subdivision machinery.
	ErrInvalidDirection = errors.New("tess: invalid direction")

	// ErrInvalidOptions is returned for a non-positive tolerance or an out
	// of range maximum depth.
	ErrInvalidOptions = errors.New("tess: invalid options")

	// ErrInvalidSurface is returned by NewSurface for inconsistent orders,
	// lengths, knot vectors or control meshes.
	ErrInvalidSurface = errors.New("tess: invalid surface")
)

// InvalidDirectionError is the panic value used when a [Direction] other than
// [U] or [V] is passed to a function that switches on it. [Tessellate]
// recovers it and returns an error wrapping [ErrInvalidDirection].
type InvalidDirectionError struct {
	Dir Direction
}

func (e InvalidDirectionError) Error() string {
	return fmt.Sprintf("tess: invalid direction %d", int(e.Dir))
}

func (e InvalidDirectionError) Unwrap() error {
	return ErrInvalidDirection
}

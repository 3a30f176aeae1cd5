package sketch

import (
	"errors"
	"fmt"
)

var (
	// ErrValue is returned when an edit would break a structural invariant,
	// such as a knot multiplicity above the spline's degree.
	ErrValue = errors.New("sketch: invalid value")
	// ErrOutOfRange is returned for geometry, constraint and knot indices
	// that don't currently exist.
	ErrOutOfRange = errors.New("sketch: index out of range")
	// ErrNoSuchPoint is returned by GetPoint for point positions a curve
	// doesn't define. It wraps ErrOutOfRange.
	ErrNoSuchPoint = fmt.Errorf("%w: no such point", ErrOutOfRange)
	// ErrGeometricPrecondition is returned when Split, Trim or Join can't
	// find the point, parameter or intersection they need. The sketch is left
	// unchanged; this is a soft failure to be reported to the user.
	ErrGeometricPrecondition = errors.New("sketch: geometric precondition not met")
	// ErrNotAngle is returned when an angle operation is applied to a
	// constraint of another type.
	ErrNotAngle = errors.New("sketch: not an angle constraint")
)

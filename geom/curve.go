package geom

import (
	"fmt"
	"math"
)

// Kind identifies the variant of a [Curve].
type Kind uint8

const (
	LineKind Kind = iota
	CircleKind
	EllipseKind
	ArcOfCircleKind
	ArcOfEllipseKind
	ArcOfHyperbolaKind
	ArcOfParabolaKind
	BSplineKind
	DotKind
)

func (k Kind) String() string {
	switch k {
	case LineKind:
		return "line"
	case CircleKind:
		return "circle"
	case EllipseKind:
		return "ellipse"
	case ArcOfCircleKind:
		return "arc of circle"
	case ArcOfEllipseKind:
		return "arc of ellipse"
	case ArcOfHyperbolaKind:
		return "arc of hyperbola"
	case ArcOfParabolaKind:
		return "arc of parabola"
	case BSplineKind:
		return "B-spline"
	case DotKind:
		return "point"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// DefaultAccuracy is a default value for functions that take an accuracy
// argument.
const DefaultAccuracy = 1e-9

// Curve is a parametric sketch curve. The set of implementations is closed:
// [Line], [Circle], [Ellipse], [ArcOfCircle], [ArcOfEllipse],
// [ArcOfHyperbola], [ArcOfParabola], [BSpline] and [Dot].
//
// Code that dispatches on the concrete type should use a type switch whose
// default case panics, so that a new curve kind is caught everywhere.
type Curve interface {
	Kind() Kind
	// Eval evaluates the curve at parameter t.
	Eval(t float64) Point
	// Range returns the first and last parameter of the curve.
	Range() (t0, t1 float64)
	// IsClosed reports whether the curve is periodic, in which case Eval(t0)
	// equals Eval(t1).
	IsClosed() bool

	curve()
}

// Start returns the curve's point at its first parameter.
func Start(c Curve) Point {
	t0, _ := c.Range()
	return c.Eval(t0)
}

// End returns the curve's point at its last parameter.
func End(c Curve) Point {
	_, t1 := c.Range()
	return c.Eval(t1)
}

// AtEnd reports whether p lies within tolerance of an end point of c. Closed
// curves have no end points.
func AtEnd(c Curve, p Point, tolerance float64) bool {
	return !c.IsClosed() && (p.Near(Start(c), tolerance) || p.Near(End(c), tolerance))
}

// Derivative estimates the first derivative of c at t using central
// differences.
func Derivative(c Curve, t float64) Vec2 {
	t0, t1 := c.Range()
	h := 1e-6 * max(1, t1-t0)
	a, b := t-h, t+h
	if !c.IsClosed() {
		a = max(a, t0)
		b = min(b, t1)
	}
	if b <= a {
		return Vec2{}
	}
	return c.Eval(b).Sub(c.Eval(a)).Div(b - a)
}

// Degenerate reports whether c has non-finite parameters or has collapsed
// so far that it has no well-defined parametrization: a line of zero length,
// a conic with a radius that isn't positive, or an arc with an empty range.
// B-splines are checked by [BSpline.Validate] instead.
func Degenerate(c Curve) bool {
	switch c := c.(type) {
	case Dot:
		return !c.P.IsFinite()
	case Line:
		return !c.P0.IsFinite() || !c.P1.IsFinite() || c.P0 == c.P1
	case Circle:
		return !c.Center.IsFinite() || !positive(c.Radius)
	case ArcOfCircle:
		return Degenerate(c.Circle) || !increasing(c.Start, c.End)
	case Ellipse:
		return !c.Center.IsFinite() || !positive(c.MajorRadius) || !positive(c.MinorRadius) || !finite(c.Rotation)
	case ArcOfEllipse:
		return Degenerate(c.Ellipse) || !increasing(c.Start, c.End)
	case ArcOfHyperbola:
		return !c.Center.IsFinite() || !positive(c.MajorRadius) || !positive(c.MinorRadius) ||
			!finite(c.Rotation) || !increasing(c.Start, c.End)
	case ArcOfParabola:
		return !c.Vertex.IsFinite() || !positive(c.Focal) || !finite(c.Rotation) || !increasing(c.Start, c.End)
	case BSpline:
		return false
	default:
		panic(fmt.Sprintf("unhandled curve %T", c))
	}
}

func positive(f float64) bool { return finite(f) && f > 0 }

func increasing(a, b float64) bool { return finite(a) && finite(b) && a < b }

// Dot is a single point. Its range is the single parameter 0.
type Dot struct {
	P Point
}

var _ Curve = Dot{}

func (Dot) Kind() Kind                { return DotKind }
func (d Dot) Eval(float64) Point      { return d.P }
func (Dot) Range() (float64, float64) { return 0, 0 }
func (Dot) IsClosed() bool            { return false }
func (Dot) curve()                    {}

// normalizeAngle maps th into [base, base+2π).
func normalizeAngle(th, base float64) float64 {
	d := math.Mod(th-base, 2*math.Pi)
	if d < 0 {
		d += 2 * math.Pi
	}
	return base + d
}

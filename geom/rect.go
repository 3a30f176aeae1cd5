package geom

import (
	"fmt"
	"math"
)

// Rect is an axis-aligned rectangle.
type Rect struct {
	X0, Y0 float64
	X1, Y1 float64
}

// NewRectFromPoints returns a rectangle with the extents of p0 and p1, ensuring that
// width and height are non-negative.
func NewRectFromPoints(p0, p1 Point) Rect {
	return Rect{p0.X, p0.Y, p1.X, p1.Y}.Abs()
}

// Abs returns a new rectangle with the same extents as r, but ensuring that width and
// height are non-negative.
func (r Rect) Abs() Rect {
	return Rect{
		X0: min(r.X0, r.X1),
		Y0: min(r.Y0, r.Y1),
		X1: max(r.X0, r.X1),
		Y1: max(r.Y0, r.Y1),
	}
}

// UnionPoint computes the union with one point.
//
// This method includes the perimeter of zero-area rectangles.
// Thus, a succession of UnionPoint operations on a series of
// points yields their enclosing rectangle.
//
// Results are valid only if width and height are non-negative.
func (r Rect) UnionPoint(pt Point) Rect {
	return Rect{
		X0: min(r.X0, pt.X),
		Y0: min(r.Y0, pt.Y),
		X1: max(r.X1, pt.X),
		Y1: max(r.Y1, pt.Y),
	}
}

// Overlaps reports whether r and o share at least one point. Rectangles
// that only touch overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.X0 <= o.X1 && o.X0 <= r.X1 && r.Y0 <= o.Y1 && o.Y0 <= r.Y1
}

// Inflate expands a rectangle by a constant amount in both directions.
//
// The logic simply applies the amount in each direction. If rectangle
// area or added dimensions are negative, this could give odd results.
func (r Rect) Inflate(width, height float64) Rect {
	return Rect{
		X0: r.X0 - width,
		Y0: r.Y0 - height,
		X1: r.X1 + width,
		Y1: r.Y1 + height,
	}
}

// BoundingBox returns a rectangle that encloses c. It is exact for lines,
// points, circles and ellipses. For other curves it encloses the poles of
// their B-spline form, which is never smaller than the tight box.
func BoundingBox(c Curve) Rect {
	switch c := c.(type) {
	case Dot:
		return Rect{c.P.X, c.P.Y, c.P.X, c.P.Y}
	case Line:
		return NewRectFromPoints(c.P0, c.P1)
	case Circle:
		return Rect{
			c.Center.X - c.Radius, c.Center.Y - c.Radius,
			c.Center.X + c.Radius, c.Center.Y + c.Radius,
		}
	case Ellipse:
		sin, cos := math.Sincos(c.Rotation)
		a, b := c.MajorRadius, c.MinorRadius
		w := math.Hypot(a*cos, b*sin)
		h := math.Hypot(a*sin, b*cos)
		return Rect{c.Center.X - w, c.Center.Y - h, c.Center.X + w, c.Center.Y + h}
	case BSpline:
		return polesBox(c.Poles)
	case ArcOfCircle, ArcOfEllipse, ArcOfHyperbola, ArcOfParabola:
		b, err := ToBSpline(c)
		if err != nil {
			panic(err)
		}
		return polesBox(b.Poles)
	default:
		panic(fmt.Sprintf("unhandled curve %T", c))
	}
}

func polesBox(poles []Point) Rect {
	r := Rect{poles[0].X, poles[0].Y, poles[0].X, poles[0].Y}
	for _, p := range poles[1:] {
		r = r.UnionPoint(p)
	}
	return r
}

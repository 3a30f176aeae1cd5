package sketch

import (
	"fmt"
	"math"
	"time"

	"honnef.co/go/sketch/geom"
)

// project returns the parameter of the point of c nearest to pt.
func (s *Sketch) project(c geom.Curve, pt geom.Point) (float64, error) {
	t, d := geom.Nearest(c, pt)
	if tol := s.opts.pickTolerance; tol > 0 && math.Sqrt(d) > tol {
		return 0, fmt.Errorf("%w: %v is %g away from the %v", ErrGeometricPrecondition, pt, math.Sqrt(d), c.Kind())
	}
	return t, nil
}

// subCurve returns the part of the open curve c between the parameters a
// and b.
func subCurve(c geom.Curve, a, b float64) (geom.Curve, error) {
	switch c := c.(type) {
	case geom.Line:
		return c.Subsegment(a, b), nil
	case geom.ArcOfCircle:
		c.Start, c.End = a, b
		return c, nil
	case geom.ArcOfEllipse:
		c.Start, c.End = a, b
		return c, nil
	case geom.ArcOfHyperbola:
		c.Start, c.End = a, b
		return c, nil
	case geom.ArcOfParabola:
		c.Start, c.End = a, b
		return c, nil
	case geom.BSpline:
		seg, err := c.Segment(a, b)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrGeometricPrecondition, err)
		}
		return seg, nil
	case geom.Dot, geom.Circle, geom.Ellipse:
		panic(fmt.Sprintf("subCurve of %T", c))
	default:
		panic(fmt.Sprintf("unhandled curve %T", c))
	}
}

// openCurve returns the open curve that runs along the closed curve c from
// parameter a to parameter b, with a < b <= a + period.
func openCurve(c geom.Curve, a, b float64) (geom.Curve, error) {
	switch c := c.(type) {
	case geom.Circle:
		a, b = normalizeRange(a, b)
		return c.Arc(a, b), nil
	case geom.Ellipse:
		a, b = normalizeRange(a, b)
		return c.Arc(a, b), nil
	case geom.BSpline:
		t0, t1 := c.Range()
		if a >= t1 {
			a, b = a-c.Period(), b-c.Period()
		} else if a < t0 {
			a, b = a+c.Period(), b+c.Period()
		}
		seg, err := c.Segment(a, b)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrGeometricPrecondition, err)
		}
		return seg, nil
	case geom.Dot, geom.Line, geom.ArcOfCircle, geom.ArcOfEllipse, geom.ArcOfHyperbola, geom.ArcOfParabola:
		panic(fmt.Sprintf("openCurve of %T", c))
	default:
		panic(fmt.Sprintf("unhandled curve %T", c))
	}
}

// normalizeRange shifts an angular range so that it starts in [0, 2π).
func normalizeRange(a, b float64) (float64, float64) {
	shift := math.Floor(a/(2*math.Pi)) * 2 * math.Pi
	return a - shift, b - shift
}

// splitCurve divides the open curve c at parameter t.
func splitCurve(c geom.Curve, t float64) (geom.Curve, geom.Curve, error) {
	if b, ok := c.(geom.BSpline); ok {
		l, r, err := b.SplitAt(t)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrGeometricPrecondition, err)
		}
		return l, r, nil
	}
	t0, t1 := c.Range()
	l, err := subCurve(c, t0, t)
	if err != nil {
		return nil, nil, err
	}
	r, err := subCurve(c, t, t1)
	if err != nil {
		return nil, nil, err
	}
	return l, r, nil
}

// sharesCenter reports whether the pieces of a split c keep a common
// center that should stay coincident.
func sharesCenter(c geom.Curve) bool {
	switch c.(type) {
	case geom.ArcOfCircle, geom.ArcOfEllipse:
		return true
	default:
		return false
	}
}

// Split divides the curve id at the point of it nearest to pt.
//
// An open curve becomes two: the first piece keeps the id and the second is
// appended. Constraints on the old end point move to the second piece, the
// pieces are made coincident where they meet, and arcs of circles and
// ellipses also get their centers made coincident. A closed curve is opened
// at pt and keeps its id.
//
// Splitting a point, or an open curve at one of its end points, fails with
// ErrGeometricPrecondition.
func (s *Sketch) Split(id GeoID, pt geom.Point) (err error) {
	defer func(start time.Time) { s.observe(OpSplit, id, start, err) }(time.Now())
	k, err := s.keyOf(id)
	if err != nil {
		return err
	}
	g := s.geos[k]
	c := g.Curve
	if c.Kind() == geom.DotKind {
		return fmt.Errorf("%w: can't split a point", ErrGeometricPrecondition)
	}
	t, err := s.project(c, pt)
	if err != nil {
		return err
	}
	_, isSpline := c.(geom.BSpline)

	if c.IsClosed() {
		var open geom.Curve
		if b, ok := c.(geom.BSpline); ok {
			o, err := b.OpenAt(t)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrGeometricPrecondition, err)
			}
			open = o
		} else {
			t0, t1 := c.Range()
			open, err = openCurve(c, t, t+t1-t0)
			if err != nil {
				return err
			}
		}

		exposed := isSpline && s.retract(k)
		s.dropEnd(k, PosStart)
		s.dropEnd(k, PosEnd)
		g.Curve = open
		if exposed {
			s.expose(k)
		}
		s.purge()
		return nil
	}

	at := c.Eval(t)
	if geom.AtEnd(c, at, s.opts.precision) {
		return fmt.Errorf("%w: %v is an end point of the %v", ErrGeometricPrecondition, at, c.Kind())
	}
	first, second, err := splitCurve(c, t)
	if err != nil {
		return err
	}

	var exposed bool
	if isSpline {
		exposed = s.retract(k)
	} else {
		exposed = len(s.alignmentsOf(k)) > 0
	}
	g.Curve = first
	k2 := s.appendGeometry(second, g.Construction, false)
	s.moveEnd(k, PosEnd, k2)
	s.addCoincident(ref{key: k, pos: PosEnd}, ref{key: k2, pos: PosStart})
	if sharesCenter(c) {
		s.addCoincident(ref{key: k, pos: PosMid}, ref{key: k2, pos: PosMid})
	}
	if exposed {
		if isSpline {
			s.expose(k)
		}
		s.expose(k2)
	}
	s.purge()
	return nil
}

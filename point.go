package sketch

import (
	"fmt"

	"honnef.co/go/sketch/geom"
)

// GetPoint returns the point pos of c.
//
// Open curves have start and end points at the ends of their range. Circles
// and ellipses report the end of their positive major axis as both start and
// end. Curves with a center (circles, ellipses, arcs of them and arcs of
// hyperbolas) report it as mid, and parabolas their vertex. A point is its
// own start, mid and end.
//
// Positions a curve doesn't define, including PosNone for every curve and
// PosMid for lines and B-splines, fail with ErrNoSuchPoint.
func GetPoint(c geom.Curve, pos PointPos) (geom.Point, error) {
	var start, end, mid geom.Point
	hasMid := true
	switch c := c.(type) {
	case geom.Dot:
		start, end, mid = c.P, c.P, c.P
	case geom.Line:
		start, end = c.P0, c.P1
		hasMid = false
	case geom.Circle:
		start = c.Eval(0)
		end, mid = start, c.Center
	case geom.Ellipse:
		start = c.Eval(0)
		end, mid = start, c.Center
	case geom.ArcOfCircle:
		start, end, mid = c.Eval(c.Start), c.Eval(c.End), c.Center
	case geom.ArcOfEllipse:
		start, end, mid = c.Eval(c.Start), c.Eval(c.End), c.Center
	case geom.ArcOfHyperbola:
		start, end, mid = c.Eval(c.Start), c.Eval(c.End), c.Center
	case geom.ArcOfParabola:
		start, end, mid = c.Eval(c.Start), c.Eval(c.End), c.Vertex
	case geom.BSpline:
		if c.Periodic {
			start = geom.Start(c)
			end = start
		} else {
			start, end = c.Poles[0], c.Poles[len(c.Poles)-1]
		}
		hasMid = false
	default:
		panic(fmt.Sprintf("unhandled curve %T", c))
	}

	switch {
	case pos == PosStart:
		return start, nil
	case pos == PosEnd:
		return end, nil
	case pos == PosMid && hasMid:
		return mid, nil
	default:
		return geom.Point{}, fmt.Errorf("%w: %v of %v", ErrNoSuchPoint, pos, c.Kind())
	}
}

// vertices lists the points of c that count as sketch vertices, in order.
func vertices(c geom.Curve) []PointPos {
	switch c.(type) {
	case geom.Dot:
		return []PointPos{PosStart}
	case geom.Line, geom.BSpline:
		return []PointPos{PosStart, PosEnd}
	case geom.Circle, geom.Ellipse:
		return []PointPos{PosMid}
	case geom.ArcOfCircle, geom.ArcOfEllipse, geom.ArcOfHyperbola, geom.ArcOfParabola:
		return []PointPos{PosStart, PosEnd, PosMid}
	default:
		panic(fmt.Sprintf("unhandled curve %T", c))
	}
}

package geom

import (
	"fmt"
	"math"
)

// ToBSpline returns a non-periodic B-spline that traces the open curve c.
// Conic arcs become piecewise rational quadratics; their knots keep the
// arc's parameter values at the piece boundaries.
func ToBSpline(c Curve) (BSpline, error) {
	switch c := c.(type) {
	case Line:
		return BSpline{
			Poles:   []Point{c.P0, c.P1},
			Weights: []float64{1, 1},
			Knots:   []float64{0, 1},
			Mults:   []int{2, 2},
			Degree:  1,
		}, nil
	case ArcOfCircle:
		return ellipticArc(c.Center, Vec(c.Radius, c.Radius), 0, c.Start, c.End), nil
	case ArcOfEllipse:
		return ellipticArc(c.Center, c.Radii(), c.Rotation, c.Start, c.End), nil
	case ArcOfHyperbola:
		return hyperbolicArc(c), nil
	case ArcOfParabola:
		mid := Vec(c.Start*c.End/(4*c.Focal), (c.Start+c.End)/2)
		return BSpline{
			Poles:   []Point{c.Eval(c.Start), c.Vertex.Translate(rotatePt(mid, c.Rotation)), c.Eval(c.End)},
			Weights: []float64{1, 1, 1},
			Knots:   []float64{c.Start, c.End},
			Mults:   []int{3, 3},
			Degree:  2,
		}, nil
	case BSpline:
		if c.Periodic {
			return BSpline{}, fmt.Errorf("%w: periodic B-spline", ErrClosedCurve)
		}
		return c.Clone(), nil
	case Circle, Ellipse:
		return BSpline{}, fmt.Errorf("%w: %v", ErrClosedCurve, c.Kind())
	case Dot:
		return BSpline{}, fmt.Errorf("%w: a point has no B-spline form", ErrParameter)
	default:
		panic(fmt.Sprintf("unhandled curve %T", c))
	}
}

// conicPieces builds a piecewise rational quadratic from n pieces over
// [t0, t1]. piece returns the middle pole and its weight for the piece
// centered on m with half-width h.
func conicPieces(eval func(float64) Point, t0, t1 float64, n int, piece func(m, h float64) (Point, float64)) BSpline {
	b := BSpline{Degree: 2}
	step := (t1 - t0) / float64(n)
	for i := range n {
		a := t0 + float64(i)*step
		if i == 0 {
			b.Poles = append(b.Poles, eval(a))
			b.Weights = append(b.Weights, 1)
			b.Knots = append(b.Knots, a)
			b.Mults = append(b.Mults, 3)
		}
		mid, w := piece(a+step/2, step/2)
		end := t0 + float64(i+1)*step
		if i == n-1 {
			end = t1
		}
		b.Poles = append(b.Poles, mid, eval(end))
		b.Weights = append(b.Weights, w, 1)
		b.Knots = append(b.Knots, end)
		b.Mults = append(b.Mults, 2)
	}
	b.Mults[len(b.Mults)-1] = 3
	return b
}

func ellipticArc(center Point, radii Vec2, rotation, t0, t1 float64) BSpline {
	eval := func(t float64) Point {
		return center.Translate(sampleEllipse(radii, rotation, t))
	}
	n := max(1, int(math.Ceil((t1-t0)/(math.Pi/2)-1e-9)))
	return conicPieces(eval, t0, t1, n, func(m, h float64) (Point, float64) {
		cos := math.Cos(h)
		return center.Translate(sampleEllipse(radii, rotation, m).Div(cos)), cos
	})
}

func hyperbolicArc(a ArcOfHyperbola) BSpline {
	n := max(1, int(math.Ceil(a.End-a.Start-1e-9)))
	return conicPieces(a.Eval, a.Start, a.End, n, func(m, h float64) (Point, float64) {
		cosh := math.Cosh(h)
		v := Vec(a.MajorRadius*math.Cosh(m)/cosh, a.MinorRadius*math.Sinh(m)/cosh)
		return a.Center.Translate(rotatePt(v, a.Rotation)), cosh
	})
}

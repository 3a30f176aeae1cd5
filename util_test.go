package sketch

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"honnef.co/go/sketch/geom"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func approx(epsilon float64) cmp.Option {
	return cmpopts.EquateApprox(0, epsilon)
}

func near(t *testing.T, want, got geom.Point, epsilon float64) {
	t.Helper()
	if d := want.Distance(got); d > epsilon || math.IsNaN(d) {
		t.Errorf("got %v, want %v (distance %g)", got, want, d)
	}
}

func testLine() geom.Line {
	return geom.Line{P0: geom.Pt(1, 2), P1: geom.Pt(3, 4)}
}

func testCircle() geom.Circle {
	return geom.Circle{Center: geom.Pt(1, 2), Radius: 3}
}

func testArcOfCircle() geom.ArcOfCircle {
	return geom.ArcOfCircle{Circle: testCircle(), Start: math.Pi / 3, End: 1.5 * math.Pi}
}

func testEllipse() geom.Ellipse {
	return geom.Ellipse{Center: geom.Pt(1, 2), MajorRadius: 4, MinorRadius: 3}
}

func testArcOfEllipse() geom.ArcOfEllipse {
	return geom.ArcOfEllipse{Ellipse: testEllipse(), Start: math.Pi / 3, End: 1.5 * math.Pi}
}

func testArcOfHyperbola() geom.ArcOfHyperbola {
	return geom.ArcOfHyperbola{Center: geom.Pt(1, 2), MajorRadius: 4, MinorRadius: 3, Start: -1, End: 1}
}

func testArcOfParabola() geom.ArcOfParabola {
	return geom.ArcOfParabola{Vertex: geom.Pt(1, 2), Focal: 3, Start: -1.5 * math.Pi, End: 1.5 * math.Pi}
}

var testPoles = []geom.Point{geom.Pt(1, 0), geom.Pt(1, 1), geom.Pt(1, 0.5), geom.Pt(0, 1), geom.Pt(0, 0)}

// testSpline is a clamped cubic with one interior knot.
func testSpline() geom.BSpline {
	b, err := geom.NewBSpline(testPoles, nil, []float64{0, 1, 2}, []int{4, 1, 4}, 3, false)
	if err != nil {
		panic(err)
	}
	return b
}

// testPeriodicSpline is a closed cubic through the same poles.
func testPeriodicSpline() geom.BSpline {
	b, err := geom.NewBSpline(testPoles, nil, []float64{0, 0.3, 1, 1.5, 1.8, 2}, []int{1, 1, 1, 1, 1, 1}, 3, true)
	if err != nil {
		panic(err)
	}
	return b
}

// at returns the point of c at the fraction f of its parameter range.
func at(c geom.Curve, f float64) geom.Point {
	t0, t1 := c.Range()
	return c.Eval(t0 + f*(t1-t0))
}

// normalAt returns the unit normal of c at the fraction f of its range.
func normalAt(c geom.Curve, f float64) geom.Vec2 {
	t0, t1 := c.Range()
	return geom.Derivative(c, t0+f*(t1-t0)).Perp().Normalize()
}

// touching returns a short line that ends on c at the fraction f of its
// range.
func touching(c geom.Curve, f float64) geom.Line {
	p := at(c, f)
	return geom.Line{P0: p, P1: p.Translate(normalAt(c, f).Mul(0.1))}
}

// crossing returns a short line that crosses c at the fraction f of its
// range.
func crossing(c geom.Curve, f float64) geom.Line {
	p, n := at(c, f), normalAt(c, f)
	return geom.Line{P0: p.Translate(n.Mul(-0.1)), P1: p.Translate(n.Mul(0.1))}
}

// add adds every curve to s and returns the id of the first one.
func add(t *testing.T, s *Sketch, cs ...geom.Curve) GeoID {
	t.Helper()
	first := GeoUndef
	for i, c := range cs {
		id, err := s.AddGeometry(c, false)
		require.NoError(t, err)
		if i == 0 {
			first = id
		}
	}
	return first
}

func constrain(t *testing.T, s *Sketch, c Constraint) int {
	t.Helper()
	i, err := s.AddConstraint(c)
	require.NoError(t, err)
	return i
}

// count returns the number of constraints of type typ.
func count(s *Sketch, typ ConstraintType) int {
	n := 0
	for _, c := range s.Constraints() {
		if c.Type == typ {
			n++
		}
	}
	return n
}

func curveOf(t *testing.T, s *Sketch, id GeoID) geom.Curve {
	t.Helper()
	g, err := s.Geometry(id)
	require.NoError(t, err)
	return g.Curve
}

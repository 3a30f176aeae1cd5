package sketch

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"honnef.co/go/sketch/geom"
)

// wave is a clamped cubic without loops.
func wave() geom.BSpline {
	b, err := geom.NewBSpline(
		[]geom.Point{geom.Pt(0, 0), geom.Pt(1, 1), geom.Pt(2, 0), geom.Pt(3, 1), geom.Pt(4, 0)},
		nil,
		[]float64{0, 1, 2},
		[]int{4, 1, 4},
		3,
		false,
	)
	if err != nil {
		panic(err)
	}
	return b
}

// ring is a closed cubic around the origin.
func ring() geom.BSpline {
	b, err := geom.NewBSpline(
		[]geom.Point{geom.Pt(2, 0), geom.Pt(0, 2), geom.Pt(-2, 0), geom.Pt(0, -2)},
		nil,
		[]float64{0, 1, 2, 3, 4},
		[]int{1, 1, 1, 1, 1},
		3,
		true,
	)
	if err != nil {
		panic(err)
	}
	return b
}

// cutSketch returns a sketch holding c as geometry 0, a line ending on c at
// a quarter of its range as geometry 1, and a line crossing c at three
// quarters of its range as geometry 2.
func cutSketch(t *testing.T, c geom.Curve) *Sketch {
	t.Helper()
	s := New()
	add(t, s, c, touching(c, 0.25), crossing(c, 0.75))
	return s
}

func TestTrimLineMiddle(t *testing.T) {
	l := geom.Line{P0: geom.Pt(0, 0), P1: geom.Pt(4, 0)}
	s := cutSketch(t, l)
	c := NewConstraint(Coincident)
	c.First, c.FirstPos = 0, PosEnd
	c.Second, c.SecondPos = 2, PosEnd
	constrain(t, s, c)

	require.NoError(t, s.Trim(0, geom.Pt(2, 0)))
	require.Equal(t, GeoID(3), s.HighestCurveIndex())
	diff(t, geom.Line{P0: geom.Pt(0, 0), P1: geom.Pt(1, 0)}, curveOf(t, s, 0), approx(1e-9))
	diff(t, geom.Line{P0: geom.Pt(3, 0), P1: geom.Pt(4, 0)}, curveOf(t, s, 3), approx(1e-9))

	cs := s.Constraints()
	require.Len(t, cs, 3)
	assert.Equal(t, GeoID(3), cs[0].First)
	assert.Equal(t, PosEnd, cs[0].FirstPos)

	assert.Equal(t, Coincident, cs[1].Type)
	assert.Equal(t, GeoID(0), cs[1].First)
	assert.Equal(t, PosEnd, cs[1].FirstPos)
	assert.Equal(t, GeoID(1), cs[1].Second)
	assert.Equal(t, PosStart, cs[1].SecondPos)

	assert.Equal(t, PointOnObject, cs[2].Type)
	assert.Equal(t, GeoID(3), cs[2].First)
	assert.Equal(t, PosStart, cs[2].FirstPos)
	assert.Equal(t, GeoID(2), cs[2].Second)
	assert.Equal(t, PosNone, cs[2].SecondPos)
}

func TestTrimLineEnd(t *testing.T) {
	l := geom.Line{P0: geom.Pt(0, 0), P1: geom.Pt(4, 0)}
	s := cutSketch(t, l)
	c := NewConstraint(DistanceX)
	c.First, c.FirstPos = 0, PosStart
	constrain(t, s, c)

	require.NoError(t, s.Trim(0, geom.Pt(0.5, 0)))
	assert.Equal(t, GeoID(2), s.HighestCurveIndex())
	diff(t, geom.Line{P0: geom.Pt(1, 0), P1: geom.Pt(4, 0)}, curveOf(t, s, 0), approx(1e-9))
	assert.Equal(t, 1, s.ConstraintCount())
	assert.Equal(t, 1, count(s, Coincident))

	require.NoError(t, s.Trim(0, geom.Pt(3.5, 0)))
	diff(t, geom.Line{P0: geom.Pt(1, 0), P1: geom.Pt(3, 0)}, curveOf(t, s, 0), approx(1e-9))
	assert.Equal(t, 1, count(s, PointOnObject))
}

func TestTrimAway(t *testing.T) {
	tests := []struct {
		name string
		c    geom.Curve
		cuts []geom.Curve
	}{
		{"line", testLine(), nil},
		{"circle", testCircle(), nil},
		{"circle with one cut", testCircle(), []geom.Curve{crossing(testCircle(), 0.25)}},
		{"ellipse with one cut", testEllipse(), []geom.Curve{touching(testEllipse(), 0.25)}},
		{"periodic bspline", testPeriodicSpline(), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			add(t, s, tt.c)
			if tt.cuts != nil {
				add(t, s, tt.cuts...)
			}
			c := NewConstraint(Radius)
			c.First = 0
			constrain(t, s, c)

			require.NoError(t, s.Trim(0, at(tt.c, 0.6)))
			assert.Equal(t, GeoID(len(tt.cuts)-1), s.HighestCurveIndex())
			assert.Zero(t, s.ConstraintCount())
		})
	}
}

func TestTrimEllipseRemovesInternalGeometry(t *testing.T) {
	s := New()
	add(t, s, testEllipse())
	_, err := s.ExposeInternalGeometry(0)
	require.NoError(t, err)
	add(t, s, testLine())

	require.NoError(t, s.Trim(0, geom.Pt(5, 2)))
	assert.Equal(t, GeoID(0), s.HighestCurveIndex())
	assert.Equal(t, testLine(), curveOf(t, s, 0))
}

func TestTrimCircle(t *testing.T) {
	circle := geom.Circle{Center: geom.Pt(0, 0), Radius: 2}
	s := cutSketch(t, circle)
	require.NoError(t, s.Trim(0, geom.Pt(2, 0)))

	assert.Equal(t, GeoID(2), s.HighestCurveIndex())
	arc, ok := curveOf(t, s, 0).(geom.ArcOfCircle)
	require.True(t, ok)
	assert.InDelta(t, math.Pi/2, arc.Start, 1e-6)
	assert.InDelta(t, 1.5*math.Pi, arc.End, 1e-6)
	assert.Equal(t, 1, count(s, Coincident))
	assert.Equal(t, 1, count(s, PointOnObject))
}

func TestTrimEllipse(t *testing.T) {
	e := testEllipse()
	s := cutSketch(t, e)
	require.NoError(t, s.Trim(0, at(e, 0)))

	arc, ok := curveOf(t, s, 0).(geom.ArcOfEllipse)
	require.True(t, ok)
	near(t, at(e, 0.25), geom.Start(arc), 1e-6)
	near(t, at(e, 0.75), geom.End(arc), 1e-6)
	assert.Equal(t, 1, count(s, Coincident))
	assert.Equal(t, 1, count(s, PointOnObject))
}

func TestTrimPeriodicBSpline(t *testing.T) {
	b := ring()
	s := cutSketch(t, b)
	require.NoError(t, s.Trim(0, at(b, 0.5)))

	open, ok := curveOf(t, s, 0).(geom.BSpline)
	require.True(t, ok)
	assert.False(t, open.Periodic)
	near(t, at(b, 0.75), geom.Start(open), 1e-6)
	near(t, at(b, 0.25), geom.End(open), 1e-6)
	assert.Equal(t, 1, count(s, Coincident))
	assert.Equal(t, 1, count(s, PointOnObject))
}

func TestTrimArcOfCircle(t *testing.T) {
	arc := geom.ArcOfCircle{Circle: geom.Circle{Center: geom.Pt(0, 0), Radius: 2}, Start: 0, End: math.Pi}
	s := cutSketch(t, arc)
	require.NoError(t, s.Trim(0, geom.Pt(0, 2)))

	assert.Equal(t, GeoID(3), s.HighestCurveIndex())
	first := curveOf(t, s, 0).(geom.ArcOfCircle)
	second := curveOf(t, s, 3).(geom.ArcOfCircle)
	assert.InDelta(t, 0, first.Start, 1e-12)
	assert.InDelta(t, math.Pi/4, first.End, 1e-6)
	assert.InDelta(t, 3*math.Pi/4, second.Start, 1e-6)
	assert.InDelta(t, math.Pi, second.End, 1e-12)
	assert.Equal(t, 2, count(s, Coincident))
	assert.Equal(t, 1, count(s, PointOnObject))
}

func TestTrimBSpline(t *testing.T) {
	b := wave()
	s := cutSketch(t, b)
	require.NoError(t, s.Trim(0, at(b, 0.5)))

	assert.Equal(t, GeoID(3), s.HighestCurveIndex())
	first := curveOf(t, s, 0).(geom.BSpline)
	second := curveOf(t, s, 3).(geom.BSpline)
	near(t, geom.Pt(0, 0), geom.Start(first), 1e-12)
	near(t, at(b, 0.25), geom.End(first), 1e-6)
	near(t, at(b, 0.75), geom.Start(second), 1e-6)
	near(t, geom.Pt(4, 0), geom.End(second), 1e-12)
	assert.Equal(t, 1, count(s, Coincident))
	assert.Equal(t, 1, count(s, PointOnObject))
}

func TestTrimAtExternalGeometry(t *testing.T) {
	s := New()
	add(t, s, geom.Line{P0: geom.Pt(0, 0), P1: geom.Pt(4, 0)})
	ext, err := s.AddExternalGeometry(geom.Line{P0: geom.Pt(1, -1), P1: geom.Pt(1, 1)})
	require.NoError(t, err)

	require.NoError(t, s.Trim(0, geom.Pt(0.5, 0)))
	diff(t, geom.Line{P0: geom.Pt(1, 0), P1: geom.Pt(4, 0)}, curveOf(t, s, 0), approx(1e-9))
	cs := s.Constraints()
	require.Len(t, cs, 1)
	assert.Equal(t, PointOnObject, cs[0].Type)
	assert.Equal(t, ext, cs[0].Second)
}

func TestTrimFailures(t *testing.T) {
	s := New(WithPickTolerance(0.1))
	add(t, s, testLine(), geom.Dot{P: geom.Pt(1, 1)})
	assert.ErrorIs(t, s.Trim(0, geom.Pt(3, 2)), ErrGeometricPrecondition)
	assert.ErrorIs(t, s.Trim(1, geom.Pt(1, 1)), ErrGeometricPrecondition)
	assert.ErrorIs(t, s.Trim(2, geom.Pt(1, 1)), ErrOutOfRange)
	assert.Equal(t, GeoID(1), s.HighestCurveIndex())
}

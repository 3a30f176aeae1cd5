package geom

import (
	"math"
	"testing"
)

func intersectionPoints(xs []Intersection) []Point {
	out := make([]Point, len(xs))
	for i, x := range xs {
		out[i] = x.P
	}
	return out
}

func TestIntersectLineCircle(t *testing.T) {
	l := Line{Pt(-5, 0), Pt(5, 0)}
	xs := Intersect(l, Circle{Pt(0, 0), 2}, 1e-7)
	diff(t, []Point{Pt(-2, 0), Pt(2, 0)}, intersectionPoints(xs), approx(1e-9))
	if len(xs) == 2 {
		diff(t, []float64{0.3, 0.7}, []float64{xs[0].T0, xs[1].T0}, approx(1e-9))
		diff(t, math.Pi, xs[0].T1, approx(1e-9))
	}
}

func TestIntersectCircles(t *testing.T) {
	a := Circle{Pt(0, 0), 2}
	b := Circle{Pt(2, 0), 2}
	xs := Intersect(a, b, 1e-7)
	diff(t, []Point{Pt(1, math.Sqrt(3)), Pt(1, -math.Sqrt(3))}, intersectionPoints(xs), approx(1e-9))
}

func TestIntersectLineEllipse(t *testing.T) {
	e := Ellipse{Center: Pt(0, 0), MajorRadius: 4, MinorRadius: 2}
	xs := Intersect(Line{Pt(0, -5), Pt(0, 5)}, e, 1e-7)
	diff(t, []Point{Pt(0, -2), Pt(0, 2)}, intersectionPoints(xs), approx(1e-9))
}

func TestIntersectTouchingLines(t *testing.T) {
	xs := Intersect(Line{Pt(0, 0), Pt(4, 0)}, Line{Pt(2, 0), Pt(2, 3)}, 1e-7)
	diff(t, []Intersection{{P: Pt(2, 0), T0: 0.5, T1: 0}}, xs, approx(1e-12))
}

func TestIntersectDisjoint(t *testing.T) {
	if xs := Intersect(Line{Pt(5, 5), Pt(6, 6)}, Circle{Pt(0, 0), 1}, 1e-7); len(xs) != 0 {
		t.Errorf("got %v, want no intersections", xs)
	}
	if xs := Intersect(Dot{Pt(3, 0)}, Circle{Pt(0, 0), 1}, 1e-7); len(xs) != 0 {
		t.Errorf("got %v, want no intersections", xs)
	}
}

func TestIntersectDot(t *testing.T) {
	xs := Intersect(Dot{Pt(0, 1)}, Circle{Pt(0, 0), 1}, 1e-7)
	if len(xs) != 1 {
		t.Fatalf("got %d intersections, want 1", len(xs))
	}
	diff(t, math.Pi/2, xs[0].T1, approx(1e-12))
}

func TestIntersectBSplineLine(t *testing.T) {
	b := testSpline()
	xs := Intersect(Line{Pt(-1, 0.3), Pt(5, 0.3)}, b, 1e-7)
	if len(xs) != 2 {
		t.Fatalf("got %d intersections, want 2", len(xs))
	}
	for _, x := range xs {
		if math.Abs(x.P.Y-0.3) > 1e-7 {
			t.Errorf("intersection %v is off the line", x.P)
		}
		if !OnCurve(b, x.P, 1e-7) {
			t.Errorf("intersection %v is off the spline", x.P)
		}
	}
	// The spline is symmetric about x = 2.
	diff(t, 4-xs[0].P.X, xs[1].P.X, approx(1e-7))
}

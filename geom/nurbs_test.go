package geom

import (
	"errors"
	"math"
	"testing"
)

func TestToBSplineLine(t *testing.T) {
	l := Line{Pt(1, 2), Pt(5, -1)}
	b, err := ToBSpline(l)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Validate(); err != nil {
		t.Fatal(err)
	}
	for _, u := range sampleTs(0, 1, 10) {
		near(t, l.Eval(u), b.Eval(u), 1e-12)
	}
}

func TestToBSplineArcOfCircle(t *testing.T) {
	a := Circle{Pt(1, 2), 3}.Arc(math.Pi/3, 1.5*math.Pi)
	b, err := ToBSpline(a)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Validate(); err != nil {
		t.Fatal(err)
	}
	if b.Degree != 2 || b.CountKnots() != 4 {
		t.Errorf("got degree %d with %d knots, want 2 and 4", b.Degree, b.CountKnots())
	}
	near(t, Start(a), Start(b), 1e-12)
	near(t, End(a), End(b), 1e-12)
	for i, k := range b.Knots {
		near(t, a.Eval(k), b.Eval(k), 1e-9)
		if i > 0 {
			// Halfway through each piece the parametrizations agree too.
			m := (b.Knots[i-1] + k) / 2
			near(t, a.Eval(m), b.Eval(m), 1e-9)
		}
	}
	for _, u := range sampleTs(a.Start, a.End, 50) {
		if r := b.Eval(u).Distance(a.Center); math.Abs(r-3) > 1e-9 {
			t.Errorf("at %v: got radius %v, want 3", u, r)
		}
	}
}

func TestToBSplineArcOfEllipse(t *testing.T) {
	e := Ellipse{Center: Pt(-1, 1), MajorRadius: 5, MinorRadius: 2, Rotation: 0.5}
	a := e.Arc(-0.5, 2)
	b, err := ToBSpline(a)
	if err != nil {
		t.Fatal(err)
	}
	near(t, Start(a), Start(b), 1e-12)
	near(t, End(a), End(b), 1e-12)
	for _, u := range sampleTs(a.Start, a.End, 50) {
		p := rotatePt(b.Eval(u).Sub(e.Center), -e.Rotation)
		if v := p.X*p.X/25 + p.Y*p.Y/4; math.Abs(v-1) > 1e-9 {
			t.Errorf("at %v: point %v is off the ellipse (%v)", u, p, v)
		}
	}
}

func TestToBSplineArcOfHyperbola(t *testing.T) {
	a := ArcOfHyperbola{Center: Pt(1, 1), MajorRadius: 2, MinorRadius: 1, Rotation: 0.4, Start: -1, End: 1.5}
	b, err := ToBSpline(a)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Validate(); err != nil {
		t.Fatal(err)
	}
	near(t, Start(a), Start(b), 1e-12)
	near(t, End(a), End(b), 1e-12)
	for _, u := range sampleTs(a.Start, a.End, 50) {
		p := rotatePt(b.Eval(u).Sub(a.Center), -a.Rotation)
		if v := p.X*p.X/4 - p.Y*p.Y; math.Abs(v-1) > 1e-9 || p.X < 0 {
			t.Errorf("at %v: point %v is off the branch (%v)", u, p, v)
		}
	}
}

func TestToBSplineArcOfParabola(t *testing.T) {
	a := ArcOfParabola{Vertex: Pt(1, 0), Focal: 0.5, Rotation: 0.2, Start: -1, End: 2}
	b, err := ToBSpline(a)
	if err != nil {
		t.Fatal(err)
	}
	for _, u := range sampleTs(a.Start, a.End, 30) {
		near(t, a.Eval(u), b.Eval(u), 1e-9)
	}
}

func TestToBSplineClosed(t *testing.T) {
	for _, c := range []Curve{Circle{Pt(0, 0), 1}, Ellipse{MajorRadius: 2, MinorRadius: 1}, testPeriodicSpline()} {
		if _, err := ToBSpline(c); !errors.Is(err, ErrClosedCurve) {
			t.Errorf("%v: got error %v, want %v", c.Kind(), err, ErrClosedCurve)
		}
	}
	if _, err := ToBSpline(Dot{Pt(1, 1)}); !errors.Is(err, ErrParameter) {
		t.Errorf("got error %v, want %v", err, ErrParameter)
	}
}

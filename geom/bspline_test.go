package geom

import (
	"errors"
	"testing"
)

func sampleTs(t0, t1 float64, n int) []float64 {
	ts := make([]float64, n+1)
	for i := range ts {
		ts[i] = t0 + (t1-t0)*float64(i)/float64(n)
	}
	return ts
}

func sameShape(t *testing.T, want, got BSpline) {
	t.Helper()
	t0, t1 := want.Range()
	for _, u := range sampleTs(t0, t1, 40) {
		near(t, want.Eval(u), got.Eval(u), 1e-9)
	}
}

func TestBSplineValidate(t *testing.T) {
	poles := []Point{Pt(0, 0), Pt(1, 1), Pt(2, 0), Pt(3, 1), Pt(4, 0)}
	tests := []struct {
		name     string
		weights  []float64
		knots    []float64
		mults    []int
		periodic bool
	}{
		{"unclamped start", nil, []float64{0, 1, 2}, []int{3, 2, 4}, false},
		{"wrong sum", nil, []float64{0, 1, 2}, []int{4, 2, 4}, false},
		{"interior above degree", nil, []float64{0, 1, 2}, []int{4, 4, 4}, false},
		{"descending knots", nil, []float64{0, 2, 1}, []int{4, 1, 4}, false},
		{"zero weight", []float64{1, 1, 0, 1, 1}, []float64{0, 1, 2}, []int{4, 1, 4}, false},
		{"periodic end mismatch", nil, []float64{0, 1, 2, 3, 4}, []int{2, 1, 1, 1, 1}, true},
		{"periodic sum", nil, []float64{0, 1, 2, 3}, []int{1, 1, 1, 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBSpline(poles, tt.weights, tt.knots, tt.mults, 3, tt.periodic)
			if !errors.Is(err, ErrInvalidBSpline) {
				t.Errorf("got error %v, want %v", err, ErrInvalidBSpline)
			}
		})
	}
}

func TestBSplineEval(t *testing.T) {
	b := testSpline()
	near(t, Pt(0, 0), Start(b), 1e-12)
	near(t, Pt(4, 0), End(b), 1e-12)
	near(t, Pt(2, 0.5), b.Eval(1), 1e-12)
	// Clamped outside the range.
	near(t, Pt(4, 0), b.Eval(3), 1e-12)

	p := testPeriodicSpline()
	near(t, p.Eval(0), p.Eval(2), 1e-12)
	near(t, p.Eval(0), p.Eval(2-1e-9), 1e-6)
	near(t, p.Eval(0.5), p.Eval(2.5), 1e-12)
	near(t, p.Eval(1.5), p.Eval(-0.5), 1e-12)
}

func TestBSplineInsertKnot(t *testing.T) {
	b := testSpline()

	got, err := b.InsertKnot(0.5, 1)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, []float64{0, 0.5, 1, 2}, got.Knots)
	diff(t, []int{4, 1, 1, 4}, got.Mults)
	if got.CountPoles() != 6 {
		t.Errorf("got %d poles, want 6", got.CountPoles())
	}
	sameShape(t, b, got)

	got, err = b.InsertKnot(1, 1)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, []int{4, 2, 4}, got.Mults)
	sameShape(t, b, got)

	got, err = b.InsertKnot(0.5, 3)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, []int{4, 3, 1, 4}, got.Mults)
	if err := got.Validate(); err != nil {
		t.Error(err)
	}
	sameShape(t, b, got)

	if _, err := b.InsertKnot(0.5, 0); err == nil {
		t.Error("inserting with multiplicity 0 should fail")
	}
	if _, err := b.InsertKnot(0.5, 4); err == nil {
		t.Error("inserting with multiplicity above the degree should fail")
	}
	if _, err := b.InsertKnot(0, 1); !errors.Is(err, ErrParameter) {
		t.Errorf("got error %v, want %v", err, ErrParameter)
	}
	if _, err := b.InsertKnot(2.5, 1); !errors.Is(err, ErrParameter) {
		t.Errorf("got error %v, want %v", err, ErrParameter)
	}
}

func TestBSplineInsertKnotPeriodic(t *testing.T) {
	b := testPeriodicSpline()
	for _, u := range []float64{0.5, 1, 1.9} {
		got, err := b.InsertKnot(u, 1)
		if err != nil {
			t.Fatal(err)
		}
		if err := got.Validate(); err != nil {
			t.Fatal(err)
		}
		if got.CountPoles() != 6 {
			t.Errorf("inserting %v: got %d poles, want 6", u, got.CountPoles())
		}
		sameShape(t, b, got)
	}

	// The seam is shared by the first and last knot.
	got, err := b.InsertKnot(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, []int{3, 1, 1, 1, 1, 3}, got.Mults)
	if err := got.Validate(); err != nil {
		t.Fatal(err)
	}
	sameShape(t, b, got)
}

func TestBSplineRemoveKnot(t *testing.T) {
	b := testSpline()

	got, err := b.RemoveKnot(1, 1)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, []float64{0, 2}, got.Knots)
	diff(t, []int{4, 4}, got.Mults)
	if got.CountPoles() != 4 {
		t.Errorf("got %d poles, want 4", got.CountPoles())
	}

	if _, err := b.RemoveKnot(1, 2); !errors.Is(err, ErrInvalidBSpline) {
		t.Errorf("got error %v, want %v", err, ErrInvalidBSpline)
	}
	if _, err := b.RemoveKnot(0, 1); !errors.Is(err, ErrInvalidBSpline) {
		t.Errorf("got error %v, want %v", err, ErrInvalidBSpline)
	}
	if _, err := b.RemoveKnot(3, 1); !errors.Is(err, ErrKnotIndex) {
		t.Errorf("got error %v, want %v", err, ErrKnotIndex)
	}
}

func TestBSplineRemoveInsertedKnot(t *testing.T) {
	for _, b := range []BSpline{testSpline(), testPeriodicSpline()} {
		ins, err := b.InsertKnot(0.5, 1)
		if err != nil {
			t.Fatal(err)
		}
		got, err := ins.RemoveKnot(ins.KnotIndex(0.5), 1)
		if err != nil {
			t.Fatal(err)
		}
		diff(t, b, got, approx(1e-9))
	}

	p := testPeriodicSpline()
	ins, err := p.IncreaseMultiplicity(0, 1)
	if err != nil {
		t.Fatal(err)
	}
	got, err := ins.RemoveKnot(0, 1)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, p, got, approx(1e-9))

	if _, err := p.RemoveKnot(0, 1); !errors.Is(err, ErrInvalidBSpline) {
		t.Errorf("got error %v, want %v", err, ErrInvalidBSpline)
	}
}

func TestBSplineSplit(t *testing.T) {
	b := testSpline()
	for _, u := range []float64{0.25, 1, 1.7} {
		left, right, err := b.SplitAt(u)
		if err != nil {
			t.Fatal(err)
		}
		for _, s := range []BSpline{left, right} {
			if err := s.Validate(); err != nil {
				t.Fatal(err)
			}
		}
		t0, t1 := left.Range()
		diff(t, []float64{0, u}, []float64{t0, t1})
		t0, t1 = right.Range()
		diff(t, []float64{u, 2}, []float64{t0, t1})
		near(t, b.Eval(u), End(left), 1e-9)
		near(t, b.Eval(u), Start(right), 1e-9)
		for _, v := range sampleTs(0, u, 10) {
			near(t, b.Eval(v), left.Eval(v), 1e-9)
		}
		for _, v := range sampleTs(u, 2, 10) {
			near(t, b.Eval(v), right.Eval(v), 1e-9)
		}
	}

	if _, _, err := b.SplitAt(0); !errors.Is(err, ErrParameter) {
		t.Errorf("got error %v, want %v", err, ErrParameter)
	}
	if _, _, err := testPeriodicSpline().SplitAt(1); !errors.Is(err, ErrClosedCurve) {
		t.Errorf("got error %v, want %v", err, ErrClosedCurve)
	}
}

func TestBSplineOpenAt(t *testing.T) {
	b := testPeriodicSpline()
	for _, u := range []float64{0, 0.3, 0.5, 1.9} {
		o, err := b.OpenAt(u)
		if err != nil {
			t.Fatal(err)
		}
		if err := o.Validate(); err != nil {
			t.Fatal(err)
		}
		if o.Periodic {
			t.Error("opened spline is still periodic")
		}
		t0, t1 := o.Range()
		diff(t, []float64{u, u + 2}, []float64{t0, t1}, approx(1e-12))
		near(t, b.Eval(u), Start(o), 1e-9)
		near(t, b.Eval(u), End(o), 1e-9)
		for _, v := range sampleTs(u, u+2, 40) {
			near(t, b.Eval(v), o.Eval(v), 1e-9)
		}
	}

	if _, err := testSpline().OpenAt(1); !errors.Is(err, ErrInvalidBSpline) {
		t.Errorf("got error %v, want %v", err, ErrInvalidBSpline)
	}
}

func TestBSplineSegmentAcrossSeam(t *testing.T) {
	b := testPeriodicSpline()
	s, err := b.Segment(1.5, 2.4)
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range sampleTs(1.5, 2.4, 20) {
		near(t, b.Eval(v), s.Eval(v), 1e-9)
	}
}

func TestBSplineReverse(t *testing.T) {
	b := testSpline()
	r := b.Reverse()
	if err := r.Validate(); err != nil {
		t.Fatal(err)
	}
	for _, v := range sampleTs(0, 2, 20) {
		near(t, b.Eval(v), r.Eval(2-v), 1e-9)
	}
	diff(t, b, r.Reverse(), approx(1e-12))
}

func TestBSplineElevate(t *testing.T) {
	b := testSpline()
	e, err := b.Elevate(1)
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Validate(); err != nil {
		t.Fatal(err)
	}
	if e.Degree != 4 {
		t.Errorf("got degree %d, want 4", e.Degree)
	}
	diff(t, []int{5, 2, 5}, e.Mults)
	if e.CountPoles() != 7 {
		t.Errorf("got %d poles, want 7", e.CountPoles())
	}
	sameShape(t, b, e)

	l, err := ToBSpline(Line{Pt(0, 0), Pt(3, 4)})
	if err != nil {
		t.Fatal(err)
	}
	e, err = l.Elevate(2)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, []int{4, 4}, e.Mults)
	sameShape(t, l, e)

	if _, err := testPeriodicSpline().Elevate(1); !errors.Is(err, ErrClosedCurve) {
		t.Errorf("got error %v, want %v", err, ErrClosedCurve)
	}
}

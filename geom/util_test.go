package geom

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
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

func near(t *testing.T, want, got Point, epsilon float64) {
	t.Helper()
	if d := want.Distance(got); d > epsilon || math.IsNaN(d) {
		t.Errorf("got %v, want %v (distance %g)", got, want, d)
	}
}

// testSpline is a clamped cubic with one interior knot.
func testSpline() BSpline {
	b, err := NewBSpline(
		[]Point{Pt(0, 0), Pt(1, 1), Pt(2, 0), Pt(3, 1), Pt(4, 0)},
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

// testPeriodicSpline is a closed cubic through the same poles as testSpline.
func testPeriodicSpline() BSpline {
	b, err := NewBSpline(
		[]Point{Pt(0, 0), Pt(1, 1), Pt(2, 0), Pt(3, 1), Pt(4, 0)},
		nil,
		[]float64{0, 0.3, 1, 1.5, 1.8, 2},
		[]int{1, 1, 1, 1, 1, 1},
		3,
		true,
	)
	if err != nil {
		panic(err)
	}
	return b
}

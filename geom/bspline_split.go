package geom

import (
	"fmt"
	"slices"
)

// Segment returns the non-periodic spline that traces b over [a, c]. For a
// periodic spline, c may exceed the last knot by up to one period, in which
// case the segment runs across the seam.
func (b BSpline) Segment(a, c float64) (BSpline, error) {
	t0, t1 := b.Range()
	if b.Periodic {
		if !(a >= t0 && a <= t1 && c > a && c <= a+b.Period()) {
			return BSpline{}, fmt.Errorf("%w: segment [%g, %g] of periodic range [%g, %g]", ErrParameter, a, c, t0, t1)
		}
		if a >= t1 {
			a -= b.Period()
			c -= b.Period()
		}
		a, c = b.snap(a), b.snap(c)
		return b.unrolled().segment(a, c).bspline(), nil
	}
	if !(a >= t0 && c <= t1 && c > a) {
		return BSpline{}, fmt.Errorf("%w: segment [%g, %g] of range [%g, %g]", ErrParameter, a, c, t0, t1)
	}
	a, c = b.snap(a), b.snap(c)
	return b.flat(0).segment(a, c).bspline(), nil
}

// snap replaces u by the knot it is within tolerance of. On a periodic
// spline the knots of the next two periods count too, computed the same way
// the unrolled knot vector computes them.
func (b BSpline) snap(u float64) float64 {
	if !b.Periodic {
		if i := b.KnotIndex(u); i >= 0 {
			return b.Knots[i]
		}
		return u
	}
	last := len(b.Knots) - 1
	for q := range 3 {
		if i := b.KnotIndex(u - float64(q)*b.Period()); i >= 0 {
			if i == last {
				i = 0
				q++
			}
			return b.Knots[i] + float64(q)*b.Period()
		}
	}
	return u
}

// SplitAt splits a non-periodic spline into the pieces before and after u.
func (b BSpline) SplitAt(u float64) (BSpline, BSpline, error) {
	if b.Periodic {
		return BSpline{}, BSpline{}, fmt.Errorf("%w: use OpenAt", ErrClosedCurve)
	}
	t0, t1 := b.Range()
	if !(u > t0 && u < t1) {
		return BSpline{}, BSpline{}, fmt.Errorf("%w: %g not in (%g, %g)", ErrParameter, u, t0, t1)
	}
	left, err := b.Segment(t0, u)
	if err != nil {
		return BSpline{}, BSpline{}, err
	}
	right, err := b.Segment(u, t1)
	if err != nil {
		return BSpline{}, BSpline{}, err
	}
	return left, right, nil
}

// OpenAt converts a periodic spline into a non-periodic one that starts and
// ends at u and traces the full closed curve.
func (b BSpline) OpenAt(u float64) (BSpline, error) {
	if !b.Periodic {
		return BSpline{}, fmt.Errorf("%w: spline is not periodic", ErrInvalidBSpline)
	}
	return b.Segment(u, u+b.Period())
}

// Reverse returns the spline traced in the opposite direction over the same
// parameter range.
func (b BSpline) Reverse() BSpline {
	out := b.Clone()
	slices.Reverse(out.Poles)
	slices.Reverse(out.Weights)
	slices.Reverse(out.Mults)
	t0, t1 := b.Range()
	for i, k := range b.Knots {
		out.Knots[len(b.Knots)-1-i] = t0 + t1 - k
	}
	return out
}

// Elevate returns a non-periodic spline of degree b.Degree+by that traces
// the same curve. Interior knots keep their continuity.
func (b BSpline) Elevate(by int) (BSpline, error) {
	if by < 0 {
		return BSpline{}, fmt.Errorf("%w: degree elevation by %d", ErrInvalidBSpline, by)
	}
	if b.Periodic {
		return BSpline{}, fmt.Errorf("%w: elevate an opened spline", ErrClosedCurve)
	}
	if by == 0 {
		return b.Clone(), nil
	}

	p := b.Degree
	q := p + by
	f := b.flat(0)
	var poles []hpoint
	for i := 0; i+1 < len(b.Knots); i++ {
		bez := f.segment(b.Knots[i], b.Knots[i+1]).poles
		for range by {
			bez = elevateBezier(bez)
		}
		if i > 0 {
			bez = bez[1:]
		}
		poles = append(poles, bez...)
	}

	out := BSpline{
		Knots:  slices.Clone(b.Knots),
		Mults:  make([]int, len(b.Knots)),
		Degree: q,
	}
	out.setPoles(poles)
	for i := range out.Mults {
		out.Mults[i] = q
	}
	out.Mults[0] = q + 1
	out.Mults[len(out.Mults)-1] = q + 1

	// The pieces meet with C0 continuity. Removing the surplus knots is exact.
	var err error
	for i := len(b.Knots) - 2; i >= 1; i-- {
		if surplus := q - (b.Mults[i] + by); surplus > 0 {
			out, err = out.RemoveKnot(i, surplus)
			if err != nil {
				return BSpline{}, err
			}
		}
	}
	return out, nil
}

// elevateBezier raises the degree of a rational Bézier segment by one.
func elevateBezier(p []hpoint) []hpoint {
	n := len(p) - 1
	q := make([]hpoint, n+2)
	q[0] = p[0]
	q[n+1] = p[n]
	for i := 1; i <= n; i++ {
		a := float64(i) / float64(n+1)
		q[i] = p[i-1].mul(a).add(p[i].mul(1 - a))
	}
	return q
}

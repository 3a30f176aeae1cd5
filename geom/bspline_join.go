package geom

import (
	"fmt"
	"slices"
)

// Concat joins two non-periodic splines into one. The end of a is joined to
// the start of b, and b's parameter range is shifted to follow a's.
//
// With continuity 0 the last pole of a and the first pole of b are merged
// into their midpoint, and the junction knot gets full multiplicity, leaving
// a corner. With continuity 1 both junction poles are dropped and the
// junction knot's multiplicity is one less than the degree, so the result is
// smooth there. Both splines are first raised to a common degree, which is
// at least 2 for continuity 1.
func Concat(a, b BSpline, continuity int) (BSpline, error) {
	if a.Periodic || b.Periodic {
		return BSpline{}, fmt.Errorf("%w: can't concatenate periodic splines", ErrClosedCurve)
	}
	if continuity != 0 && continuity != 1 {
		return BSpline{}, fmt.Errorf("%w: continuity %d", ErrInvalidBSpline, continuity)
	}
	p := max(a.Degree, b.Degree)
	if continuity == 1 {
		p = max(p, 2)
	}
	a, err := a.Elevate(p - a.Degree)
	if err != nil {
		return BSpline{}, err
	}
	b, err = b.Elevate(p - b.Degree)
	if err != nil {
		return BSpline{}, err
	}

	na := len(a.Poles)
	wa := a.Weights[na-1]
	scale := wa / b.Weights[0]
	_, a1 := a.Range()
	b0, _ := b.Range()
	shift := a1 - b0

	out := BSpline{
		Poles:   slices.Clone(a.Poles[:na-1]),
		Weights: slices.Clone(a.Weights[:na-1]),
		Knots:   slices.Clone(a.Knots),
		Mults:   slices.Clone(a.Mults[:len(a.Mults)-1]),
		Degree:  p,
	}
	if continuity == 0 {
		out.Poles = append(out.Poles, a.Poles[na-1].Midpoint(b.Poles[0]))
		out.Weights = append(out.Weights, wa)
		out.Mults = append(out.Mults, p)
	} else {
		out.Mults = append(out.Mults, p-1)
	}
	out.Poles = append(out.Poles, b.Poles[1:]...)
	for _, w := range b.Weights[1:] {
		out.Weights = append(out.Weights, w*scale)
	}
	for i := 1; i < len(b.Knots); i++ {
		out.Knots = append(out.Knots, b.Knots[i]+shift)
		out.Mults = append(out.Mults, b.Mults[i])
	}
	if err := out.Validate(); err != nil {
		return BSpline{}, err
	}
	return out, nil
}

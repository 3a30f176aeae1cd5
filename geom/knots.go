package geom

import (
	"fmt"
	"slices"
)

// InsertKnot returns a copy of b with the knot u inserted m times. If u is
// already a knot, its multiplicity grows by m. The shape of the curve does
// not change.
//
// u must lie strictly inside the parameter range, and no interior knot may
// end up with a multiplicity above the degree.
func (b BSpline) InsertKnot(u float64, m int) (BSpline, error) {
	if m < 1 {
		return BSpline{}, fmt.Errorf("%w: multiplicity %d", ErrInvalidBSpline, m)
	}
	t0, t1 := b.Range()
	if idx := b.KnotIndex(u); idx >= 0 {
		if idx == 0 || idx == len(b.Knots)-1 {
			if !b.Periodic {
				return BSpline{}, fmt.Errorf("%w: %g is an end knot", ErrParameter, u)
			}
			idx = 0
		}
		return b.IncreaseMultiplicity(idx, m)
	}
	if !(u > t0 && u < t1) {
		return BSpline{}, fmt.Errorf("%w: %g not in (%g, %g)", ErrParameter, u, t0, t1)
	}
	if m > b.Degree {
		return BSpline{}, fmt.Errorf("%w: multiplicity %d exceeds degree %d", ErrInvalidBSpline, m, b.Degree)
	}
	out := b
	for range m {
		out = out.insertOnce(u)
	}
	return out, nil
}

// IncreaseMultiplicity returns a copy of b with the multiplicity of the knot
// at index raised by m. On a periodic spline the first and last knot are the
// same knot and change together.
func (b BSpline) IncreaseMultiplicity(index, m int) (BSpline, error) {
	if index < 0 || index >= len(b.Knots) {
		return BSpline{}, fmt.Errorf("%w: %d", ErrKnotIndex, index)
	}
	if m < 1 {
		return BSpline{}, fmt.Errorf("%w: multiplicity increase %d", ErrInvalidBSpline, m)
	}
	end := index == 0 || index == len(b.Knots)-1
	if end && !b.Periodic {
		return BSpline{}, fmt.Errorf("%w: end knot %d of a clamped spline", ErrInvalidBSpline, index)
	}
	if b.Mults[index]+m > b.Degree {
		return BSpline{}, fmt.Errorf("%w: multiplicity %d exceeds degree %d", ErrInvalidBSpline, b.Mults[index]+m, b.Degree)
	}
	if end {
		index = 0
	}
	out := b
	for range m {
		out = out.insertOnce(b.Knots[index])
	}
	return out, nil
}

// RemoveKnot returns a copy of b with the multiplicity of the knot at index
// lowered by m. A knot whose multiplicity drops to zero is removed.
//
// Removal is forced: where the knot can't be removed without changing the
// shape, the new poles approximate the old curve.
func (b BSpline) RemoveKnot(index, m int) (BSpline, error) {
	if index < 0 || index >= len(b.Knots) {
		return BSpline{}, fmt.Errorf("%w: %d", ErrKnotIndex, index)
	}
	if m < 1 {
		return BSpline{}, fmt.Errorf("%w: multiplicity decrease %d", ErrInvalidBSpline, m)
	}
	end := index == 0 || index == len(b.Knots)-1
	if end && !b.Periodic {
		return BSpline{}, fmt.Errorf("%w: end knot %d of a clamped spline", ErrInvalidBSpline, index)
	}
	if end {
		index = 0
	}
	left := b.Mults[index] - m
	if left < 0 || (end && left == 0) {
		return BSpline{}, fmt.Errorf("%w: multiplicity %d of knot %d", ErrInvalidBSpline, left, index)
	}
	if b.Periodic && len(b.Poles)-m <= b.Degree {
		return BSpline{}, fmt.Errorf("%w: too few poles left", ErrInvalidBSpline)
	}
	out := b
	for range m {
		out = out.removeOnce(index)
	}
	return out, nil
}

func (b BSpline) insertOnce(u float64) BSpline {
	out := b.Clone()
	p := b.Degree
	n := len(b.Poles)

	var poles []hpoint
	if !b.Periodic {
		f, _ := b.flat(0).insert(u)
		poles = f.poles
	} else {
		f, k := b.unrolled().insert(u)
		poles = make([]hpoint, n+1)
		start := k - p + 1
		for i := start; i <= start+n; i++ {
			poles[i%(n+1)] = f.poles[i]
		}
	}
	out.setPoles(poles)

	if idx := slices.Index(b.Knots, u); idx >= 0 {
		out.Mults[idx]++
		if b.Periodic && idx == 0 {
			out.Mults[len(out.Mults)-1]++
		}
		return out
	}
	idx, _ := slices.BinarySearch(b.Knots, u)
	out.Knots = slices.Insert(out.Knots, idx, u)
	out.Mults = slices.Insert(out.Mults, idx, 1)
	return out
}

func (b BSpline) removeOnce(index int) BSpline {
	out := b.Clone()
	n := len(b.Poles)
	u := b.Knots[index]
	s := b.Mults[index]

	var poles []hpoint
	if !b.Periodic {
		f := b.flat(0)
		g, _ := f.remove(f.lastIndex(u), s)
		poles = g.poles
	} else {
		f := b.unrolled()
		g, first := f.remove(f.lastIndex(u), s)
		poles = make([]hpoint, n-1)
		for i := first; i <= first+n-2; i++ {
			poles[i%(n-1)] = g.poles[i]
		}
	}
	out.setPoles(poles)

	out.Mults[index]--
	if b.Periodic && index == 0 {
		out.Mults[len(out.Mults)-1]--
	}
	if out.Mults[index] == 0 {
		out.Knots = slices.Delete(out.Knots, index, index+1)
		out.Mults = slices.Delete(out.Mults, index, index+1)
	}
	return out
}

func (b *BSpline) setPoles(poles []hpoint) {
	b.Poles = make([]Point, len(poles))
	b.Weights = make([]float64, len(poles))
	for i, h := range poles {
		b.Poles[i], b.Weights[i] = h.project()
	}
}

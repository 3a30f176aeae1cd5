package sketch

import (
	"fmt"
	"time"

	"honnef.co/go/sketch/geom"
)

func (s *Sketch) bspline(id GeoID) (key, geom.BSpline, error) {
	k, err := s.keyOf(id)
	if err != nil {
		return 0, geom.BSpline{}, err
	}
	b, ok := s.curve(k).(geom.BSpline)
	if !ok {
		return 0, geom.BSpline{}, fmt.Errorf("%w: %v is a %v, not a B-spline", ErrValue, id, s.curve(k).Kind())
	}
	return k, b, nil
}

// replaceSpline swaps in an edited spline. Exposed internal geometry is
// rebuilt for the new poles and knots.
func (s *Sketch) replaceSpline(k key, b geom.BSpline) {
	exposed := s.retract(k)
	s.geos[k].Curve = b
	if exposed {
		s.expose(k)
	}
}

// ModifyBSplineKnotMultiplicity adds delta to the multiplicity of the knot
// at the 1-based knotIndex of the B-spline id. A knot whose multiplicity
// drops to zero is removed.
//
// It fails with ErrValue if the multiplicity would exceed the degree or
// become negative, and for the end knots of a non-periodic spline. The end
// knots of a periodic spline change together and can't be removed.
func (s *Sketch) ModifyBSplineKnotMultiplicity(id GeoID, knotIndex, delta int) (err error) {
	defer func(start time.Time) { s.observe(OpModifyKnot, id, start, err) }(time.Now())
	k, b, err := s.bspline(id)
	if err != nil {
		return err
	}
	if knotIndex < 1 || knotIndex > b.CountKnots() {
		return fmt.Errorf("%w: knot %d of %d", ErrOutOfRange, knotIndex, b.CountKnots())
	}
	i := knotIndex - 1
	m := b.Mults[i] + delta
	switch {
	case delta == 0:
		return nil
	case m > b.Degree:
		return fmt.Errorf("%w: multiplicity %d exceeds degree %d", ErrValue, m, b.Degree)
	case m < 0:
		return fmt.Errorf("%w: negative multiplicity %d", ErrValue, m)
	}

	var out geom.BSpline
	if delta > 0 {
		out, err = b.IncreaseMultiplicity(i, delta)
	} else {
		out, err = b.RemoveKnot(i, -delta)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrValue, err)
	}
	s.replaceSpline(k, out)
	return nil
}

// InsertBSplineKnot inserts the knot u with multiplicity m into the B-spline
// id, without changing its shape. If u is already a knot, its multiplicity
// grows by m.
//
// It fails with ErrValue if m isn't in [1, degree], if the resulting
// multiplicity would exceed the degree, or if u lies outside the open
// parameter range.
func (s *Sketch) InsertBSplineKnot(id GeoID, u float64, m int) (err error) {
	defer func(start time.Time) { s.observe(OpInsertKnot, id, start, err) }(time.Now())
	k, b, err := s.bspline(id)
	if err != nil {
		return err
	}
	if m < 1 || m > b.Degree {
		return fmt.Errorf("%w: multiplicity %d not in [1, %d]", ErrValue, m, b.Degree)
	}
	out, err := b.InsertKnot(u, m)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrValue, err)
	}
	s.replaceSpline(k, out)
	return nil
}

package sketch

import (
	"fmt"
	"time"

	"honnef.co/go/sketch/geom"
)

// opposite returns the other end of a curve.
func opposite(pos PointPos) PointPos {
	if pos == PosStart {
		return PosEnd
	}
	return PosStart
}

// Join replaces the curves id1 and id2 by a single B-spline that runs from
// the free end of id1, across the junction of the points pos1 and pos2, to
// the free end of id2.
//
// Continuity 0 joins the curves with a corner at the midpoint of the two
// junction points. Continuity 1 joins them smoothly by dropping the junction
// poles. It doesn't check that the curves are tangent there: curves that
// meet at an angle get the corner rounded off, and the result no longer
// passes through the junction.
//
// Constraints on the free ends move to the new curve, whose internal
// geometry is exposed; the originals are deleted with their internal
// geometry, and the new curve is appended.
func (s *Sketch) Join(id1 GeoID, pos1 PointPos, id2 GeoID, pos2 PointPos, continuity int) (err error) {
	defer func(start time.Time) { s.observe(OpJoin, id1, start, err) }(time.Now())
	k1, err := s.keyOf(id1)
	if err != nil {
		return err
	}
	k2, err := s.keyOf(id2)
	if err != nil {
		return err
	}
	if k1 == k2 {
		return fmt.Errorf("%w: can't join %v to itself", ErrGeometricPrecondition, id1)
	}
	for _, pos := range [2]PointPos{pos1, pos2} {
		if pos != PosStart && pos != PosEnd {
			return fmt.Errorf("%w: curves are joined at their start or end, not %v", ErrValue, pos)
		}
	}
	if continuity != 0 && continuity != 1 {
		return fmt.Errorf("%w: continuity %d", ErrValue, continuity)
	}

	b1, err := geom.ToBSpline(s.curve(k1))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrGeometricPrecondition, err)
	}
	b2, err := geom.ToBSpline(s.curve(k2))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrGeometricPrecondition, err)
	}
	if pos1 == PosStart {
		b1 = b1.Reverse()
	}
	if pos2 == PosEnd {
		b2 = b2.Reverse()
	}
	joined, err := geom.Concat(b1, b2, continuity)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrGeometricPrecondition, err)
	}

	k := s.appendGeometry(joined, s.geos[k1].Construction, false)
	for _, e := range s.constraints {
		for j := range e.refs {
			switch r := &e.refs[j]; {
			case r.key == k1 && r.pos == opposite(pos1):
				r.key, r.pos = k, PosStart
			case r.key == k2 && r.pos == opposite(pos2):
				r.key, r.pos = k, PosEnd
			}
		}
	}
	s.expose(k)

	keys := s.internalKeys(k1)
	keys.Or(s.internalKeys(k2))
	keys.Add(uint32(k1))
	keys.Add(uint32(k2))
	s.removeKeys(keys)
	return nil
}

package sketch

import (
	"fmt"
	"math"
	"slices"
	"time"

	"honnef.co/go/sketch/geom"
)

// cut is a point where another curve crosses a curve being trimmed.
type cut struct {
	t float64
	p geom.Point
	// other references the crossing curve, and the end point of it that
	// lies at p, if any.
	other ref
}

// endpointAt returns the end point of c that lies within tol of p, or
// PosNone.
func endpointAt(c geom.Curve, p geom.Point, tol float64) PointPos {
	switch {
	case c.Kind() == geom.DotKind:
		return PosStart
	case c.IsClosed():
		return PosNone
	case p.Near(geom.Start(c), tol):
		return PosStart
	case p.Near(geom.End(c), tol):
		return PosEnd
	default:
		return PosNone
	}
}

// cuts returns the points where other geometry meets the curve k, ordered
// by parameter. The curve's own internal geometry doesn't count, and
// neither do contacts at the end points of an open curve.
func (s *Sketch) cuts(k key) []cut {
	c := s.curve(k)
	tol := s.opts.precision
	skip := s.internalKeys(k)
	skip.Add(uint32(k))

	var others []ref
	for _, o := range s.order {
		if !skip.Contains(uint32(o)) {
			others = append(others, ref{key: o})
		}
	}
	for i := range s.externals {
		others = append(others, ref{id: RefExt - GeoID(i)})
	}

	var out []cut
	for _, o := range others {
		oc := s.curveOfRef(o)
		for _, x := range geom.Intersect(c, oc, tol) {
			if geom.AtEnd(c, x.P, tol) {
				continue
			}
			o.pos = endpointAt(oc, x.P, tol)
			out = append(out, cut{t: x.T0, p: x.P, other: o})
		}
	}
	slices.SortStableFunc(out, func(a, b cut) int {
		switch {
		case a.t < b.t:
			return -1
		case a.t > b.t:
			return 1
		default:
			return 0
		}
	})
	return out
}

// bounds returns the last cut before t and the first cut after it. For
// closed curves the search wraps around, and the returned parameters are
// shifted by a period so that lower < t < upper.
func bounds(cuts []cut, t float64, closed bool, period float64) (lower, upper *cut) {
	const eps = 1e-12
	for i := range cuts {
		x := &cuts[i]
		if x.t < t-eps {
			lower = x
		} else if x.t > t+eps && upper == nil {
			upper = x
		}
	}
	if !closed || len(cuts) == 0 {
		return lower, upper
	}
	if lower == nil {
		l := cuts[len(cuts)-1]
		l.t -= period
		lower = &l
	}
	if upper == nil {
		u := cuts[0]
		u.t += period
		upper = &u
	}
	return lower, upper
}

// distinctCuts counts cuts at distinct points.
func distinctCuts(cuts []cut, tol float64) int {
	var pts []geom.Point
outer:
	for _, x := range cuts {
		for _, p := range pts {
			if p.Near(x.p, tol) {
				continue outer
			}
		}
		pts = append(pts, x.p)
	}
	return len(pts)
}

// attach constrains the new end point end to the curve that cut it: it is
// made coincident with the other curve's end point if the cut lies there,
// and put on the other curve otherwise.
func (s *Sketch) attach(end ref, x cut) {
	if x.other.pos != PosNone {
		s.addCoincident(end, x.other)
	} else {
		s.addPointOnObject(end, x.other)
	}
}

// Trim removes the part of the curve id around the point nearest to pt,
// up to the nearest intersections with other geometry on either side.
//
// An open curve without intersections on either side is deleted. One that
// is bounded on one side is shortened, and one bounded on both sides is
// split into two pieces with the second one appended. A closed curve with
// fewer than two intersections is deleted; otherwise it becomes a single arc
// in place. The new end points are made coincident with the end point of
// the cutting curve they lie on, or put on the cutting curve. Constraints on
// removed end points are dropped.
func (s *Sketch) Trim(id GeoID, pt geom.Point) (err error) {
	defer func(start time.Time) { s.observe(OpTrim, id, start, err) }(time.Now())
	k, err := s.keyOf(id)
	if err != nil {
		return err
	}
	g := s.geos[k]
	c := g.Curve
	if c.Kind() == geom.DotKind {
		return fmt.Errorf("%w: can't trim a point", ErrGeometricPrecondition)
	}
	t, err := s.project(c, pt)
	if err != nil {
		return err
	}
	cuts := s.cuts(k)
	t0, t1 := c.Range()
	_, isSpline := c.(geom.BSpline)

	if c.IsClosed() {
		if distinctCuts(cuts, s.opts.precision) < 2 {
			return s.trimAway(k)
		}
		period := t1 - t0
		lower, upper := bounds(cuts, t, true, period)
		if math.Abs(upper.t-lower.t-period) <= 1e-12 {
			return s.trimAway(k)
		}
		arc, err := openCurve(c, upper.t, lower.t+period)
		if err != nil {
			return err
		}

		exposed := isSpline && s.retract(k)
		s.dropEnd(k, PosStart)
		s.dropEnd(k, PosEnd)
		g.Curve = arc
		s.attach(ref{key: k, pos: PosStart}, *upper)
		s.attach(ref{key: k, pos: PosEnd}, *lower)
		if exposed {
			s.expose(k)
		}
		s.purge()
		return nil
	}

	lower, upper := bounds(cuts, t, false, 0)
	switch {
	case lower == nil && upper == nil:
		return s.trimAway(k)

	case lower != nil && upper != nil:
		first, err := subCurve(c, t0, lower.t)
		if err != nil {
			return err
		}
		second, err := subCurve(c, upper.t, t1)
		if err != nil {
			return err
		}

		var exposed bool
		if isSpline {
			exposed = s.retract(k)
		} else {
			exposed = len(s.alignmentsOf(k)) > 0
		}
		g.Curve = first
		k2 := s.appendGeometry(second, g.Construction, false)
		s.moveEnd(k, PosEnd, k2)
		s.attach(ref{key: k, pos: PosEnd}, *lower)
		s.attach(ref{key: k2, pos: PosStart}, *upper)
		if sharesCenter(c) {
			s.addCoincident(ref{key: k, pos: PosMid}, ref{key: k2, pos: PosMid})
		}
		if exposed {
			if isSpline {
				s.expose(k)
			}
			s.expose(k2)
		}

	default:
		a, b, end, x := t0, t1, PosStart, upper
		if upper == nil {
			b, end, x = lower.t, PosEnd, lower
		} else {
			a = upper.t
		}
		piece, err := subCurve(c, a, b)
		if err != nil {
			return err
		}

		exposed := isSpline && s.retract(k)
		s.dropEnd(k, end)
		g.Curve = piece
		s.attach(ref{key: k, pos: end}, *x)
		if exposed {
			s.expose(k)
		}
	}
	s.purge()
	return nil
}

// trimAway deletes the curve k and its internal geometry.
func (s *Sketch) trimAway(k key) error {
	keys := s.internalKeys(k)
	keys.Add(uint32(k))
	s.removeKeys(keys)
	return nil
}

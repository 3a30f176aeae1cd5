package geom

import (
	"math"
	"slices"
)

// Intersection is a point shared by two curves.
type Intersection struct {
	P Point
	// T0 is the parameter of P on the first curve.
	T0 float64
	// T1 is the parameter of P on the second curve.
	T1 float64
}

// Intersect returns the points where a and b meet, with points closer than
// tolerance counting as shared. The result is ordered by the parameter on a.
//
// Crossings are found by intersecting polyline approximations of both curves
// and refining each candidate with Newton's method. End points of either
// curve that lie on the other one are reported too, which catches touching
// curves that don't cross.
func Intersect(a, b Curve, tolerance float64) []Intersection {
	var out []Intersection
	add := func(x Intersection) {
		for _, o := range out {
			if o.P.Near(x.P, tolerance) {
				return
			}
		}
		out = append(out, x)
	}

	if !BoundingBox(a).Inflate(tolerance, tolerance).Overlaps(BoundingBox(b)) {
		return nil
	}

	switch {
	case a.Kind() == DotKind && b.Kind() == DotKind:
		pa, pb := a.Eval(0), b.Eval(0)
		if pa.Near(pb, tolerance) {
			add(Intersection{P: pa})
		}
		return out
	case a.Kind() == DotKind:
		if t, d := Nearest(b, a.Eval(0)); math.Sqrt(d) <= tolerance {
			add(Intersection{P: a.Eval(0), T1: t})
		}
		return out
	case b.Kind() == DotKind:
		if t, d := Nearest(a, b.Eval(0)); math.Sqrt(d) <= tolerance {
			add(Intersection{P: b.Eval(0), T0: t})
		}
		return out
	}

	if la, ok := a.(Line); ok {
		if lb, ok := b.(Line); ok {
			xs, n := la.IntersectLine(lb)
			for _, x := range xs[:n] {
				add(Intersection{P: la.Eval(x.SegmentT), T0: clampParam(a, x.SegmentT), T1: clampParam(b, x.LineT)})
			}
			endpointContacts(a, b, tolerance, add)
			return sortByT0(out)
		}
	}

	pa := polyline(a)
	pb := polyline(b)
	for i := 0; i+1 < len(pa.pts); i++ {
		sa := Line{pa.pts[i], pa.pts[i+1]}
		for j := 0; j+1 < len(pb.pts); j++ {
			sb := Line{pb.pts[j], pb.pts[j+1]}
			if !NewRectFromPoints(sa.P0, sa.P1).Inflate(tolerance, tolerance).Overlaps(NewRectFromPoints(sb.P0, sb.P1)) {
				continue
			}
			xs, n := sa.IntersectLine(sb)
			for _, x := range xs[:n] {
				ta := pa.ts[i] + (pa.ts[i+1]-pa.ts[i])*x.SegmentT
				tb := pb.ts[j] + (pb.ts[j+1]-pb.ts[j])*x.LineT
				ta, tb = refineIntersection(a, b, ta, tb)
				p, q := a.Eval(ta), b.Eval(tb)
				if p.Near(q, tolerance) {
					add(Intersection{P: p.Midpoint(q), T0: ta, T1: tb})
				}
			}
		}
	}
	endpointContacts(a, b, tolerance, add)
	return sortByT0(out)
}

func sortByT0(xs []Intersection) []Intersection {
	slices.SortFunc(xs, func(a, b Intersection) int {
		switch {
		case a.T0 < b.T0:
			return -1
		case a.T0 > b.T0:
			return 1
		default:
			return 0
		}
	})
	return xs
}

// endpointContacts reports the end points of each open curve that lie on
// the other curve.
func endpointContacts(a, b Curve, tolerance float64, add func(Intersection)) {
	if !b.IsClosed() {
		t0, t1 := b.Range()
		for _, tb := range [2]float64{t0, t1} {
			p := b.Eval(tb)
			if ta, d := Nearest(a, p); math.Sqrt(d) <= tolerance {
				add(Intersection{P: p, T0: ta, T1: tb})
			}
		}
	}
	if !a.IsClosed() {
		t0, t1 := a.Range()
		for _, ta := range [2]float64{t0, t1} {
			p := a.Eval(ta)
			if tb, d := Nearest(b, p); math.Sqrt(d) <= tolerance {
				add(Intersection{P: p, T0: ta, T1: tb})
			}
		}
	}
}

type sampled struct {
	pts []Point
	ts  []float64
}

func polyline(c Curve) sampled {
	ts := sampleParams(c, sampleCount(c))
	s := sampled{pts: make([]Point, len(ts)), ts: ts}
	for i, t := range ts {
		s.pts[i] = c.Eval(t)
	}
	return s
}

// refineIntersection runs Newton's method on a(ta) - b(tb) = 0.
func refineIntersection(a, b Curve, ta, tb float64) (float64, float64) {
	for range 32 {
		d := a.Eval(ta).Sub(b.Eval(tb))
		if d.Hypot2() < 1e-26 {
			break
		}
		da, db := Derivative(a, ta), Derivative(b, tb)
		det := -da.Cross(db)
		if math.Abs(det) < 1e-14 {
			break
		}
		ta += d.Cross(db) / det
		tb += -da.Cross(d) / det
		ta, tb = clampParam(a, ta), clampParam(b, tb)
	}
	return ta, tb
}

// clampParam limits t to the range of an open curve and wraps it into the
// range of a closed one.
func clampParam(c Curve, t float64) float64 {
	t0, t1 := c.Range()
	if c.IsClosed() {
		return wrapParam(t, t0, t1-t0)
	}
	return min(max(t, t0), t1)
}

// OnCurve reports whether pt lies within tolerance of c.
func OnCurve(c Curve, pt Point, tolerance float64) bool {
	_, d := Nearest(c, pt)
	return math.Sqrt(d) <= tolerance
}

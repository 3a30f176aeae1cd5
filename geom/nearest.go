package geom

import (
	"fmt"
	"math"
)

// Nearest finds the point on c closest to pt. It returns the parameter of
// that point and its squared distance to pt.
func Nearest(c Curve, pt Point) (t, distSq float64) {
	switch c := c.(type) {
	case Dot:
		return 0, c.P.DistanceSquared(pt)
	case Line:
		distSq, t := c.Nearest(pt, DefaultAccuracy)
		return t, distSq
	case Circle:
		th := normalizeAngle(pt.Sub(c.Center).Angle(), 0)
		return th, c.Eval(th).DistanceSquared(pt)
	case ArcOfCircle:
		th := normalizeAngle(pt.Sub(c.Center).Angle(), c.Start)
		if th <= c.End {
			return th, c.Eval(th).DistanceSquared(pt)
		}
		return nearestEnd(c, pt)
	case Ellipse, ArcOfEllipse, ArcOfHyperbola, ArcOfParabola, BSpline:
		return nearestSampled(c, pt)
	default:
		panic(fmt.Sprintf("unhandled curve %T", c))
	}
}

func nearestEnd(c Curve, pt Point) (float64, float64) {
	t0, t1 := c.Range()
	d0 := c.Eval(t0).DistanceSquared(pt)
	d1 := c.Eval(t1).DistanceSquared(pt)
	if d0 <= d1 {
		return t0, d0
	}
	return t1, d1
}

// sampleCount returns the number of segments used to approximate c by a
// polyline.
func sampleCount(c Curve) int {
	switch c := c.(type) {
	case Dot:
		return 0
	case Line:
		return 1
	case Circle, Ellipse:
		return 128
	case ArcOfCircle:
		return max(8, int(64*c.Sweep()/math.Pi))
	case ArcOfEllipse:
		return max(8, int(64*(c.End-c.Start)/math.Pi))
	case ArcOfHyperbola, ArcOfParabola:
		return 128
	case BSpline:
		return max(64, 16*(len(c.Knots)-1)*c.Degree)
	default:
		panic(fmt.Sprintf("unhandled curve %T", c))
	}
}

// sampleParams returns n+1 evenly spaced parameters over the range of c.
func sampleParams(c Curve, n int) []float64 {
	t0, t1 := c.Range()
	ts := make([]float64, n+1)
	for i := range ts {
		ts[i] = t0 + (t1-t0)*float64(i)/float64(n)
	}
	ts[n] = t1
	return ts
}

// nearestSampled samples c, then refines the best sample by solving for a
// zero of the derivative of the squared distance.
func nearestSampled(c Curve, pt Point) (float64, float64) {
	n := sampleCount(c)
	ts := sampleParams(c, n)
	best, bestD := 0, math.Inf(1)
	for i, t := range ts {
		if d := c.Eval(t).DistanceSquared(pt); d < bestD {
			best, bestD = i, d
		}
	}

	// f is half the derivative of the squared distance.
	f := func(t float64) float64 {
		return c.Eval(t).Sub(pt).Dot(Derivative(c, t))
	}
	closed := c.IsClosed()
	t0, t1 := c.Range()
	period := t1 - t0
	tBest := ts[best]
	for _, bracket := range [2][2]int{{best - 1, best}, {best, best + 1}} {
		lo, hi := bracket[0], bracket[1]
		a, b := 0.0, 0.0
		switch {
		case lo >= 0 && hi <= n:
			a, b = ts[lo], ts[hi]
		case closed && lo < 0:
			a, b = ts[n-1]-period, ts[hi]
		case closed && hi > n:
			a, b = ts[lo], ts[1]+period
		default:
			continue
		}
		ya, yb := f(a), f(b)
		if !(ya < 0 && yb > 0) {
			continue
		}
		t := solveITP(f, a, b, DefaultAccuracy*max(1, b-a), 1, 0.2/(b-a), ya, yb)
		if d := c.Eval(t).DistanceSquared(pt); d < bestD {
			tBest, bestD = t, d
		}
	}
	if closed {
		tBest = wrapParam(tBest, t0, period)
	}
	return tBest, bestD
}

// wrapParam maps t into [t0, t0+period).
func wrapParam(t, t0, period float64) float64 {
	d := math.Mod(t-t0, period)
	if d < 0 {
		d += period
	}
	return t0 + d
}

// solveITP finds a zero of f in [a, b] using the [ITP method]. f(a) must be
// negative and f(b) positive.
//
// The n0 parameter controls the relative impact of the bisection and secant
// components. The k1 parameter is suggested to be 0.2 / (b - a).
//
// [ITP method]: https://en.wikipedia.org/wiki/ITP_Method
func solveITP(
	f func(float64) float64,
	a float64,
	b float64,
	epsilon float64,
	n0 int,
	k1 float64,
	ya float64,
	yb float64,
) float64 {
	n1_2 := int(max(math.Ceil(math.Log2((b-a)/epsilon))-1.0, 0.0))
	nmax := n0 + n1_2
	scaledEpsilon := epsilon * float64(uint64(1)<<nmax)
	for b-a > 2.0*epsilon {
		x1_2 := 0.5 * (a + b)
		r := scaledEpsilon - 0.5*(b-a)
		xf := (yb*a - ya*b) / (yb - ya)
		sigma := x1_2 - xf
		// This has k2 = 2 hardwired for efficiency.
		delta := k1 * ((b - a) * (b - a))
		var xt float64
		if delta <= math.Abs(x1_2-xf) {
			xt = xf + math.Copysign(delta, sigma)
		} else {
			xt = x1_2
		}
		var xitp float64
		if math.Abs(xt-x1_2) <= r {
			xitp = xt
		} else {
			xitp = x1_2 - math.Copysign(r, sigma)
		}
		yitp := f(xitp)
		if yitp > 0.0 {
			b = xitp
			yb = yitp
		} else if yitp < 0.0 {
			a = xitp
			ya = yitp
		} else {
			return xitp
		}
		scaledEpsilon *= 0.5
	}
	return 0.5 * (a + b)
}

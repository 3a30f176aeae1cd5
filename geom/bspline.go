package geom

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"
)

var (
	// ErrInvalidBSpline is returned when a B-spline's poles, weights, knots
	// and multiplicities are inconsistent, or when an edit would make them so.
	ErrInvalidBSpline = errors.New("geom: invalid B-spline")
	// ErrKnotIndex is returned for knot indices that don't exist.
	ErrKnotIndex = errors.New("geom: knot index out of range")
	// ErrParameter is returned for parameters outside a curve's range.
	ErrParameter = errors.New("geom: parameter out of range")
	// ErrClosedCurve is returned by operations that need an open curve.
	ErrClosedCurve = errors.New("geom: curve is closed")
)

// BSpline is a rational B-spline curve.
//
// Knots holds the distinct knot values in strictly increasing order and Mults
// their multiplicities. A non-periodic spline is clamped: both end knots have
// multiplicity Degree+1, so the curve starts at the first pole and ends at the
// last one, and the multiplicities sum to len(Poles)+Degree+1.
//
// A periodic spline repeats the first knot one period later as its last knot.
// The first and last multiplicity are equal, and the multiplicities without
// the last one sum to len(Poles).
type BSpline struct {
	Poles    []Point
	Weights  []float64
	Knots    []float64
	Mults    []int
	Degree   int
	Periodic bool
}

var _ Curve = BSpline{}

// NewBSpline returns a validated B-spline that owns copies of the given
// slices. If weights is nil, every pole gets weight 1.
func NewBSpline(poles []Point, weights []float64, knots []float64, mults []int, degree int, periodic bool) (BSpline, error) {
	if weights == nil {
		weights = make([]float64, len(poles))
		for i := range weights {
			weights[i] = 1
		}
	} else {
		weights = slices.Clone(weights)
	}
	b := BSpline{
		Poles:    slices.Clone(poles),
		Weights:  weights,
		Knots:    slices.Clone(knots),
		Mults:    slices.Clone(mults),
		Degree:   degree,
		Periodic: periodic,
	}
	if err := b.Validate(); err != nil {
		return BSpline{}, err
	}
	return b, nil
}

func (BSpline) Kind() Kind       { return BSplineKind }
func (b BSpline) IsClosed() bool { return b.Periodic }
func (BSpline) curve()           {}

func (b BSpline) Range() (float64, float64) {
	return b.Knots[0], b.Knots[len(b.Knots)-1]
}

// Period returns the length of the parameter range.
func (b BSpline) Period() float64 {
	return b.Knots[len(b.Knots)-1] - b.Knots[0]
}

func (b BSpline) CountPoles() int { return len(b.Poles) }
func (b BSpline) CountKnots() int { return len(b.Knots) }

// Clone returns a deep copy of b.
func (b BSpline) Clone() BSpline {
	return BSpline{
		Poles:    slices.Clone(b.Poles),
		Weights:  slices.Clone(b.Weights),
		Knots:    slices.Clone(b.Knots),
		Mults:    slices.Clone(b.Mults),
		Degree:   b.Degree,
		Periodic: b.Periodic,
	}
}

// Validate checks the structural invariants of the spline.
func (b BSpline) Validate() error {
	p := b.Degree
	n := len(b.Poles)
	k := len(b.Knots)
	switch {
	case p < 1:
		return fmt.Errorf("%w: degree %d", ErrInvalidBSpline, p)
	case n < 2:
		return fmt.Errorf("%w: %d poles", ErrInvalidBSpline, n)
	case len(b.Weights) != n:
		return fmt.Errorf("%w: %d weights for %d poles", ErrInvalidBSpline, len(b.Weights), n)
	case k < 2 || len(b.Mults) != k:
		return fmt.Errorf("%w: %d knots with %d multiplicities", ErrInvalidBSpline, k, len(b.Mults))
	}
	for i, w := range b.Weights {
		if !(w > 0) {
			return fmt.Errorf("%w: weight %d is %g", ErrInvalidBSpline, i, w)
		}
	}
	for i := 1; i < k; i++ {
		if !(b.Knots[i] > b.Knots[i-1]) {
			return fmt.Errorf("%w: knots not strictly increasing at %d", ErrInvalidBSpline, i)
		}
	}
	sum := 0
	for i, m := range b.Mults {
		if m < 1 {
			return fmt.Errorf("%w: multiplicity %d of knot %d", ErrInvalidBSpline, m, i)
		}
		if i > 0 && i < k-1 && m > p {
			return fmt.Errorf("%w: interior multiplicity %d exceeds degree %d", ErrInvalidBSpline, m, p)
		}
		sum += m
	}
	if b.Periodic {
		if b.Mults[0] != b.Mults[k-1] || b.Mults[0] > p {
			return fmt.Errorf("%w: periodic end multiplicities %d and %d", ErrInvalidBSpline, b.Mults[0], b.Mults[k-1])
		}
		if n <= p {
			return fmt.Errorf("%w: periodic spline of degree %d needs more than %d poles", ErrInvalidBSpline, p, n)
		}
		if sum-b.Mults[k-1] != n {
			return fmt.Errorf("%w: multiplicities sum to %d, want %d", ErrInvalidBSpline, sum-b.Mults[k-1], n)
		}
		return nil
	}
	if b.Mults[0] != p+1 || b.Mults[k-1] != p+1 {
		return fmt.Errorf("%w: end multiplicities %d and %d, want %d", ErrInvalidBSpline, b.Mults[0], b.Mults[k-1], p+1)
	}
	if sum != n+p+1 {
		return fmt.Errorf("%w: multiplicities sum to %d, want %d", ErrInvalidBSpline, sum, n+p+1)
	}
	return nil
}

// Eval evaluates the spline at t. Parameters of a periodic spline wrap around;
// those of a non-periodic spline are clamped to its range.
func (b BSpline) Eval(t float64) Point {
	return b.flat(0).eval(b.wrap(t))
}

func (b BSpline) wrap(t float64) float64 {
	t0, t1 := b.Range()
	if !b.Periodic {
		return min(max(t, t0), t1)
	}
	d := math.Mod(t-t0, t1-t0)
	if d < 0 {
		d += t1 - t0
	}
	return t0 + d
}

// KnotIndex returns the index of the knot that equals u within the knot
// tolerance, or -1.
func (b BSpline) KnotIndex(u float64) int {
	tol := knotTolerance * max(1, b.Period())
	for i, k := range b.Knots {
		if math.Abs(k-u) <= tol {
			return i
		}
	}
	return -1
}

const knotTolerance = 1e-10

// hpoint is a pole in homogeneous coordinates.
type hpoint struct {
	X, Y, W float64
}

func homogeneous(p Point, w float64) hpoint {
	return hpoint{p.X * w, p.Y * w, w}
}

func (h hpoint) project() (Point, float64) {
	return Point{h.X / h.W, h.Y / h.W}, h.W
}

func (h hpoint) add(o hpoint) hpoint {
	return hpoint{h.X + o.X, h.Y + o.Y, h.W + o.W}
}

func (h hpoint) mul(f float64) hpoint {
	return hpoint{h.X * f, h.Y * f, h.W * f}
}

func (h hpoint) lerp(o hpoint, t float64) hpoint {
	return h.mul(1 - t).add(o.mul(t))
}

// flatSpline is a spline with an expanded knot vector, as used by the
// textbook algorithms. It is not necessarily clamped.
type flatSpline struct {
	knots  []float64
	poles  []hpoint
	degree int
}

// flat returns the expanded form of b. For a periodic spline the poles are
// unrolled so that pole i is Poles[i mod n]; extra adds that many poles
// beyond the n+Degree needed to cover one period.
func (b BSpline) flat(extra int) flatSpline {
	p := b.Degree
	if !b.Periodic {
		f := flatSpline{degree: p, poles: make([]hpoint, len(b.Poles))}
		for i, pole := range b.Poles {
			f.poles[i] = homogeneous(pole, b.Weights[i])
		}
		for i, k := range b.Knots {
			for range b.Mults[i] {
				f.knots = append(f.knots, k)
			}
		}
		return f
	}

	n := len(b.Poles)
	kn := len(b.Knots)
	base := make([]float64, 0, n)
	for i, k := range b.Knots[:kn-1] {
		for range b.Mults[i] {
			base = append(base, k)
		}
	}
	period := b.Period()
	u := func(j int) float64 {
		q, r := j/n, j%n
		if r < 0 {
			q--
			r += n
		}
		return base[r] + float64(q)*period
	}

	count := n + p + extra
	f := flatSpline{
		degree: p,
		poles:  make([]hpoint, count),
		knots:  make([]float64, count+p+1),
	}
	for i := range f.poles {
		f.poles[i] = homogeneous(b.Poles[i%n], b.Weights[i%n])
	}
	for i := range f.knots {
		f.knots[i] = u(i - p)
	}
	return f
}

// unrolled returns the periodic spline unrolled over more than two periods,
// which leaves room for edits anywhere in the first period.
func (b BSpline) unrolled() flatSpline {
	return b.flat(len(b.Poles))
}

// span returns k such that knots[k] <= t < knots[k+1] with p <= k < n.
func (f flatSpline) span(t float64) int {
	p := f.degree
	n := len(f.poles)
	lo, hi := f.knots[p], f.knots[n]
	if t >= hi {
		k := n - 1
		for k > p && f.knots[k] >= hi {
			k--
		}
		return k
	}
	if t <= lo {
		k := p
		for k < n-1 && f.knots[k+1] <= lo {
			k++
		}
		return k
	}
	k := sort.SearchFloat64s(f.knots, math.Nextafter(t, math.Inf(1))) - 1
	return min(max(k, p), n-1)
}

// eval is de Boor's algorithm on homogeneous coordinates.
func (f flatSpline) eval(t float64) Point {
	p := f.degree
	k := f.span(t)
	d := make([]hpoint, p+1)
	copy(d, f.poles[k-p:k+1])
	for r := 1; r <= p; r++ {
		for j := p; j >= r; j-- {
			i := j + k - p
			den := f.knots[i+p-r+1] - f.knots[i]
			var alpha float64
			if den != 0 {
				alpha = (t - f.knots[i]) / den
			}
			d[j] = d[j-1].lerp(d[j], alpha)
		}
	}
	pt, _ := d[p].project()
	return pt
}

// lastIndex returns the index of the last knot equal to u, or -1.
func (f flatSpline) lastIndex(u float64) int {
	i := sort.SearchFloat64s(f.knots, math.Nextafter(u, math.Inf(1))) - 1
	if i >= 0 && f.knots[i] == u {
		return i
	}
	return -1
}

// firstIndex returns the index of the first knot equal to u, or -1.
func (f flatSpline) firstIndex(u float64) int {
	i := sort.SearchFloat64s(f.knots, u)
	if i < len(f.knots) && f.knots[i] == u {
		return i
	}
	return -1
}

func (f flatSpline) multiplicity(u float64) int {
	n := 0
	for _, k := range f.knots {
		if k == u {
			n++
		}
	}
	return n
}

// insert is Boehm's single knot insertion. It returns the new spline and the
// span index k of u in f.
func (f flatSpline) insert(u float64) (flatSpline, int) {
	p := f.degree
	n := len(f.poles)
	k := sort.SearchFloat64s(f.knots, math.Nextafter(u, math.Inf(1))) - 1
	k = min(max(k, p), n-1)

	q := make([]hpoint, n+1)
	copy(q, f.poles[:k-p+1])
	for i := k - p + 1; i <= k; i++ {
		alpha := (u - f.knots[i]) / (f.knots[i+p] - f.knots[i])
		q[i] = f.poles[i-1].lerp(f.poles[i], alpha)
	}
	copy(q[k+1:], f.poles[k:])

	knots := make([]float64, 0, len(f.knots)+1)
	knots = append(knots, f.knots[:k+1]...)
	knots = append(knots, u)
	knots = append(knots, f.knots[k+1:]...)
	return flatSpline{knots: knots, poles: q, degree: p}, k
}

// remove removes one occurrence of the knot at index r, the last occurrence
// of a knot with multiplicity s. The removal is forced: if the knot is not
// removable without changing the curve, the two estimates of the new poles
// are averaged. It returns the new spline and the index of the first pole
// that was recomputed.
func (f flatSpline) remove(r, s int) (flatSpline, int) {
	p := f.degree
	u := f.knots[r]
	first := r - p
	last := r - s
	l := last - first + 1

	alpha := func(i int) float64 {
		return (u - f.knots[i]) / (f.knots[i+p+1] - f.knots[i])
	}
	// Slot j holds new pole first-1+j.
	fwd := make([]hpoint, l+1)
	bwd := make([]hpoint, l+1)
	fwd[0] = f.poles[first-1]
	bwd[l] = f.poles[last+1]
	i, j := first, last
	for j-i > 0 {
		ai := alpha(i)
		fwd[i-first+1] = f.poles[i].add(fwd[i-first].mul(ai - 1)).mul(1 / ai)
		aj := alpha(j)
		bwd[j-first] = f.poles[j].add(bwd[j-first+1].mul(-aj)).mul(1 / (1 - aj))
		i++
		j--
	}

	q := make([]hpoint, 0, len(f.poles)-1)
	q = append(q, f.poles[:first]...)
	for slot := 1; slot < l; slot++ {
		inFwd := slot <= i-first
		inBwd := slot >= j+1-first
		switch {
		case inFwd && inBwd:
			q = append(q, fwd[slot].lerp(bwd[slot], 0.5))
		case inFwd:
			q = append(q, fwd[slot])
		default:
			q = append(q, bwd[slot])
		}
	}
	q = append(q, f.poles[last+1:]...)

	knots := slices.Delete(slices.Clone(f.knots), r, r+1)
	return flatSpline{knots: knots, poles: q, degree: p}, first
}

// saturate inserts u until its multiplicity is at least the degree.
func (f flatSpline) saturate(u float64) flatSpline {
	for m := f.multiplicity(u); m < f.degree; m++ {
		f, _ = f.insert(u)
	}
	return f
}

// segment returns the clamped spline that covers [a, b] of f.
func (f flatSpline) segment(a, b float64) flatSpline {
	p := f.degree
	f = f.saturate(a).saturate(b)
	ra := f.lastIndex(a)
	rb := f.firstIndex(b) + p - 1

	knots := make([]float64, 0, rb-ra+p+2)
	knots = append(knots, a)
	knots = append(knots, f.knots[ra-p+1:rb+1]...)
	knots = append(knots, b)
	return flatSpline{
		knots:  knots,
		poles:  slices.Clone(f.poles[ra-p : rb-p+1]),
		degree: p,
	}
}

// bspline converts a clamped flat spline back into knots and multiplicities.
func (f flatSpline) bspline() BSpline {
	b := BSpline{
		Poles:   make([]Point, len(f.poles)),
		Weights: make([]float64, len(f.poles)),
		Degree:  f.degree,
	}
	for i, h := range f.poles {
		b.Poles[i], b.Weights[i] = h.project()
	}
	for _, k := range f.knots {
		if n := len(b.Knots); n > 0 && b.Knots[n-1] == k {
			b.Mults[n-1]++
			continue
		}
		b.Knots = append(b.Knots, k)
		b.Mults = append(b.Mults, 1)
	}
	return b
}

package geom

import (
	"math"
)

// ArcOfHyperbola is a piece of one branch of a hyperbola. The branch opens
// along the major axis, which is rotated by Rotation from the positive x
// axis, and is parametrized as
//
//	Center + R(Rotation)·⟨a·cosh t, b·sinh t⟩
//
// for t in [Start, End].
type ArcOfHyperbola struct {
	Center      Point
	MajorRadius float64
	MinorRadius float64
	Rotation    float64
	Start       float64
	End         float64
}

var _ Curve = ArcOfHyperbola{}

func (ArcOfHyperbola) Kind() Kind                  { return ArcOfHyperbolaKind }
func (a ArcOfHyperbola) Range() (float64, float64) { return a.Start, a.End }
func (ArcOfHyperbola) IsClosed() bool              { return false }
func (ArcOfHyperbola) curve()                      {}

func (a ArcOfHyperbola) Eval(t float64) Point {
	v := Vec(a.MajorRadius*math.Cosh(t), a.MinorRadius*math.Sinh(t))
	return a.Center.Translate(rotatePt(v, a.Rotation))
}

func (a ArcOfHyperbola) MajorAxis() Vec2 {
	return VecFromAngle(a.Rotation)
}

// FocalDistance returns the distance from the center to the focus of the
// branch.
func (a ArcOfHyperbola) FocalDistance() float64 {
	return math.Hypot(a.MajorRadius, a.MinorRadius)
}

// Focus returns the focus that lies inside the branch.
func (a ArcOfHyperbola) Focus() Point {
	return a.Center.Translate(a.MajorAxis().Mul(a.FocalDistance()))
}

// MajorLine returns the line from the mirrored vertex to the branch's vertex.
func (a ArcOfHyperbola) MajorLine() Line {
	d := a.MajorAxis().Mul(a.MajorRadius)
	return Line{a.Center.Translate(d.Negate()), a.Center.Translate(d)}
}

// MinorLine returns the conjugate axis, centered on the hyperbola's center.
func (a ArcOfHyperbola) MinorLine() Line {
	d := a.MajorAxis().Perp().Mul(a.MinorRadius)
	return Line{a.Center.Translate(d.Negate()), a.Center.Translate(d)}
}

// ArcOfParabola is a piece of a parabola with its vertex at Vertex and its
// axis rotated by Rotation from the positive x axis. It is parametrized as
//
//	Vertex + R(Rotation)·⟨t²/(4f), t⟩
//
// for t in [Start, End], where f is the focal length.
type ArcOfParabola struct {
	Vertex   Point
	Focal    float64
	Rotation float64
	Start    float64
	End      float64
}

var _ Curve = ArcOfParabola{}

func (ArcOfParabola) Kind() Kind                  { return ArcOfParabolaKind }
func (a ArcOfParabola) Range() (float64, float64) { return a.Start, a.End }
func (ArcOfParabola) IsClosed() bool              { return false }
func (ArcOfParabola) curve()                      {}

func (a ArcOfParabola) Eval(t float64) Point {
	v := Vec(t*t/(4*a.Focal), t)
	return a.Vertex.Translate(rotatePt(v, a.Rotation))
}

func (a ArcOfParabola) Axis() Vec2 {
	return VecFromAngle(a.Rotation)
}

func (a ArcOfParabola) Focus() Point {
	return a.Vertex.Translate(a.Axis().Mul(a.Focal))
}

// FocalAxis returns the line from the vertex to the focus.
func (a ArcOfParabola) FocalAxis() Line {
	return Line{a.Vertex, a.Focus()}
}

package geom

import (
	"math"
)

// Ellipse is a full ellipse. Rotation is the counter-clockwise angle of the
// major axis from the positive x axis. The curve is parametrized by the
// eccentric angle over [0, 2π].
type Ellipse struct {
	Center      Point
	MajorRadius float64
	MinorRadius float64
	Rotation    float64
}

var _ Curve = Ellipse{}

func (Ellipse) Kind() Kind                { return EllipseKind }
func (Ellipse) Range() (float64, float64) { return 0, 2 * math.Pi }
func (Ellipse) IsClosed() bool            { return true }
func (Ellipse) curve()                    {}

func (e Ellipse) Eval(t float64) Point {
	return e.Center.Translate(sampleEllipse(e.Radii(), e.Rotation, t))
}

// Radii returns the major and minor radius as a vector.
func (e Ellipse) Radii() Vec2 {
	return Vec(e.MajorRadius, e.MinorRadius)
}

// MajorAxis returns the unit vector along the major axis.
func (e Ellipse) MajorAxis() Vec2 {
	return VecFromAngle(e.Rotation)
}

// MinorAxis returns the unit vector along the minor axis.
func (e Ellipse) MinorAxis() Vec2 {
	return e.MajorAxis().Perp()
}

// FocalDistance returns the distance between the center and either focus.
func (e Ellipse) FocalDistance() float64 {
	return math.Sqrt(max(e.MajorRadius*e.MajorRadius-e.MinorRadius*e.MinorRadius, 0))
}

// Focus1 returns the focus on the positive major axis.
func (e Ellipse) Focus1() Point {
	return e.Center.Translate(e.MajorAxis().Mul(e.FocalDistance()))
}

// Focus2 returns the focus on the negative major axis.
func (e Ellipse) Focus2() Point {
	return e.Center.Translate(e.MajorAxis().Mul(-e.FocalDistance()))
}

// MajorDiameter returns the line spanning the major axis.
func (e Ellipse) MajorDiameter() Line {
	d := e.MajorAxis().Mul(e.MajorRadius)
	return Line{e.Center.Translate(d.Negate()), e.Center.Translate(d)}
}

// MinorDiameter returns the line spanning the minor axis.
func (e Ellipse) MinorDiameter() Line {
	d := e.MinorAxis().Mul(e.MinorRadius)
	return Line{e.Center.Translate(d.Negate()), e.Center.Translate(d)}
}

// Arc returns the arc of e between the eccentric angles start and end.
func (e Ellipse) Arc(start, end float64) ArcOfEllipse {
	return ArcOfEllipse{Ellipse: e, Start: start, End: end}
}

// ArcOfEllipse is the part of an ellipse between the eccentric angles Start
// and End, traversed counter-clockwise. End is greater than Start.
type ArcOfEllipse struct {
	Ellipse
	Start float64
	End   float64
}

var _ Curve = ArcOfEllipse{}

func (ArcOfEllipse) Kind() Kind                  { return ArcOfEllipseKind }
func (a ArcOfEllipse) Range() (float64, float64) { return a.Start, a.End }
func (ArcOfEllipse) IsClosed() bool              { return false }

// sampleEllipse takes the ellipse radii, how the radii are rotated, and the
// angle, and returns a point on the ellipse relative to its center.
func sampleEllipse(radii Vec2, xRotation float64, angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	u := radii.X * cos
	v := radii.Y * sin
	return rotatePt(Vec2{u, v}, xRotation)
}

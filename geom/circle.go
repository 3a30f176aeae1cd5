package geom

import (
	"math"
)

// Circle is a full circle, parametrized by the counter-clockwise angle from
// the positive x axis over [0, 2π].
type Circle struct {
	Center Point
	Radius float64
}

var _ Curve = Circle{}

func (Circle) Kind() Kind                { return CircleKind }
func (Circle) Range() (float64, float64) { return 0, 2 * math.Pi }
func (Circle) IsClosed() bool            { return true }
func (Circle) curve()                    {}

func (c Circle) Eval(t float64) Point {
	return pointOnCircle(c.Center, c.Radius, t)
}

// Arc returns the arc of c that runs counter-clockwise from start to end.
func (c Circle) Arc(start, end float64) ArcOfCircle {
	return ArcOfCircle{Circle: c, Start: start, End: end}
}

// ArcOfCircle is the part of a circle between the angles Start and End,
// traversed counter-clockwise. End is greater than Start.
type ArcOfCircle struct {
	Circle
	Start float64
	End   float64
}

var _ Curve = ArcOfCircle{}

func (ArcOfCircle) Kind() Kind                  { return ArcOfCircleKind }
func (a ArcOfCircle) Range() (float64, float64) { return a.Start, a.End }
func (ArcOfCircle) IsClosed() bool              { return false }

// Sweep returns the arc's angular extent.
func (a ArcOfCircle) Sweep() float64 {
	return a.End - a.Start
}

// Contains reports whether the angle th, taken modulo 2π, lies on the arc.
func (a ArcOfCircle) Contains(th float64) bool {
	return normalizeAngle(th, a.Start) <= a.End
}

func pointOnCircle(center Point, radius float64, angle float64) Point {
	sin, cos := math.Sincos(angle)
	return center.Translate(
		Vec2{
			X: cos * radius,
			Y: sin * radius,
		})
}

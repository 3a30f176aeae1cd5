// Package geom provides the curve primitives of a 2D sketch: line segments,
// circles, ellipses, arcs of circles, ellipses, hyperbolas and parabolas,
// rational B-splines, and single points.
//
// # Curves
//
// [Curve] is a closed set of parametric curves. Every curve can be evaluated
// at a parameter ([Curve.Eval]) within its range ([Curve.Range]). Closed
// curves ([Circle], [Ellipse] and periodic [BSpline]s) wrap around; their
// first and last parameter name the same point.
//
// Angles are measured counter-clockwise from the positive x axis. Arcs run
// counter-clockwise from their start angle to their end angle.
//
// # Queries
//
// [Nearest] projects a point onto a curve. [Intersect] computes the points
// shared by two curves. Both work on every curve kind; curves without a
// closed-form solution are sampled and the result refined numerically.
//
// # B-splines
//
// [BSpline] stores distinct knots together with their multiplicities. The
// knot vector can be edited without changing the curve's shape
// ([BSpline.InsertKnot], [BSpline.IncreaseMultiplicity]) or with the best
// approximation of it ([BSpline.RemoveKnot]). Splines can be split, reversed,
// opened at a parameter and raised in degree. [ToBSpline] converts any open
// curve to an equivalent B-spline, which is how curves of different kinds are
// joined.
//
// # Literature
//
//   - The NURBS Book by Les Piegl and Wayne Tiller
//   - [An Enhancement of the Bisection Method Average Performance Preserving Minmax Optimality] by Oliveira and Takahashi
//
// [An Enhancement of the Bisection Method Average Performance Preserving Minmax Optimality]: https://dl.acm.org/doi/10.1145/3423597
package geom

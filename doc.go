// Package sketch maintains the geometry of a 2D sketch and the constraints
// between it.
//
// A [Sketch] stores curves from package geom and addresses them by [GeoID],
// their position in insertion order. Constraints reference geometry, or
// named points of it ([PointPos]), by GeoID. When geometry is deleted, every
// higher id moves down by one, and the sketch rewrites its constraints to
// match; constraints that referenced deleted geometry are removed. The pure
// functions [GetConstraintAfterDeletingGeo] and
// [ChangeConstraintAfterDeletingGeo] apply the same renumbering to
// constraints held elsewhere.
//
// # Editing
//
// [Sketch.Split], [Sketch.Trim] and [Sketch.Join] replace curves while
// keeping their end points constrained to their neighbors.
// [Sketch.ModifyBSplineKnotMultiplicity] and [Sketch.InsertBSplineKnot] edit
// the knots of B-splines.
//
// # Internal geometry
//
// Ellipses, arcs of conics and B-splines have internal geometry: their axes
// and foci, or their poles and knots. [Sketch.ExposeInternalGeometry] adds it
// to the sketch as construction geometry tied to its parent by
// InternalAlignment constraints, and
// [Sketch.DeleteUnusedInternalGeometry] removes what no other constraint
// uses.
//
// # Failures
//
// Operations either complete or leave the sketch unchanged. Invalid edits
// fail with [ErrValue] and missing indices with [ErrOutOfRange]. Edits that
// don't apply to the picked geometry fail with [ErrGeometricPrecondition],
// which is expected user input rather than a programming error.
package sketch

package sketch

import "fmt"

// ConstraintType is the kind of relation a [Constraint] expresses.
type ConstraintType uint8

const (
	// None marks a constraint invalidated by the deletion of a geometry it
	// referenced. Such tombstones are purged from the sketch.
	None ConstraintType = iota
	Coincident
	Horizontal
	Vertical
	Parallel
	Tangent
	Distance
	DistanceX
	DistanceY
	Angle
	Perpendicular
	Radius
	Equal
	PointOnObject
	Symmetric
	InternalAlignment
	SnellsLaw
	Block
	Diameter
	Weight
)

var constraintTypeNames = [...]string{
	None:              "None",
	Coincident:        "Coincident",
	Horizontal:        "Horizontal",
	Vertical:          "Vertical",
	Parallel:          "Parallel",
	Tangent:           "Tangent",
	Distance:          "Distance",
	DistanceX:         "DistanceX",
	DistanceY:         "DistanceY",
	Angle:             "Angle",
	Perpendicular:     "Perpendicular",
	Radius:            "Radius",
	Equal:             "Equal",
	PointOnObject:     "PointOnObject",
	Symmetric:         "Symmetric",
	InternalAlignment: "InternalAlignment",
	SnellsLaw:         "SnellsLaw",
	Block:             "Block",
	Diameter:          "Diameter",
	Weight:            "Weight",
}

func (t ConstraintType) String() string {
	if int(t) < len(constraintTypeNames) {
		return constraintTypeNames[t]
	}
	return fmt.Sprintf("ConstraintType(%d)", uint8(t))
}

// AlignmentType says which part of its parent curve an internal geometry
// stands for.
type AlignmentType uint8

const (
	NoAlignment AlignmentType = iota
	EllipseMajorDiameter
	EllipseMinorDiameter
	EllipseFocus1
	EllipseFocus2
	HyperbolaMajor
	HyperbolaMinor
	HyperbolaFocus
	ParabolaFocus
	BSplineControlPoint
	BSplineKnotPoint
	ParabolaFocalAxis
)

var alignmentTypeNames = [...]string{
	NoAlignment:          "NoAlignment",
	EllipseMajorDiameter: "EllipseMajorDiameter",
	EllipseMinorDiameter: "EllipseMinorDiameter",
	EllipseFocus1:        "EllipseFocus1",
	EllipseFocus2:        "EllipseFocus2",
	HyperbolaMajor:       "HyperbolaMajor",
	HyperbolaMinor:       "HyperbolaMinor",
	HyperbolaFocus:       "HyperbolaFocus",
	ParabolaFocus:        "ParabolaFocus",
	BSplineControlPoint:  "BSplineControlPoint",
	BSplineKnotPoint:     "BSplineKnotPoint",
	ParabolaFocalAxis:    "ParabolaFocalAxis",
}

func (t AlignmentType) String() string {
	if int(t) < len(alignmentTypeNames) {
		return alignmentTypeNames[t]
	}
	return fmt.Sprintf("AlignmentType(%d)", uint8(t))
}

// Constraint is a relation between up to three geometries, or points of
// geometries. Unused slots hold GeoUndef.
//
// For InternalAlignment constraints, First is the internal geometry, Second
// its parent, and InternalAlignmentIndex the 1-based pole or knot a B-spline
// alignment refers to.
type Constraint struct {
	Type      ConstraintType
	First     GeoID
	FirstPos  PointPos
	Second    GeoID
	SecondPos PointPos
	Third     GeoID
	ThirdPos  PointPos

	AlignmentType          AlignmentType
	InternalAlignmentIndex int

	// Value is the constraint's datum. Angles are in radians.
	Value float64
	Name  string
	// Tag is assigned by the sketch when the constraint is added and doesn't
	// change afterwards. Expressions are bound to it.
	Tag int64
}

// NewConstraint returns a constraint of type t that references nothing.
func NewConstraint(t ConstraintType) Constraint {
	return Constraint{
		Type:   t,
		First:  GeoUndef,
		Second: GeoUndef,
		Third:  GeoUndef,
	}
}

// Involves reports whether any slot of c references id.
func (c *Constraint) Involves(id GeoID) bool {
	return c.First == id || c.Second == id || c.Third == id
}

func (c Constraint) String() string {
	s := fmt.Sprintf("%v(%v.%v", c.Type, c.First, c.FirstPos)
	if c.Second != GeoUndef {
		s += fmt.Sprintf(", %v.%v", c.Second, c.SecondPos)
	}
	if c.Third != GeoUndef {
		s += fmt.Sprintf(", %v.%v", c.Third, c.ThirdPos)
	}
	return s + ")"
}

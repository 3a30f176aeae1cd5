package sketch

import "fmt"

// GeoID identifies a geometry. Non-negative ids index the sketch's own
// geometry in insertion order. Negative ids name reference geometry that
// isn't stored in the sketch: the axes, the root point and external edges.
type GeoID int

const (
	// GeoUndef references no geometry.
	GeoUndef GeoID = -2000
	// RtPnt is the root point. It shares its id with HAxis and is told
	// apart by the point position.
	RtPnt GeoID = -1
	HAxis GeoID = -1
	VAxis GeoID = -2
	// RefExt is the first external edge. External edge i, counting from 1,
	// has the id RefExt-(i-1).
	RefExt GeoID = -3
)

// IsExternal reports whether id names an external edge.
func (id GeoID) IsExternal() bool {
	return id <= RefExt && id != GeoUndef
}

func (id GeoID) String() string {
	switch {
	case id == GeoUndef:
		return "GeoUndef"
	case id == HAxis:
		return "H_Axis"
	case id == VAxis:
		return "V_Axis"
	case id.IsExternal():
		return fmt.Sprintf("ExternalEdge%d", int(RefExt-id)+1)
	default:
		return fmt.Sprintf("Edge%d", int(id)+1)
	}
}

// PointPos names a point of a curve.
type PointPos uint8

const (
	// PosNone references the curve as a whole.
	PosNone PointPos = iota
	PosStart
	PosEnd
	// PosMid is the center of circles, ellipses and conic arcs, and the
	// vertex of a parabola.
	PosMid
)

func (p PointPos) String() string {
	switch p {
	case PosNone:
		return "none"
	case PosStart:
		return "start"
	case PosEnd:
		return "end"
	case PosMid:
		return "mid"
	default:
		return fmt.Sprintf("PointPos(%d)", uint8(p))
	}
}

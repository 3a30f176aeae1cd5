package sketch

import (
	"fmt"
	"strconv"
	"strings"
)

// GeoIDFromShapeType maps the name of a shape element to the geometry and
// point it stands for. Recognized names are "Edge<i>", "Vertex<i>" and
// "ExternalEdge<i>" with 1-based indices, and "H_Axis", "V_Axis" and
// "RootPoint".
//
// Vertices are numbered across all geometry in order. A point contributes
// its start, lines and B-splines their start and end, circles and ellipses
// their center, and arcs their start, end and center.
func (s *Sketch) GeoIDFromShapeType(name string) (GeoID, PointPos, error) {
	switch name {
	case "H_Axis":
		return HAxis, PosNone, nil
	case "V_Axis":
		return VAxis, PosNone, nil
	case "RootPoint":
		return RtPnt, PosStart, nil
	}

	index := func(rest string) (int, error) {
		i, err := strconv.Atoi(rest)
		if err != nil {
			return 0, fmt.Errorf("%w: shape %q", ErrValue, name)
		}
		if i < 1 {
			return 0, fmt.Errorf("%w: shape %q", ErrOutOfRange, name)
		}
		return i, nil
	}
	if rest, ok := strings.CutPrefix(name, "ExternalEdge"); ok {
		i, err := index(rest)
		if err != nil {
			return GeoUndef, PosNone, err
		}
		return RefExt - GeoID(i-1), PosNone, nil
	}
	if rest, ok := strings.CutPrefix(name, "Edge"); ok {
		i, err := index(rest)
		if err != nil {
			return GeoUndef, PosNone, err
		}
		return GeoID(i - 1), PosNone, nil
	}
	if rest, ok := strings.CutPrefix(name, "Vertex"); ok {
		i, err := index(rest)
		if err != nil {
			return GeoUndef, PosNone, err
		}
		for id, k := range s.order {
			vs := vertices(s.curve(k))
			if i <= len(vs) {
				return GeoID(id), vs[i-1], nil
			}
			i -= len(vs)
		}
		return GeoUndef, PosNone, fmt.Errorf("%w: shape %q", ErrOutOfRange, name)
	}
	return GeoUndef, PosNone, fmt.Errorf("%w: shape %q", ErrValue, name)
}

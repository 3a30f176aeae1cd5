package sketch

import (
	"fmt"
	"time"

	"github.com/RoaringBitmap/roaring/v2"

	"honnef.co/go/sketch/geom"
)

// alignment is one piece of internal geometry a curve can expose.
type alignment struct {
	typ   AlignmentType
	index int
	curve geom.Curve
	// pos is the point of curve the alignment constraint references.
	pos PointPos
}

type alignmentKey struct {
	typ   AlignmentType
	index int
}

// internalGeometry returns the internal geometry of c. Curves without any
// return nil.
func internalGeometry(c geom.Curve) []alignment {
	ellipse := func(e geom.Ellipse) []alignment {
		return []alignment{
			{EllipseMajorDiameter, 0, e.MajorDiameter(), PosNone},
			{EllipseMinorDiameter, 0, e.MinorDiameter(), PosNone},
			{EllipseFocus1, 0, geom.Dot{P: e.Focus1()}, PosStart},
			{EllipseFocus2, 0, geom.Dot{P: e.Focus2()}, PosStart},
		}
	}
	switch c := c.(type) {
	case geom.Dot, geom.Line, geom.Circle, geom.ArcOfCircle:
		return nil
	case geom.Ellipse:
		return ellipse(c)
	case geom.ArcOfEllipse:
		return ellipse(c.Ellipse)
	case geom.ArcOfHyperbola:
		return []alignment{
			{HyperbolaMajor, 0, c.MajorLine(), PosNone},
			{HyperbolaMinor, 0, c.MinorLine(), PosNone},
			{HyperbolaFocus, 0, geom.Dot{P: c.Focus()}, PosStart},
		}
	case geom.ArcOfParabola:
		return []alignment{
			{ParabolaFocalAxis, 0, c.FocalAxis(), PosNone},
			{ParabolaFocus, 0, geom.Dot{P: c.Focus()}, PosStart},
		}
	case geom.BSpline:
		out := make([]alignment, 0, len(c.Poles)+len(c.Knots))
		for i, p := range c.Poles {
			out = append(out, alignment{BSplineControlPoint, i + 1, geom.Dot{P: p}, PosStart})
		}
		for i, u := range c.Knots {
			out = append(out, alignment{BSplineKnotPoint, i + 1, geom.Dot{P: c.Eval(u)}, PosStart})
		}
		return out
	default:
		panic(fmt.Sprintf("unhandled curve %T", c))
	}
}

// checkAlignment reports why the InternalAlignment constraint c, with its
// slots resolved to refs, can't be added.
func (s *Sketch) checkAlignment(c Constraint, refs [3]ref) error {
	child, parent := refs[0], refs[1]
	if child.key == 0 || parent.key == 0 {
		return fmt.Errorf("%w: internal alignment of %v to %v: both must be sketch geometry", ErrValue, c.First, c.Second)
	}
	if child.key == parent.key {
		return fmt.Errorf("%w: %v can't be aligned to itself", ErrValue, c.First)
	}
	indexed := c.AlignmentType == BSplineControlPoint || c.AlignmentType == BSplineKnotPoint
	if !indexed && c.InternalAlignmentIndex != 0 {
		return fmt.Errorf("%w: %v takes no index", ErrValue, c.AlignmentType)
	}
	var piece *alignment
	pieces := internalGeometry(s.curve(parent.key))
	for i := range pieces {
		if pieces[i].typ == c.AlignmentType && pieces[i].index == c.InternalAlignmentIndex {
			piece = &pieces[i]
			break
		}
	}
	if piece == nil {
		if indexed {
			return fmt.Errorf("%w: %v has no %v %d", ErrValue, c.Second, c.AlignmentType, c.InternalAlignmentIndex)
		}
		return fmt.Errorf("%w: %v has no %v", ErrValue, c.Second, c.AlignmentType)
	}
	if got, want := s.curve(child.key).Kind(), piece.curve.Kind(); got != want {
		return fmt.Errorf("%w: %v is a %v, %v needs a %v", ErrValue, c.First, got, c.AlignmentType, want)
	}
	for _, e := range s.constraints {
		if e.c.Type != InternalAlignment {
			continue
		}
		if e.refs[0].key == child.key {
			return fmt.Errorf("%w: %v is already internal geometry", ErrValue, c.First)
		}
		if e.refs[1].key == parent.key && e.c.AlignmentType == c.AlignmentType && e.c.InternalAlignmentIndex == c.InternalAlignmentIndex {
			return fmt.Errorf("%w: %v of %v is already aligned", ErrValue, c.AlignmentType, c.Second)
		}
	}
	return nil
}

// alignmentsOf returns the InternalAlignment constraints tying internal
// geometry to parent.
func (s *Sketch) alignmentsOf(parent key) []*entry {
	var out []*entry
	for _, e := range s.constraints {
		if e.c.Type == InternalAlignment && e.refs[1].key == parent && e.refs[0].key != 0 {
			out = append(out, e)
		}
	}
	return out
}

// internalKeys returns the keys of the internal geometry aligned to parent.
func (s *Sketch) internalKeys(parent key) *roaring.Bitmap {
	keys := roaring.New()
	for _, e := range s.alignmentsOf(parent) {
		keys.Add(uint32(e.refs[0].key))
	}
	return keys
}

// usedKeys returns the keys of the internal geometry of parent that some
// constraint other than its alignment references.
func (s *Sketch) usedKeys(parent key) *roaring.Bitmap {
	internal := s.internalKeys(parent)
	used := roaring.New()
	for _, e := range s.constraints {
		if e.c.Type == InternalAlignment && e.refs[1].key == parent {
			continue
		}
		for _, r := range e.refs {
			if r.key != 0 && internal.Contains(uint32(r.key)) {
				used.Add(uint32(r.key))
			}
		}
	}
	return used
}

// expose creates the internal geometry of parent that doesn't exist yet
// and returns how much it created.
func (s *Sketch) expose(parent key) int {
	have := make(map[alignmentKey]bool)
	for _, e := range s.alignmentsOf(parent) {
		have[alignmentKey{e.c.AlignmentType, e.c.InternalAlignmentIndex}] = true
	}
	n := 0
	for _, a := range internalGeometry(s.curve(parent)) {
		if have[alignmentKey{a.typ, a.index}] {
			continue
		}
		k := s.appendGeometry(a.curve, true, true)
		c := NewConstraint(InternalAlignment)
		c.AlignmentType = a.typ
		c.InternalAlignmentIndex = a.index
		s.insertConstraint(c, [3]ref{{key: k, pos: a.pos}, {key: parent}, undefRef})
		n++
	}
	return n
}

// ExposeInternalGeometry creates the internal geometry of the curve id: the
// diameters and foci of ellipses, the axes and focus of hyperbolas, the
// focal axis and focus of parabolas, and the poles and knots of B-splines.
// Each piece is construction geometry tied to id by an InternalAlignment
// constraint. Pieces that already exist aren't created again. It returns
// the number of geometries created.
func (s *Sketch) ExposeInternalGeometry(id GeoID) (n int, err error) {
	defer func(start time.Time) { s.observe(OpExposeInternal, id, start, err) }(time.Now())
	k, err := s.keyOf(id)
	if err != nil {
		return 0, err
	}
	if s.geos[k].Internal {
		return 0, nil
	}
	n = s.expose(k)
	s.log.LogInternalGeometry(id, n, 0)
	return n, nil
}

// HasInternalGeometry reports whether any internal geometry is aligned to
// the curve id.
func (s *Sketch) HasInternalGeometry(id GeoID) bool {
	k, err := s.keyOf(id)
	if err != nil {
		return false
	}
	return len(s.alignmentsOf(k)) > 0
}

func (s *Sketch) deleteUnused(parent key) int {
	unused := s.internalKeys(parent)
	unused.AndNot(s.usedKeys(parent))
	n := int(unused.GetCardinality())
	s.removeKeys(unused)
	return n
}

// DeleteUnusedInternalGeometry deletes the internal geometry of the curve
// id that no constraint other than its alignment references, and returns
// how many geometries it deleted. Like DelGeometry, it renumbers; the
// parent's new id is returned by DeleteUnusedInternalGeometryAndUpdateGeoID.
func (s *Sketch) DeleteUnusedInternalGeometry(id GeoID) (n int, err error) {
	defer func(start time.Time) { s.observe(OpDeleteInternal, id, start, err) }(time.Now())
	k, err := s.keyOf(id)
	if err != nil {
		return 0, err
	}
	n = s.deleteUnused(k)
	s.log.LogInternalGeometry(id, 0, n)
	return n, nil
}

// DeleteUnusedInternalGeometryAndUpdateGeoID is DeleteUnusedInternalGeometry
// returning the id the curve has afterwards.
func (s *Sketch) DeleteUnusedInternalGeometryAndUpdateGeoID(id GeoID) (GeoID, error) {
	k, err := s.keyOf(id)
	if err != nil {
		return GeoUndef, err
	}
	if _, err := s.DeleteUnusedInternalGeometry(id); err != nil {
		return GeoUndef, err
	}
	return GeoID(s.pos[k]), nil
}

// retract detaches all internal geometry from parent before an edit that
// invalidates it. Unused internal geometry is deleted; used geometry stays
// as plain construction geometry. It reports whether parent had any.
func (s *Sketch) retract(parent key) bool {
	aligned := s.alignmentsOf(parent)
	if len(aligned) == 0 {
		return false
	}
	unused := s.internalKeys(parent)
	used := s.usedKeys(parent)
	unused.AndNot(used)
	for _, e := range aligned {
		e.c.Type = None
	}
	it := used.Iterator()
	for it.HasNext() {
		s.geos[key(it.Next())].Internal = false
	}
	s.removeKeys(unused)
	s.purge()
	return true
}

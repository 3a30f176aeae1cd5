package sketch

import (
	"fmt"
	"slices"
	"time"

	"github.com/RoaringBitmap/roaring/v2"

	"honnef.co/go/sketch/geom"
)

// Geometry is a curve stored in a sketch.
type Geometry struct {
	Curve geom.Curve
	// Construction geometry is reference only and not part of the sketch's
	// profile.
	Construction bool
	// Internal geometry was synthesized by ExposeInternalGeometry and is tied
	// to its parent by an InternalAlignment constraint.
	Internal bool
	// Tag is a creation stamp that never changes and is never reused.
	Tag int64
}

// key is the stable handle of a stored geometry. GeoIDs are positions in the
// sketch's order of keys and change as geometry is deleted; keys don't.
type key uint32

// ref is one constraint slot. Stored geometry is referenced by key, and
// everything else (axes, the root point, externals and GeoUndef) by id.
type ref struct {
	key key
	id  GeoID
	pos PointPos
}

var undefRef = ref{id: GeoUndef}

type entry struct {
	c    Constraint
	refs [3]ref
}

// Sketch is a collection of curves and the constraints between them. It
// keeps constraint references valid as geometry is added, deleted, split,
// trimmed and joined.
//
// A Sketch is not safe for concurrent use. Operations that fail leave it
// unchanged.
type Sketch struct {
	opts options
	log  *Logger

	geos    map[key]*Geometry
	order   []key
	pos     map[key]int
	nextKey key
	nextTag int64

	externals []geom.Curve

	constraints []*entry
	nextCTag    int64
}

// New returns an empty sketch.
func New(opts ...Option) *Sketch {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Sketch{
		opts: o,
		log:  o.logger,
		geos: make(map[key]*Geometry),
		pos:  make(map[key]int),
	}
}

func (s *Sketch) observe(op Op, id GeoID, start time.Time, err error) {
	s.opts.metricsCollector.RecordOperation(op, time.Since(start), err)
	s.log.LogOperation(op, id, err)
}

// HighestCurveIndex returns the id of the last geometry, or -1 if the sketch
// is empty.
func (s *Sketch) HighestCurveIndex() GeoID {
	return GeoID(len(s.order) - 1)
}

// AddGeometry appends c and returns its id.
func (s *Sketch) AddGeometry(c geom.Curve, construction bool) (id GeoID, err error) {
	defer func(start time.Time) { s.observe(OpAddGeometry, id, start, err) }(time.Now())
	if err := validateCurve(c); err != nil {
		return GeoUndef, err
	}
	k := s.appendGeometry(c, construction, false)
	return GeoID(s.pos[k]), nil
}

func validateCurve(c geom.Curve) error {
	if c == nil {
		return fmt.Errorf("%w: nil curve", ErrValue)
	}
	if b, ok := c.(geom.BSpline); ok {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrValue, err)
		}
	}
	if geom.Degenerate(c) {
		return fmt.Errorf("%w: degenerate %v", ErrValue, c.Kind())
	}
	return nil
}

func (s *Sketch) appendGeometry(c geom.Curve, construction, internal bool) key {
	s.nextKey++
	s.nextTag++
	k := s.nextKey
	s.geos[k] = &Geometry{
		Curve:        c,
		Construction: construction,
		Internal:     internal,
		Tag:          s.nextTag,
	}
	s.order = append(s.order, k)
	s.pos[k] = len(s.order) - 1
	return k
}

// Geometry returns the geometry with the given id. Besides the sketch's own
// geometry, this resolves the axes, as unit lines from the origin, and
// external edges.
func (s *Sketch) Geometry(id GeoID) (Geometry, error) {
	switch {
	case id >= 0:
		k, err := s.keyOf(id)
		if err != nil {
			return Geometry{}, err
		}
		return *s.geos[k], nil
	case id == HAxis:
		return Geometry{Curve: geom.Line{P0: geom.Pt(0, 0), P1: geom.Pt(1, 0)}, Construction: true}, nil
	case id == VAxis:
		return Geometry{Curve: geom.Line{P0: geom.Pt(0, 0), P1: geom.Pt(0, 1)}, Construction: true}, nil
	case id.IsExternal():
		i := int(RefExt - id)
		if i >= len(s.externals) {
			return Geometry{}, fmt.Errorf("%w: %v", ErrOutOfRange, id)
		}
		return Geometry{Curve: s.externals[i], Construction: true}, nil
	default:
		return Geometry{}, fmt.Errorf("%w: %v", ErrOutOfRange, id)
	}
}

// GeometryTag returns the creation tag of the geometry with the given id.
func (s *Sketch) GeometryTag(id GeoID) (int64, error) {
	k, err := s.keyOf(id)
	if err != nil {
		return 0, err
	}
	return s.geos[k].Tag, nil
}

// Point returns the point pos of the geometry id. See GetPoint.
func (s *Sketch) Point(id GeoID, pos PointPos) (geom.Point, error) {
	if id == RtPnt && pos == PosStart {
		return geom.Pt(0, 0), nil
	}
	g, err := s.Geometry(id)
	if err != nil {
		return geom.Point{}, err
	}
	return GetPoint(g.Curve, pos)
}

// DelGeometry deletes the geometry id and every internal geometry aligned
// to it. Constraints that referenced a deleted geometry are removed; all
// other references to higher ids move down.
func (s *Sketch) DelGeometry(id GeoID) (err error) {
	defer func(start time.Time) { s.observe(OpDelGeometry, id, start, err) }(time.Now())
	k, err := s.keyOf(id)
	if err != nil {
		return err
	}
	keys := s.internalKeys(k)
	keys.Add(uint32(k))
	s.removeKeys(keys)
	return nil
}

// DelGeometries deletes several geometries at once, as if by DelGeometry.
// All ids refer to the sketch before the deletion.
func (s *Sketch) DelGeometries(ids ...GeoID) (err error) {
	defer func(start time.Time) { s.observe(OpDelGeometriesBulk, GeoUndef, start, err) }(time.Now())
	keys := roaring.New()
	for _, id := range ids {
		k, err := s.keyOf(id)
		if err != nil {
			return err
		}
		keys.Add(uint32(k))
	}
	for _, k := range keys.ToArray() {
		keys.Or(s.internalKeys(key(k)))
	}
	s.removeKeys(keys)
	return nil
}

// removeKeys deletes the geometries in keys and the constraints that
// referenced them, then renumbers.
func (s *Sketch) removeKeys(keys *roaring.Bitmap) {
	if keys.IsEmpty() {
		return
	}
	for _, e := range s.constraints {
		for _, r := range e.refs {
			if r.key != 0 && keys.Contains(uint32(r.key)) {
				e.c.Type = None
				break
			}
		}
	}
	s.order = slices.DeleteFunc(s.order, func(k key) bool {
		return keys.Contains(uint32(k))
	})
	it := keys.Iterator()
	for it.HasNext() {
		k := key(it.Next())
		delete(s.geos, k)
		delete(s.pos, k)
	}
	s.reindex()
	s.purge()
}

func (s *Sketch) reindex() {
	clear(s.pos)
	for i, k := range s.order {
		s.pos[k] = i
	}
}

// purge drops tombstoned constraints and the expressions bound to them.
func (s *Sketch) purge() int {
	n := len(s.constraints)
	s.constraints = slices.DeleteFunc(s.constraints, func(e *entry) bool {
		if e.c.Type == None {
			s.opts.expressions.ClearExpression(e.c.Tag)
			return true
		}
		return false
	})
	n -= len(s.constraints)
	s.log.LogPurge(n)
	return n
}

func (s *Sketch) keyOf(id GeoID) (key, error) {
	if id < 0 || int(id) >= len(s.order) {
		return 0, fmt.Errorf("%w: geometry %d", ErrOutOfRange, id)
	}
	return s.order[id], nil
}

func (s *Sketch) refOf(id GeoID, pos PointPos) (ref, error) {
	switch {
	case id == GeoUndef:
		return undefRef, nil
	case id >= 0:
		k, err := s.keyOf(id)
		if err != nil {
			return ref{}, err
		}
		return ref{key: k, pos: pos}, nil
	case id == HAxis, id == VAxis:
		return ref{id: id, pos: pos}, nil
	case id.IsExternal() && int(RefExt-id) < len(s.externals):
		return ref{id: id, pos: pos}, nil
	default:
		return ref{}, fmt.Errorf("%w: geometry %v", ErrOutOfRange, id)
	}
}

func (s *Sketch) idOf(r ref) GeoID {
	if r.key != 0 {
		return GeoID(s.pos[r.key])
	}
	return r.id
}

func (s *Sketch) curve(k key) geom.Curve {
	return s.geos[k].Curve
}

// curveOfRef returns the curve a reference points at.
func (s *Sketch) curveOfRef(r ref) geom.Curve {
	if r.key != 0 {
		return s.geos[r.key].Curve
	}
	g, err := s.Geometry(r.id)
	if err != nil {
		panic(err)
	}
	return g.Curve
}

// AddExternalGeometry adds an edge imported from outside the sketch and
// returns its id.
func (s *Sketch) AddExternalGeometry(c geom.Curve) (id GeoID, err error) {
	defer func(start time.Time) { s.observe(OpAddExternal, id, start, err) }(time.Now())
	if err := validateCurve(c); err != nil {
		return GeoUndef, err
	}
	s.externals = append(s.externals, c)
	return RefExt - GeoID(len(s.externals)-1), nil
}

// ExternalGeometryCount returns the number of external edges.
func (s *Sketch) ExternalGeometryCount() int {
	return len(s.externals)
}

// DelExternalGeometry deletes the external edge id. Constraints that
// referenced it are removed, and the ids of later external edges move up by
// one.
func (s *Sketch) DelExternalGeometry(id GeoID) (err error) {
	defer func(start time.Time) { s.observe(OpDelExternal, id, start, err) }(time.Now())
	if !id.IsExternal() || int(RefExt-id) >= len(s.externals) {
		return fmt.Errorf("%w: external geometry %v", ErrOutOfRange, id)
	}
	i := int(RefExt - id)
	s.externals = slices.Delete(s.externals, i, i+1)
	for _, e := range s.constraints {
		for j := range e.refs {
			r := &e.refs[j]
			if r.key != 0 {
				continue
			}
			var ok bool
			if r.id, ok = shiftRef(r.id, id); !ok {
				e.c.Type = None
			}
		}
	}
	s.purge()
	return nil
}

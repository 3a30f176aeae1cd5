package sketch

import (
	"fmt"
	"slices"
	"time"
)

// AddConstraint adds c and returns its index. Every slot of c must
// reference existing geometry, reference geometry or GeoUndef. The Tag of c
// is ignored; a fresh one is assigned.
//
// An InternalAlignment constraint must tie a geometry of the sketch to a
// parent that has the aligned piece: First has the kind of that piece,
// Second is a curve exposing c.AlignmentType, and for B-spline alignments
// InternalAlignmentIndex is a valid 1-based pole or knot index. Each piece
// of a parent can be aligned once.
func (s *Sketch) AddConstraint(c Constraint) (i int, err error) {
	defer func(start time.Time) { s.observe(OpAddConstraint, c.First, start, err) }(time.Now())
	if c.Type == None {
		return -1, fmt.Errorf("%w: constraint without a type", ErrValue)
	}
	var refs [3]ref
	for j, slot := range [3]struct {
		id  GeoID
		pos PointPos
	}{{c.First, c.FirstPos}, {c.Second, c.SecondPos}, {c.Third, c.ThirdPos}} {
		r, err := s.refOf(slot.id, slot.pos)
		if err != nil {
			return -1, err
		}
		refs[j] = r
	}
	if c.Type == InternalAlignment {
		if err := s.checkAlignment(c, refs); err != nil {
			return -1, err
		}
	}
	s.insertConstraint(c, refs)
	return len(s.constraints) - 1, nil
}

func (s *Sketch) insertConstraint(c Constraint, refs [3]ref) *entry {
	s.nextCTag++
	c.Tag = s.nextCTag
	e := &entry{c: c, refs: refs}
	s.constraints = append(s.constraints, e)
	return e
}

// addCoincident ties the points a and b together.
func (s *Sketch) addCoincident(a, b ref) {
	s.insertConstraint(NewConstraint(Coincident), [3]ref{a, b, undefRef})
}

// addPointOnObject keeps the point pt on the curve on.
func (s *Sketch) addPointOnObject(pt, on ref) {
	on.pos = PosNone
	s.insertConstraint(NewConstraint(PointOnObject), [3]ref{pt, on, undefRef})
}

// DelConstraint removes the constraint at index i, along with any
// expression bound to it.
func (s *Sketch) DelConstraint(i int) (err error) {
	defer func(start time.Time) { s.observe(OpDelConstraint, GeoUndef, start, err) }(time.Now())
	if i < 0 || i >= len(s.constraints) {
		return fmt.Errorf("%w: constraint %d", ErrOutOfRange, i)
	}
	s.opts.expressions.ClearExpression(s.constraints[i].c.Tag)
	s.constraints = slices.Delete(s.constraints, i, i+1)
	return nil
}

// Constraint returns the constraint at index i.
func (s *Sketch) Constraint(i int) (Constraint, error) {
	if i < 0 || i >= len(s.constraints) {
		return Constraint{}, fmt.Errorf("%w: constraint %d", ErrOutOfRange, i)
	}
	return s.public(s.constraints[i]), nil
}

// Constraints returns all constraints in order.
func (s *Sketch) Constraints() []Constraint {
	out := make([]Constraint, len(s.constraints))
	for i, e := range s.constraints {
		out[i] = s.public(e)
	}
	return out
}

func (s *Sketch) ConstraintCount() int {
	return len(s.constraints)
}

// public resolves the references of e into GeoIDs.
func (s *Sketch) public(e *entry) Constraint {
	c := e.c
	c.First, c.FirstPos = s.idOf(e.refs[0]), e.refs[0].pos
	c.Second, c.SecondPos = s.idOf(e.refs[1]), e.refs[1].pos
	c.Third, c.ThirdPos = s.idOf(e.refs[2]), e.refs[2].pos
	return c
}

// SetConstraintExpression binds expr to the constraint at index i.
func (s *Sketch) SetConstraintExpression(i int, expr string) error {
	if i < 0 || i >= len(s.constraints) {
		return fmt.Errorf("%w: constraint %d", ErrOutOfRange, i)
	}
	s.opts.expressions.SetExpression(s.constraints[i].c.Tag, expr)
	return nil
}

// ConstraintExpression returns the expression bound to the constraint at
// index i.
func (s *Sketch) ConstraintExpression(i int) (string, bool) {
	if i < 0 || i >= len(s.constraints) {
		return "", false
	}
	return s.opts.expressions.Expression(s.constraints[i].c.Tag)
}

// moveEnd makes every constraint that references point pos of from
// reference point pos of to instead.
func (s *Sketch) moveEnd(from key, pos PointPos, to key) {
	for _, e := range s.constraints {
		for j := range e.refs {
			if r := &e.refs[j]; r.key == from && r.pos == pos {
				r.key = to
			}
		}
	}
}

// dropEnd tombstones every constraint that references point pos of k.
func (s *Sketch) dropEnd(k key, pos PointPos) {
	for _, e := range s.constraints {
		for _, r := range e.refs {
			if r.key == k && r.pos == pos {
				e.c.Type = None
				break
			}
		}
	}
}

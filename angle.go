package sketch

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// ReverseAngleConstraintExpression rewrites an angle expression into the
// expression of its supplementary angle. An expression of the form
// "180 - x", or "180 ° - x" when it carries a unit, becomes x; any other
// expression x becomes "180 - (x)", or "180 ° - (x)" when it carries a unit.
//
// Applying it twice to an expression that isn't a supplement already gives
// back the expression in parentheses.
func ReverseAngleConstraintExpression(expr string) string {
	if strings.Contains(expr, "°") || strings.Contains(expr, "deg") || strings.Contains(expr, "rad") {
		if inner, ok := strings.CutPrefix(expr, "180 ° - "); ok {
			return inner
		}
		return "180 ° - (" + expr + ")"
	}
	if inner, ok := strings.CutPrefix(expr, "180 - "); ok {
		return inner
	}
	return "180 - (" + expr + ")"
}

// ReverseAngleConstraintToSupplementary turns the angle constraint at index
// i into the constraint of the supplementary angle. The two lines swap
// places and the new first line is measured from its other end. A bound
// expression is rewritten with ReverseAngleConstraintExpression; otherwise
// the value is turned by π.
func (s *Sketch) ReverseAngleConstraintToSupplementary(i int) (err error) {
	defer func(start time.Time) { s.observe(OpReverseAngle, GeoUndef, start, err) }(time.Now())
	if i < 0 || i >= len(s.constraints) {
		return fmt.Errorf("%w: constraint %d", ErrOutOfRange, i)
	}
	e := s.constraints[i]
	if e.c.Type != Angle {
		return fmt.Errorf("%w: constraint %d is %v", ErrNotAngle, i, e.c.Type)
	}

	e.refs[0], e.refs[1] = e.refs[1], e.refs[0]
	if e.refs[0].pos == PosStart {
		e.refs[0].pos = PosEnd
	} else {
		e.refs[0].pos = PosStart
	}

	exprs := s.opts.expressions
	if expr, ok := exprs.Expression(e.c.Tag); ok {
		exprs.SetExpression(e.c.Tag, ReverseAngleConstraintExpression(expr))
	} else {
		e.c.Value = math.Remainder(e.c.Value+math.Pi, 2*math.Pi)
	}
	return nil
}

package sketch

// shiftRef returns the value a reference to r takes once the geometry d has
// been deleted, and false if r is d itself.
//
// Deleting a non-negative id moves every higher id down by one. External ids
// count downward, so deleting the external d moves every lower external up
// by one. Axes, the root point and GeoUndef never move.
func shiftRef(r, d GeoID) (GeoID, bool) {
	switch {
	case r == d:
		return r, false
	case d >= 0 && r > d:
		return r - 1, true
	case d < 0 && r < d && r != GeoUndef:
		return r + 1, true
	default:
		return r, true
	}
}

// GetConstraintAfterDeletingGeo returns a copy of c renumbered for the
// deletion of geometry d. It returns nil if c is nil or references d.
func GetConstraintAfterDeletingGeo(c *Constraint, d GeoID) *Constraint {
	if c == nil {
		return nil
	}
	out := *c
	ChangeConstraintAfterDeletingGeo(&out, d)
	if out.Type == None {
		return nil
	}
	return &out
}

// ChangeConstraintAfterDeletingGeo renumbers c in place for the deletion of
// geometry d. If any slot of c references d, c is turned into a tombstone:
// its type becomes None and its references are left as they were.
func ChangeConstraintAfterDeletingGeo(c *Constraint, d GeoID) {
	if c == nil {
		return
	}
	if c.Involves(d) {
		c.Type = None
		return
	}
	c.First, _ = shiftRef(c.First, d)
	c.Second, _ = shiftRef(c.Second, d)
	c.Third, _ = shiftRef(c.Third, d)
}

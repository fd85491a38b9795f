package balancer

import "room_balancer/internal/domain"

// IsDowngrade reports whether moving a guest booked into from onto to would
// leave them worse off: a strictly worse tier, or a king-bed booking moved to
// a double-bed room that is not a better tier.
//
// An unranked origin has nothing to protect. An unranked destination counts as
// the worst tier.
func (c *Catalog) IsDowngrade(from, to string) bool {
	f, t := c.Lookup(from), c.Lookup(to)
	if f.Tier == 0 {
		return false
	}
	if t.Tier == 0 || t.Tier > f.Tier {
		return true
	}
	return f.Bed == domain.BedKing && t.Bed == domain.BedDouble && t.Tier >= f.Tier
}

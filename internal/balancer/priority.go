package balancer

import (
	"sort"

	"room_balancer/internal/domain"
)

// Prioritize orders arrivals for the greedy pass. Guests needing an accessible
// room come first in their original order. Everyone else follows by rate code
// (lower first), loyalty (higher first), then length of stay (longer first).
// Ties keep input order.
func Prioritize(p domain.Property, arrivals []domain.Reservation) []domain.Reservation {
	out := make([]domain.Reservation, 0, len(arrivals))
	var rest []domain.Reservation
	for _, r := range arrivals {
		if p.NeedsADA(r) {
			out = append(out, r)
			continue
		}
		rest = append(rest, r)
	}
	sort.SliceStable(rest, func(i, j int) bool { return Outranks(p, rest[i], rest[j]) })
	return append(out, rest...)
}

// Outranks reports whether a is served strictly before b among non-ADA guests.
func Outranks(p domain.Property, a, b domain.Reservation) bool {
	if ra, rb := p.RateCode(a.RateType), p.RateCode(b.RateType); ra != rb {
		return ra < rb
	}
	if la, lb := p.LoyaltyRank(a.LoyaltyTier), p.LoyaltyRank(b.LoyaltyTier); la != lb {
		return la > lb
	}
	return a.Nights() > b.Nights()
}

package balancer

import (
	"sort"

	"room_balancer/internal/domain"
)

// ApplyApprovals returns a copy of res whose alerts carry the ledger decisions.
// The engine output itself is never re-run.
func ApplyApprovals(res domain.Result, approvals map[string]bool) domain.Result {
	alerts := make([]domain.Alert, len(res.Alerts))
	for i, a := range res.Alerts {
		a.Approved = approvals[a.GuestName]
		alerts[i] = a
	}
	res.Alerts = alerts
	return res
}

// Finalize splits the alerts of res into resolved and unresolved using the
// ledger and computes the final statistics. Assignments are taken from res
// unchanged.
func Finalize(p domain.Property, res domain.Result, approvals map[string]bool) domain.Finalized {
	merged := ApplyApprovals(res, approvals)
	f := domain.Finalized{
		Date:        res.Date,
		Assignments: res.Assignments,
		Resolved:    []domain.Alert{},
		Unresolved:  []domain.Alert{},
	}
	for _, a := range merged.Alerts {
		if a.Approved {
			f.Resolved = append(f.Resolved, a)
		} else {
			f.Unresolved = append(f.Unresolved, a)
		}
	}
	occupied := min(p.Capacity, res.Summary.Occupied)
	f.Stats = domain.FinalStats{
		TotalGuests:  res.Summary.Arrivals,
		Assigned:     len(res.Assignments),
		Upgrades:     upgrades(res.Assignments),
		Occupied:     occupied,
		OccupancyPct: percent(occupied, p.Capacity),
	}
	return f
}

// Dates lists every check-in date with its arrivals and the rooms occupied
// that night (checkin <= date < checkout), in ascending date order.
func Dates(p domain.Property, reservations []domain.Reservation) []domain.DateOverview {
	arrivals := make(map[string]int)
	days := make(map[string]domain.Date)
	for _, r := range reservations {
		k := r.Checkin.String()
		arrivals[k]++
		days[k] = r.Checkin
	}
	keys := make([]string, 0, len(days))
	for k := range days {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]domain.DateOverview, 0, len(keys))
	for _, k := range keys {
		d := days[k]
		occupied := 0
		for _, r := range reservations {
			if !r.Checkin.After(d) && r.Checkout.After(d) {
				occupied++
			}
		}
		out = append(out, domain.DateOverview{
			Date:         d,
			Arrivals:     arrivals[k],
			Occupied:     occupied,
			OccupancyPct: percent(occupied, p.Capacity),
		})
	}
	return out
}

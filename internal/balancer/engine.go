package balancer

import (
	"fmt"

	"room_balancer/internal/domain"
)

// Availability holds the rooms left per type during one run. It is seeded
// from inventory minus stay-overs and is never shared between runs.
type Availability map[string]int

func NewAvailability(c *Catalog, occ domain.OccupancySnapshot) Availability {
	a := make(Availability, len(c.Codes()))
	for _, code := range c.Codes() {
		a[code] = max(0, available(c, occ, code))
	}
	return a
}

func (a Availability) Has(code string) bool { return a[code] > 0 }

func (a Availability) take(code string) {
	if a[code] > 0 {
		a[code]--
	}
}

// Outcome is the tagged result of the fallback chain for one guest. A walk
// has Kind == KindWalk and no room type. Standard placements carry no alert.
type Outcome struct {
	Kind     domain.AssignmentKind
	RoomType string
	Alert    *domain.Alert
}

func (o Outcome) Placed() bool { return o.Kind != domain.KindWalk }

// Place runs the fallback chain for guest against avail. It does not consume
// availability; Simulate does that when folding outcomes.
//
// Order: booked type, same-category upgrade path, cross-category path,
// emergency scan, named suites, walk. Guests needing an accessible room skip
// both curated paths.
func (c *Catalog) Place(guest domain.Reservation, avail Availability) Outcome {
	booked := guest.RoomType
	if avail.Has(booked) {
		return Outcome{Kind: domain.KindStandard, RoomType: booked}
	}

	if !c.prop.NeedsADA(guest) {
		if o, ok := c.upgrade(guest, avail); ok {
			return o
		}
		if o, ok := c.crossCategory(guest, avail); ok {
			return o
		}
	}
	if o, ok := c.emergency(guest, avail); ok {
		return o
	}
	if o, ok := c.namedSuite(guest, avail); ok {
		return o
	}

	return Outcome{
		Kind: domain.KindWalk,
		Alert: c.alert(guest, domain.KindWalk, domain.SeverityDanger,
			fmt.Sprintf("WALK GUEST: %s - cannot accommodate %s. Contact nearby hotels.", guest.GuestName, booked)),
	}
}

func (c *Catalog) upgrade(guest domain.Reservation, avail Availability) (Outcome, bool) {
	booked := c.Lookup(guest.RoomType)
	if booked.ADA {
		return Outcome{}, false
	}
	for _, code := range booked.UpgradePath {
		if c.IsNamedSuite(code) || !avail.Has(code) {
			continue
		}
		sev := domain.SeverityWarning
		if c.prop.IsLowValueRate(guest.RateType) {
			sev = domain.SeverityInfo
		}
		msg := fmt.Sprintf("UPGRADE REQUIRED: %s (%s) - %s → %s",
			guest.GuestName, loyalty(guest), guest.RoomType, code)
		return Outcome{Kind: domain.KindUpgrade, RoomType: code, Alert: c.alert(guest, domain.KindUpgrade, sev, msg)}, true
	}
	return Outcome{}, false
}

func (c *Catalog) crossCategory(guest domain.Reservation, avail Availability) (Outcome, bool) {
	booked := c.Lookup(guest.RoomType)
	for _, code := range booked.CrossCategoryPath {
		if c.IsNamedSuite(code) || !avail.Has(code) {
			continue
		}
		var alert *domain.Alert
		if booked.ADA && !c.IsADA(code) {
			alert = c.alert(guest, domain.KindCrossCategory, domain.SeverityDanger,
				fmt.Sprintf("ADA ALERT: %s - %s → %s is not accessible. Coordinate accessibility manually.",
					guest.GuestName, guest.RoomType, code))
		} else {
			alert = c.alert(guest, domain.KindCrossCategory, domain.SeverityWarning,
				fmt.Sprintf("CROSS-CATEGORY UPGRADE: %s - %s → %s (call guest for approval)",
					guest.GuestName, guest.RoomType, code))
		}
		return Outcome{Kind: domain.KindCrossCategory, RoomType: code, Alert: alert}, true
	}
	return Outcome{}, false
}

func (c *Catalog) emergency(guest domain.Reservation, avail Availability) (Outcome, bool) {
	for _, code := range c.order {
		if c.IsNamedSuite(code) || !avail.Has(code) || c.IsDowngrade(guest.RoomType, code) {
			continue
		}
		msg := fmt.Sprintf("EMERGENCY MOVE: %s - %s → %s (contact guest immediately)",
			guest.GuestName, guest.RoomType, code)
		return Outcome{Kind: domain.KindEmergency, RoomType: code,
			Alert: c.alert(guest, domain.KindEmergency, domain.SeverityDanger, msg)}, true
	}
	return Outcome{}, false
}

func (c *Catalog) namedSuite(guest domain.Reservation, avail Availability) (Outcome, bool) {
	for _, code := range c.NamedSuites() {
		if !avail.Has(code) || c.IsDowngrade(guest.RoomType, code) {
			continue
		}
		msg := fmt.Sprintf("NAMED SUITE UPGRADE: %s - %s → %s (requires management approval)",
			guest.GuestName, guest.RoomType, code)
		return Outcome{Kind: domain.KindNamedSuite, RoomType: code,
			Alert: c.alert(guest, domain.KindNamedSuite, domain.SeverityDanger, msg)}, true
	}
	return Outcome{}, false
}

func (c *Catalog) alert(guest domain.Reservation, kind domain.AssignmentKind, sev domain.Severity, msg string) *domain.Alert {
	return &domain.Alert{
		Severity:      sev,
		Message:       msg,
		GuestName:     guest.GuestName,
		ReservationID: guest.ID,
		Kind:          kind,
	}
}

// Simulate places guests in order, consuming avail, and folds the outcomes
// into assignment and alert lists.
func (c *Catalog) Simulate(guests []domain.Reservation, avail Availability) ([]domain.Assignment, []domain.Alert) {
	assignments := make([]domain.Assignment, 0, len(guests))
	var alerts []domain.Alert
	for _, g := range guests {
		o := c.Place(g, avail)
		if o.Alert != nil {
			alerts = append(alerts, *o.Alert)
		}
		if !o.Placed() {
			continue
		}
		avail.take(o.RoomType)
		assignments = append(assignments, domain.Assignment{
			Reservation:      g,
			AssignedRoomType: o.RoomType,
			Kind:             o.Kind,
		})
	}
	return assignments, alerts
}

func loyalty(r domain.Reservation) string {
	if r.LoyaltyTier == "" {
		return "Non-Member"
	}
	return r.LoyaltyTier
}

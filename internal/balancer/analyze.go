package balancer

import (
	"math"

	"room_balancer/internal/domain"
)

type Input struct {
	Reservations []domain.Reservation
	Date         domain.Date
	Property     domain.Property
}

// Analyze runs the whole pipeline for one target date: occupancy, demand,
// overbookings, priority order, and the greedy placement pass. It is a pure
// function of its input; every call rebuilds availability from scratch.
func Analyze(in Input) domain.Result {
	c := NewCatalog(in.Property)
	occ := Occupancy(in.Reservations, in.Date, in.Property.Capacity)
	demand := Demand(in.Reservations, in.Date)
	overbookings := Overbookings(c, occ, demand)
	rows, totals := Report(c, occ, demand)

	guests := Prioritize(in.Property, demand.Arrivals)
	assignments, alerts := c.Simulate(guests, NewAvailability(c, occ))

	res := domain.Result{
		Date:         in.Date,
		Occupancy:    occ,
		Demand:       demand,
		Overbookings: overbookings,
		Report:       rows,
		Totals:       totals,
		Alerts:       alerts,
		Assignments:  assignments,
		Connecting:   connecting(in.Property, assignments),
	}
	res.Summary = summarize(in.Property, res)
	return res
}

func summarize(p domain.Property, res domain.Result) domain.Summary {
	s := domain.Summary{
		Arrivals:        len(res.Demand.Arrivals),
		OverbookedTypes: len(res.Overbookings),
		Alerts:          len(res.Alerts),
		InHouse:         res.Occupancy.InHouseTotal,
		DueOuts:         res.Occupancy.DueOutTotal,
	}
	for _, a := range res.Alerts {
		if a.Kind == domain.KindWalk {
			s.Walks++
		}
	}
	s.Upgrades = upgrades(res.Assignments)
	s.Occupied = s.InHouse - s.DueOuts + s.Arrivals
	s.OccupancyPct = percent(s.Occupied, p.Capacity)
	return s
}

func upgrades(as []domain.Assignment) int {
	n := 0
	for _, a := range as {
		if a.Kind != domain.KindStandard {
			n++
		}
	}
	return n
}

func percent(n, capacity int) int {
	if capacity <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(n) / float64(capacity)))
}

func connecting(p domain.Property, as []domain.Assignment) []domain.ConnectingRequest {
	var out []domain.ConnectingRequest
	for _, a := range as {
		if a.Reservation.Requests(p.ConnectingMarker) {
			out = append(out, domain.ConnectingRequest{
				GuestName:        a.Reservation.GuestName,
				AssignedRoomType: a.AssignedRoomType,
			})
		}
	}
	return out
}

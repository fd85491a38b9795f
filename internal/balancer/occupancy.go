package balancer

import "room_balancer/internal/domain"

// Occupancy derives the in-house and due-out counts per room type for date.
//
// A reservation is in house when checkin < date < checkout and due out when
// checkout == date. The raw counts come from independent predicates, so they
// are corrected in order:
//
//  1. in-house counts are scaled down to capacity when their sum exceeds it;
//  2. due-out counts are scaled down to the in-house total when they exceed it;
//  3. each due-out count is clamped to its type's in-house count.
//
// Scaling truncates. The result satisfies sum(dueOut) <= sum(inHouse) <= capacity.
func Occupancy(reservations []domain.Reservation, date domain.Date, capacity int) domain.OccupancySnapshot {
	inHouse := make(map[string]int)
	dueOut := make(map[string]int)
	for _, r := range reservations {
		if r.Checkin.Before(date) && date.Before(r.Checkout) {
			inHouse[r.RoomType]++
		}
		if r.Checkout.Equal(date) {
			dueOut[r.RoomType]++
		}
	}

	if capacity < 0 {
		capacity = 0
	}
	inTotal := sum(inHouse)
	if inTotal > capacity {
		scale(inHouse, capacity, inTotal)
		inTotal = sum(inHouse)
	}

	if outTotal := sum(dueOut); outTotal > inTotal {
		scale(dueOut, inTotal, outTotal)
	}
	for t, n := range dueOut {
		if n > inHouse[t] {
			dueOut[t] = inHouse[t]
		}
	}

	return domain.OccupancySnapshot{
		Date:         date,
		InHouse:      inHouse,
		DueOut:       dueOut,
		InHouseTotal: inTotal,
		DueOutTotal:  sum(dueOut),
	}
}

// Demand collects the arrivals for date in input order.
func Demand(reservations []domain.Reservation, date domain.Date) domain.DemandSnapshot {
	d := domain.DemandSnapshot{Date: date, ByType: make(map[string]int)}
	for _, r := range reservations {
		if r.Checkin.Equal(date) {
			d.Arrivals = append(d.Arrivals, r)
			d.ByType[r.RoomType]++
		}
	}
	return d
}

func sum(m map[string]int) int {
	n := 0
	for _, v := range m {
		n += v
	}
	return n
}

// scale multiplies every count by num/den, truncating.
func scale(m map[string]int, num, den int) {
	if den == 0 {
		return
	}
	for k, v := range m {
		m[k] = v * num / den
	}
}

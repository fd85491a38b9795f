package balancer_test

import (
	"fmt"
	"math/rand"

	"room_balancer/internal/balancer"
	"room_balancer/internal/domain"
)

func day(s string) domain.Date { return domain.MustParseDate(s) }

func booking(id, guest, room, in, out string) domain.Reservation {
	r := domain.Reservation{
		ID:          id,
		GuestName:   guest,
		RoomType:    room,
		Checkin:     day(in),
		Checkout:    day(out),
		RateType:    "Direct",
		LoyaltyTier: "Gold",
	}
	r.LengthOfStay = r.Checkin.DaysUntil(r.Checkout)
	return r
}

// tinyProperty builds a property from rooms using the default rate and
// loyalty tables, with capacity equal to total inventory.
func tinyProperty(rooms ...domain.RoomType) domain.Property {
	p := balancer.DefaultProperty()
	p.Rooms = rooms
	p.NamedSuiteOrder = nil
	for _, rt := range rooms {
		if rt.NamedSuite {
			p.NamedSuiteOrder = append(p.NamedSuiteOrder, rt.Code)
		}
	}
	p.Capacity = max(1, p.TotalInventory())
	return p
}

// randomHouse books n stays around target against the default property,
// deliberately overselling the house.
func randomHouse(seed int64, target domain.Date, n int) []domain.Reservation {
	rng := rand.New(rand.NewSource(seed))
	p := balancer.DefaultProperty()
	rates := []string{"Direct", "AAA", "Government", "Corporate", "Third-Party", "Hilton Go", "Opaque"}
	tiers := []string{"Lifetime Diamond", "Diamond", "Gold", "Silver", "Blue", "Non-Member", ""}
	out := make([]domain.Reservation, 0, n)
	for i := 0; i < n; i++ {
		rt := p.Rooms[rng.Intn(len(p.Rooms))].Code
		if rng.Intn(40) == 0 {
			rt = "XXXX"
		}
		in := target.AddDays(rng.Intn(5) - 3)
		nights := 1 + rng.Intn(4)
		r := domain.Reservation{
			ID:           fmt.Sprintf("R%05d", i),
			GuestName:    fmt.Sprintf("Guest %d", i),
			RoomType:     rt,
			Checkin:      in,
			Checkout:     in.AddDays(nights),
			LengthOfStay: nights,
			RateType:     rates[rng.Intn(len(rates))],
			LoyaltyTier:  tiers[rng.Intn(len(tiers))],
		}
		if rng.Intn(15) == 0 {
			r.SpecialRequests = "ADA accessible room"
		}
		out = append(out, r)
	}
	return out
}

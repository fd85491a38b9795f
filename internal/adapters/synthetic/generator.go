package synthetic

import (
	"math/rand"

	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"

	"room_balancer/internal/domain"
)

type Options struct {
	Start domain.Date
	Days  int
	// PerDay is the mean number of arrivals per day. Each day varies by up to 20%.
	PerDay int
	Seed   int64
}

var (
	rates   = []string{"Direct", "Direct", "AAA", "Government", "Corporate", "Corporate", "Third-Party", "Third-Party", "Hilton Go"}
	tiers   = []string{"Lifetime Diamond", "Diamond", "Gold", "Gold", "Silver", "Silver", "Blue", "Blue", "Blue", "Non-Member", "Non-Member"}
	notes   = []string{"High floor", "Late arrival", "Feather-free pillows", "Anniversary trip", "Birthday celebration", "Quiet room"}
	lengths = []int{1, 1, 1, 2, 2, 2, 3, 3, 4, 5, 7}
)

// Generate books demo reservations against p. Room types are drawn in
// proportion to inventory so busy days oversell realistically. Names and stay
// shapes are reproducible for a seed; ids are always unique.
func Generate(p domain.Property, opt Options) []domain.Reservation {
	fake := faker.NewWithSeed(rand.NewSource(opt.Seed))
	total := p.TotalInventory()
	if total == 0 || opt.Days <= 0 || opt.PerDay <= 0 {
		return nil
	}

	var out []domain.Reservation
	for d := 0; d < opt.Days; d++ {
		day := opt.Start.AddDays(d)
		spread := opt.PerDay / 5
		n := opt.PerDay + fake.IntBetween(-spread, spread)
		for i := 0; i < n; i++ {
			rt := pickRoom(p, fake.IntBetween(1, total))
			nights := lengths[fake.IntBetween(0, len(lengths)-1)]
			r := domain.Reservation{
				ID:           cuid.New(),
				GuestName:    fake.Person().Name(),
				RoomType:     rt.Code,
				Checkin:      day,
				Checkout:     day.AddDays(nights),
				LengthOfStay: nights,
				RateType:     fake.RandomStringElement(rates),
				LoyaltyTier:  fake.RandomStringElement(tiers),
			}
			switch roll := fake.IntBetween(1, 100); {
			case rt.ADA || roll <= 3:
				r.SpecialRequests = p.ADAMarker + " accessible room required"
			case roll <= 6:
				r.SpecialRequests = p.ConnectingMarker + " rooms requested"
			case roll <= 30:
				r.SpecialRequests = fake.RandomStringElement(notes)
			}
			out = append(out, r)
		}
	}
	return out
}

// pickRoom maps a ticket in [1, total inventory] onto a room type.
func pickRoom(p domain.Property, ticket int) domain.RoomType {
	for _, rt := range p.Rooms {
		if ticket <= rt.Inventory {
			return rt
		}
		ticket -= rt.Inventory
	}
	return p.Rooms[len(p.Rooms)-1]
}

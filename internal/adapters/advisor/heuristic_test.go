package advisor_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"room_balancer/internal/adapters/advisor"
	"room_balancer/internal/balancer"
	"room_balancer/internal/domain"
)

func guest(name, tier, rate, room string, nights int, req string) domain.Reservation {
	return domain.Reservation{GuestName: name, LoyaltyTier: tier, RateType: rate, RoomType: room, LengthOfStay: nights, SpecialRequests: req}
}

func TestScore(t *testing.T) {
	cases := []struct {
		g    domain.Reservation
		want int
	}{
		{guest("a", "Diamond", "Direct", "KNGN", 4, ""), 100 + 40 + 50},
		{guest("b", "Lifetime Diamond", "Third-Party", "KNGN", 1, "Anniversary trip"), 100 + 10 + 5 + 75},
		{guest("c", "Non-Member", "Opaque", "KNGN", 2, ""), 20},
		{guest("d", "Silver", "Government", "KNGN", 1, "birthday cake"), 60 + 10 + 30 + 75},
	}
	for _, tc := range cases {
		if got := advisor.Score(tc.g); got != tc.want {
			t.Fatalf("%s: got %d want %d", tc.g.GuestName, got, tc.want)
		}
	}
}

func TestHeuristic_Recommend(t *testing.T) {
	h := advisor.NewHeuristic(balancer.DefaultProperty())
	var guests []domain.Reservation
	for i := 0; i < 10; i++ {
		guests = append(guests, guest(fmt.Sprintf("Blue %d", i), "Blue", "Corporate", "TDBN", 1, ""))
	}
	guests = append(guests,
		guest("Star", "Diamond", "Direct", "KNGN", 5, "anniversary"),
		guest("Mid", "Gold", "AAA", "XXXX", 1, ""),
	)

	recs, err := h.Recommend(context.Background(), domain.AdvisoryRequest{Guests: guests})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(recs) != advisor.MaxRecommendations {
		t.Fatalf("expected %d, got %d", advisor.MaxRecommendations, len(recs))
	}
	top := recs[0]
	if top.GuestName != "Star" || top.Priority != "high" || top.ToRoom != "KSVN" || top.Source != "heuristic" {
		t.Fatalf("unexpected top recommendation: %+v", top)
	}
	if !strings.Contains(top.Reasoning, "staying 5 nights") || !strings.Contains(top.Reasoning, "anniversary") {
		t.Fatalf("unexpected reasoning: %q", top.Reasoning)
	}
	// unknown room keeps its own type as target
	if recs[1].GuestName != "Mid" || recs[1].Priority != "medium" || recs[1].ToRoom != "XXXX" {
		t.Fatalf("unexpected second: %+v", recs[1])
	}
	// ties keep input order
	if recs[2].GuestName != "Blue 0" || recs[2].Priority != "low" || recs[2].ToRoom != "TSVN" {
		t.Fatalf("unexpected third: %+v", recs[2])
	}
}

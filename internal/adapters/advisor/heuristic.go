package advisor

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"room_balancer/internal/domain"
)

// MaxRecommendations is how many guests the heuristic proposes.
const MaxRecommendations = 7

var loyaltyScore = map[string]int{
	"lifetime diamond": 100,
	"diamond":          100,
	"gold":             80,
	"silver":           60,
	"blue":             40,
}

var rateScore = map[string]int{
	"direct":      50,
	"aaa":         40,
	"government":  30,
	"corporate":   25,
	"third-party": 5,
}

// Heuristic scores guests locally. It never fails and is used whenever the
// remote recommender is unavailable.
type Heuristic struct {
	prop domain.Property
}

func NewHeuristic(p domain.Property) *Heuristic { return &Heuristic{prop: p} }

type scored struct {
	g     domain.Reservation
	score int
}

func Score(g domain.Reservation) int {
	s := loyaltyScore[strings.ToLower(g.LoyaltyTier)]
	s += g.Nights() * 10
	s += rateScore[strings.ToLower(g.RateType)]
	if celebrating(g, "anniversary") || celebrating(g, "birthday") {
		s += 75
	}
	return s
}

func celebrating(g domain.Reservation, what string) bool {
	return strings.Contains(strings.ToLower(g.SpecialRequests), what)
}

func (h *Heuristic) Recommend(_ context.Context, req domain.AdvisoryRequest) ([]domain.Recommendation, error) {
	all := make([]scored, 0, len(req.Guests))
	for _, g := range req.Guests {
		all = append(all, scored{g: g, score: Score(g)})
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].score > all[j].score })
	if len(all) > MaxRecommendations {
		all = all[:MaxRecommendations]
	}

	out := make([]domain.Recommendation, 0, len(all))
	for _, s := range all {
		g := s.g
		priority, reasoning := explain(g, s.score)
		to := g.RoomType
		if rt, ok := h.prop.RoomType(g.RoomType); ok && len(rt.UpgradePath) > 0 {
			to = rt.UpgradePath[0]
		}
		reqs := g.SpecialRequests
		if reqs == "" {
			reqs = "None"
		}
		out = append(out, domain.Recommendation{
			GuestName:       g.GuestName,
			Priority:        priority,
			FromRoom:        g.RoomType,
			ToRoom:          to,
			Reasoning:       reasoning,
			HonorsStatus:    g.LoyaltyTier,
			LengthOfStay:    g.Nights(),
			RateType:        g.RateType,
			SpecialRequests: reqs,
			Source:          "heuristic",
		})
	}
	return out, nil
}

func explain(g domain.Reservation, score int) (string, string) {
	switch {
	case score > 150:
		r := g.LoyaltyTier + " member"
		if g.Nights() >= 4 {
			r += fmt.Sprintf(" staying %d nights", g.Nights())
		}
		if strings.EqualFold(g.RateType, "Direct") {
			r += ", booked directly with us"
		}
		if celebrating(g, "anniversary") {
			r += ". Celebrating anniversary - excellent opportunity for delight!"
		} else if celebrating(g, "birthday") {
			r += ". Birthday celebration - create memorable experience!"
		}
		return "high", r
	case score > 100:
		return "medium", fmt.Sprintf("%s member, %d night stay. Good upgrade candidate for loyalty building.", g.LoyaltyTier, g.Nights())
	default:
		return "low", fmt.Sprintf("%d night stay with %s rate. Standard upgrade opportunity.", g.Nights(), g.RateType)
	}
}

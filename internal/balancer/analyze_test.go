package balancer_test

import (
	"encoding/json"
	"testing"

	"room_balancer/internal/balancer"
	"room_balancer/internal/domain"
)

func TestAnalyze_Deterministic(t *testing.T) {
	target := day("2026-01-17")
	in := balancer.Input{
		Reservations: randomHouse(7, target, 1000),
		Date:         target,
		Property:     balancer.DefaultProperty(),
	}
	first, err := json.Marshal(balancer.Analyze(in))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, _ := json.Marshal(balancer.Analyze(in))
		if string(again) != string(first) {
			t.Fatalf("run %d differs from first run", i)
		}
	}
}

func TestAnalyze_SummaryAndConnecting(t *testing.T) {
	p := balancer.DefaultProperty()
	target := day("2026-01-17")
	rs := []domain.Reservation{
		booking("1", "Stay A", "KNGN", "2026-01-15", "2026-01-19"),
		booking("2", "Stay B", "TDBN", "2026-01-16", "2026-01-17"),
		booking("3", "Family One", "TDBN", "2026-01-17", "2026-01-18"),
		booking("4", "Family Two", "TDBN", "2026-01-17", "2026-01-18"),
	}
	rs[2].SpecialRequests = "Connecting rooms with Family Two"

	res := balancer.Analyze(balancer.Input{Reservations: rs, Date: target, Property: p})
	s := res.Summary
	if s.Arrivals != 2 || s.InHouse != 1 || s.DueOuts != 0 {
		t.Fatalf("unexpected summary counts: %+v", s)
	}
	// due-outs are clamped per type: TDBN has nobody in house
	if res.Occupancy.DueOut["TDBN"] != 0 {
		t.Fatalf("expected clamped TDBN due-outs, got %d", res.Occupancy.DueOut["TDBN"])
	}
	if s.Occupied != 3 || s.OccupancyPct != 1 {
		t.Fatalf("unexpected occupancy: %+v", s)
	}
	if s.Alerts != 0 || s.Upgrades != 0 || s.OverbookedTypes != 0 {
		t.Fatalf("expected a quiet day: %+v", s)
	}
	if len(res.Connecting) != 1 || res.Connecting[0].GuestName != "Family One" || res.Connecting[0].AssignedRoomType != "TDBN" {
		t.Fatalf("unexpected connecting notes: %+v", res.Connecting)
	}
	if res.Totals.Inventory != balancer.DefaultCapacity {
		t.Fatalf("totals inventory %d, want %d", res.Totals.Inventory, balancer.DefaultCapacity)
	}
}

func TestAnalyze_NoArrivals(t *testing.T) {
	res := balancer.Analyze(balancer.Input{
		Reservations: []domain.Reservation{booking("1", "Someone", "KNGN", "2026-02-01", "2026-02-02")},
		Date:         day("2026-01-17"),
		Property:     balancer.DefaultProperty(),
	})
	if len(res.Assignments) != 0 || len(res.Alerts) != 0 || len(res.Overbookings) != 0 {
		t.Fatalf("expected empty result, got %+v", res)
	}
}

func TestDefaultProperty_IsValid(t *testing.T) {
	p := balancer.DefaultProperty()
	if err := p.Validate(); err != nil {
		t.Fatalf("default property invalid: %v", err)
	}
	if p.TotalInventory() != balancer.DefaultCapacity {
		t.Fatalf("inventory %d, want %d", p.TotalInventory(), balancer.DefaultCapacity)
	}
	got := balancer.NewCatalog(p).NamedSuites()
	want := []string{"KSPN", "KOTN", "KSLN"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("named suite order: got %v want %v", got, want)
		}
	}
}

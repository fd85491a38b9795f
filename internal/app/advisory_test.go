package app_test

import (
	"context"
	"testing"
	"time"

	"room_balancer/internal/adapters/advisor"
	"room_balancer/internal/app"
	"room_balancer/internal/domain"
)

func TestRecommend_UsesRemoteWhenHealthy(t *testing.T) {
	svc, _, _ := newService(&fakeRepo{rs: stays()})
	remote := &fakeAdvisor{recs: []domain.Recommendation{{GuestName: "Walks", Priority: "high", Source: "remote"}}}
	adv := app.NewAdvisoryService(svc, remote, advisor.NewHeuristic(svc.Property()), time.Second)

	recs, err := adv.Recommend(context.Background(), day("2026-08-01"))
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if len(recs) != 1 || recs[0].Source != "remote" {
		t.Fatalf("unexpected: %+v", recs)
	}
	if len(remote.got.Guests) != 3 || len(remote.got.Overbookings) != 1 {
		t.Fatalf("unexpected snapshot: %+v", remote.got)
	}
}

func TestRecommend_FallsBack(t *testing.T) {
	cases := []struct {
		name   string
		remote *fakeAdvisor
	}{
		{"error", &fakeAdvisor{err: errBoom}},
		{"timeout", &fakeAdvisor{block: true}},
		{"empty", &fakeAdvisor{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _, _ := newService(&fakeRepo{rs: stays()})
			adv := app.NewAdvisoryService(svc, tc.remote, advisor.NewHeuristic(svc.Property()), 20*time.Millisecond)
			recs, err := adv.Recommend(context.Background(), day("2026-08-01"))
			if err != nil {
				t.Fatalf("recommend: %v", err)
			}
			if len(recs) != 3 || recs[0].Source != "heuristic" {
				t.Fatalf("expected heuristic recommendations, got %+v", recs)
			}
		})
	}
}

func TestRecommend_NoRemote(t *testing.T) {
	svc, _, _ := newService(&fakeRepo{rs: stays()})
	adv := app.NewAdvisoryService(svc, nil, advisor.NewHeuristic(svc.Property()), time.Second)
	recs, err := adv.Recommend(context.Background(), day("2026-08-01"))
	if err != nil || len(recs) != 3 || recs[0].ToRoom != "Y" {
		t.Fatalf("unexpected: %+v %v", recs, err)
	}
}

func TestRecommend_FallsBackInsideCallerDeadline(t *testing.T) {
	svc, _, _ := newService(&fakeRepo{rs: stays()})
	adv := app.NewAdvisoryService(svc, &fakeAdvisor{block: true}, advisor.NewHeuristic(svc.Property()), 20*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	recs, err := adv.Recommend(ctx, day("2026-08-01"))
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if ctx.Err() != nil {
		t.Fatalf("fallback answered after the caller deadline")
	}
	if len(recs) != 3 || recs[0].Source != "heuristic" {
		t.Fatalf("expected heuristic recommendations, got %+v", recs)
	}
}

package app

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"room_balancer/internal/adapters/observability"
	"room_balancer/internal/balancer"
	"room_balancer/internal/domain"
)

const datesKey = "dates:v1"

// Analysis is one balancing run as served to callers. RunID and Fingerprint
// identify the memoized run; Result carries the ledger decisions.
type Analysis struct {
	RunID       string        `json:"run_id"`
	Fingerprint string        `json:"fingerprint"`
	ComputedAt  time.Time     `json:"computed_at"`
	Result      domain.Result `json:"result"`
}

type AnalysisService struct {
	repo     domain.ReservationRepository
	cache    domain.Cache
	ledger   domain.ApprovalLedger
	prop     domain.Property
	cacheTTL time.Duration

	runs singleflight.Group
}

func NewAnalysisService(r domain.ReservationRepository, c domain.Cache, l domain.ApprovalLedger, p domain.Property, ttl time.Duration) *AnalysisService {
	return &AnalysisService{repo: r, cache: c, ledger: l, prop: p, cacheTTL: ttl}
}

func (s *AnalysisService) Property() domain.Property { return s.prop }

// Analyze returns the balancing run for date with approvals merged in.
// Identical inputs reuse the memoized run; concurrent callers for the same
// date share one in-flight run.
func (s *AnalysisService) Analyze(ctx context.Context, date domain.Date) (Analysis, error) {
	a, err := s.run(ctx, date)
	if err != nil {
		return Analysis{}, err
	}
	approvals, err := s.ledger.Approvals(ctx, date)
	if err != nil {
		return Analysis{}, err
	}
	a.Result = balancer.ApplyApprovals(a.Result, approvals)
	return a, nil
}

// run is shared by every caller for date. The shared work outlives any single
// caller's cancellation; each caller stops waiting when its own ctx ends.
func (s *AnalysisService) run(ctx context.Context, date domain.Date) (Analysis, error) {
	ch := s.runs.DoChan(date.String(), func() (any, error) {
		ctx := context.WithoutCancel(ctx)
		rs, err := s.repo.ListActive(ctx, date, date)
		if err != nil {
			return Analysis{}, err
		}
		in := balancer.Input{Reservations: rs, Date: date, Property: s.prop}
		fp, err := fingerprint(in)
		if err != nil {
			return Analysis{}, err
		}

		key := "analysis:" + fp
		var cached Analysis
		ok, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("read cached analysis failed")
		}
		if ok && err == nil {
			observability.ObserveRun(cached.Result, "memoized", 0)
			return cached, nil
		}

		start := time.Now()
		res := balancer.Analyze(in)
		took := time.Since(start)
		a := Analysis{RunID: uuid.NewString(), Fingerprint: fp, ComputedAt: time.Now().UTC(), Result: res}
		observability.ObserveRun(res, "computed", took)
		log.Info().
			Str("run_id", a.RunID).
			Str("date", date.String()).
			Int("reservations", len(rs)).
			Int("arrivals", res.Summary.Arrivals).
			Int("overbooked_types", res.Summary.OverbookedTypes).
			Int("alerts", res.Summary.Alerts).
			Int("walks", res.Summary.Walks).
			Dur("took", took).
			Msg("analysis computed")

		if err := s.cache.Set(ctx, key, a, int(s.cacheTTL.Seconds())); err != nil {
			log.Warn().Err(err).Str("run_id", a.RunID).Msg("cache analysis failed")
		}
		return a, nil
	})
	select {
	case <-ctx.Done():
		return Analysis{}, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			observability.Runs.WithLabelValues("error").Inc()
			return Analysis{}, r.Err
		}
		return r.Val.(Analysis), nil
	}
}

// fingerprint hashes everything the engine reads.
func fingerprint(in balancer.Input) (string, error) {
	b, err := json.Marshal(in)
	if err != nil {
		return "", err
	}
	sum := sha1.Sum(b)
	return hex.EncodeToString(sum[:]), nil
}

// Finalize merges the ledger into the run for date without re-running it.
func (s *AnalysisService) Finalize(ctx context.Context, date domain.Date) (domain.Finalized, error) {
	a, err := s.run(ctx, date)
	if err != nil {
		return domain.Finalized{}, err
	}
	approvals, err := s.ledger.Approvals(ctx, date)
	if err != nil {
		return domain.Finalized{}, err
	}
	f := balancer.Finalize(s.prop, a.Result, approvals)
	log.Info().
		Str("run_id", a.RunID).
		Str("date", date.String()).
		Int("resolved", len(f.Resolved)).
		Int("unresolved", len(f.Unresolved)).
		Msg("analysis finalized")
	return f, nil
}

// Dates lists every arrival date on file.
func (s *AnalysisService) Dates(ctx context.Context) ([]domain.DateOverview, error) {
	var out []domain.DateOverview
	ok, err := s.cache.Get(ctx, datesKey, &out)
	if err != nil {
		log.Warn().Err(err).Str("key", datesKey).Msg("read cached dates failed")
	}
	if ok && err == nil {
		return out, nil
	}
	rs, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out = balancer.Dates(s.prop, rs)
	if err := s.cache.Set(ctx, datesKey, out, int(s.cacheTTL.Seconds())); err != nil {
		log.Warn().Err(err).Str("key", datesKey).Msg("cache dates failed")
	}
	return out, nil
}

package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"room_balancer/internal/adapters/observability"
	"room_balancer/internal/balancer"
	"room_balancer/internal/domain"
)

// AdvisoryService produces upgrade recommendations for a date. The remote
// advisor is optional; any failure or timeout falls back to the local one.
type AdvisoryService struct {
	analyses *AnalysisService
	remote   domain.Advisor
	local    domain.Advisor
	timeout  time.Duration
}

func NewAdvisoryService(a *AnalysisService, remote, local domain.Advisor, timeout time.Duration) *AdvisoryService {
	return &AdvisoryService{analyses: a, remote: remote, local: local, timeout: timeout}
}

func (s *AdvisoryService) Recommend(ctx context.Context, date domain.Date) ([]domain.Recommendation, error) {
	a, err := s.analyses.run(ctx, date)
	if err != nil {
		return nil, err
	}
	req := domain.AdvisoryRequest{
		Date:         date,
		Guests:       balancer.Prioritize(s.analyses.prop, a.Result.Demand.Arrivals),
		Overbookings: a.Result.Overbookings,
	}

	if s.remote != nil {
		rctx, cancel := context.WithTimeout(ctx, s.remoteBudget(ctx))
		recs, err := s.remote.Recommend(rctx, req)
		cancel()
		if err == nil && len(recs) > 0 {
			return recs, nil
		}
		observability.ObserveFallback(err)
		log.Warn().Err(err).Str("date", date.String()).Msg("remote advisor unavailable; using heuristic")
	}
	return s.local.Recommend(ctx, req)
}

// remoteBudget caps the remote call at four fifths of the time left on ctx so
// the heuristic still answers before the caller's deadline.
func (s *AdvisoryService) remoteBudget(ctx context.Context) time.Duration {
	budget := s.timeout
	if dl, ok := ctx.Deadline(); ok {
		if left := time.Until(dl) * 4 / 5; left < budget {
			budget = left
		}
	}
	return budget
}

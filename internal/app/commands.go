package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"room_balancer/internal/adapters/observability"
	"room_balancer/internal/domain"
)

type IngestionService struct {
	repo  domain.ReservationRepository
	cache domain.Cache
}

func NewIngestionService(r domain.ReservationRepository, cache domain.Cache) *IngestionService {
	return &IngestionService{repo: r, cache: cache}
}

// Normalize maps raw records into reservations. Records that fail validation
// are logged as rejects and skipped; later duplicates of an id win. A nil
// repository only logs.
func (s *IngestionService) Normalize(ctx context.Context, raw []map[string]any) ([]domain.Reservation, int) {
	out := make([]domain.Reservation, 0, len(raw))
	index := make(map[string]int, len(raw))
	rejected := 0
	for _, m := range raw {
		r, err := mapReservation(m)
		if err != nil {
			rejected++
			src := SourceID(m)
			log.Warn().Err(err).Str("source_id", src).Msg("reservation rejected")
			if s.repo == nil {
				continue
			}
			if lerr := s.repo.LogReject(ctx, src, err.Error()); lerr != nil {
				log.Error().Err(lerr).Str("source_id", src).Msg("log reject failed")
			}
			continue
		}
		if i, dup := index[r.ID]; dup {
			out[i] = r
			continue
		}
		index[r.ID] = len(out)
		out = append(out, r)
	}
	return out, rejected
}

// IngestBatch stores one batch and drops the cached date listing.
func (s *IngestionService) IngestBatch(ctx context.Context, rs []domain.Reservation) error {
	if len(rs) == 0 {
		return nil
	}
	if err := s.repo.UpsertReservations(ctx, rs); err != nil {
		return fmt.Errorf("upsert %d reservations: %w", len(rs), err)
	}
	if s.cache != nil {
		if err := s.cache.Del(ctx, datesKey); err != nil {
			log.Warn().Err(err).Str("key", datesKey).Msg("drop cached dates failed")
		}
	}
	return nil
}

// Ingest normalizes and stores raw records in one batch.
func (s *IngestionService) Ingest(ctx context.Context, raw []map[string]any) (stored, rejected int, err error) {
	rs, rejected := s.Normalize(ctx, raw)
	if err := s.IngestBatch(ctx, rs); err != nil {
		return 0, rejected, err
	}
	observability.ObserveIngest(len(rs), rejected)
	return len(rs), rejected, nil
}

// Approve records a decision for the alert raised for guest on date.
func (s *AnalysisService) Approve(ctx context.Context, date domain.Date, guest string, approved bool) (Analysis, error) {
	a, err := s.run(ctx, date)
	if err != nil {
		return Analysis{}, err
	}
	found := false
	for _, al := range a.Result.Alerts {
		if al.GuestName == guest {
			found = true
			break
		}
	}
	if !found {
		return Analysis{}, fmt.Errorf("alert for %q on %s: %w", guest, date, domain.ErrNotFound)
	}
	if err := s.ledger.SetApproval(ctx, date, guest, approved); err != nil {
		return Analysis{}, err
	}
	log.Info().Str("run_id", a.RunID).Str("date", date.String()).Str("guest", guest).Bool("approved", approved).Msg("alert reviewed")
	return s.Analyze(ctx, date)
}

// ResetApprovals clears every decision recorded for date.
func (s *AnalysisService) ResetApprovals(ctx context.Context, date domain.Date) (Analysis, error) {
	if err := s.ledger.Reset(ctx, date); err != nil {
		return Analysis{}, err
	}
	log.Info().Str("date", date.String()).Msg("approvals reset")
	return s.Analyze(ctx, date)
}

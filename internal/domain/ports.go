package domain

import "context"

type ReservationRepository interface {
	// Write paths
	UpsertReservations(ctx context.Context, rs []Reservation) error
	LogReject(ctx context.Context, sourceID string, reason string) error

	// Read paths
	// ListActive returns reservations with checkin <= to and checkout >= from.
	ListActive(ctx context.Context, from, to Date) ([]Reservation, error)
	ListAll(ctx context.Context) ([]Reservation, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// ApprovalLedger records review decisions per target date, keyed by guest name.
type ApprovalLedger interface {
	Approvals(ctx context.Context, date Date) (map[string]bool, error)
	SetApproval(ctx context.Context, date Date, guest string, approved bool) error
	Reset(ctx context.Context, date Date) error
}

type Advisor interface {
	Recommend(ctx context.Context, req AdvisoryRequest) ([]Recommendation, error)
}

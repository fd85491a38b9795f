package mysql

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"room_balancer/internal/domain"
)

// maxRowsPerInsert keeps multi-row statements under the placeholder limit.
const maxRowsPerInsert = 500

func valStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) UpsertReservations(ctx context.Context, rs []domain.Reservation) error {
	for start := 0; start < len(rs); start += maxRowsPerInsert {
		end := min(start+maxRowsPerInsert, len(rs))
		if err := r.upsertChunk(ctx, rs[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repo) upsertChunk(ctx context.Context, rs []domain.Reservation) error {
	values := make([]string, 0, len(rs))
	args := make([]any, 0, len(rs)*9) // 9 params per row
	for _, rv := range rs {
		values = append(values, "(?,?,?,?,?,?,?,?,?)")
		args = append(args,
			rv.ID,
			rv.GuestName,
			rv.RoomType,
			rv.Checkin.Time,
			rv.Checkout.Time,
			rv.Nights(),
			rv.RateType,
			rv.LoyaltyTier,
			valStr(rv.SpecialRequests),
		)
	}
	q := upsertReservationsPrefix + strings.Join(values, ",") + upsertReservationsOnDup
	_, err := r.db.ExecContext(ctx, q, args...)
	return err
}

func (r *Repo) LogReject(ctx context.Context, sourceID, reason string) error {
	if len(reason) > 512 {
		reason = reason[:512]
	}
	_, err := r.db.ExecContext(ctx, insertRejectSQL, sourceID, reason)
	return err
}

func (r *Repo) ListActive(ctx context.Context, from, to domain.Date) ([]domain.Reservation, error) {
	return r.query(ctx, listActiveSQL, to.Time, from.Time)
}

func (r *Repo) ListAll(ctx context.Context) ([]domain.Reservation, error) {
	return r.query(ctx, listAllSQL)
}

func (r *Repo) query(ctx context.Context, q string, args ...any) ([]domain.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Reservation
	for rows.Next() {
		var rv domain.Reservation
		var checkin, checkout time.Time
		if err := rows.Scan(
			&rv.ID,
			&rv.GuestName,
			&rv.RoomType,
			&checkin, &checkout,
			&rv.LengthOfStay,
			&rv.RateType,
			&rv.LoyaltyTier,
			&rv.SpecialRequests,
		); err != nil {
			return nil, err
		}
		rv.Checkin, rv.Checkout = domain.DateOf(checkin), domain.DateOf(checkout)
		out = append(out, rv)
	}
	return out, rows.Err()
}

package app

import (
	"context"
	"encoding/csv"
	"io"

	"room_balancer/internal/domain"
)

var csvHeader = []string{"Reservation ID", "Guest Name", "Honors Status", "Booked Room Type", "Assigned Room Type", "Assignment Type"}

// WriteAssignmentsCSV writes one row per placed guest.
func WriteAssignmentsCSV(w io.Writer, as []domain.Assignment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, a := range as {
		r := a.Reservation
		if err := cw.Write([]string{r.ID, r.GuestName, r.LoyaltyTier, r.RoomType, a.AssignedRoomType, string(a.Kind)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCSV writes the assignments of the run for date.
func (s *AnalysisService) ExportCSV(ctx context.Context, date domain.Date, w io.Writer) error {
	a, err := s.run(ctx, date)
	if err != nil {
		return err
	}
	return WriteAssignmentsCSV(w, a.Result.Assignments)
}

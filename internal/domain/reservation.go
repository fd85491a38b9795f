package domain

import "strings"

// Reservation is the canonical booking record. It is validated once at
// ingestion and never modified afterwards.
type Reservation struct {
	ID              string `json:"reservation_id"`
	GuestName       string `json:"guest_name"`
	RoomType        string `json:"room_type"`
	Checkin         Date   `json:"checkin_date"`
	Checkout        Date   `json:"checkout_date"`
	LengthOfStay    int    `json:"length_of_stay"`
	RateType        string `json:"rate_type"`
	LoyaltyTier     string `json:"honors_status"`
	SpecialRequests string `json:"special_requests,omitempty"`
}

// Nights prefers the booked length of stay and falls back to the date span.
func (r Reservation) Nights() int {
	if r.LengthOfStay > 0 {
		return r.LengthOfStay
	}
	if r.Checkin.IsZero() || r.Checkout.IsZero() {
		return 0
	}
	return r.Checkin.DaysUntil(r.Checkout)
}

// Requests reports whether the special requests contain marker.
func (r Reservation) Requests(marker string) bool {
	return marker != "" && strings.Contains(r.SpecialRequests, marker)
}

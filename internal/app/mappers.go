package app

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"room_balancer/internal/domain"
)

/********** alias registries (single source of truth) **********/

var reservationAliases = map[string][]string{
	"id":          {"reservation_id", "reservationId", "confirmation_number", "confirmation", "id"},
	"guest":       {"guest_name", "guestName", "name", "guest.name"},
	"guest_first": {"first_name", "firstName", "guest.first_name", "guest.firstName"},
	"guest_last":  {"last_name", "lastName", "guest.last_name", "guest.lastName"},
	"room_type":   {"room_type", "booked_room_type", "roomType", "room.type", "room_code"},
	"checkin":     {"checkin_date", "checkin", "arrival_date", "arrival", "stay.checkin"},
	"checkout":    {"checkout_date", "checkout", "departure_date", "departure", "stay.checkout"},
	"rate":        {"rate_type", "rateType", "rate", "rate_plan", "market_segment"},
	"loyalty":     {"honors_status", "loyalty_tier", "loyaltyTier", "guest.honors_status"},
	"requests":    {"special_requests", "specialRequests", "requests", "comments", "notes"},
}

var lengthOfStayPaths = []string{"length_of_stay", "lengthOfStay", "los", "nights", "stay.nights"}

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// lookupStr returns string at path or "". Numbers are formatted so numeric
// confirmation numbers survive.
func lookupStr(m map[string]any, path string) string {
	switch v := lookupAny(m, path).(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

// firstNonEmptyAlias: first non-empty string for a named alias set.
func firstNonEmptyAlias(m map[string]any, aliases map[string][]string, key string) *string {
	for _, p := range aliases[key] {
		if s := lookupStr(m, p); s != "" {
			return &s
		}
	}
	return nil
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func joinNonEmpty(parts ...string) string {
	var out []string
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return strings.Join(out, " ")
}

// firstInt64Flexible: int64 from several paths (float64/int/string).
func firstInt64Flexible(m map[string]any, paths ...string) *int64 {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			x := int64(v)
			return &x
		case int:
			x := int64(v)
			return &x
		case int64:
			x := v
			return &x
		case string:
			s := strings.TrimSpace(v)
			if s == "" {
				continue
			}
			if n, err := strconv.ParseInt(s, 10, 64); err == nil {
				return &n
			}
		}
	}
	return nil
}

/********** reservation mapper **********/

// DecodeRecords reads either a JSON array of reservation objects or an
// object wrapping them under "reservations".
func DecodeRecords(r io.Reader) ([]map[string]any, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode reservations: %w", err)
	}
	var list []map[string]any
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}
	var wrapped struct {
		Reservations []map[string]any `json:"reservations"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("decode reservations: %w", err)
	}
	return wrapped.Reservations, nil
}

// SourceID names a raw record for reject logs.
func SourceID(m map[string]any) string {
	if s := firstNonEmptyAlias(m, reservationAliases, "id"); s != nil {
		return *s
	}
	return "unknown"
}

// parseDay accepts plain dates and RFC 3339 timestamps.
func parseDay(s string) (domain.Date, error) {
	if len(s) > len(domain.DateLayout) {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return domain.DateOf(t), nil
		}
	}
	return domain.ParseDate(s)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidReservation, fmt.Sprintf(format, args...))
}

// mapReservation validates one raw record into the canonical schema. The
// checkout date is derived from length of stay when absent, and the length of
// stay from the dates when absent.
func mapReservation(m map[string]any) (domain.Reservation, error) {
	var r domain.Reservation

	if s := firstNonEmptyAlias(m, reservationAliases, "guest"); s != nil {
		r.GuestName = *s
	} else {
		r.GuestName = joinNonEmpty(
			deref(firstNonEmptyAlias(m, reservationAliases, "guest_first")),
			deref(firstNonEmptyAlias(m, reservationAliases, "guest_last")),
		)
	}
	if r.GuestName == "" {
		return r, invalid("missing guest name")
	}

	r.RoomType = strings.ToUpper(deref(firstNonEmptyAlias(m, reservationAliases, "room_type")))
	if r.RoomType == "" {
		return r, invalid("missing room type")
	}

	in := firstNonEmptyAlias(m, reservationAliases, "checkin")
	if in == nil {
		return r, invalid("missing checkin date")
	}
	checkin, err := parseDay(*in)
	if err != nil {
		return r, invalid("checkin: %v", err)
	}
	r.Checkin = checkin

	if los := firstInt64Flexible(m, lengthOfStayPaths...); los != nil {
		r.LengthOfStay = int(*los)
	}
	if out := firstNonEmptyAlias(m, reservationAliases, "checkout"); out != nil {
		checkout, err := parseDay(*out)
		if err != nil {
			return r, invalid("checkout: %v", err)
		}
		r.Checkout = checkout
	} else if r.LengthOfStay > 0 {
		r.Checkout = checkin.AddDays(r.LengthOfStay)
	} else {
		return r, invalid("missing checkout date and length of stay")
	}
	if !r.Checkin.Before(r.Checkout) {
		return r, invalid("checkout %s not after checkin %s", r.Checkout, r.Checkin)
	}
	if r.LengthOfStay <= 0 {
		r.LengthOfStay = r.Checkin.DaysUntil(r.Checkout)
	}

	r.RateType = deref(firstNonEmptyAlias(m, reservationAliases, "rate"))
	r.LoyaltyTier = deref(firstNonEmptyAlias(m, reservationAliases, "loyalty"))
	r.SpecialRequests = deref(firstNonEmptyAlias(m, reservationAliases, "requests"))

	// ID → prefer explicit; else synthesize stable hash.
	if s := firstNonEmptyAlias(m, reservationAliases, "id"); s != nil {
		r.ID = *s
	} else {
		sig := strings.Join([]string{r.GuestName, r.RoomType, r.Checkin.String(), r.Checkout.String(), r.RateType}, "|")
		sum := sha1.Sum([]byte(sig))
		r.ID = hex.EncodeToString(sum[:])[:20]
	}
	return r, nil
}

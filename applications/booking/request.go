package booking

import (
	"strings"
	"time"

	"github.com/atifsayed22/bookit/apperror"
	"github.com/atifsayed22/bookit/domain"
)

// SlotRequest carries the fields of a same-day appointment.
type SlotRequest struct {
	StartTime string
}

// TravelRequest carries the fields of a multi-day trip. A nil
// NumberOfTravelers means the caller did not send one.
type TravelRequest struct {
	NumberOfTravelers *int
	Travelers         []domain.Traveler
	PromoCode         string
}

// ClientTotals are the amounts a client computed on its own. They are never
// trusted, only compared against the server's figures.
type ClientTotals struct {
	Subtotal *float64
	Discount *float64
	Total    *float64
}

// Request is a reservation request. Exactly one of Slot and Travel is set
// once the HTTP layer has decoded it.
type Request struct {
	AgencyID  string
	PackageID string
	Date      string
	Notes     string

	Slot   *SlotRequest
	Travel *TravelRequest

	Client *ClientTotals
}

// Kind reports which branch the request takes, or "" when neither variant
// is set.
func (r Request) Kind() domain.PackageKind {
	switch {
	case r.Travel != nil:
		return domain.KindTravel
	case r.Slot != nil:
		return domain.KindSlot
	default:
		return ""
	}
}

// checkPresence lists every absent required field in request order.
func (r Request) checkPresence() error {
	var missing []string
	if strings.TrimSpace(r.AgencyID) == "" {
		missing = append(missing, "agencyId")
	}
	if strings.TrimSpace(r.PackageID) == "" {
		missing = append(missing, "packageId")
	}
	if strings.TrimSpace(r.Date) == "" {
		missing = append(missing, "date")
	}
	switch r.Kind() {
	case domain.KindSlot:
		if strings.TrimSpace(r.Slot.StartTime) == "" {
			missing = append(missing, "startTime")
		}
	case "":
		missing = append(missing, "startTime")
	}

	if len(missing) > 0 {
		return apperror.Missing(missing...)
	}
	return nil
}

// ParseDate accepts YYYY-MM-DD or an RFC 3339 timestamp and returns the
// calendar date in DateLayout. No timezone conversion is applied.
func ParseDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if d, err := time.Parse(domain.DateLayout, s); err == nil {
		return d.Format(domain.DateLayout), nil
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts.Format(domain.DateLayout), nil
	}
	return "", apperror.Invalid("date", "date %q must be YYYY-MM-DD", s)
}

// ParseClock turns "HH:MM" into minutes since midnight.
func ParseClock(field, s string) (int, error) {
	t, err := time.Parse(domain.TimeLayout, strings.TrimSpace(s))
	if err != nil {
		return 0, apperror.Invalid(field, "%s %q must be HH:MM", field, s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

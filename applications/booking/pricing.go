package booking

import (
	"fmt"
	"math"
	"strings"

	"github.com/atifsayed22/bookit/apperror"
	"github.com/atifsayed22/bookit/domain"
)

const minutesPerDay = 24 * 60

// SlotWindow is a half-open [Start, End) interval in minutes since midnight.
type SlotWindow struct {
	Start int
	End   int
}

// NewSlotWindow places a slot of the given length at start. The slot must end
// by midnight of the same day.
func NewSlotWindow(start, minutes int) (SlotWindow, error) {
	if minutes <= 0 {
		minutes = domain.DefaultSlotMinutes
	}
	w := SlotWindow{Start: start, End: start + minutes}
	if w.End > minutesPerDay {
		return SlotWindow{}, apperror.Invalid("startTime", "a %d minute slot starting at %s runs past midnight", minutes, formatClock(start))
	}
	return w, nil
}

func (w SlotWindow) Overlaps(o SlotWindow) bool {
	return o.Start < w.End && o.End > w.Start
}

func (w SlotWindow) StartClock() string { return formatClock(w.Start) }
func (w SlotWindow) EndClock() string   { return formatClock(w.End) }

// formatClock prints minutes since midnight as HH:MM; a slot ending exactly
// at midnight prints 24:00.
func formatClock(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// Quote is the computed price of a reservation.
type Quote struct {
	Subtotal     float64
	Discount     float64
	Total        float64
	PromoApplied bool
}

// SlotQuote prices an appointment: the flat package price, no promo.
func SlotQuote(pkg *domain.Package) Quote {
	price := roundCents(pkg.Price)
	return Quote{Subtotal: price, Total: price}
}

// PromoMatches reports whether code unlocks the package's promo.
func PromoMatches(pkg *domain.Package, code string) bool {
	code = strings.TrimSpace(code)
	return code != "" && pkg.PromoCodeActive && pkg.PromoCode != "" && strings.EqualFold(code, pkg.PromoCode)
}

// TravelQuote prices a trip for n travelers. An unknown or inactive promo
// code yields no discount rather than an error. The total never drops
// below zero.
func TravelQuote(pkg *domain.Package, n int, promoCode string) Quote {
	q := Quote{Subtotal: roundCents(pkg.Price * float64(n))}
	if PromoMatches(pkg, promoCode) && pkg.PromoDiscount > 0 {
		q.Discount = roundCents(q.Subtotal * pkg.PromoDiscount / 100)
		q.PromoApplied = true
	}
	q.Total = math.Max(0, roundCents(q.Subtotal-q.Discount))
	return q
}

// travelerCount resolves the party size. Absent or zero means one traveler.
func travelerCount(req *TravelRequest) (int, error) {
	if req.NumberOfTravelers == nil || *req.NumberOfTravelers == 0 {
		return 1, nil
	}
	if *req.NumberOfTravelers < 0 {
		return 0, apperror.Invalid("numberOfTravelers", "numberOfTravelers must be positive")
	}
	return *req.NumberOfTravelers, nil
}

// rosterFor keeps at most n of the supplied travelers. A short roster is
// stored as sent; the count, not the roster, drives pricing.
func rosterFor(travelers []domain.Traveler, n int) []domain.Traveler {
	if len(travelers) > n {
		travelers = travelers[:n]
	}
	roster := make([]domain.Traveler, len(travelers))
	for i, t := range travelers {
		t.Name = strings.TrimSpace(t.Name)
		roster[i] = t
	}
	return roster
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

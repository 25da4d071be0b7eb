package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/atifsayed22/bookit/applications/agency"
	"github.com/atifsayed22/bookit/applications/auth"
	"github.com/atifsayed22/bookit/applications/tourpackage"
	"github.com/atifsayed22/bookit/apperror"
	"github.com/atifsayed22/bookit/domain"
	"github.com/atifsayed22/bookit/store"

	"github.com/google/uuid"
)

type CreateReservationUC struct {
	log   *slog.Logger
	store store.Store
	now   func() time.Time
}

func NewCreateReservationUC(log *slog.Logger, s store.Store) *CreateReservationUC {
	return &CreateReservationUC{log: log, store: s, now: time.Now}
}

// Invoke validates req, prices it and persists a pending reservation for p.
// Slot reservations are checked for overlaps atomically with the insert.
func (uc *CreateReservationUC) Invoke(ctx context.Context, p auth.Principal, req Request) (*domain.Reservation, error) {
	uc.log.Info(fmt.Sprintf("[create-reservation-uc] Reservation request by %s for package %s.", p.UserID, req.PackageID))

	// 1. Presence, before touching the store
	if err := req.checkPresence(); err != nil {
		uc.log.Warn(fmt.Sprintf("[create-reservation-uc] Rejected: %v", err))
		return nil, err
	}

	// 2. Parse
	date, err := ParseDate(req.Date)
	if err != nil {
		return nil, err
	}
	var startMin, travelers int
	switch req.Kind() {
	case domain.KindSlot:
		if startMin, err = ParseClock("startTime", req.Slot.StartTime); err != nil {
			return nil, err
		}
	case domain.KindTravel:
		if travelers, err = travelerCount(req.Travel); err != nil {
			return nil, err
		}
	}

	// 3. Resolve catalog records
	ag, pkg, err := uc.resolve(ctx, strings.TrimSpace(req.AgencyID), strings.TrimSpace(req.PackageID))
	if err != nil {
		uc.log.Warn(fmt.Sprintf("[create-reservation-uc] Catalog lookup failed: %v", err))
		return nil, err
	}
	if pkg.Kind != req.Kind() {
		return nil, apperror.Invalid("kind", "package %s takes %s reservations, got %s", pkg.PackageID, pkg.Kind, req.Kind())
	}

	name, email, phone, err := uc.customerSnapshot(ctx, p)
	if err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	r := &domain.Reservation{
		ReservationID: uuid.New().String(),
		AgencyID:      ag.AgencyID,
		PackageID:     pkg.PackageID,
		PackageName:   pkg.Name,
		Kind:          pkg.Kind,
		CustomerID:    p.UserID,
		CustomerName:  name,
		CustomerEmail: email,
		CustomerPhone: phone,
		Date:          date,
		Status:        domain.StatusPending,
		CustomerNotes: strings.TrimSpace(req.Notes),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	// 4/5. Branch
	var (
		quote Quote
		guard store.SlotGuard
	)
	switch pkg.Kind {
	case domain.KindSlot:
		window, err := NewSlotWindow(startMin, pkg.SlotMinutes())
		if err != nil {
			return nil, err
		}
		r.StartTime = window.StartClock()
		r.EndTime = window.EndClock()
		r.DurationMinutes = window.End - window.Start
		quote = SlotQuote(pkg)
		guard = uc.overlapGuard(window)

	case domain.KindTravel:
		r.NumberOfTravelers = travelers
		r.Travelers = rosterFor(req.Travel.Travelers, travelers)
		r.DurationDays = pkg.DurationDays
		quote = TravelQuote(pkg, travelers, req.Travel.PromoCode)
		if quote.PromoApplied {
			r.PromoCode = pkg.PromoCode
		} else if strings.TrimSpace(req.Travel.PromoCode) != "" {
			uc.log.Info(fmt.Sprintf("[create-reservation-uc] Promo code %q not valid for package %s; no discount.", req.Travel.PromoCode, pkg.PackageID))
		}
	}

	r.Subtotal = quote.Subtotal
	r.Discount = quote.Discount
	r.TotalPrice = quote.Total
	r.PromoApplied = quote.PromoApplied
	uc.compareClientTotals(req.Client, quote)

	// 6. Persist
	if err := uc.store.InsertReservation(ctx, r, guard); err != nil {
		switch {
		case apperror.KindOf(err) != "":
			uc.log.Warn(fmt.Sprintf("[create-reservation-uc] Rejected on insert: %v", err))
			return nil, err
		case errors.Is(err, store.ErrContention):
			uc.log.Warn(fmt.Sprintf("[create-reservation-uc] Slot contention for agency %s on %s.", r.AgencyID, r.Date))
			return nil, apperror.New(apperror.SlotConflict, "the %s slot on %s is being booked by someone else, pick another time", r.StartTime, r.Date)
		default:
			uc.log.Error(fmt.Sprintf("[create-reservation-uc] Failed to insert reservation %s: %v", r.ReservationID, err))
			return nil, fmt.Errorf("failed to save reservation: %w", err)
		}
	}

	found, err := uc.store.IncrementBookingCount(ctx, p.UserID, now)
	switch {
	case err != nil:
		uc.log.Warn(fmt.Sprintf("[create-reservation-uc] Booking count update failed for %s: %v", p.UserID, err))
	case !found:
		uc.log.Debug(fmt.Sprintf("[create-reservation-uc] No profile for %s; booking count not tracked.", p.UserID))
	}

	uc.log.Info(fmt.Sprintf("[create-reservation-uc] Reservation %s created (%s, total %.2f).", r.ReservationID, r.Kind, r.TotalPrice))
	return r, nil
}

// resolve loads the agency and package. Anything that makes them unbookable
// is reported as NotFound.
func (uc *CreateReservationUC) resolve(ctx context.Context, agencyID, packageID string) (*domain.Agency, *domain.Package, error) {
	ag, err := agency.Load(ctx, uc.store, agencyID)
	if err != nil {
		return nil, nil, err
	}
	if !ag.Active {
		return nil, nil, apperror.New(apperror.NotFound, "agency %s not found", agencyID)
	}

	pkg, err := tourpackage.Load(ctx, uc.store, packageID)
	if err != nil {
		return nil, nil, err
	}
	if pkg.AgencyID != ag.AgencyID || !pkg.IsActive() {
		return nil, nil, apperror.New(apperror.NotFound, "package %s not found for agency %s", packageID, agencyID)
	}
	return ag, pkg, nil
}

// customerSnapshot returns the contact details copied onto the reservation.
func (uc *CreateReservationUC) customerSnapshot(ctx context.Context, p auth.Principal) (name, email, phone string, err error) {
	c, err := uc.store.GetCustomer(ctx, p.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return p.DisplayName(), p.Email, "", nil
	}
	if err != nil {
		uc.log.Error(fmt.Sprintf("[create-reservation-uc] Failed to fetch profile %s: %v", p.UserID, err))
		return "", "", "", fmt.Errorf("failed to fetch customer profile: %w", err)
	}

	name = c.FullName()
	if name == "" {
		name = p.DisplayName()
	}
	email = c.Email
	if email == "" {
		email = p.Email
	}
	return name, email, c.Phone, nil
}

// overlapGuard rejects the insert when an active slot on the same day
// intersects window.
func (uc *CreateReservationUC) overlapGuard(window SlotWindow) store.SlotGuard {
	return func(existing []*domain.Reservation) error {
		for _, other := range existing {
			if !other.HoldsSlot() {
				continue
			}
			held, ok := storedWindow(other)
			if !ok {
				uc.log.Warn(fmt.Sprintf("[create-reservation-uc] Skipping reservation %s with unreadable times %q-%q.", other.ReservationID, other.StartTime, other.EndTime))
				continue
			}
			if window.Overlaps(held) {
				return apperror.New(apperror.SlotConflict, "%s-%s overlaps an existing reservation (%s-%s)",
					window.StartClock(), window.EndClock(), other.StartTime, other.EndTime)
			}
		}
		return nil
	}
}

// storedWindow reads the interval of a persisted slot reservation.
func storedWindow(r *domain.Reservation) (SlotWindow, bool) {
	start, err := ParseClock("startTime", r.StartTime)
	if err != nil {
		return SlotWindow{}, false
	}
	end := minutesPerDay
	if r.EndTime != "24:00" {
		if end, err = ParseClock("endTime", r.EndTime); err != nil {
			return SlotWindow{}, false
		}
	}
	return SlotWindow{Start: start, End: end}, true
}

func (uc *CreateReservationUC) compareClientTotals(client *ClientTotals, q Quote) {
	if client == nil {
		return
	}
	differs := func(sent *float64, want float64) bool {
		return sent != nil && math.Abs(*sent-want) >= 0.01
	}
	if differs(client.Subtotal, q.Subtotal) || differs(client.Discount, q.Discount) || differs(client.Total, q.Total) {
		uc.log.Warn(fmt.Sprintf("[create-reservation-uc] Client totals differ from computed subtotal=%.2f discount=%.2f total=%.2f; using computed.", q.Subtotal, q.Discount, q.Total))
	}
}

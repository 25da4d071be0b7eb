package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/atifsayed22/bookit/applications/agency"
	"github.com/atifsayed22/bookit/applications/auth"
	"github.com/atifsayed22/bookit/apperror"
	"github.com/atifsayed22/bookit/domain"
	"github.com/atifsayed22/bookit/store"
)

type GetReservationUC struct {
	log   *slog.Logger
	store store.Store
}

func NewGetReservationUC(log *slog.Logger, s store.Store) *GetReservationUC {
	return &GetReservationUC{log: log, store: s}
}

// Invoke returns the reservation exactly as stored. The customer snapshot on
// it is never refreshed from the current profile.
func (uc *GetReservationUC) Invoke(ctx context.Context, p auth.Principal, reservationID string) (*domain.Reservation, error) {
	r, err := loadReservation(ctx, uc.store, reservationID)
	if err != nil {
		return nil, err
	}
	if err := canView(ctx, uc.store, p, r); err != nil {
		uc.log.Warn(fmt.Sprintf("[get-reservation-uc] %s may not view reservation %s.", p.UserID, reservationID))
		return nil, err
	}
	return r, nil
}

// canView admits the booking customer, the agency that owns the reservation
// and admins.
func canView(ctx context.Context, agencies store.AgencyStore, p auth.Principal, r *domain.Reservation) error {
	if p.IsAdmin() || r.CustomerID == p.UserID {
		return nil
	}
	if p.Role == auth.RoleAgencyOwner {
		a, err := agencies.GetAgency(ctx, r.AgencyID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("failed to fetch agency: %w", err)
		}
		if a != nil && agency.CanManage(p, a) {
			return nil
		}
	}
	return apperror.New(apperror.Forbidden, "you may not view reservation %s", r.ReservationID)
}

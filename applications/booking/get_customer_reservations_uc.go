package booking

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/atifsayed22/bookit/applications/auth"
	"github.com/atifsayed22/bookit/apperror"
	"github.com/atifsayed22/bookit/domain"
	"github.com/atifsayed22/bookit/store"
)

type GetCustomerReservationsUC struct {
	log          *slog.Logger
	reservations store.ReservationStore
}

func NewGetCustomerReservationsUC(log *slog.Logger, reservations store.ReservationStore) *GetCustomerReservationsUC {
	return &GetCustomerReservationsUC{log: log, reservations: reservations}
}

// Invoke lists the caller's own reservations, newest first.
func (uc *GetCustomerReservationsUC) Invoke(ctx context.Context, p auth.Principal, status domain.Status, page store.Page) ([]*domain.Reservation, error) {
	if status != "" && !status.Valid() {
		return nil, apperror.Invalid("status", "unknown status %q", status)
	}

	list, err := uc.reservations.ListReservations(ctx, store.ReservationFilter{
		CustomerID: p.UserID,
		Status:     status,
		Page:       page,
	})
	if err != nil {
		uc.log.Error(fmt.Sprintf("[get-customer-reservations-uc] Query failed for %s: %v", p.UserID, err))
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	return list, nil
}

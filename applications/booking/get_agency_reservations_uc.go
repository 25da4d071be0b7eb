package booking

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/atifsayed22/bookit/applications/agency"
	"github.com/atifsayed22/bookit/applications/auth"
	"github.com/atifsayed22/bookit/apperror"
	"github.com/atifsayed22/bookit/domain"
	"github.com/atifsayed22/bookit/store"
)

type GetAgencyReservationsUC struct {
	log   *slog.Logger
	store store.Store
}

func NewGetAgencyReservationsUC(log *slog.Logger, s store.Store) *GetAgencyReservationsUC {
	return &GetAgencyReservationsUC{log: log, store: s}
}

// Invoke lists an agency's reservations, optionally narrowed to one status
// and one date.
func (uc *GetAgencyReservationsUC) Invoke(ctx context.Context, p auth.Principal, agencyID string, status domain.Status, date string, page store.Page) ([]*domain.Reservation, error) {
	if _, err := agency.LoadManaged(ctx, uc.store, p, agencyID); err != nil {
		return nil, err
	}
	if status != "" && !status.Valid() {
		return nil, apperror.Invalid("status", "unknown status %q", status)
	}
	if date != "" {
		var err error
		if date, err = ParseDate(date); err != nil {
			return nil, err
		}
	}

	list, err := uc.store.ListReservations(ctx, store.ReservationFilter{
		AgencyID: agencyID,
		Date:     date,
		Status:   status,
		Page:     page,
	})
	if err != nil {
		uc.log.Error(fmt.Sprintf("[get-agency-reservations-uc] Query failed for agency %s: %v", agencyID, err))
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}

	uc.log.Debug(fmt.Sprintf("[get-agency-reservations-uc] Agency %s: %d reservations.", agencyID, len(list)))
	return list, nil
}

package booking

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/atifsayed22/bookit/applications/agency"
	"github.com/atifsayed22/bookit/applications/auth"
	"github.com/atifsayed22/bookit/apperror"
	"github.com/atifsayed22/bookit/domain"
	"github.com/atifsayed22/bookit/store"
)

// AgencyReservationActionUC lets the owning agency confirm or cancel a
// reservation, with optional notes for the customer.
type AgencyReservationActionUC struct {
	log     *slog.Logger
	store   store.Store
	changer *statusChanger
}

func NewAgencyReservationActionUC(log *slog.Logger, s store.Store) *AgencyReservationActionUC {
	return &AgencyReservationActionUC{
		log:     log,
		store:   s,
		changer: &statusChanger{log: log, store: s, now: time.Now},
	}
}

func (uc *AgencyReservationActionUC) Invoke(ctx context.Context, p auth.Principal, agencyID, reservationID string, action Action, notes string) (*domain.Reservation, error) {
	notes = strings.TrimSpace(notes)
	tag := "agency-" + string(action) + "-reservation-uc"

	return uc.changer.apply(ctx, tag, statusChange{
		reservationID: reservationID,
		actor:         ActorAgency,
		action:        action,
		authorize: func(ctx context.Context, r *domain.Reservation) error {
			if r.AgencyID != agencyID {
				return apperror.New(apperror.NotFound, "reservation %s not found for agency %s", reservationID, agencyID)
			}
			_, err := agency.LoadManaged(ctx, uc.store, p, agencyID)
			return err
		},
		annotate: func(r *domain.Reservation, now time.Time) {
			if notes != "" {
				r.AgencyNotes = notes
			}
			switch r.Status {
			case domain.StatusConfirmed:
				r.ConfirmedAt = &now
			case domain.StatusCancelled:
				r.CancelledAt = &now
				r.CancelledBy = string(ActorAgency)
				r.CancellationReason = notes
			}
		},
	})
}

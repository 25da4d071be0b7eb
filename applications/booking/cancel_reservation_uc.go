package booking

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/atifsayed22/bookit/applications/auth"
	"github.com/atifsayed22/bookit/apperror"
	"github.com/atifsayed22/bookit/domain"
	"github.com/atifsayed22/bookit/store"
)

// CancelReservationUC is the customer's own cancellation.
type CancelReservationUC struct {
	log     *slog.Logger
	changer *statusChanger
}

func NewCancelReservationUC(log *slog.Logger, s store.Store) *CancelReservationUC {
	return &CancelReservationUC{
		log:     log,
		changer: &statusChanger{log: log, store: s, now: time.Now},
	}
}

func (uc *CancelReservationUC) Invoke(ctx context.Context, p auth.Principal, reservationID, reason string) (*domain.Reservation, error) {
	reason = strings.TrimSpace(reason)

	return uc.changer.apply(ctx, "cancel-reservation-uc", statusChange{
		reservationID: reservationID,
		actor:         ActorCustomer,
		action:        ActionCancel,
		authorize: func(_ context.Context, r *domain.Reservation) error {
			if r.CustomerID != p.UserID {
				return apperror.New(apperror.Forbidden, "reservation %s belongs to another customer", reservationID)
			}
			return nil
		},
		annotate: func(r *domain.Reservation, now time.Time) {
			r.CancelledAt = &now
			r.CancelledBy = string(ActorCustomer)
			r.CancellationReason = reason
		},
	})
}

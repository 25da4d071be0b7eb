package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/atifsayed22/bookit/apperror"
	"github.com/atifsayed22/bookit/domain"
	"github.com/atifsayed22/bookit/store"
)

const maxStatusAttempts = 3

// statusChanger applies one transition with a compare-and-set on the stored
// status. When another writer gets there first the record is reloaded and the
// transition re-evaluated against the new status.
type statusChanger struct {
	log   *slog.Logger
	store store.Store
	now   func() time.Time
}

type statusChange struct {
	reservationID string
	actor         Actor
	action        Action
	// authorize vets the caller against the loaded reservation.
	authorize func(ctx context.Context, r *domain.Reservation) error
	// annotate records notes, reasons and timestamps on the new version.
	annotate func(r *domain.Reservation, now time.Time)
}

func (sc *statusChanger) apply(ctx context.Context, tag string, ch statusChange) (*domain.Reservation, error) {
	for attempt := 1; ; attempt++ {
		r, err := loadReservation(ctx, sc.store, ch.reservationID)
		if err != nil {
			return nil, err
		}
		if err := ch.authorize(ctx, r); err != nil {
			sc.log.Warn(fmt.Sprintf("[%s] Caller rejected for reservation %s: %v", tag, r.ReservationID, err))
			return nil, err
		}

		from := r.Status
		next, err := Transition(from, ch.actor, ch.action)
		if err != nil {
			sc.log.Warn(fmt.Sprintf("[%s] %v", tag, err))
			return nil, err
		}

		now := sc.now().UTC()
		r.Status = next
		r.UpdatedAt = now
		ch.annotate(r, now)

		err = sc.store.UpdateReservationStatus(ctx, r, from)
		switch {
		case err == nil:
			sc.log.Info(fmt.Sprintf("[%s] Reservation %s moved %s -> %s.", tag, r.ReservationID, from, next))
			return r, nil
		case errors.Is(err, store.ErrNotFound):
			return nil, apperror.New(apperror.NotFound, "reservation %s not found", ch.reservationID)
		case errors.Is(err, store.ErrStatusChanged) && attempt < maxStatusAttempts:
			sc.log.Info(fmt.Sprintf("[%s] Reservation %s changed concurrently; re-evaluating.", tag, r.ReservationID))
		case errors.Is(err, store.ErrStatusChanged):
			return nil, apperror.New(apperror.InvalidTransition, "reservation %s keeps changing, reload and try again", ch.reservationID)
		default:
			sc.log.Error(fmt.Sprintf("[%s] Failed to update reservation %s: %v", tag, r.ReservationID, err))
			return nil, fmt.Errorf("failed to update reservation status: %w", err)
		}
	}
}

func loadReservation(ctx context.Context, reservations store.ReservationStore, reservationID string) (*domain.Reservation, error) {
	r, err := reservations.GetReservation(ctx, reservationID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperror.New(apperror.NotFound, "reservation %s not found", reservationID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reservation: %w", err)
	}
	return r, nil
}

package booking

import (
	"github.com/atifsayed22/bookit/apperror"
	"github.com/atifsayed22/bookit/domain"
)

type Actor string

const (
	ActorAgency   Actor = "agency"
	ActorCustomer Actor = "customer"
)

type Action string

const (
	ActionConfirm Action = "confirm"
	ActionCancel  Action = "cancel"
)

// Transition returns the status a reservation moves to when actor performs
// action on it, or an InvalidTransition error. Nothing leaves cancelled.
func Transition(current domain.Status, actor Actor, action Action) (domain.Status, error) {
	if current == domain.StatusCancelled {
		return "", apperror.New(apperror.InvalidTransition, "reservation is already cancelled")
	}

	switch {
	case action == ActionConfirm && actor == ActorAgency && current == domain.StatusPending:
		return domain.StatusConfirmed, nil
	case action == ActionCancel && (actor == ActorAgency || actor == ActorCustomer) && current.Active():
		return domain.StatusCancelled, nil
	}
	return "", apperror.New(apperror.InvalidTransition, "%s cannot %s a %s reservation", actor, action, current)
}

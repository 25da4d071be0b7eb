// Package apperror holds the business-rule error taxonomy shared by use cases
// and HTTP controllers. These errors are outcomes to show the end user, not
// transient faults, so nothing retries them.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type Kind string

const (
	MissingField      Kind = "MISSING_FIELD"
	NotFound          Kind = "NOT_FOUND"
	ValidationError   Kind = "VALIDATION_ERROR"
	SlotConflict      Kind = "SLOT_CONFLICT"
	InvalidTransition Kind = "INVALID_TRANSITION"
	Forbidden         Kind = "FORBIDDEN"
	Unauthorized      Kind = "UNAUTHORIZED"
)

type Error struct {
	Kind    Kind
	Message string
	Fields  []string
}

func (e *Error) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("%s: %s [%s]", e.Kind, e.Message, strings.Join(e.Fields, ", "))
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is matches on Kind so callers can write errors.Is(err, apperror.New(apperror.NotFound, "")).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Missing reports absent required fields.
func Missing(fields ...string) *Error {
	return &Error{
		Kind:    MissingField,
		Message: "required fields are missing",
		Fields:  fields,
	}
}

// Invalid reports a malformed value for a single field.
func Invalid(field, format string, args ...any) *Error {
	return &Error{
		Kind:    ValidationError,
		Message: fmt.Sprintf(format, args...),
		Fields:  []string{field},
	}
}

// KindOf returns the kind of the first *Error in err's chain, or "" for
// infrastructure errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

func HTTPStatus(kind Kind) int {
	switch kind {
	case MissingField, ValidationError:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case SlotConflict, InvalidTransition:
		return http.StatusConflict
	case Forbidden:
		return http.StatusForbidden
	case Unauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

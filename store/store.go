// Package store defines the persistence contract shared by the postgres,
// mongo and badger backends.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/atifsayed22/bookit/domain"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrStatusChanged is returned by UpdateReservationStatus when the stored
	// status no longer matches the expected one.
	ErrStatusChanged = errors.New("reservation status changed concurrently")
	ErrDuplicate     = errors.New("record already exists")
	// ErrContention is returned when a slot insert keeps losing the race
	// against concurrent writers for the same agency and date.
	ErrContention = errors.New("concurrent slot writes, retry later")
)

// SlotGuard inspects the active slot reservations of one agency on one date
// and returns an error to veto the insert. Backends call it while holding
// whatever lock serializes inserts for that (agency, date) pair.
type SlotGuard func(existing []*domain.Reservation) error

type Page struct {
	Offset int
	Limit  int
}

type ReservationFilter struct {
	AgencyID   string
	CustomerID string
	Date       string
	Status     domain.Status
	Page       Page
}

// Matches applies the filter in memory. Backends that cannot push a filter
// down to the database use it after loading candidates.
func (f ReservationFilter) Matches(r *domain.Reservation) bool {
	if f.AgencyID != "" && r.AgencyID != f.AgencyID {
		return false
	}
	if f.CustomerID != "" && r.CustomerID != f.CustomerID {
		return false
	}
	if f.Date != "" && r.Date != f.Date {
		return false
	}
	if f.Status != "" && r.Status != f.Status {
		return false
	}
	return true
}

type AgencyStore interface {
	CreateAgency(ctx context.Context, a *domain.Agency) error
	GetAgency(ctx context.Context, agencyID string) (*domain.Agency, error)
	ListAgencies(ctx context.Context, page Page) ([]*domain.Agency, error)
	UpdateAgency(ctx context.Context, a *domain.Agency) error
}

type PackageStore interface {
	CreatePackage(ctx context.Context, p *domain.Package) error
	GetPackage(ctx context.Context, packageID string) (*domain.Package, error)
	ListPackagesByAgency(ctx context.Context, agencyID string, page Page) ([]*domain.Package, error)
	UpdatePackage(ctx context.Context, p *domain.Package) error
}

type CustomerStore interface {
	UpsertCustomer(ctx context.Context, c *domain.Customer) error
	GetCustomer(ctx context.Context, userID string) (*domain.Customer, error)
	// IncrementBookingCount bumps the counter of an existing profile and
	// reports whether a profile was found.
	IncrementBookingCount(ctx context.Context, userID string, at time.Time) (bool, error)
}

type ReservationStore interface {
	// InsertReservation persists r. A non-nil guard is run atomically with the
	// insert against the active slot reservations for r.AgencyID and r.Date.
	InsertReservation(ctx context.Context, r *domain.Reservation, guard SlotGuard) error
	GetReservation(ctx context.Context, reservationID string) (*domain.Reservation, error)
	ListReservations(ctx context.Context, filter ReservationFilter) ([]*domain.Reservation, error)
	// UpdateReservationStatus replaces the stored record with r only if the
	// stored status still equals from.
	UpdateReservationStatus(ctx context.Context, r *domain.Reservation, from domain.Status) error
}

type Store interface {
	AgencyStore
	PackageStore
	CustomerStore
	ReservationStore
	Close() error
}

// Normalize clamps page values to sane defaults.
func (p Page) Normalize() Page {
	if p.Limit <= 0 {
		p.Limit = 10
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// Window returns the [start, end) indexes of the page within n items.
func (p Page) Window(n int) (int, int) {
	p = p.Normalize()
	start := p.Offset
	if start > n {
		start = n
	}
	end := start + p.Limit
	if end > n {
		end = n
	}
	return start, end
}

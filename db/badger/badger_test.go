package badgerstore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/atifsayed22/bookit/domain"
	"github.com/atifsayed22/bookit/logger"
	"github.com/atifsayed22/bookit/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenInMemory(logger.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func slotReservation(id, agencyID, date, start, end string, status domain.Status) *domain.Reservation {
	return &domain.Reservation{
		ReservationID: id,
		AgencyID:      agencyID,
		PackageID:     "pkg-1",
		CustomerID:    "cust-1",
		Kind:          domain.KindSlot,
		Date:          date,
		StartTime:     start,
		EndTime:       end,
		Status:        status,
		CreatedAt:     time.Now(),
	}
}

func TestAgencyCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := &domain.Agency{AgencyID: "ag-1", OwnerID: "owner-1", Name: "Blue Lagoon Tours", Active: true}
	require.NoError(t, s.CreateAgency(ctx, a))
	assert.ErrorIs(t, s.CreateAgency(ctx, a), store.ErrDuplicate)

	got, err := s.GetAgency(ctx, "ag-1")
	require.NoError(t, err)
	assert.Equal(t, "Blue Lagoon Tours", got.Name)

	got.Name = "Blue Lagoon Travel"
	require.NoError(t, s.UpdateAgency(ctx, got))

	list, err := s.ListAgencies(ctx, store.Page{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Blue Lagoon Travel", list[0].Name)

	_, err = s.GetAgency(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, s.UpdateAgency(ctx, &domain.Agency{AgencyID: "missing"}), store.ErrNotFound)
}

func TestPackagesByAgency(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, s.CreatePackage(ctx, &domain.Package{PackageID: "p1", AgencyID: "ag-1", Name: "Reef dive", CreatedAt: now}))
	require.NoError(t, s.CreatePackage(ctx, &domain.Package{PackageID: "p2", AgencyID: "ag-1", Name: "Island week", CreatedAt: now.Add(time.Second)}))
	require.NoError(t, s.CreatePackage(ctx, &domain.Package{PackageID: "p3", AgencyID: "ag-2", Name: "City walk", CreatedAt: now}))

	pkgs, err := s.ListPackagesByAgency(ctx, "ag-1", store.Page{})
	require.NoError(t, err)
	require.Len(t, pkgs, 2)
	assert.Equal(t, "p1", pkgs[0].PackageID)
	assert.Equal(t, "p2", pkgs[1].PackageID)

	// Agency ownership cannot be moved by an update.
	require.NoError(t, s.UpdatePackage(ctx, &domain.Package{PackageID: "p3", AgencyID: "ag-1", Name: "City walk"}))
	p3, err := s.GetPackage(ctx, "p3")
	require.NoError(t, err)
	assert.Equal(t, "ag-2", p3.AgencyID)
}

func TestIncrementBookingCount(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	at := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

	found, err := s.IncrementBookingCount(ctx, "nobody", at)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.UpsertCustomer(ctx, &domain.Customer{UserID: "u1", FirstName: "Ana"}))
	found, err = s.IncrementBookingCount(ctx, "u1", at)
	require.NoError(t, err)
	assert.True(t, found)

	c, err := s.GetCustomer(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, c.BookingCount)
	require.NotNil(t, c.LastBookingAt)
	assert.True(t, c.LastBookingAt.Equal(at))
}

func TestInsertReservation_GuardSeesOnlyActiveSlots(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.InsertReservation(ctx, slotReservation("r1", "ag-1", "2026-11-01", "10:00", "11:00", domain.StatusConfirmed), nil))
	require.NoError(t, s.InsertReservation(ctx, slotReservation("r2", "ag-1", "2026-11-01", "12:00", "13:00", domain.StatusCancelled), nil))
	require.NoError(t, s.InsertReservation(ctx, slotReservation("r3", "ag-1", "2026-11-02", "10:00", "11:00", domain.StatusPending), nil))
	require.NoError(t, s.InsertReservation(ctx, slotReservation("r4", "ag-2", "2026-11-01", "10:00", "11:00", domain.StatusPending), nil))

	var seen []string
	guard := func(existing []*domain.Reservation) error {
		for _, r := range existing {
			seen = append(seen, r.ReservationID)
		}
		return nil
	}
	require.NoError(t, s.InsertReservation(ctx, slotReservation("r5", "ag-1", "2026-11-01", "14:00", "15:00", domain.StatusPending), guard))
	assert.Equal(t, []string{"r1"}, seen)
}

func TestInsertReservation_GuardVeto(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	veto := errors.New("taken")

	err := s.InsertReservation(ctx, slotReservation("r1", "ag-1", "2026-11-01", "10:00", "11:00", domain.StatusPending),
		func([]*domain.Reservation) error { return veto })
	assert.ErrorIs(t, err, veto)

	_, err = s.GetReservation(ctx, "r1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestInsertReservation_ConcurrentSameDay(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	taken := errors.New("taken")

	// Every guard rejects as soon as anything is booked, so at most one of the
	// concurrent inserts may land.
	guard := func(existing []*domain.Reservation) error {
		if len(existing) > 0 {
			return taken
		}
		return nil
	}

	const workers = 8
	var wg sync.WaitGroup
	results := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := "r" + string(rune('a'+i))
			results <- s.InsertReservation(ctx, slotReservation(id, "ag-1", "2026-11-01", "10:00", "11:00", domain.StatusPending), guard)
		}(i)
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, errors.Is(err, taken) || errors.Is(err, store.ErrContention), "unexpected error: %v", err)
	}
	assert.Equal(t, 1, succeeded)

	list, err := s.ListReservations(ctx, store.ReservationFilter{AgencyID: "ag-1", Date: "2026-11-01"})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestListReservations_Filters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	r1 := slotReservation("r1", "ag-1", "2026-11-01", "10:00", "11:00", domain.StatusPending)
	r2 := slotReservation("r2", "ag-1", "2026-11-02", "10:00", "11:00", domain.StatusConfirmed)
	r2.CreatedAt = r1.CreatedAt.Add(time.Minute)
	r3 := slotReservation("r3", "ag-2", "2026-11-01", "10:00", "11:00", domain.StatusPending)
	r3.CustomerID = "cust-2"
	for _, r := range []*domain.Reservation{r1, r2, r3} {
		require.NoError(t, s.InsertReservation(ctx, r, nil))
	}

	byAgency, err := s.ListReservations(ctx, store.ReservationFilter{AgencyID: "ag-1"})
	require.NoError(t, err)
	require.Len(t, byAgency, 2)
	assert.Equal(t, "r2", byAgency[0].ReservationID, "newest first")

	confirmed, err := s.ListReservations(ctx, store.ReservationFilter{AgencyID: "ag-1", Status: domain.StatusConfirmed})
	require.NoError(t, err)
	require.Len(t, confirmed, 1)
	assert.Equal(t, "r2", confirmed[0].ReservationID)

	byCustomer, err := s.ListReservations(ctx, store.ReservationFilter{CustomerID: "cust-2"})
	require.NoError(t, err)
	require.Len(t, byCustomer, 1)
	assert.Equal(t, "r3", byCustomer[0].ReservationID)
}

func TestUpdateReservationStatus_CompareAndSet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	r := slotReservation("r1", "ag-1", "2026-11-01", "10:00", "11:00", domain.StatusPending)
	require.NoError(t, s.InsertReservation(ctx, r, nil))

	confirmed := *r
	confirmed.Status = domain.StatusConfirmed
	require.NoError(t, s.UpdateReservationStatus(ctx, &confirmed, domain.StatusPending))

	stale := *r
	stale.Status = domain.StatusCancelled
	assert.ErrorIs(t, s.UpdateReservationStatus(ctx, &stale, domain.StatusPending), store.ErrStatusChanged)

	got, err := s.GetReservation(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, got.Status)

	assert.ErrorIs(t, s.UpdateReservationStatus(ctx, &domain.Reservation{ReservationID: "nope"}, domain.StatusPending), store.ErrNotFound)
}

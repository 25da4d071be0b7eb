package booking

import (
	"context"
	"testing"
	"time"

	"github.com/atifsayed22/bookit/applications/auth"
	badgerstore "github.com/atifsayed22/bookit/db/badger"
	"github.com/atifsayed22/bookit/domain"
	"github.com/atifsayed22/bookit/logger"
	"github.com/atifsayed22/bookit/store"

	"github.com/stretchr/testify/require"
)

var (
	owner    = auth.Principal{UserID: "owner-1", Email: "owner@lagoon.example", Role: auth.RoleAgencyOwner}
	rival    = auth.Principal{UserID: "owner-2", Email: "owner@rival.example", Role: auth.RoleAgencyOwner}
	admin    = auth.Principal{UserID: "admin-1", Role: auth.RoleAdmin}
	ana      = auth.Principal{UserID: "cust-1", Email: "ana@example.com", Name: "Ana D.", Role: auth.RoleCustomer}
	ben      = auth.Principal{UserID: "cust-2", Email: "ben@example.com", Role: auth.RoleCustomer}
	testDate = "2026-11-01"
)

type fixture struct {
	store  store.Store
	agency *domain.Agency
	slot   *domain.Package
	travel *domain.Package
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s, err := badgerstore.OpenInMemory(logger.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	ctx := context.Background()
	now := time.Now().UTC()
	f := &fixture{
		store:  s,
		agency: &domain.Agency{AgencyID: "ag-1", OwnerID: owner.UserID, Name: "Blue Lagoon", Active: true, CreatedAt: now},
		slot: &domain.Package{
			PackageID: "pkg-spa", AgencyID: "ag-1", Name: "Spa hour", Kind: domain.KindSlot,
			Price: 80, DurationMinutes: 60, Status: domain.PackageActive, CreatedAt: now,
		},
		travel: &domain.Package{
			PackageID: "pkg-bali", AgencyID: "ag-1", Name: "Bali 5D", Kind: domain.KindTravel,
			Price: 500, DurationDays: 5, PromoCode: "SAVE20", PromoDiscount: 20, PromoCodeActive: true,
			Status: domain.PackageActive, CreatedAt: now.Add(time.Second),
		},
	}
	require.NoError(t, s.CreateAgency(ctx, f.agency))
	require.NoError(t, s.CreatePackage(ctx, f.slot))
	require.NoError(t, s.CreatePackage(ctx, f.travel))
	return f
}

func (f *fixture) slotRequest(start string) Request {
	return Request{AgencyID: f.agency.AgencyID, PackageID: f.slot.PackageID, Date: testDate, Slot: &SlotRequest{StartTime: start}}
}

func (f *fixture) travelRequest(n int, promo string) Request {
	return Request{
		AgencyID:  f.agency.AgencyID,
		PackageID: f.travel.PackageID,
		Date:      testDate,
		Travel:    &TravelRequest{NumberOfTravelers: &n, PromoCode: promo},
	}
}

func (f *fixture) create(t *testing.T, p auth.Principal, req Request) *domain.Reservation {
	t.Helper()
	r, err := NewCreateReservationUC(logger.Discard(), f.store).Invoke(context.Background(), p, req)
	require.NoError(t, err)
	return r
}

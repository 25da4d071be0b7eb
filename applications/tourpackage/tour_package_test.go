package tourpackage

import (
	"context"
	"testing"

	"github.com/atifsayed22/bookit/applications/agency"
	"github.com/atifsayed22/bookit/applications/auth"
	"github.com/atifsayed22/bookit/apperror"
	badgerstore "github.com/atifsayed22/bookit/db/badger"
	"github.com/atifsayed22/bookit/domain"
	"github.com/atifsayed22/bookit/logger"
	"github.com/atifsayed22/bookit/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var owner = auth.Principal{UserID: "owner-1", Role: auth.RoleAgencyOwner}

func setup(t *testing.T) (store.Store, *domain.Agency) {
	t.Helper()
	s, err := badgerstore.OpenInMemory(logger.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	a, err := agency.NewCreateAgencyUC(logger.Discard(), s).Invoke(context.Background(), owner, []byte(`{"name":"Blue Lagoon"}`))
	require.NoError(t, err)
	return s, a
}

func TestCreatePackageUC(t *testing.T) {
	s, a := setup(t)
	ctx := context.Background()
	uc := NewCreatePackageUC(logger.Discard(), s, s)

	pkg, err := uc.Invoke(ctx, owner, a.AgencyID, []byte(`{"name":"Bali 5D","kind":"travel","price":500,"durationDays":5,"promoCode":" SAVE20 ","promoDiscount":20,"promoCodeActive":true}`))
	require.NoError(t, err)
	assert.Equal(t, a.AgencyID, pkg.AgencyID)
	assert.Equal(t, domain.KindTravel, pkg.Kind)
	assert.Equal(t, "SAVE20", pkg.PromoCode)
	assert.True(t, pkg.PromoCodeActive)
	assert.Equal(t, domain.PackageActive, pkg.Status)

	_, err = uc.Invoke(ctx, auth.Principal{UserID: "owner-2", Role: auth.RoleAgencyOwner}, a.AgencyID, []byte(`{"name":"x","kind":"slot"}`))
	assert.True(t, apperror.IsKind(err, apperror.Forbidden))

	_, err = uc.Invoke(ctx, owner, "nope", []byte(`{"name":"x","kind":"slot"}`))
	assert.True(t, apperror.IsKind(err, apperror.NotFound))

	_, err = uc.Invoke(ctx, owner, a.AgencyID, []byte(`{"name":"x","kind":"slot","promoDiscount":75}`))
	assert.True(t, apperror.IsKind(err, apperror.ValidationError))
}

func TestCreatePackageUC_PromoNeedsCode(t *testing.T) {
	s, a := setup(t)
	pkg, err := NewCreatePackageUC(logger.Discard(), s, s).Invoke(context.Background(), owner, a.AgencyID,
		[]byte(`{"name":"Spa","kind":"slot","price":40,"promoDiscount":10,"promoCodeActive":true}`))
	require.NoError(t, err)
	assert.False(t, pkg.PromoCodeActive)
}

func TestUpdatePackageUC(t *testing.T) {
	s, a := setup(t)
	ctx := context.Background()
	pkg, err := NewCreatePackageUC(logger.Discard(), s, s).Invoke(ctx, owner, a.AgencyID, []byte(`{"name":"Spa","kind":"slot","price":40}`))
	require.NoError(t, err)

	uc := NewUpdatePackageUC(logger.Discard(), s, s)
	updated, err := uc.Invoke(ctx, owner, pkg.PackageID, []byte(`{"name":"Spa Deluxe","kind":"slot","price":55,"durationMinutes":90,"status":"inactive"}`))
	require.NoError(t, err)
	assert.Equal(t, 55.0, updated.Price)
	assert.False(t, updated.IsActive())
	assert.True(t, pkg.CreatedAt.Equal(updated.CreatedAt))

	got, err := NewGetPackageUC(logger.Discard(), s).Invoke(ctx, pkg.PackageID)
	require.NoError(t, err)
	assert.Equal(t, 90, got.SlotMinutes())

	_, err = uc.Invoke(ctx, owner, "missing", []byte(`{"name":"x","kind":"slot"}`))
	assert.True(t, apperror.IsKind(err, apperror.NotFound))
}

func TestGetAgencyPackagesUC(t *testing.T) {
	s, a := setup(t)
	ctx := context.Background()
	create := NewCreatePackageUC(logger.Discard(), s, s)
	for _, name := range []string{"One", "Two"} {
		_, err := create.Invoke(ctx, owner, a.AgencyID, []byte(`{"name":"`+name+`","kind":"slot","price":1}`))
		require.NoError(t, err)
	}

	uc := NewGetAgencyPackagesUC(logger.Discard(), s, s)
	pkgs, err := uc.Invoke(ctx, a.AgencyID, store.Page{})
	require.NoError(t, err)
	assert.Len(t, pkgs, 2)

	_, err = uc.Invoke(ctx, "missing", store.Page{})
	assert.True(t, apperror.IsKind(err, apperror.NotFound))
}

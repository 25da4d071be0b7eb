package controllers

import (
	"testing"

	"github.com/atifsayed22/bookit/apperror"
	"github.com/atifsayed22/bookit/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeReservationRequest(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantKind  domain.PackageKind
		wantAg    string
		wantPkg   string
		wantDate  string
		wantNotes string
	}{
		{
			name:     "legacy slot payload",
			body:     `{"businessId":"ag","serviceId":"pkg","appointmentDate":"2026-11-01","startTime":"10:00","notes":"first visit"}`,
			wantKind: domain.KindSlot, wantAg: "ag", wantPkg: "pkg", wantDate: "2026-11-01", wantNotes: "first visit",
		},
		{
			name:     "travel by departure date",
			body:     `{"agencyId":"ag","packageId":"pkg","departureDate":"2026-11-01","customerNotes":"veg"}`,
			wantKind: domain.KindTravel, wantAg: "ag", wantPkg: "pkg", wantDate: "2026-11-01", wantNotes: "veg",
		},
		{
			name:     "traveler count wins over start time",
			body:     `{"agencyId":"ag","packageId":"pkg","appointmentDate":"2026-11-01","startTime":"10:00","numberOfTravelers":3}`,
			wantKind: domain.KindTravel, wantAg: "ag", wantPkg: "pkg", wantDate: "2026-11-01",
		},
		{
			name:     "new names win over legacy ones",
			body:     `{"agencyId":"new","businessId":"old","packageId":"p2","serviceId":"p1","startTime":"09:00","date":"2026-11-02"}`,
			wantKind: domain.KindSlot, wantAg: "new", wantPkg: "p2", wantDate: "2026-11-02",
		},
		{
			name:     "no variant",
			body:     `{"agencyId":"ag","packageId":"pkg","appointmentDate":"2026-11-01"}`,
			wantKind: "", wantAg: "ag", wantPkg: "pkg", wantDate: "2026-11-01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := decodeReservationRequest([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, req.Kind())
			assert.Equal(t, tt.wantAg, req.AgencyID)
			assert.Equal(t, tt.wantPkg, req.PackageID)
			assert.Equal(t, tt.wantDate, req.Date)
			assert.Equal(t, tt.wantNotes, req.Notes)
		})
	}
}

func TestDecodeReservationRequest_ClientTotals(t *testing.T) {
	req, err := decodeReservationRequest([]byte(`{"numberOfTravelers":2,"subtotal":1000,"totalAmount":900}`))
	require.NoError(t, err)
	require.NotNil(t, req.Client)
	assert.Equal(t, 900.0, *req.Client.Total)
	assert.Nil(t, req.Client.Discount)

	req, err = decodeReservationRequest([]byte(`{"startTime":"10:00"}`))
	require.NoError(t, err)
	assert.Nil(t, req.Client)
}

func TestDecodeReservationRequest_BadJSON(t *testing.T) {
	_, err := decodeReservationRequest([]byte(`{"numberOfTravelers":"two"}`))
	assert.True(t, apperror.IsKind(err, apperror.ValidationError))
}

package validations

import (
	"testing"

	"github.com/atifsayed22/bookit/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStruct_Package(t *testing.T) {
	tests := []struct {
		name       string
		req        PackageRequest
		wantKind   apperror.Kind
		wantFields []string
	}{
		{
			name: "valid travel package",
			req:  PackageRequest{Name: "Bali 5D", Kind: "travel", Price: 500, DurationDays: 5, PromoDiscount: 20},
		},
		{
			name:       "missing name and kind",
			req:        PackageRequest{Price: 10},
			wantKind:   apperror.MissingField,
			wantFields: []string{"name", "kind"},
		},
		{
			name:       "negative price",
			req:        PackageRequest{Name: "Spa", Kind: "slot", Price: -1},
			wantKind:   apperror.ValidationError,
			wantFields: []string{"price"},
		},
		{
			name:       "promo above fifty percent",
			req:        PackageRequest{Name: "Spa", Kind: "slot", Price: 10, PromoDiscount: 60},
			wantKind:   apperror.ValidationError,
			wantFields: []string{"promoDiscount"},
		},
		{
			name:       "unknown kind",
			req:        PackageRequest{Name: "Spa", Kind: "cruise"},
			wantKind:   apperror.ValidationError,
			wantFields: []string{"kind"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.req)
			if tt.wantKind == "" {
				require.NoError(t, err)
				return
			}

			var appErr *apperror.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.wantKind, appErr.Kind)
			assert.Equal(t, tt.wantFields, appErr.Fields)
		})
	}
}

func TestStruct_ProfileEmail(t *testing.T) {
	assert.NoError(t, Struct(ProfileRequest{FirstName: "Ana"}))
	assert.True(t, apperror.IsKind(Struct(ProfileRequest{FirstName: "Ana", Email: "nope"}), apperror.ValidationError))
}

package booking

import (
	"math"
	"testing"

	"github.com/atifsayed22/bookit/apperror"
	"github.com/atifsayed22/bookit/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTravelQuote(t *testing.T) {
	promoPkg := &domain.Package{Price: 500, PromoCode: "SAVE20", PromoDiscount: 20, PromoCodeActive: true}

	tests := []struct {
		name      string
		pkg       *domain.Package
		travelers int
		code      string
		want      Quote
	}{
		{
			name:      "no promo",
			pkg:       &domain.Package{Price: 500},
			travelers: 2,
			want:      Quote{Subtotal: 1000, Discount: 0, Total: 1000},
		},
		{
			name:      "valid promo",
			pkg:       promoPkg,
			travelers: 2,
			code:      "SAVE20",
			want:      Quote{Subtotal: 1000, Discount: 200, Total: 800, PromoApplied: true},
		},
		{
			name:      "promo matches case-insensitively and trimmed",
			pkg:       promoPkg,
			travelers: 1,
			code:      "  save20 ",
			want:      Quote{Subtotal: 500, Discount: 100, Total: 400, PromoApplied: true},
		},
		{
			name:      "wrong code gives no discount",
			pkg:       promoPkg,
			travelers: 2,
			code:      "SAVE30",
			want:      Quote{Subtotal: 1000, Total: 1000},
		},
		{
			name:      "inactive promo gives no discount",
			pkg:       &domain.Package{Price: 500, PromoCode: "SAVE20", PromoDiscount: 20},
			travelers: 2,
			code:      "SAVE20",
			want:      Quote{Subtotal: 1000, Total: 1000},
		},
		{
			name:      "amounts round to cents",
			pkg:       &domain.Package{Price: 19.99, PromoCode: "X", PromoDiscount: 15, PromoCodeActive: true},
			travelers: 3,
			code:      "x",
			want:      Quote{Subtotal: 59.97, Discount: 9, Total: 50.97, PromoApplied: true},
		},
		{
			name:      "free package",
			pkg:       &domain.Package{Price: 0},
			travelers: 4,
			want:      Quote{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TravelQuote(tt.pkg, tt.travelers, tt.code)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got.Total, 0.0)
			assert.LessOrEqual(t, got.Discount, got.Subtotal)
		})
	}
}

func TestSlotQuote(t *testing.T) {
	q := SlotQuote(&domain.Package{Price: 45, PromoCode: "X", PromoDiscount: 50, PromoCodeActive: true})
	assert.Equal(t, Quote{Subtotal: 45, Total: 45}, q)
}

func TestNewSlotWindow(t *testing.T) {
	tests := []struct {
		name      string
		start     int
		minutes   int
		wantStart string
		wantEnd   string
		wantErr   bool
	}{
		{name: "one hour", start: 10 * 60, minutes: 60, wantStart: "10:00", wantEnd: "11:00"},
		{name: "default length", start: 9*60 + 30, minutes: 0, wantStart: "09:30", wantEnd: "10:30"},
		{name: "odd length", start: 13*60 + 15, minutes: 50, wantStart: "13:15", wantEnd: "14:05"},
		{name: "ends at midnight", start: 23 * 60, minutes: 60, wantStart: "23:00", wantEnd: "24:00"},
		{name: "runs past midnight", start: 23*60 + 30, minutes: 60, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := NewSlotWindow(tt.start, tt.minutes)
			if tt.wantErr {
				assert.True(t, apperror.IsKind(err, apperror.ValidationError))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, w.StartClock())
			assert.Equal(t, tt.wantEnd, w.EndClock())

			want := tt.minutes
			if want == 0 {
				want = domain.DefaultSlotMinutes
			}
			assert.Equal(t, want, w.End-w.Start)
		})
	}
}

func TestSlotWindowOverlaps(t *testing.T) {
	held := SlotWindow{Start: 600, End: 660} // 10:00-11:00

	tests := []struct {
		name string
		w    SlotWindow
		want bool
	}{
		{"same slot", SlotWindow{600, 660}, true},
		{"starts inside", SlotWindow{630, 690}, true},
		{"ends inside", SlotWindow{570, 630}, true},
		{"contains", SlotWindow{540, 720}, true},
		{"back to back after", SlotWindow{660, 720}, false},
		{"back to back before", SlotWindow{540, 600}, false},
		{"far away", SlotWindow{900, 960}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, held.Overlaps(tt.w))
			assert.Equal(t, tt.want, tt.w.Overlaps(held))
		})
	}
}

func TestTravelerCount(t *testing.T) {
	n := func(v int) *int { return &v }

	got, err := travelerCount(&TravelRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, got)

	got, err = travelerCount(&TravelRequest{NumberOfTravelers: n(0)})
	require.NoError(t, err)
	assert.Equal(t, 1, got)

	got, err = travelerCount(&TravelRequest{NumberOfTravelers: n(25)})
	require.NoError(t, err)
	assert.Equal(t, 25, got)

	_, err = travelerCount(&TravelRequest{NumberOfTravelers: n(-2)})
	assert.True(t, apperror.IsKind(err, apperror.ValidationError))
}

func TestRosterFor(t *testing.T) {
	three := []domain.Traveler{{Name: " Ana "}, {Name: "Ben"}, {Name: "Cy"}}

	assert.Equal(t, []domain.Traveler{{Name: "Ana"}, {Name: "Ben"}}, rosterFor(three, 2))
	assert.Equal(t, []domain.Traveler{{Name: "Ana"}, {Name: "Ben"}, {Name: "Cy"}}, rosterFor(three, 4))
	assert.Empty(t, rosterFor(nil, 1))
	assert.Equal(t, " Ana ", three[0].Name)
}

func TestRosterFor_HugeCountAllocatesOnlyTheRoster(t *testing.T) {
	three := []domain.Traveler{{Name: "Ana"}, {Name: "Ben"}, {Name: "Cy"}}

	roster := rosterFor(three, math.MaxInt)
	assert.Len(t, roster, 3)
	assert.Empty(t, rosterFor(nil, math.MaxInt))
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "2026-11-01", want: "2026-11-01"},
		{in: " 2026-11-01 ", want: "2026-11-01"},
		{in: "2026-11-01T09:00:00Z", want: "2026-11-01"},
		{in: "2020-01-01", want: "2020-01-01"},
		{in: "01/11/2026", wantErr: true},
		{in: "2026-13-01", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.wantErr {
				assert.True(t, apperror.IsKind(err, apperror.ValidationError))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseClock(t *testing.T) {
	m, err := ParseClock("startTime", "10:30")
	require.NoError(t, err)
	assert.Equal(t, 630, m)

	for _, bad := range []string{"", "25:00", "10h30", "10:75"} {
		_, err := ParseClock("startTime", bad)
		assert.True(t, apperror.IsKind(err, apperror.ValidationError), bad)
	}
}

func TestRequestKind(t *testing.T) {
	assert.Equal(t, domain.KindSlot, Request{Slot: &SlotRequest{}}.Kind())
	assert.Equal(t, domain.KindTravel, Request{Travel: &TravelRequest{}}.Kind())
	assert.Equal(t, domain.PackageKind(""), Request{}.Kind())
}

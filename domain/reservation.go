package domain

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// Active statuses occupy a slot.
func (s Status) Active() bool {
	return s == StatusPending || s == StatusConfirmed
}

func (s Status) Valid() bool {
	return s.Active() || s == StatusCancelled
}

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

type Traveler struct {
	Name           string `json:"name" bson:"name"`
	Age            int    `json:"age,omitempty" bson:"age,omitempty"`
	PassportNumber string `json:"passportNumber,omitempty" bson:"passportNumber,omitempty"`
	Nationality    string `json:"nationality,omitempty" bson:"nationality,omitempty"`
}

// Reservation is the normalized, persisted booking record.
//
// CustomerName, CustomerEmail and CustomerPhone are a snapshot taken when the
// reservation is created. Later profile edits never touch them.
type Reservation struct {
	ReservationID string      `json:"reservationId" bson:"_id"`
	AgencyID      string      `json:"businessId" bson:"agencyId"`
	PackageID     string      `json:"serviceId" bson:"packageId"`
	PackageName   string      `json:"packageName" bson:"packageName"`
	Kind          PackageKind `json:"kind" bson:"kind"`
	CustomerID    string      `json:"customerId" bson:"customerId"`
	CustomerName  string      `json:"customerName" bson:"customerName"`
	CustomerEmail string      `json:"customerEmail" bson:"customerEmail"`
	CustomerPhone string      `json:"customerPhone,omitempty" bson:"customerPhone,omitempty"`

	Date            string `json:"date" bson:"date"`
	StartTime       string `json:"startTime,omitempty" bson:"startTime,omitempty"`
	EndTime         string `json:"endTime,omitempty" bson:"endTime,omitempty"`
	DurationMinutes int    `json:"durationMinutes,omitempty" bson:"durationMinutes,omitempty"`
	DurationDays    int    `json:"durationDays,omitempty" bson:"durationDays,omitempty"`

	NumberOfTravelers int        `json:"numberOfTravelers,omitempty" bson:"numberOfTravelers,omitempty"`
	Travelers         []Traveler `json:"travelers,omitempty" bson:"travelers,omitempty"`

	PromoCode    string  `json:"promoCode,omitempty" bson:"promoCode,omitempty"`
	PromoApplied bool    `json:"promoApplied" bson:"promoApplied"`
	Subtotal     float64 `json:"subtotal" bson:"subtotal"`
	Discount     float64 `json:"discount" bson:"discount"`
	TotalPrice   float64 `json:"totalPrice" bson:"totalPrice"`

	Status             Status `json:"status" bson:"status"`
	CustomerNotes      string `json:"customerNotes,omitempty" bson:"customerNotes,omitempty"`
	AgencyNotes        string `json:"agencyNotes,omitempty" bson:"agencyNotes,omitempty"`
	CancellationReason string `json:"cancellationReason,omitempty" bson:"cancellationReason,omitempty"`
	CancelledBy        string `json:"cancelledBy,omitempty" bson:"cancelledBy,omitempty"`

	CreatedAt   time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt" bson:"updatedAt"`
	ConfirmedAt *time.Time `json:"confirmedAt,omitempty" bson:"confirmedAt,omitempty"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty" bson:"cancelledAt,omitempty"`
}

// HoldsSlot reports whether r blocks a time slot for its agency and date.
func (r *Reservation) HoldsSlot() bool {
	return r.Kind == KindSlot && r.Status.Active()
}

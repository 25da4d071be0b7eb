package domain

import (
	"strings"
	"time"
)

// Customer is the profile a principal keeps with the marketplace.
type Customer struct {
	UserID        string     `json:"userId" bson:"_id"`
	FirstName     string     `json:"firstName" bson:"firstName"`
	LastName      string     `json:"lastName" bson:"lastName"`
	Email         string     `json:"email" bson:"email"`
	Phone         string     `json:"phone,omitempty" bson:"phone,omitempty"`
	BookingCount  int        `json:"bookingCount" bson:"bookingCount"`
	LastBookingAt *time.Time `json:"lastBookingAt,omitempty" bson:"lastBookingAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// FullName joins first and last name with a single space.
func (c *Customer) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(c.FirstName) + " " + strings.TrimSpace(c.LastName))
}

package domain

import "time"

// PackageKind tells the booking path which branch applies to a package.
type PackageKind string

const (
	KindSlot   PackageKind = "slot"
	KindTravel PackageKind = "travel"
)

const (
	PackageActive   = "active"
	PackageInactive = "inactive"
)

// DefaultSlotMinutes is used when a slot package has no duration set.
const DefaultSlotMinutes = 60

// MaxPromoDiscount is the upper bound, in percent, of a package promo.
const MaxPromoDiscount = 50

// Package is a bookable offering owned by exactly one agency.
type Package struct {
	PackageID       string      `json:"packageId" bson:"_id"`
	AgencyID        string      `json:"agencyId" bson:"agencyId"`
	Name            string      `json:"name" bson:"name"`
	Description     string      `json:"description,omitempty" bson:"description,omitempty"`
	Kind            PackageKind `json:"kind" bson:"kind"`
	Price           float64     `json:"price" bson:"price"`
	DurationMinutes int         `json:"durationMinutes,omitempty" bson:"durationMinutes,omitempty"`
	DurationDays    int         `json:"durationDays,omitempty" bson:"durationDays,omitempty"`
	PromoCode       string      `json:"promoCode,omitempty" bson:"promoCode,omitempty"`
	PromoDiscount   float64     `json:"promoDiscount,omitempty" bson:"promoDiscount,omitempty"`
	PromoCodeActive bool        `json:"promoCodeActive" bson:"promoCodeActive"`
	Status          string      `json:"status" bson:"status"`
	CreatedAt       time.Time   `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt" bson:"updatedAt"`
}

func (p *Package) IsActive() bool {
	return p.Status == PackageActive
}

// SlotMinutes returns the slot length, falling back to DefaultSlotMinutes.
func (p *Package) SlotMinutes() int {
	if p.DurationMinutes > 0 {
		return p.DurationMinutes
	}
	return DefaultSlotMinutes
}

package validations

// ========== CATALOG ==========

type AgencyRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Active      *bool  `json:"active"`
}

type PackageRequest struct {
	Name            string  `json:"name" validate:"required"`
	Description     string  `json:"description"`
	Kind            string  `json:"kind" validate:"required,oneof=slot travel"`
	Price           float64 `json:"price" validate:"gte=0"`
	DurationMinutes int     `json:"durationMinutes" validate:"gte=0,lte=1440"`
	DurationDays    int     `json:"durationDays" validate:"gte=0"`
	PromoCode       string  `json:"promoCode"`
	PromoDiscount   float64 `json:"promoDiscount" validate:"gte=0,lte=50"`
	PromoCodeActive bool    `json:"promoCodeActive"`
	Status          string  `json:"status" validate:"omitempty,oneof=active inactive"`
}

// ========== CUSTOMER ==========

type ProfileRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone"`
}

// ========== RESERVATIONS ==========

type CancelRequest struct {
	Reason string `json:"reason"`
}

type AgencyActionRequest struct {
	Notes string `json:"notes"`
}

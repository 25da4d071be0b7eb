package controllers

import (
	"encoding/json"
	"strings"

	"github.com/atifsayed22/bookit/applications/booking"
	"github.com/atifsayed22/bookit/apperror"
	"github.com/atifsayed22/bookit/domain"
)

// reservationPayload is the wire shape web clients send. Several fields
// have two accepted names.
type reservationPayload struct {
	BusinessID string `json:"businessId"`
	AgencyID   string `json:"agencyId"`
	ServiceID  string `json:"serviceId"`
	PackageID  string `json:"packageId"`

	AppointmentDate string `json:"appointmentDate"`
	DepartureDate   string `json:"departureDate"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`

	Notes         string `json:"notes"`
	CustomerNotes string `json:"customerNotes"`

	NumberOfTravelers *int              `json:"numberOfTravelers"`
	Travelers         []domain.Traveler `json:"travelers"`
	PromoCode         string            `json:"promoCode"`

	Subtotal    *float64 `json:"subtotal"`
	Discount    *float64 `json:"discount"`
	TotalAmount *float64 `json:"totalAmount"`
}

func firstOf(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// decodeReservationRequest picks the booking variant from the fields that
// are present: a traveler count, roster or departure date means travel,
// otherwise a start time means slot. With neither, the request carries no
// variant and the use case reports the missing start time.
func decodeReservationRequest(body []byte) (booking.Request, error) {
	var p reservationPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return booking.Request{}, apperror.Invalid("body", "request body is not valid JSON")
	}

	req := booking.Request{
		AgencyID:  firstOf(p.AgencyID, p.BusinessID),
		PackageID: firstOf(p.PackageID, p.ServiceID),
		Date:      firstOf(p.Date, p.DepartureDate, p.AppointmentDate),
		Notes:     firstOf(p.CustomerNotes, p.Notes),
	}

	switch {
	case p.NumberOfTravelers != nil || len(p.Travelers) > 0 || strings.TrimSpace(p.DepartureDate) != "":
		req.Travel = &booking.TravelRequest{
			NumberOfTravelers: p.NumberOfTravelers,
			Travelers:         p.Travelers,
			PromoCode:         p.PromoCode,
		}
	case strings.TrimSpace(p.StartTime) != "":
		req.Slot = &booking.SlotRequest{StartTime: p.StartTime}
	}

	if p.Subtotal != nil || p.Discount != nil || p.TotalAmount != nil {
		req.Client = &booking.ClientTotals{Subtotal: p.Subtotal, Discount: p.Discount, Total: p.TotalAmount}
	}
	return req, nil
}

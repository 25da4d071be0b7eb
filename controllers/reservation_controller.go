package controllers

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/atifsayed22/bookit/applications/booking"
	"github.com/atifsayed22/bookit/apperror"
	"github.com/atifsayed22/bookit/domain"
	"github.com/atifsayed22/bookit/store"
	"github.com/atifsayed22/bookit/validations"

	"github.com/labstack/echo/v4"
)

type ReservationController struct {
	log          *slog.Logger
	create       *booking.CreateReservationUC
	get          *booking.GetReservationUC
	listOwn      *booking.GetCustomerReservationsUC
	listByAgency *booking.GetAgencyReservationsUC
	cancel       *booking.CancelReservationUC
	agencyAction *booking.AgencyReservationActionUC
	voucher      *booking.GetVoucherUC
}

func NewReservationController(log *slog.Logger, s store.Store, voucherBaseURL string) *ReservationController {
	return &ReservationController{
		log:          log,
		create:       booking.NewCreateReservationUC(log, s),
		get:          booking.NewGetReservationUC(log, s),
		listOwn:      booking.NewGetCustomerReservationsUC(log, s),
		listByAgency: booking.NewGetAgencyReservationsUC(log, s),
		cancel:       booking.NewCancelReservationUC(log, s),
		agencyAction: booking.NewAgencyReservationActionUC(log, s),
		voucher:      booking.NewGetVoucherUC(log, s, voucherBaseURL),
	}
}

// Create handles POST /reservations.
func (ctl *ReservationController) Create(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, ctl.log, err)
	}
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return respondError(c, ctl.log, apperror.Invalid("body", "invalid request payload"))
	}

	req, err := decodeReservationRequest(payload)
	if err != nil {
		return respondError(c, ctl.log, err)
	}

	r, err := ctl.create.Invoke(c.Request().Context(), p, req)
	if err != nil {
		return respondError(c, ctl.log, err)
	}
	return c.JSON(http.StatusCreated, r)
}

// Get handles GET /reservations/:reservationID.
func (ctl *ReservationController) Get(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, ctl.log, err)
	}
	r, err := ctl.get.Invoke(c.Request().Context(), p, c.Param("reservationID"))
	if err != nil {
		return respondError(c, ctl.log, err)
	}
	return c.JSON(http.StatusOK, r)
}

// ListOwn handles GET /reservations.
func (ctl *ReservationController) ListOwn(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, ctl.log, err)
	}
	list, err := ctl.listOwn.Invoke(c.Request().Context(), p, domain.Status(c.QueryParam("status")), pageFromQuery(c))
	if err != nil {
		return respondError(c, ctl.log, err)
	}
	return c.JSON(http.StatusOK, list)
}

// ListByAgency handles GET /agencies/:agencyID/reservations.
func (ctl *ReservationController) ListByAgency(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, ctl.log, err)
	}
	list, err := ctl.listByAgency.Invoke(c.Request().Context(), p, c.Param("agencyID"),
		domain.Status(c.QueryParam("status")), c.QueryParam("date"), pageFromQuery(c))
	if err != nil {
		return respondError(c, ctl.log, err)
	}
	return c.JSON(http.StatusOK, list)
}

// Cancel handles PATCH /reservations/:reservationID/cancel by the customer.
func (ctl *ReservationController) Cancel(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, ctl.log, err)
	}
	var body validations.CancelRequest
	if err := bindOptional(c, &body); err != nil {
		return respondError(c, ctl.log, err)
	}

	r, err := ctl.cancel.Invoke(c.Request().Context(), p, c.Param("reservationID"), body.Reason)
	if err != nil {
		return respondError(c, ctl.log, err)
	}
	return c.JSON(http.StatusOK, r)
}

// AgencyConfirm handles PATCH /agencies/:agencyID/reservations/:reservationID/confirm.
func (ctl *ReservationController) AgencyConfirm(c echo.Context) error {
	return ctl.agencyTransition(c, booking.ActionConfirm)
}

// AgencyCancel handles PATCH /agencies/:agencyID/reservations/:reservationID/cancel.
func (ctl *ReservationController) AgencyCancel(c echo.Context) error {
	return ctl.agencyTransition(c, booking.ActionCancel)
}

func (ctl *ReservationController) agencyTransition(c echo.Context, action booking.Action) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, ctl.log, err)
	}
	var body validations.AgencyActionRequest
	if err := bindOptional(c, &body); err != nil {
		return respondError(c, ctl.log, err)
	}

	r, err := ctl.agencyAction.Invoke(c.Request().Context(), p, c.Param("agencyID"), c.Param("reservationID"), action, body.Notes)
	if err != nil {
		return respondError(c, ctl.log, err)
	}
	return c.JSON(http.StatusOK, r)
}

// Voucher handles GET /reservations/:reservationID/voucher.
func (ctl *ReservationController) Voucher(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, ctl.log, err)
	}
	r, pdf, err := ctl.voucher.Invoke(c.Request().Context(), p, c.Param("reservationID"))
	if err != nil {
		return respondError(c, ctl.log, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=voucher-%s.pdf", r.ReservationID))
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

// bindOptional decodes a JSON body when one was sent.
func bindOptional(c echo.Context, v any) error {
	if c.Request().ContentLength == 0 {
		return nil
	}
	if err := c.Bind(v); err != nil {
		return apperror.Invalid("body", "request body is not valid JSON")
	}
	return nil
}

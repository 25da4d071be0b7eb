package controllers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/atifsayed22/bookit/applications/customer"
	"github.com/atifsayed22/bookit/apperror"
	"github.com/atifsayed22/bookit/store"

	"github.com/labstack/echo/v4"
)

type ProfileController struct {
	log    *slog.Logger
	get    *customer.GetProfileUC
	upsert *customer.UpsertProfileUC
}

func NewProfileController(log *slog.Logger, s store.Store) *ProfileController {
	return &ProfileController{
		log:    log,
		get:    customer.NewGetProfileUC(log, s),
		upsert: customer.NewUpsertProfileUC(log, s),
	}
}

// Get handles GET /me/profile.
func (ctl *ProfileController) Get(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, ctl.log, err)
	}
	profile, err := ctl.get.Invoke(c.Request().Context(), p)
	if err != nil {
		return respondError(c, ctl.log, err)
	}
	return c.JSON(http.StatusOK, profile)
}

// Put handles PUT /me/profile.
func (ctl *ProfileController) Put(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, ctl.log, err)
	}
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return respondError(c, ctl.log, apperror.Invalid("body", "invalid request payload"))
	}

	profile, err := ctl.upsert.Invoke(c.Request().Context(), p, payload)
	if err != nil {
		return respondError(c, ctl.log, err)
	}
	return c.JSON(http.StatusOK, profile)
}

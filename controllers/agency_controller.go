package controllers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/atifsayed22/bookit/applications/agency"
	"github.com/atifsayed22/bookit/apperror"
	"github.com/atifsayed22/bookit/store"

	"github.com/labstack/echo/v4"
)

type AgencyController struct {
	log    *slog.Logger
	create *agency.CreateAgencyUC
	get    *agency.GetAgencyUC
	list   *agency.GetAllAgenciesUC
	update *agency.UpdateAgencyUC
}

func NewAgencyController(log *slog.Logger, s store.Store) *AgencyController {
	return &AgencyController{
		log:    log,
		create: agency.NewCreateAgencyUC(log, s),
		get:    agency.NewGetAgencyUC(log, s),
		list:   agency.NewGetAllAgenciesUC(log, s),
		update: agency.NewUpdateAgencyUC(log, s),
	}
}

// List handles GET /agencies.
func (ctl *AgencyController) List(c echo.Context) error {
	agencies, err := ctl.list.Invoke(c.Request().Context(), pageFromQuery(c))
	if err != nil {
		return respondError(c, ctl.log, err)
	}
	return c.JSON(http.StatusOK, agencies)
}

// Get handles GET /agencies/:agencyID.
func (ctl *AgencyController) Get(c echo.Context) error {
	a, err := ctl.get.Invoke(c.Request().Context(), c.Param("agencyID"))
	if err != nil {
		return respondError(c, ctl.log, err)
	}
	return c.JSON(http.StatusOK, a)
}

// Create handles POST /agencies.
func (ctl *AgencyController) Create(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, ctl.log, err)
	}
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return respondError(c, ctl.log, apperror.Invalid("body", "invalid request payload"))
	}

	a, err := ctl.create.Invoke(c.Request().Context(), p, payload)
	if err != nil {
		return respondError(c, ctl.log, err)
	}
	return c.JSON(http.StatusCreated, a)
}

// Update handles PUT /agencies/:agencyID.
func (ctl *AgencyController) Update(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, ctl.log, err)
	}
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return respondError(c, ctl.log, apperror.Invalid("body", "invalid request payload"))
	}

	a, err := ctl.update.Invoke(c.Request().Context(), p, c.Param("agencyID"), payload)
	if err != nil {
		return respondError(c, ctl.log, err)
	}
	return c.JSON(http.StatusOK, a)
}

package controllers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/atifsayed22/bookit/applications/tourpackage"
	"github.com/atifsayed22/bookit/apperror"
	"github.com/atifsayed22/bookit/store"

	"github.com/labstack/echo/v4"
)

type PackageController struct {
	log    *slog.Logger
	create *tourpackage.CreatePackageUC
	get    *tourpackage.GetPackageUC
	list   *tourpackage.GetAgencyPackagesUC
	update *tourpackage.UpdatePackageUC
}

func NewPackageController(log *slog.Logger, s store.Store) *PackageController {
	return &PackageController{
		log:    log,
		create: tourpackage.NewCreatePackageUC(log, s, s),
		get:    tourpackage.NewGetPackageUC(log, s),
		list:   tourpackage.NewGetAgencyPackagesUC(log, s, s),
		update: tourpackage.NewUpdatePackageUC(log, s, s),
	}
}

// ListByAgency handles GET /agencies/:agencyID/packages.
func (ctl *PackageController) ListByAgency(c echo.Context) error {
	pkgs, err := ctl.list.Invoke(c.Request().Context(), c.Param("agencyID"), pageFromQuery(c))
	if err != nil {
		return respondError(c, ctl.log, err)
	}
	return c.JSON(http.StatusOK, pkgs)
}

// Get handles GET /packages/:packageID.
func (ctl *PackageController) Get(c echo.Context) error {
	pkg, err := ctl.get.Invoke(c.Request().Context(), c.Param("packageID"))
	if err != nil {
		return respondError(c, ctl.log, err)
	}
	return c.JSON(http.StatusOK, pkg)
}

// Create handles POST /agencies/:agencyID/packages.
func (ctl *PackageController) Create(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, ctl.log, err)
	}
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return respondError(c, ctl.log, apperror.Invalid("body", "invalid request payload"))
	}

	pkg, err := ctl.create.Invoke(c.Request().Context(), p, c.Param("agencyID"), payload)
	if err != nil {
		return respondError(c, ctl.log, err)
	}
	return c.JSON(http.StatusCreated, pkg)
}

// Update handles PUT /packages/:packageID.
func (ctl *PackageController) Update(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, ctl.log, err)
	}
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return respondError(c, ctl.log, apperror.Invalid("body", "invalid request payload"))
	}

	pkg, err := ctl.update.Invoke(c.Request().Context(), p, c.Param("packageID"), payload)
	if err != nil {
		return respondError(c, ctl.log, err)
	}
	return c.JSON(http.StatusOK, pkg)
}

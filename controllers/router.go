package controllers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/atifsayed22/bookit/applications/auth"
	"github.com/atifsayed22/bookit/store"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type RouterConfig struct {
	Driver         string
	CORSOrigins    []string
	RequestTimeout time.Duration
	VoucherBaseURL string
}

// NewRouter builds the echo instance with every route registered.
func NewRouter(log *slog.Logger, s store.Store, authn *auth.Authenticator, cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	log.Info("[router] Configuring global middleware.")
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType},
	}))
	if cfg.RequestTimeout > 0 {
		e.Use(middleware.ContextTimeout(cfg.RequestTimeout))
	}

	agencies := NewAgencyController(log, s)
	packages := NewPackageController(log, s)
	profiles := NewProfileController(log, s)
	reservations := NewReservationController(log, s, cfg.VoucherBaseURL)

	// Middleware is attached per route so unknown /api/v1 paths stay 404.
	api := e.Group("/api/v1")
	jwt := authn.JWTAuthMiddleware
	manage := []echo.MiddlewareFunc{jwt, authn.RequireRoles(auth.RoleAgencyOwner, auth.RoleAdmin)}

	// --- 1. PUBLIC ROUTES ---
	log.Info("[router] Registering public catalog routes.")
	e.GET("/health", HealthController(cfg.Driver))

	api.GET("/agencies", agencies.List)
	api.GET("/agencies/:agencyID", agencies.Get)
	api.GET("/agencies/:agencyID/packages", packages.ListByAgency)
	api.GET("/packages/:packageID", packages.Get)

	// --- 2. PROTECTED ROUTES (JWT) ---
	log.Info("[router] Configuring '/api/v1' protected routes (JWT required).")
	api.GET("/me/profile", profiles.Get, jwt)
	api.PUT("/me/profile", profiles.Put, jwt)

	api.POST("/reservations", reservations.Create, jwt)
	api.GET("/reservations", reservations.ListOwn, jwt)
	api.GET("/reservations/:reservationID", reservations.Get, jwt)
	api.GET("/reservations/:reservationID/voucher", reservations.Voucher, jwt)
	api.PATCH("/reservations/:reservationID/cancel", reservations.Cancel, jwt)

	// --- 3. AGENCY ROUTES (JWT + agency owner or admin) ---
	log.Info("[router] Configuring agency management routes (agency_owner or admin).")
	api.POST("/agencies", agencies.Create, manage...)
	api.PUT("/agencies/:agencyID", agencies.Update, manage...)
	api.POST("/agencies/:agencyID/packages", packages.Create, manage...)
	api.PUT("/packages/:packageID", packages.Update, manage...)
	api.GET("/agencies/:agencyID/reservations", reservations.ListByAgency, manage...)
	api.PATCH("/agencies/:agencyID/reservations/:reservationID/confirm", reservations.AgencyConfirm, manage...)
	api.PATCH("/agencies/:agencyID/reservations/:reservationID/cancel", reservations.AgencyCancel, manage...)

	log.Info(fmt.Sprintf("[router] %d routes registered.", len(e.Routes())))
	return e
}

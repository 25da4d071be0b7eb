package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthController handles GET /health.
func HealthController(driver string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "store": driver})
	}
}

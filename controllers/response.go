package controllers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/atifsayed22/bookit/applications/auth"
	"github.com/atifsayed22/bookit/apperror"
	"github.com/atifsayed22/bookit/store"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error  string   `json:"error"`
	Code   string   `json:"code"`
	Fields []string `json:"fields,omitempty"`
}

// respondError maps business errors to their status and hides
// infrastructure errors behind a 500.
func respondError(c echo.Context, log *slog.Logger, err error) error {
	var e *apperror.Error
	if errors.As(err, &e) {
		return c.JSON(apperror.HTTPStatus(e.Kind), ErrorResponse{
			Error:  e.Message,
			Code:   string(e.Kind),
			Fields: e.Fields,
		})
	}

	log.Error(fmt.Sprintf("[http] %s %s failed: %v", c.Request().Method, c.Path(), err))
	return c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error: "internal server error",
		Code:  "INTERNAL",
	})
}

// principal returns the caller put on the context by the JWT middleware.
func principal(c echo.Context) (auth.Principal, error) {
	p, ok := auth.PrincipalFrom(c)
	if !ok {
		return auth.Principal{}, apperror.New(apperror.Unauthorized, "authorization token missing")
	}
	return p, nil
}

// pageFromQuery reads page (1-based) and limit. Bad values fall back to the
// defaults.
func pageFromQuery(c echo.Context) store.Page {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return store.Page{Offset: (page - 1) * limit, Limit: limit}
}

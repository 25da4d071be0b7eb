package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/atifsayed22/bookit/apperror"

	"github.com/labstack/echo/v4"
)

const principalKey = "principal"

// JWTAuthMiddleware rejects requests without a valid bearer token and puts
// the Principal on the echo context.
func (a *Authenticator) JWTAuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString := ""

		// Prefer Authorization header
		if authHeader := c.Request().Header.Get("Authorization"); authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		// Fallback: ?token= in query (voucher download links)
		if tokenString == "" {
			tokenString = c.QueryParam("token")
			if tokenString != "" {
				a.log.Info(fmt.Sprintf("[auth] Using token from query parameter for path: %s", c.Path()))
			}
		}

		if tokenString == "" {
			a.log.Warn("[auth] JWT check failed: No token in header or query.")
			return unauthorized(c, "Authorization token missing")
		}

		p, err := a.ParseToken(tokenString)
		if err != nil {
			a.log.Warn(fmt.Sprintf("[auth] Invalid or expired JWT: %v", err))
			return unauthorized(c, "Invalid or expired token")
		}

		SetPrincipal(c, p)
		a.log.Debug(fmt.Sprintf("[auth] JWT validated. UserID: %s, Role: %s", p.UserID, p.Role))
		return next(c)
	}
}

// RequireRoles lets the request through only for the listed roles.
func (a *Authenticator) RequireRoles(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := PrincipalFrom(c)
			if !ok {
				return unauthorized(c, "Authorization token missing")
			}
			for _, role := range roles {
				if p.Role == role {
					return next(c)
				}
			}

			a.log.Warn(fmt.Sprintf("[auth] RBAC FAILED for UserID %s on %s: role %q not in %v.", p.UserID, c.Path(), p.Role, roles))
			return c.JSON(http.StatusForbidden, map[string]any{
				"error": "Access Forbidden: insufficient role",
				"code":  apperror.Forbidden,
			})
		}
	}
}

func SetPrincipal(c echo.Context, p Principal) {
	c.Set(principalKey, p)
	c.Set("userID", p.UserID)
	c.Set("userRole", p.Role)
	c.Set("userEmail", p.Email)
}

func PrincipalFrom(c echo.Context) (Principal, bool) {
	p, ok := c.Get(principalKey).(Principal)
	return p, ok
}

func unauthorized(c echo.Context, msg string) error {
	return c.JSON(http.StatusUnauthorized, map[string]any{
		"error": msg,
		"code":  apperror.Unauthorized,
	})
}

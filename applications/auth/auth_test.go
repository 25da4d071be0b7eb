package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/atifsayed22/bookit/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	a := NewAuthenticator("test-secret", logger.Discard())
	in := Principal{UserID: "u-1", Email: "ana@example.com", Name: "Ana Diaz", Role: RoleAgencyOwner}

	token, err := a.GenerateJWT(in, time.Hour)
	require.NoError(t, err)

	out, err := a.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestParseToken_Rejects(t *testing.T) {
	a := NewAuthenticator("test-secret", logger.Discard())
	other := NewAuthenticator("other-secret", logger.Discard())

	foreign, err := other.GenerateJWT(Principal{UserID: "u-1", Role: RoleCustomer}, time.Hour)
	require.NoError(t, err)
	expired, err := a.GenerateJWT(Principal{UserID: "u-1", Role: RoleCustomer}, -time.Minute)
	require.NoError(t, err)

	for name, token := range map[string]string{"foreign": foreign, "expired": expired, "garbage": "abc.def"} {
		t.Run(name, func(t *testing.T) {
			_, err := a.ParseToken(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestParseToken_DefaultsRoleToCustomer(t *testing.T) {
	a := NewAuthenticator("test-secret", logger.Discard())
	token, err := a.GenerateJWT(Principal{UserID: "u-1", Email: "a@b.c"}, time.Hour)
	require.NoError(t, err)

	p, err := a.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, RoleCustomer, p.Role)
	assert.Equal(t, "a@b.c", p.DisplayName())
}

func TestJWTAuthMiddleware(t *testing.T) {
	a := NewAuthenticator("test-secret", logger.Discard())
	token, err := a.GenerateJWT(Principal{UserID: "u-9", Role: RoleCustomer}, time.Hour)
	require.NoError(t, err)

	handler := a.JWTAuthMiddleware(func(c echo.Context) error {
		p, ok := PrincipalFrom(c)
		require.True(t, ok)
		return c.String(http.StatusOK, p.UserID)
	})

	tests := []struct {
		name     string
		header   string
		query    string
		wantCode int
		wantBody string
	}{
		{name: "bearer header", header: "Bearer " + token, wantCode: http.StatusOK, wantBody: "u-9"},
		{name: "query fallback", query: "?token=" + token, wantCode: http.StatusOK, wantBody: "u-9"},
		{name: "missing", wantCode: http.StatusUnauthorized},
		{name: "bad token", header: "Bearer nope", wantCode: http.StatusUnauthorized},
	}

	e := echo.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/x"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			require.NoError(t, handler(e.NewContext(req, rec)))
			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestRequireRoles(t *testing.T) {
	a := NewAuthenticator("test-secret", logger.Discard())
	handler := a.RequireRoles(RoleAgencyOwner, RoleAdmin)(func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	e := echo.New()
	for role, want := range map[string]int{
		RoleAdmin:       http.StatusNoContent,
		RoleAgencyOwner: http.StatusNoContent,
		RoleCustomer:    http.StatusForbidden,
	} {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)
		SetPrincipal(c, Principal{UserID: "u", Role: role})

		require.NoError(t, handler(c))
		assert.Equal(t, want, rec.Code, role)
	}
}

package handler

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/24studio/finance-backend/internal/domain"
	"github.com/24studio/finance-backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// setupAuthContext injects a session principal for the given role onto the
// request, the way the session middleware would after parsing the cookie.
func setupAuthContext(c echo.Context, role domain.Role) {
	principal := &domain.SessionPrincipal{
		UserID: 1,
		Email:  "user@24studio.org",
		Role:   role,
		Name:   "Test User",
	}
	ctx := context.WithValue(c.Request().Context(), middleware.PrincipalKey, principal)
	c.SetRequest(c.Request().WithContext(ctx))
}

// setupAuthContextAs is like setupAuthContext but with an explicit user ID.
func setupAuthContextAs(c echo.Context, userID int32, role domain.Role) {
	principal := &domain.SessionPrincipal{
		UserID: userID,
		Email:  "user@24studio.org",
		Role:   role,
		Name:   "Test User",
	}
	ctx := context.WithValue(c.Request().Context(), middleware.PrincipalKey, principal)
	c.SetRequest(c.Request().WithContext(ctx))
}

// newJSONRequest builds an echo context for a JSON request body.
func newJSONRequest(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

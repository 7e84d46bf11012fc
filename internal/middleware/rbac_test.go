package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/24studio/finance-backend/internal/domain"
	"github.com/labstack/echo/v4"
)

func requestAs(e *echo.Echo, role domain.Role, path string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	principal := &domain.SessionPrincipal{
		UserID: 1,
		Email:  "user@24studio.org",
		Role:   role,
		Name:   "User",
	}
	req = req.WithContext(context.WithValue(req.Context(), PrincipalKey, principal))
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRequireAccess_PresidentEverywhere(t *testing.T) {
	e := echo.New()
	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	}

	for _, path := range []string{"/revenue", "/expenses", "/budget", "/settings", "/users", "/reports"} {
		c, rec := requestAs(e, domain.RolePresident, path)
		if err := RequireAccess()(handler)(c); err != nil {
			t.Fatalf("%s: expected no error, got %v", path, err)
		}
		if rec.Code != http.StatusOK {
			t.Errorf("%s: expected status 200, got %d", path, rec.Code)
		}
	}
}

func TestRequireAccess_RevenueTeamDeniedFinance(t *testing.T) {
	e := echo.New()
	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	}

	denied := []string{"/expenses", "/expenses/12", "/budget", "/settings", "/users"}
	for _, path := range denied {
		c, rec := requestAs(e, domain.RoleRevenueTeam, path)
		if err := RequireAccess()(handler)(c); err != nil {
			t.Fatalf("%s: expected no error, got %v", path, err)
		}
		if rec.Code != http.StatusForbidden {
			t.Errorf("%s: expected status 403, got %d", path, rec.Code)
		}
	}

	allowed := []string{"/revenue", "/donations", "/donors", "/reports", "/dashboard"}
	for _, path := range allowed {
		c, rec := requestAs(e, domain.RoleRevenueTeam, path)
		if err := RequireAccess()(handler)(c); err != nil {
			t.Fatalf("%s: expected no error, got %v", path, err)
		}
		if rec.Code != http.StatusOK {
			t.Errorf("%s: expected status 200, got %d", path, rec.Code)
		}
	}
}

func TestRequireAccess_FinanceTeamDeniedRevenue(t *testing.T) {
	e := echo.New()
	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	}

	denied := []string{"/revenue", "/donations", "/donors", "/settings", "/users"}
	for _, path := range denied {
		c, rec := requestAs(e, domain.RoleFinanceTeam, path)
		if err := RequireAccess()(handler)(c); err != nil {
			t.Fatalf("%s: expected no error, got %v", path, err)
		}
		if rec.Code != http.StatusForbidden {
			t.Errorf("%s: expected status 403, got %d", path, rec.Code)
		}
	}

	allowed := []string{"/expenses", "/budget", "/reports", "/dashboard"}
	for _, path := range allowed {
		c, rec := requestAs(e, domain.RoleFinanceTeam, path)
		if err := RequireAccess()(handler)(c); err != nil {
			t.Fatalf("%s: expected no error, got %v", path, err)
		}
		if rec.Code != http.StatusOK {
			t.Errorf("%s: expected status 200, got %d", path, rec.Code)
		}
	}
}

func TestRequireAccess_AnonymousRejected(t *testing.T) {
	e := echo.New()
	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	}

	req := httptest.NewRequest(http.MethodGet, "/revenue", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := RequireAccess()(handler)(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/24studio/finance-backend/internal/domain"
	"github.com/24studio/finance-backend/internal/middleware"
	"github.com/24studio/finance-backend/internal/service"
	"github.com/24studio/finance-backend/internal/testutil"
	"github.com/labstack/echo/v4"
)

func newAuthHandler(t *testing.T) (*AuthHandler, *testutil.MockUserRepository) {
	t.Helper()
	repo := testutil.NewMockUserRepository()
	hash, err := service.HashPassword("correct-horse")
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	repo.AddUser(&domain.User{
		ID:           1,
		Name:         "President",
		Email:        "president@24studio.org",
		PasswordHash: hash,
		Role:         domain.RolePresident,
		IsActive:     true,
	})
	sessions := middleware.NewSessionManager("test-secret-at-least-32-bytes-long!", 7*24*time.Hour, false)
	return NewAuthHandler(service.NewAuthService(repo), sessions), repo
}

func TestLogin_Success(t *testing.T) {
	e := echo.New()
	handler, _ := newAuthHandler(t)

	body := `{"email": "president@24studio.org", "password": "correct-horse"}`
	c, rec := newJSONRequest(e, http.MethodPost, "/api/v1/auth/login", body)

	if err := handler.Login(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var response SessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Role != string(domain.RolePresident) {
		t.Errorf("Expected role PRESIDENT, got %s", response.Role)
	}

	cookies := rec.Result().Cookies()
	var found bool
	for _, cookie := range cookies {
		if cookie.Name == middleware.SessionCookieName {
			found = true
			if cookie.Value == "" {
				t.Error("Expected non-empty session cookie")
			}
			if !cookie.HttpOnly {
				t.Error("Expected HttpOnly session cookie")
			}
		}
	}
	if !found {
		t.Error("Expected session cookie to be set")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	e := echo.New()
	handler, _ := newAuthHandler(t)

	body := `{"email": "president@24studio.org", "password": "wrong"}`
	c, rec := newJSONRequest(e, http.MethodPost, "/api/v1/auth/login", body)

	if err := handler.Login(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

func TestLogin_UnknownEmailSameStatus(t *testing.T) {
	e := echo.New()
	handler, _ := newAuthHandler(t)

	body := `{"email": "nobody@24studio.org", "password": "correct-horse"}`
	c, rec := newJSONRequest(e, http.MethodPost, "/api/v1/auth/login", body)

	if err := handler.Login(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401 for unknown email, got %d", rec.Code)
	}
}

func TestLogin_DeactivatedUser(t *testing.T) {
	e := echo.New()
	handler, repo := newAuthHandler(t)
	repo.Users[1].IsActive = false

	body := `{"email": "president@24studio.org", "password": "correct-horse"}`
	c, rec := newJSONRequest(e, http.MethodPost, "/api/v1/auth/login", body)

	if err := handler.Login(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", rec.Code)
	}
}

func TestLogout_ClearsCookie(t *testing.T) {
	e := echo.New()
	handler, _ := newAuthHandler(t)

	c, rec := newJSONRequest(e, http.MethodPost, "/api/v1/auth/logout", "")
	setupAuthContext(c, domain.RolePresident)

	if err := handler.Logout(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", rec.Code)
	}

	var cleared bool
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == middleware.SessionCookieName && cookie.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("Expected session cookie to be expired")
	}
}

func TestMe_ReturnsPrincipal(t *testing.T) {
	e := echo.New()
	handler, _ := newAuthHandler(t)

	c, rec := newJSONRequest(e, http.MethodGet, "/api/v1/auth/me", "")
	setupAuthContext(c, domain.RoleFinanceTeam)

	if err := handler.Me(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response SessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Role != string(domain.RoleFinanceTeam) {
		t.Errorf("Expected role FINANCE_TEAM, got %s", response.Role)
	}
}

func TestMe_Anonymous(t *testing.T) {
	e := echo.New()
	handler, _ := newAuthHandler(t)

	c, rec := newJSONRequest(e, http.MethodGet, "/api/v1/auth/me", "")

	if err := handler.Me(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

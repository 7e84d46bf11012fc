package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/24studio/finance-backend/internal/domain"
	"github.com/24studio/finance-backend/internal/service"
	"github.com/24studio/finance-backend/internal/testutil"
	"github.com/24studio/finance-backend/internal/ws"
	"github.com/labstack/echo/v4"
)

func newUserHandler(repo *testutil.MockUserRepository) *UserHandler {
	return NewUserHandler(service.NewUserService(repo), &ws.NoOpPublisher{})
}

func TestCreateUser_Success(t *testing.T) {
	e := echo.New()
	repo := testutil.NewMockUserRepository()
	handler := newUserHandler(repo)

	body := `{"name": "Karim", "email": "Karim@24studio.org", "password": "secret-pass", "role": "REVENUE_TEAM"}`
	c, rec := newJSONRequest(e, http.MethodPost, "/api/v1/users", body)
	setupAuthContext(c, domain.RolePresident)

	if err := handler.CreateUser(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var response UserResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Email != "karim@24studio.org" {
		t.Errorf("Expected lowercased email, got %s", response.Email)
	}
	if !response.IsActive {
		t.Error("Expected new user to be active")
	}
	if strings.Contains(rec.Body.String(), "password") || strings.Contains(rec.Body.String(), "Hash") {
		t.Error("Response must never carry password material")
	}
}

func TestCreateUser_ForbiddenForTeams(t *testing.T) {
	e := echo.New()
	repo := testutil.NewMockUserRepository()
	handler := newUserHandler(repo)

	for _, role := range []domain.Role{domain.RoleRevenueTeam, domain.RoleFinanceTeam} {
		body := `{"name": "Karim", "email": "karim@24studio.org", "password": "secret-pass", "role": "REVENUE_TEAM"}`
		c, rec := newJSONRequest(e, http.MethodPost, "/api/v1/users", body)
		setupAuthContext(c, role)

		if err := handler.CreateUser(c); err != nil {
			t.Fatalf("%s: expected no error, got %v", role, err)
		}
		if rec.Code != http.StatusForbidden {
			t.Errorf("%s: expected status 403, got %d", role, rec.Code)
		}
	}
	if len(repo.Users) != 0 {
		t.Errorf("Expected no users created, got %d", len(repo.Users))
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	e := echo.New()
	repo := testutil.NewMockUserRepository()
	repo.AddUser(&domain.User{
		ID:       1,
		Name:     "Existing",
		Email:    "karim@24studio.org",
		Role:     domain.RoleFinanceTeam,
		IsActive: true,
	})
	handler := newUserHandler(repo)

	body := `{"name": "Karim", "email": "karim@24studio.org", "password": "secret-pass", "role": "REVENUE_TEAM"}`
	c, rec := newJSONRequest(e, http.MethodPost, "/api/v1/users", body)
	setupAuthContext(c, domain.RolePresident)

	if err := handler.CreateUser(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", rec.Code)
	}
}

func TestCreateUser_InvalidRole(t *testing.T) {
	e := echo.New()
	handler := newUserHandler(testutil.NewMockUserRepository())

	body := `{"name": "Karim", "email": "karim@24studio.org", "password": "secret-pass", "role": "ADMIN"}`
	c, rec := newJSONRequest(e, http.MethodPost, "/api/v1/users", body)
	setupAuthContext(c, domain.RolePresident)

	if err := handler.CreateUser(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestToggleUserStatus_SelfRejected(t *testing.T) {
	e := echo.New()
	repo := testutil.NewMockUserRepository()
	repo.AddUser(&domain.User{
		ID:       1,
		Name:     "President",
		Email:    "president@24studio.org",
		Role:     domain.RolePresident,
		IsActive: true,
	})
	handler := newUserHandler(repo)

	c, rec := newJSONRequest(e, http.MethodPatch, "/api/v1/users/1/toggle-status", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	setupAuthContextAs(c, 1, domain.RolePresident)

	if err := handler.ToggleUserStatus(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for self-deactivation, got %d", rec.Code)
	}
	if !repo.Users[1].IsActive {
		t.Error("Expected user to stay active")
	}
}

func TestToggleUserStatus_DeactivatesOther(t *testing.T) {
	e := echo.New()
	repo := testutil.NewMockUserRepository()
	repo.AddUser(&domain.User{
		ID:       2,
		Name:     "Karim",
		Email:    "karim@24studio.org",
		Role:     domain.RoleRevenueTeam,
		IsActive: true,
	})
	handler := newUserHandler(repo)

	c, rec := newJSONRequest(e, http.MethodPatch, "/api/v1/users/2/toggle-status", "")
	c.SetParamNames("id")
	c.SetParamValues("2")
	setupAuthContextAs(c, 1, domain.RolePresident)

	if err := handler.ToggleUserStatus(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if repo.Users[2].IsActive {
		t.Error("Expected user to be deactivated")
	}
}

package service

import (
	"errors"
	"testing"

	"github.com/24studio/finance-backend/internal/domain"
	"github.com/24studio/finance-backend/internal/testutil"
)

func principalFor(role domain.Role) *domain.SessionPrincipal {
	return &domain.SessionPrincipal{
		UserID: 1,
		Email:  "actor@24studio.org",
		Role:   role,
		Name:   "Actor",
	}
}

func TestCreateUser(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	service := NewUserService(userRepo)

	user, err := service.CreateUser(principalFor(domain.RolePresident), CreateUserInput{
		Name:     "New Member",
		Email:    "Member@24studio.ORG",
		Password: "long-enough-password",
		Role:     domain.RoleRevenueTeam,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if user.Email != "member@24studio.org" {
		t.Errorf("expected lowercased email, got %s", user.Email)
	}
	if !user.IsActive {
		t.Error("new users must start active")
	}
	if user.PasswordHash == "long-enough-password" {
		t.Error("password must be stored hashed")
	}
}

func TestCreateUser_NonPresidentForbidden(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	service := NewUserService(userRepo)

	for _, role := range []domain.Role{domain.RoleRevenueTeam, domain.RoleFinanceTeam} {
		_, err := service.CreateUser(principalFor(role), CreateUserInput{
			Name:     "New Member",
			Email:    "member@24studio.org",
			Password: "long-enough-password",
			Role:     domain.RoleRevenueTeam,
		})
		if !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("%s: expected ErrForbidden, got: %v", role, err)
		}
	}
	if len(userRepo.Users) != 0 {
		t.Error("forbidden create must not write a row")
	}
}

func TestCreateUser_Validation(t *testing.T) {
	service := NewUserService(testutil.NewMockUserRepository())
	president := principalFor(domain.RolePresident)

	valid := CreateUserInput{
		Name:     "New Member",
		Email:    "member@24studio.org",
		Password: "long-enough-password",
		Role:     domain.RoleFinanceTeam,
	}

	tests := []struct {
		name    string
		mutate  func(*CreateUserInput)
		wantErr error
	}{
		{"empty name", func(i *CreateUserInput) { i.Name = "  " }, domain.ErrNameRequired},
		{"bad email", func(i *CreateUserInput) { i.Email = "not-an-email" }, domain.ErrInvalidEmail},
		{"short password", func(i *CreateUserInput) { i.Password = "short" }, domain.ErrPasswordTooShort},
		{"unknown role", func(i *CreateUserInput) { i.Role = "INTERN" }, domain.ErrInvalidRole},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := valid
			tt.mutate(&input)
			if _, err := service.CreateUser(president, input); !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got: %v", tt.wantErr, err)
			}
		})
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	service := NewUserService(userRepo)
	president := principalFor(domain.RolePresident)

	input := CreateUserInput{
		Name:     "New Member",
		Email:    "member@24studio.org",
		Password: "long-enough-password",
		Role:     domain.RoleFinanceTeam,
	}
	if _, err := service.CreateUser(president, input); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if _, err := service.CreateUser(president, input); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got: %v", err)
	}
}

func TestGetUsers_PresidentOnly(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	service := NewUserService(userRepo)

	if _, err := service.GetUsers(principalFor(domain.RoleFinanceTeam)); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got: %v", err)
	}
	if _, err := service.GetUsers(principalFor(domain.RolePresident)); err != nil {
		t.Errorf("expected no error, got: %v", err)
	}
}

func TestToggleUserStatus(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	service := NewUserService(userRepo)

	target := &domain.User{ID: 2, Email: "target@24studio.org", Role: domain.RoleRevenueTeam, IsActive: true}
	userRepo.AddUser(target)

	updated, err := service.ToggleUserStatus(principalFor(domain.RolePresident), 2)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if updated.IsActive {
		t.Error("expected user to be deactivated")
	}

	updated, err = service.ToggleUserStatus(principalFor(domain.RolePresident), 2)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !updated.IsActive {
		t.Error("expected user to be reactivated")
	}
}

func TestToggleUserStatus_SelfAlwaysForbidden(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	service := NewUserService(userRepo)

	self := &domain.User{ID: 1, Email: "actor@24studio.org", Role: domain.RolePresident, IsActive: true}
	userRepo.AddUser(self)

	// Even PRESIDENT cannot deactivate their own account
	_, err := service.ToggleUserStatus(principalFor(domain.RolePresident), 1)
	if !errors.Is(err, domain.ErrSelfDeactivation) {
		t.Errorf("expected ErrSelfDeactivation, got: %v", err)
	}
	if !self.IsActive {
		t.Error("self-toggle must not change the stored flag")
	}
}

func TestToggleUserStatus_NonPresidentForbidden(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	service := NewUserService(userRepo)
	userRepo.AddUser(&domain.User{ID: 2, Email: "target@24studio.org", Role: domain.RoleRevenueTeam, IsActive: true})

	_, err := service.ToggleUserStatus(principalFor(domain.RoleRevenueTeam), 2)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got: %v", err)
	}
}

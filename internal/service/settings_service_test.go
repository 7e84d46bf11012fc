package service

import (
	"errors"
	"testing"

	"github.com/24studio/finance-backend/internal/domain"
	"github.com/24studio/finance-backend/internal/testutil"
)

func TestGetSettings_LazyDefaults(t *testing.T) {
	service := NewSettingsService(testutil.NewMockSettingsRepository())

	settings, err := service.GetSettings()
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if settings.OrganizationName == "" {
		t.Error("expected default organization name")
	}
	if len(settings.RevenueCategories) == 0 || len(settings.ExpenseCategories) == 0 {
		t.Error("expected default category lists")
	}
}

func TestUpdateSettings(t *testing.T) {
	service := NewSettingsService(testutil.NewMockSettingsRepository())

	updated, err := service.UpdateSettings(principalFor(domain.RolePresident), UpdateSettingsInput{
		OrganizationName:    "  24Studio Foundation  ",
		OrganizationAddress: "Dhaka",
		FiscalYearStart:     7,
		FiscalYearEnd:       6,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if updated.OrganizationName != "24Studio Foundation" {
		t.Errorf("expected trimmed name, got %q", updated.OrganizationName)
	}
	if updated.FiscalYearStart != 7 {
		t.Errorf("expected fiscal year start 7, got %d", updated.FiscalYearStart)
	}
}

func TestUpdateSettings_PresidentOnly(t *testing.T) {
	service := NewSettingsService(testutil.NewMockSettingsRepository())

	for _, role := range []domain.Role{domain.RoleRevenueTeam, domain.RoleFinanceTeam} {
		_, err := service.UpdateSettings(principalFor(role), UpdateSettingsInput{
			OrganizationName: "X", FiscalYearStart: 1, FiscalYearEnd: 12,
		})
		if !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("%s: expected ErrForbidden, got: %v", role, err)
		}
	}
}

func TestUpdateSettings_Validation(t *testing.T) {
	service := NewSettingsService(testutil.NewMockSettingsRepository())
	president := principalFor(domain.RolePresident)

	if _, err := service.UpdateSettings(president, UpdateSettingsInput{
		OrganizationName: " ", FiscalYearStart: 1, FiscalYearEnd: 12,
	}); !errors.Is(err, domain.ErrNameRequired) {
		t.Errorf("expected ErrNameRequired, got: %v", err)
	}

	if _, err := service.UpdateSettings(president, UpdateSettingsInput{
		OrganizationName: "X", FiscalYearStart: 0, FiscalYearEnd: 12,
	}); !errors.Is(err, domain.ErrInvalidYear) {
		t.Errorf("expected ErrInvalidYear, got: %v", err)
	}
}

func TestUpdateCategories(t *testing.T) {
	service := NewSettingsService(testutil.NewMockSettingsRepository())

	updated, err := service.UpdateCategories(principalFor(domain.RolePresident),
		[]string{" Contribution ", "", "Event"},
		[]string{"Rent", "  "},
	)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(updated.RevenueCategories) != 2 {
		t.Errorf("expected 2 revenue categories, got %v", updated.RevenueCategories)
	}
	if updated.RevenueCategories[0] != "Contribution" {
		t.Errorf("expected trimmed category, got %q", updated.RevenueCategories[0])
	}
	if len(updated.ExpenseCategories) != 1 {
		t.Errorf("expected 1 expense category, got %v", updated.ExpenseCategories)
	}
}

func TestUpdateCategories_EmptyListRejected(t *testing.T) {
	service := NewSettingsService(testutil.NewMockSettingsRepository())

	_, err := service.UpdateCategories(principalFor(domain.RolePresident), []string{" "}, []string{"Rent"})
	if !errors.Is(err, domain.ErrCategoryRequired) {
		t.Errorf("expected ErrCategoryRequired, got: %v", err)
	}
}

func TestGetDatabaseStats_PresidentOnly(t *testing.T) {
	settingsRepo := testutil.NewMockSettingsRepository()
	settingsRepo.StatsFn = func() (*domain.DatabaseStats, error) {
		return &domain.DatabaseStats{Revenues: 3, Donors: 2}, nil
	}
	service := NewSettingsService(settingsRepo)

	if _, err := service.GetDatabaseStats(principalFor(domain.RoleFinanceTeam)); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got: %v", err)
	}

	stats, err := service.GetDatabaseStats(principalFor(domain.RolePresident))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if stats.Revenues != 3 {
		t.Errorf("expected 3 revenues, got %d", stats.Revenues)
	}
}

func TestResetAllTransactions(t *testing.T) {
	settingsRepo := testutil.NewMockSettingsRepository()
	resetCalled := false
	settingsRepo.ResetFn = func() error {
		resetCalled = true
		return nil
	}
	service := NewSettingsService(settingsRepo)

	if err := service.ResetAllTransactions(principalFor(domain.RoleFinanceTeam)); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got: %v", err)
	}
	if resetCalled {
		t.Fatal("forbidden reset must not reach the repository")
	}

	if err := service.ResetAllTransactions(principalFor(domain.RolePresident)); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !resetCalled {
		t.Error("expected reset to reach the repository")
	}
}

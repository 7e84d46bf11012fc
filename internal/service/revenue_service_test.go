package service

import (
	"errors"
	"testing"

	"github.com/24studio/finance-backend/internal/domain"
	"github.com/24studio/finance-backend/internal/testutil"
	"github.com/shopspring/decimal"
)

func revenueFixture(t *testing.T) (*RevenueService, *testutil.MockRevenueRepository, *testutil.MockAccountRepository) {
	t.Helper()
	accountRepo := testutil.NewMockAccountRepository()
	revenueRepo := testutil.NewMockRevenueRepository()
	revenueRepo.Accounts = accountRepo

	accountRepo.Create(&domain.Account{
		Name:           "Main Bank",
		Type:           domain.AccountTypeBank,
		CurrentBalance: decimal.NewFromInt(1000),
	})
	return NewRevenueService(revenueRepo), revenueRepo, accountRepo
}

func receivedInput(accountID int32) CreateRevenueInput {
	return CreateRevenueInput{
		Date:          "2026-02-01",
		Amount:        decimal.NewFromInt(300),
		Category:      "Membership Fee",
		Source:        "Member dues",
		PaymentMethod: "Bank Transfer",
		AccountID:     &accountID,
		Status:        domain.RevenueStatusReceived,
	}
}

func TestCreateRevenue_ReceivedIncrementsBalance(t *testing.T) {
	service, _, accountRepo := revenueFixture(t)

	revenue, err := service.CreateRevenue(principalFor(domain.RoleRevenueTeam), receivedInput(1))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if revenue.RecordedByID != 1 {
		t.Errorf("expected recorder 1, got %d", revenue.RecordedByID)
	}

	account, _ := accountRepo.GetByID(1)
	if !account.CurrentBalance.Equal(decimal.NewFromInt(1300)) {
		t.Errorf("expected balance 1300, got %s", account.CurrentBalance.String())
	}
}

func TestCreateRevenue_PendingLeavesBalance(t *testing.T) {
	service, _, accountRepo := revenueFixture(t)

	input := receivedInput(1)
	input.Status = domain.RevenueStatusPending
	if _, err := service.CreateRevenue(principalFor(domain.RoleRevenueTeam), input); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	account, _ := accountRepo.GetByID(1)
	if !account.CurrentBalance.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("expected balance 1000, got %s", account.CurrentBalance.String())
	}
}

func TestCreateRevenue_FinanceTeamForbidden(t *testing.T) {
	service, revenueRepo, _ := revenueFixture(t)

	_, err := service.CreateRevenue(principalFor(domain.RoleFinanceTeam), receivedInput(1))
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got: %v", err)
	}
	if len(revenueRepo.Revenues) != 0 {
		t.Error("forbidden create must not write a row")
	}
}

func TestCreateRevenue_Validation(t *testing.T) {
	service, _, _ := revenueFixture(t)
	principal := principalFor(domain.RolePresident)

	input := receivedInput(1)
	input.Amount = decimal.NewFromInt(-5)
	if _, err := service.CreateRevenue(principal, input); !errors.Is(err, domain.ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got: %v", err)
	}

	input = receivedInput(1)
	input.Category = ""
	if _, err := service.CreateRevenue(principal, input); !errors.Is(err, domain.ErrCategoryRequired) {
		t.Errorf("expected ErrCategoryRequired, got: %v", err)
	}

	input = receivedInput(1)
	input.Source = " "
	if _, err := service.CreateRevenue(principal, input); !errors.Is(err, domain.ErrSourceRequired) {
		t.Errorf("expected ErrSourceRequired, got: %v", err)
	}

	input = receivedInput(1)
	input.Status = "Cancelled"
	if _, err := service.CreateRevenue(principal, input); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got: %v", err)
	}
}

func TestDeleteRevenue_ReversesBalance(t *testing.T) {
	service, _, accountRepo := revenueFixture(t)

	revenue, err := service.CreateRevenue(principalFor(domain.RolePresident), receivedInput(1))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if err := service.DeleteRevenue(principalFor(domain.RolePresident), revenue.ID); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	account, _ := accountRepo.GetByID(1)
	if !account.CurrentBalance.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("expected balance back to 1000, got %s", account.CurrentBalance.String())
	}
}

func TestDeleteRevenue_RevenueTeamOwnOnly(t *testing.T) {
	service, revenueRepo, _ := revenueFixture(t)

	recorder := principalFor(domain.RoleRevenueTeam)
	revenue, err := service.CreateRevenue(recorder, receivedInput(1))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	// A different revenue-team member may not delete someone else's entry
	other := &domain.SessionPrincipal{UserID: 99, Role: domain.RoleRevenueTeam}
	if err := service.DeleteRevenue(other, revenue.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got: %v", err)
	}
	if _, err := revenueRepo.GetByID(revenue.ID); err != nil {
		t.Error("forbidden delete must leave the row intact")
	}

	// The original recorder may
	if err := service.DeleteRevenue(recorder, revenue.ID); err != nil {
		t.Errorf("expected no error, got: %v", err)
	}
}

func TestDeleteRevenue_PresidentAny(t *testing.T) {
	service, _, _ := revenueFixture(t)

	revenue, err := service.CreateRevenue(principalFor(domain.RoleRevenueTeam), receivedInput(1))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	president := &domain.SessionPrincipal{UserID: 50, Role: domain.RolePresident}
	if err := service.DeleteRevenue(president, revenue.ID); err != nil {
		t.Errorf("expected no error, got: %v", err)
	}
}

func TestDeleteRevenue_NotFound(t *testing.T) {
	service, _, _ := revenueFixture(t)

	err := service.DeleteRevenue(principalFor(domain.RolePresident), 404)
	if !errors.Is(err, domain.ErrRevenueNotFound) {
		t.Errorf("expected ErrRevenueNotFound, got: %v", err)
	}
}

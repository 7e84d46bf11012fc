package service

import (
	"errors"
	"testing"

	"github.com/24studio/finance-backend/internal/domain"
	"github.com/24studio/finance-backend/internal/testutil"
	"github.com/shopspring/decimal"
)

func donationFixture(t *testing.T) (*DonationService, *testutil.MockAccountRepository, *testutil.MockDonorRepository) {
	t.Helper()
	accountRepo := testutil.NewMockAccountRepository()
	donorRepo := testutil.NewMockDonorRepository()
	donationRepo := testutil.NewMockDonationRepository()
	donationRepo.Accounts = accountRepo
	donationRepo.Donors = donorRepo

	accountRepo.Create(&domain.Account{
		Name:           "Main Bank",
		Type:           domain.AccountTypeBank,
		CurrentBalance: decimal.NewFromInt(1000),
	})
	donorRepo.Create(&domain.Donor{
		Name:         "Acme Corp",
		Status:       domain.DonorStatusExternal,
		TotalDonated: decimal.Zero,
	})

	return NewDonationService(donationRepo), accountRepo, donorRepo
}

func TestCreateDonation_Cascade(t *testing.T) {
	service, accountRepo, donorRepo := donationFixture(t)

	donation, err := service.CreateDonation(principalFor(domain.RoleRevenueTeam), CreateDonationInput{
		DonorID:       1,
		Date:          "2026-03-15",
		Amount:        decimal.NewFromInt(250),
		Type:          "Zakat",
		PaymentMethod: "Bank Transfer",
		AccountID:     1,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if donation.RecordedByID != 1 {
		t.Errorf("expected recorder 1, got %d", donation.RecordedByID)
	}

	// Account balance and donor totals move with the insert
	account, _ := accountRepo.GetByID(1)
	if !account.CurrentBalance.Equal(decimal.NewFromInt(1250)) {
		t.Errorf("expected balance 1250, got %s", account.CurrentBalance.String())
	}
	donor, _ := donorRepo.GetByID(1)
	if !donor.TotalDonated.Equal(decimal.NewFromInt(250)) {
		t.Errorf("expected total donated 250, got %s", donor.TotalDonated.String())
	}
	if donor.LastDonationDate == nil || !donor.LastDonationDate.Equal(donation.Date) {
		t.Error("expected last donation date to track the new donation")
	}
}

func TestCreateDonation_FinanceTeamForbidden(t *testing.T) {
	service, accountRepo, _ := donationFixture(t)

	_, err := service.CreateDonation(principalFor(domain.RoleFinanceTeam), CreateDonationInput{
		DonorID:       1,
		Date:          "2026-03-15",
		Amount:        decimal.NewFromInt(250),
		Type:          "Zakat",
		PaymentMethod: "Cash",
		AccountID:     1,
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got: %v", err)
	}

	// Forbidden create must leave every balance untouched
	account, _ := accountRepo.GetByID(1)
	if !account.CurrentBalance.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("expected balance 1000, got %s", account.CurrentBalance.String())
	}
}

func TestCreateDonation_Validation(t *testing.T) {
	service, _, _ := donationFixture(t)
	principal := principalFor(domain.RolePresident)

	_, err := service.CreateDonation(principal, CreateDonationInput{
		DonorID: 1, Date: "2026-03-15", Amount: decimal.Zero, Type: "Zakat", AccountID: 1,
	})
	if !errors.Is(err, domain.ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got: %v", err)
	}

	_, err = service.CreateDonation(principal, CreateDonationInput{
		DonorID: 1, Date: "2026-03-15", Amount: decimal.NewFromInt(10), Type: "  ", AccountID: 1,
	})
	if !errors.Is(err, domain.ErrCategoryRequired) {
		t.Errorf("expected ErrCategoryRequired, got: %v", err)
	}

	_, err = service.CreateDonation(principal, CreateDonationInput{
		DonorID: 1, Date: "15/03/2026", Amount: decimal.NewFromInt(10), Type: "Zakat", AccountID: 1,
	})
	if !errors.Is(err, domain.ErrDateRequired) {
		t.Errorf("expected ErrDateRequired, got: %v", err)
	}
}

func TestCreateDonation_UnknownDonor(t *testing.T) {
	service, _, _ := donationFixture(t)

	_, err := service.CreateDonation(principalFor(domain.RolePresident), CreateDonationInput{
		DonorID:       42,
		Date:          "2026-03-15",
		Amount:        decimal.NewFromInt(10),
		Type:          "Zakat",
		PaymentMethod: "Cash",
		AccountID:     1,
	})
	if !errors.Is(err, domain.ErrDonorNotFound) {
		t.Errorf("expected ErrDonorNotFound, got: %v", err)
	}
}

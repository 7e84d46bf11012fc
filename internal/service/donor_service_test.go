package service

import (
	"errors"
	"testing"
	"time"

	"github.com/24studio/finance-backend/internal/domain"
	"github.com/24studio/finance-backend/internal/testutil"
	"github.com/shopspring/decimal"
)

func TestCreateDonor(t *testing.T) {
	donorRepo := testutil.NewMockDonorRepository()
	service := NewDonorService(donorRepo, testutil.NewMockDonationRepository())

	email := "acme@example.com"
	donor, err := service.CreateDonor(principalFor(domain.RoleRevenueTeam), CreateDonorInput{
		Name:   "  Acme Corp ",
		Email:  &email,
		Status: domain.DonorStatusExternal,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if donor.Name != "Acme Corp" {
		t.Errorf("expected trimmed name, got %q", donor.Name)
	}
	if !donor.TotalDonated.Equal(decimal.Zero) {
		t.Errorf("expected total donated 0, got %s", donor.TotalDonated.String())
	}
}

func TestCreateDonor_FinanceTeamForbidden(t *testing.T) {
	donorRepo := testutil.NewMockDonorRepository()
	service := NewDonorService(donorRepo, testutil.NewMockDonationRepository())

	_, err := service.CreateDonor(principalFor(domain.RoleFinanceTeam), CreateDonorInput{
		Name:   "Acme Corp",
		Status: domain.DonorStatusExternal,
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got: %v", err)
	}
	if len(donorRepo.Donors) != 0 {
		t.Error("forbidden create must not write a row")
	}
}

func TestCreateDonor_Validation(t *testing.T) {
	service := NewDonorService(testutil.NewMockDonorRepository(), testutil.NewMockDonationRepository())
	president := principalFor(domain.RolePresident)

	if _, err := service.CreateDonor(president, CreateDonorInput{Name: " ", Status: domain.DonorStatusInternal}); !errors.Is(err, domain.ErrNameRequired) {
		t.Errorf("expected ErrNameRequired, got: %v", err)
	}
	if _, err := service.CreateDonor(president, CreateDonorInput{Name: "Acme", Status: "Anonymous"}); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got: %v", err)
	}
}

func TestGetDonorProfile(t *testing.T) {
	donorRepo := testutil.NewMockDonorRepository()
	donationRepo := testutil.NewMockDonationRepository()
	donationRepo.Donors = donorRepo
	service := NewDonorService(donorRepo, donationRepo)

	donorRepo.Create(&domain.Donor{
		Name:         "Acme Corp",
		Status:       domain.DonorStatusExternal,
		TotalDonated: decimal.Zero,
	})

	now := time.Now().UTC()
	thisMonth := time.Date(now.Year(), now.Month(), 10, 0, 0, 0, 0, time.UTC)
	// A different month of the same year, picked so it never collides
	// with the current month
	otherMonth := time.January
	if now.Month() == time.January {
		otherMonth = time.February
	}
	earlierThisYear := time.Date(now.Year(), otherMonth, 10, 0, 0, 0, 0, time.UTC)
	lastYear := thisMonth.AddDate(-1, 0, 0)

	for _, d := range []struct {
		date   time.Time
		amount int64
	}{
		{thisMonth, 100},
		{earlierThisYear, 250},
		{lastYear, 1000},
	} {
		if _, err := donationRepo.Create(&domain.Donation{
			DonorID: 1,
			Date:    d.date,
			Amount:  decimal.NewFromInt(d.amount),
			Type:    "Zakat",
		}); err != nil {
			t.Fatalf("failed to seed donation: %v", err)
		}
	}

	profile, err := service.GetDonorProfile(1)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if !profile.Stats.LifetimeDonated.Equal(decimal.NewFromInt(1350)) {
		t.Errorf("expected lifetime 1350, got %s", profile.Stats.LifetimeDonated.String())
	}
	if !profile.Stats.YearlyDonated.Equal(decimal.NewFromInt(350)) {
		t.Errorf("expected yearly 350, got %s", profile.Stats.YearlyDonated.String())
	}
	if !profile.Stats.MonthlyDonated.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected monthly 100, got %s", profile.Stats.MonthlyDonated.String())
	}
	if len(profile.History) != 3 {
		t.Errorf("expected 3 history rows, got %d", len(profile.History))
	}
}

func TestGetDonorProfile_NotFound(t *testing.T) {
	service := NewDonorService(testutil.NewMockDonorRepository(), testutil.NewMockDonationRepository())

	_, err := service.GetDonorProfile(404)
	if !errors.Is(err, domain.ErrDonorNotFound) {
		t.Errorf("expected ErrDonorNotFound, got: %v", err)
	}
}

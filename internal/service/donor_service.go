package service

import (
	"strings"
	"time"

	"github.com/24studio/finance-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// DonorService handles donor business logic
type DonorService struct {
	donorRepo    domain.DonorRepository
	donationRepo domain.DonationRepository
}

// NewDonorService creates a new DonorService
func NewDonorService(donorRepo domain.DonorRepository, donationRepo domain.DonationRepository) *DonorService {
	return &DonorService{donorRepo: donorRepo, donationRepo: donationRepo}
}

// CreateDonorInput holds the input for creating a donor
type CreateDonorInput struct {
	Name                       string
	Email                      *string
	Phone                      *string
	Address                    *string
	NationalID                 *string
	Status                     domain.DonorStatus
	YearlyContributionRequired *decimal.Decimal
}

// CreateDonor registers a new donor. Donors are append-only.
func (s *DonorService) CreateDonor(principal *domain.SessionPrincipal, input CreateDonorInput) (*domain.Donor, error) {
	if !principal.Role.CanRecordRevenue() {
		return nil, domain.ErrForbidden
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxNameLength {
		return nil, domain.ErrNameTooLong
	}
	if !input.Status.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	donor := &domain.Donor{
		Name:                       name,
		Email:                      input.Email,
		Phone:                      input.Phone,
		Address:                    input.Address,
		NationalID:                 input.NationalID,
		Status:                     input.Status,
		YearlyContributionRequired: input.YearlyContributionRequired,
		TotalDonated:               decimal.Zero,
	}
	return s.donorRepo.Create(donor)
}

// GetDonors retrieves all donors, most recent donation first
func (s *DonorService) GetDonors() ([]*domain.Donor, error) {
	return s.donorRepo.GetAll()
}

// GetDonorProfile returns a donor with donation history and giving stats.
// Yearly and monthly figures cover the current calendar year and month.
func (s *DonorService) GetDonorProfile(id int32) (*domain.DonorProfile, error) {
	donor, err := s.donorRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	history, err := s.donationRepo.GetByDonor(id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	stats := domain.DonorStats{
		YearlyDonated:    decimal.Zero,
		MonthlyDonated:   decimal.Zero,
		LifetimeDonated:  donor.TotalDonated,
		LastDonationDate: donor.LastDonationDate,
	}
	for _, donation := range history {
		if donation.Date.Year() == now.Year() {
			stats.YearlyDonated = stats.YearlyDonated.Add(donation.Amount)
			if donation.Date.Month() == now.Month() {
				stats.MonthlyDonated = stats.MonthlyDonated.Add(donation.Amount)
			}
		}
	}

	return &domain.DonorProfile{
		Donor:   donor,
		Stats:   stats,
		History: history,
	}, nil
}

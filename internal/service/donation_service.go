package service

import (
	"strings"

	"github.com/24studio/finance-backend/internal/domain"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// DonationService handles donation business logic
type DonationService struct {
	donationRepo domain.DonationRepository
}

// NewDonationService creates a new DonationService
func NewDonationService(donationRepo domain.DonationRepository) *DonationService {
	return &DonationService{donationRepo: donationRepo}
}

// CreateDonationInput holds the input for recording a donation
type CreateDonationInput struct {
	DonorID            int32
	Date               string
	Amount             decimal.Decimal
	Type               string
	PaymentMethod      string
	AccountID          int32
	TransactionRef     *string
	Purpose            *string
	TaxReceiptRequired bool
	ReceiptPath        *string
}

// CreateDonation records a donation. The account balance and the donor's
// derived totals move atomically with the insert; donations are immutable
// once recorded.
func (s *DonationService) CreateDonation(principal *domain.SessionPrincipal, input CreateDonationInput) (*domain.Donation, error) {
	if !principal.Role.CanRecordRevenue() {
		return nil, domain.ErrForbidden
	}

	if !input.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	donationType := strings.TrimSpace(input.Type)
	if donationType == "" {
		return nil, domain.ErrCategoryRequired
	}
	date, err := parseDate(input.Date)
	if err != nil {
		return nil, domain.ErrDateRequired
	}

	donation := &domain.Donation{
		DonorID:            input.DonorID,
		Date:               date,
		Amount:             input.Amount,
		Type:               donationType,
		PaymentMethod:      input.PaymentMethod,
		AccountID:          input.AccountID,
		TransactionRef:     input.TransactionRef,
		Purpose:            input.Purpose,
		TaxReceiptRequired: input.TaxReceiptRequired,
		ReceiptPath:        input.ReceiptPath,
		RecordedByID:       principal.UserID,
	}

	created, err := s.donationRepo.Create(donation)
	if err != nil {
		return nil, err
	}
	log.Info().
		Int32("donation_id", created.ID).
		Int32("donor_id", created.DonorID).
		Str("amount", created.Amount.String()).
		Msg("Donation recorded")
	return created, nil
}

// GetDonations retrieves recent donations, newest first
func (s *DonationService) GetDonations() ([]*domain.Donation, error) {
	return s.donationRepo.GetAll()
}

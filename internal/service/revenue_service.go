package service

import (
	"strings"

	"github.com/24studio/finance-backend/internal/domain"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// RevenueService handles revenue business logic
type RevenueService struct {
	revenueRepo domain.RevenueRepository
}

// NewRevenueService creates a new RevenueService
func NewRevenueService(revenueRepo domain.RevenueRepository) *RevenueService {
	return &RevenueService{revenueRepo: revenueRepo}
}

// CreateRevenueInput holds the input for recording revenue
type CreateRevenueInput struct {
	Date           string
	Amount         decimal.Decimal
	Category       string
	Source         string
	PaymentMethod  string
	AccountID      *int32
	TransactionRef *string
	ProgramName    *string
	Description    *string
	ReceiptPath    *string
	Status         domain.RevenueStatus
}

// CreateRevenue records a revenue entry. A Received entry with a target
// account moves that account's balance atomically with the insert.
func (s *RevenueService) CreateRevenue(principal *domain.SessionPrincipal, input CreateRevenueInput) (*domain.Revenue, error) {
	if !principal.Role.CanRecordRevenue() {
		return nil, domain.ErrForbidden
	}

	if !input.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	category := strings.TrimSpace(input.Category)
	if category == "" {
		return nil, domain.ErrCategoryRequired
	}
	if len(category) > domain.MaxCategoryLength {
		return nil, domain.ErrNameTooLong
	}
	source := strings.TrimSpace(input.Source)
	if source == "" {
		return nil, domain.ErrSourceRequired
	}
	if !input.Status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	date, err := parseDate(input.Date)
	if err != nil {
		return nil, domain.ErrDateRequired
	}

	revenue := &domain.Revenue{
		Date:           date,
		Amount:         input.Amount,
		Category:       category,
		Source:         source,
		PaymentMethod:  input.PaymentMethod,
		AccountID:      input.AccountID,
		TransactionRef: input.TransactionRef,
		ProgramName:    input.ProgramName,
		Description:    input.Description,
		ReceiptPath:    input.ReceiptPath,
		Status:         input.Status,
		RecordedByID:   principal.UserID,
	}

	created, err := s.revenueRepo.Create(revenue)
	if err != nil {
		return nil, err
	}
	log.Info().
		Int32("revenue_id", created.ID).
		Str("amount", created.Amount.String()).
		Str("status", string(created.Status)).
		Msg("Revenue recorded")
	return created, nil
}

// GetRevenues retrieves recent revenue entries, newest first
func (s *RevenueService) GetRevenues() ([]*domain.Revenue, error) {
	return s.revenueRepo.GetAll()
}

// DeleteRevenue removes a revenue entry and reverses any balance
// contribution it made. PRESIDENT may delete any entry; REVENUE_TEAM only
// entries they recorded themselves.
func (s *RevenueService) DeleteRevenue(principal *domain.SessionPrincipal, id int32) error {
	if !principal.Role.CanRecordRevenue() {
		return domain.ErrForbidden
	}

	revenue, err := s.revenueRepo.GetByID(id)
	if err != nil {
		return err
	}
	if principal.Role != domain.RolePresident && revenue.RecordedByID != principal.UserID {
		return domain.ErrForbidden
	}

	if err := s.revenueRepo.Delete(id); err != nil {
		return err
	}
	log.Info().Int32("revenue_id", id).Int32("user_id", principal.UserID).Msg("Revenue deleted")
	return nil
}

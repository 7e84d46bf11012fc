package service

import (
	"strings"

	"github.com/24studio/finance-backend/internal/domain"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ExpenseService handles expense business logic
type ExpenseService struct {
	expenseRepo domain.ExpenseRepository
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(expenseRepo domain.ExpenseRepository) *ExpenseService {
	return &ExpenseService{expenseRepo: expenseRepo}
}

// CreateExpenseInput holds the input for recording an expense
type CreateExpenseInput struct {
	Date           string
	Amount         decimal.Decimal
	Category       string
	Vendor         *string
	PaymentMethod  string
	AccountID      int32
	TransactionRef *string
	Description    *string
	ReceiptPath    *string
	ReceiptLink    *string
}

// CreateExpense records an expense in Pending status. No balance moves
// until approval.
func (s *ExpenseService) CreateExpense(principal *domain.SessionPrincipal, input CreateExpenseInput) (*domain.Expense, error) {
	if !principal.Role.CanRecordExpenses() {
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
	date, err := parseDate(input.Date)
	if err != nil {
		return nil, domain.ErrDateRequired
	}

	expense := &domain.Expense{
		Date:           date,
		Amount:         input.Amount,
		Category:       category,
		Vendor:         input.Vendor,
		PaymentMethod:  input.PaymentMethod,
		AccountID:      input.AccountID,
		TransactionRef: input.TransactionRef,
		Description:    input.Description,
		ReceiptPath:    input.ReceiptPath,
		ReceiptLink:    input.ReceiptLink,
		Status:         domain.ExpenseStatusPending,
		RecordedByID:   principal.UserID,
	}

	created, err := s.expenseRepo.Create(expense)
	if err != nil {
		return nil, err
	}
	log.Info().
		Int32("expense_id", created.ID).
		Str("amount", created.Amount.String()).
		Str("category", created.Category).
		Msg("Expense recorded")
	return created, nil
}

// GetExpenses retrieves recent expenses, newest first
func (s *ExpenseService) GetExpenses() ([]*domain.Expense, error) {
	return s.expenseRepo.GetAll()
}

// ApproveExpense flips a Pending expense to Approved. The matching budget
// line's spent amount and the expense's account balance move in the same
// transaction. A concurrent second approval loses the status race and gets
// ErrAlreadyProcessed.
func (s *ExpenseService) ApproveExpense(principal *domain.SessionPrincipal, id int32) (*domain.Expense, error) {
	if !principal.Role.CanRecordExpenses() {
		return nil, domain.ErrForbidden
	}

	approved, err := s.expenseRepo.Approve(id, principal.UserID)
	if err != nil {
		return nil, err
	}
	log.Info().
		Int32("expense_id", id).
		Int32("approved_by", principal.UserID).
		Msg("Expense approved")
	return approved, nil
}

// RejectExpense hard-deletes a Pending expense. Approved expenses cannot
// be rejected.
func (s *ExpenseService) RejectExpense(principal *domain.SessionPrincipal, id int32) error {
	if !principal.Role.CanRecordExpenses() {
		return domain.ErrForbidden
	}

	if err := s.expenseRepo.Reject(id); err != nil {
		return err
	}
	log.Info().Int32("expense_id", id).Int32("user_id", principal.UserID).Msg("Expense rejected")
	return nil
}

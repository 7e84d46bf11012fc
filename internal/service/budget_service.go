package service

import (
	"strings"
	"time"

	"github.com/24studio/finance-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// BudgetService handles budget business logic
type BudgetService struct {
	budgetRepo domain.BudgetRepository
}

// NewBudgetService creates a new BudgetService
func NewBudgetService(budgetRepo domain.BudgetRepository) *BudgetService {
	return &BudgetService{budgetRepo: budgetRepo}
}

// CreateBudgetInput holds the input for creating a budget line
type CreateBudgetInput struct {
	Year            int
	Category        string
	AllocatedAmount decimal.Decimal
}

// CreateBudget creates a budget line for a year and category. Spent amount
// starts at zero and moves only through expense approvals.
func (s *BudgetService) CreateBudget(principal *domain.SessionPrincipal, input CreateBudgetInput) (*domain.Budget, error) {
	if !principal.Role.CanRecordExpenses() {
		return nil, domain.ErrForbidden
	}

	if input.Year < 2000 || input.Year > time.Now().Year()+10 {
		return nil, domain.ErrInvalidYear
	}
	category := strings.TrimSpace(input.Category)
	if category == "" {
		return nil, domain.ErrCategoryRequired
	}
	if len(category) > domain.MaxCategoryLength {
		return nil, domain.ErrNameTooLong
	}
	if !input.AllocatedAmount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	budget := &domain.Budget{
		Year:            input.Year,
		Category:        category,
		AllocatedAmount: input.AllocatedAmount,
		SpentAmount:     decimal.Zero,
	}
	return s.budgetRepo.Create(budget)
}

// GetBudgets retrieves budget lines for a year, or all lines when year is 0
func (s *BudgetService) GetBudgets(year int) ([]*domain.Budget, error) {
	if year == 0 {
		return s.budgetRepo.GetAll()
	}
	return s.budgetRepo.GetByYear(year)
}

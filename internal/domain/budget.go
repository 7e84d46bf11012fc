package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget allocates an amount to an expense category for one year.
// SpentAmount is derived: incremented on expense approval, never decremented.
type Budget struct {
	ID              int32           `json:"id"`
	Year            int             `json:"year"`
	Category        string          `json:"category"`
	AllocatedAmount decimal.Decimal `json:"allocatedAmount"`
	SpentAmount     decimal.Decimal `json:"spentAmount"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// BudgetRepository defines the interface for budget persistence operations
type BudgetRepository interface {
	// Create fails with ErrDuplicateBudget on a (year, category) collision.
	Create(budget *Budget) (*Budget, error)
	GetByYear(year int) ([]*Budget, error)
	GetAll() ([]*Budget, error)
}

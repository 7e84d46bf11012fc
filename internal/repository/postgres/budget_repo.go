package postgres

import (
	"context"
	"fmt"

	"github.com/24studio/finance-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BudgetRepository implements domain.BudgetRepository using PostgreSQL
type BudgetRepository struct {
	pool *pgxpool.Pool
}

// NewBudgetRepository creates a new BudgetRepository
func NewBudgetRepository(pool *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{pool: pool}
}

const budgetColumns = `id, year, category, allocated_amount, spent_amount, created_at`

func scanBudget(row pgx.Row) (*domain.Budget, error) {
	var b domain.Budget
	var allocated, spent pgtype.Numeric
	err := row.Scan(&b.ID, &b.Year, &b.Category, &allocated, &spent, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	b.AllocatedAmount = pgNumericToDecimal(allocated)
	b.SpentAmount = pgNumericToDecimal(spent)
	return &b, nil
}

// Create inserts a new budget line
func (r *BudgetRepository) Create(budget *domain.Budget) (*domain.Budget, error) {
	ctx := context.Background()
	allocated, err := decimalToPgNumeric(budget.AllocatedAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid allocated amount: %w", err)
	}
	row := r.pool.QueryRow(ctx,
		`INSERT INTO budgets (year, category, allocated_amount, spent_amount)
		 VALUES ($1, $2, $3, 0)
		 RETURNING `+budgetColumns,
		budget.Year, budget.Category, allocated)
	created, err := scanBudget(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateBudget
		}
		return nil, err
	}
	return created, nil
}

// GetByYear retrieves budgets for one year ordered by category
func (r *BudgetRepository) GetByYear(year int) ([]*domain.Budget, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx,
		`SELECT `+budgetColumns+` FROM budgets WHERE year = $1 ORDER BY category ASC`, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBudgets(rows)
}

// GetAll retrieves every budget line, newest year first
func (r *BudgetRepository) GetAll() ([]*domain.Budget, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx,
		`SELECT `+budgetColumns+` FROM budgets ORDER BY year DESC, category ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBudgets(rows)
}

func collectBudgets(rows pgx.Rows) ([]*domain.Budget, error) {
	var budgets []*domain.Budget
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, budget)
	}
	return budgets, rows.Err()
}

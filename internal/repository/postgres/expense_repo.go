package postgres

import (
	"context"
	"fmt"

	"github.com/24studio/finance-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// ExpenseRepository implements domain.ExpenseRepository using PostgreSQL
type ExpenseRepository struct {
	pool *pgxpool.Pool
}

// NewExpenseRepository creates a new ExpenseRepository
func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

const expenseColumns = `e.id, e.date, e.amount, e.category, e.vendor, e.payment_method,
	e.account_id, e.transaction_ref, e.description, e.receipt_path, e.receipt_link,
	e.status, e.recorded_by_id, e.approved_by_id, e.created_at`

func scanExpense(row pgx.Row, withNames bool) (*domain.Expense, error) {
	var e domain.Expense
	var amount pgtype.Numeric
	var vendor, transactionRef, description, receiptPath, receiptLink pgtype.Text
	var status string
	var approvedBy pgtype.Int4
	var approvedByName pgtype.Text

	dest := []any{&e.ID, &e.Date, &amount, &e.Category, &vendor, &e.PaymentMethod,
		&e.AccountID, &transactionRef, &description, &receiptPath, &receiptLink,
		&status, &e.RecordedByID, &approvedBy, &e.CreatedAt}
	if withNames {
		dest = append(dest, &e.RecordedByName, &approvedByName)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	e.Amount = pgNumericToDecimal(amount)
	e.Vendor = textPtr(vendor)
	e.TransactionRef = textPtr(transactionRef)
	e.Description = textPtr(description)
	e.ReceiptPath = textPtr(receiptPath)
	e.ReceiptLink = textPtr(receiptLink)
	e.Status = domain.ExpenseStatus(status)
	e.ApprovedByID = int4Ptr(approvedBy)
	if approvedByName.Valid {
		e.ApprovedByName = approvedByName.String
	}
	return &e, nil
}

// Create inserts a new expense with status Pending
func (r *ExpenseRepository) Create(expense *domain.Expense) (*domain.Expense, error) {
	ctx := context.Background()
	amount, err := decimalToPgNumeric(expense.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}
	row := r.pool.QueryRow(ctx,
		`INSERT INTO expenses (date, amount, category, vendor, payment_method, account_id,
		                       transaction_ref, description, receipt_path, receipt_link, status, recorded_by_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING `+expenseColumns,
		expense.Date, amount, expense.Category, pgText(expense.Vendor), expense.PaymentMethod,
		expense.AccountID, pgText(expense.TransactionRef), pgText(expense.Description),
		pgText(expense.ReceiptPath), pgText(expense.ReceiptLink),
		string(domain.ExpenseStatusPending), expense.RecordedByID)
	created, err := scanExpense(row, false)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return created, nil
}

// GetByID retrieves an expense by ID
func (r *ExpenseRepository) GetByID(id int32) (*domain.Expense, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `SELECT `+expenseColumns+` FROM expenses e WHERE e.id = $1`, id)
	expense, err := scanExpense(row, false)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrExpenseNotFound
		}
		return nil, err
	}
	return expense, nil
}

// GetAll retrieves expenses with recorder/approver names, newest first
func (r *ExpenseRepository) GetAll() ([]*domain.Expense, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx,
		`SELECT `+expenseColumns+`, u.name, a.name
		 FROM expenses e
		 JOIN users u ON u.id = e.recorded_by_id
		 LEFT JOIN users a ON a.id = e.approved_by_id
		 ORDER BY e.date DESC
		 LIMIT 100`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []*domain.Expense
	for rows.Next() {
		expense, err := scanExpense(rows, true)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	return expenses, rows.Err()
}

// Approve transitions a Pending expense to Approved and applies the
// cascades in one transaction. The status predicate on the UPDATE is the
// optimistic lock: under two concurrent approvals only the first commit
// matches a Pending row, the loser gets ErrAlreadyProcessed.
func (r *ExpenseRepository) Approve(id int32, approvedByID int32) (*domain.Expense, error) {
	ctx := context.Background()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx,
		`UPDATE expenses e SET status = $3, approved_by_id = $2
		 WHERE e.id = $1 AND e.status = $4
		 RETURNING `+expenseColumns,
		id, approvedByID, string(domain.ExpenseStatusApproved), string(domain.ExpenseStatusPending))
	approved, err := scanExpense(row, false)
	if err != nil {
		if err == pgx.ErrNoRows {
			// Row absent or not Pending. Distinguish for the caller.
			var exists bool
			if qErr := r.pool.QueryRow(ctx,
				`SELECT EXISTS(SELECT 1 FROM expenses WHERE id = $1)`, id).Scan(&exists); qErr == nil && !exists {
				return nil, domain.ErrExpenseNotFound
			}
			return nil, domain.ErrAlreadyProcessed
		}
		return nil, err
	}

	amount, err := decimalToPgNumeric(approved.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	// Budget row for the expense's year+category may legitimately not
	// exist; the increment is skipped then (see service log).
	tag, err := tx.Exec(ctx,
		`UPDATE budgets SET spent_amount = spent_amount + $3
		 WHERE year = $1 AND category = $2`,
		approved.Date.Year(), approved.Category, amount)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		log.Warn().
			Int("year", approved.Date.Year()).
			Str("category", approved.Category).
			Int32("expense_id", id).
			Msg("No budget row for approved expense; spent amount not tracked")
	}

	tag, err = tx.Exec(ctx,
		`UPDATE accounts SET current_balance = current_balance - $2, updated_at = now()
		 WHERE id = $1`,
		approved.AccountID, amount)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrAccountNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return approved, nil
}

// Reject hard-deletes a Pending expense. Approved expenses cannot be
// rejected: deleting one would leave the budget's spent amount inflated
// forever, since spent is never decremented.
func (r *ExpenseRepository) Reject(id int32) error {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx,
		`DELETE FROM expenses WHERE id = $1 AND status = $2`,
		id, string(domain.ExpenseStatusPending))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if qErr := r.pool.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM expenses WHERE id = $1)`, id).Scan(&exists); qErr == nil && !exists {
			return domain.ErrExpenseNotFound
		}
		return domain.ErrAlreadyProcessed
	}
	return nil
}

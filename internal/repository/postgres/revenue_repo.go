package postgres

import (
	"context"
	"fmt"

	"github.com/24studio/finance-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RevenueRepository implements domain.RevenueRepository using PostgreSQL
type RevenueRepository struct {
	pool *pgxpool.Pool
}

// NewRevenueRepository creates a new RevenueRepository
func NewRevenueRepository(pool *pgxpool.Pool) *RevenueRepository {
	return &RevenueRepository{pool: pool}
}

const revenueColumns = `r.id, r.date, r.amount, r.category, r.source, r.payment_method,
	r.account_id, r.transaction_ref, r.program_name, r.description,
	r.receipt_path, r.status, r.recorded_by_id, r.created_at`

func scanRevenue(row pgx.Row, withNames bool) (*domain.Revenue, error) {
	var rev domain.Revenue
	var amount pgtype.Numeric
	var accountID pgtype.Int4
	var transactionRef, programName, description, receiptPath pgtype.Text
	var status string

	dest := []any{&rev.ID, &rev.Date, &amount, &rev.Category, &rev.Source, &rev.PaymentMethod,
		&accountID, &transactionRef, &programName, &description,
		&receiptPath, &status, &rev.RecordedByID, &rev.CreatedAt}
	if withNames {
		dest = append(dest, &rev.RecordedByName)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	rev.Amount = pgNumericToDecimal(amount)
	rev.AccountID = int4Ptr(accountID)
	rev.TransactionRef = textPtr(transactionRef)
	rev.ProgramName = textPtr(programName)
	rev.Description = textPtr(description)
	rev.ReceiptPath = textPtr(receiptPath)
	rev.Status = domain.RevenueStatus(status)
	return &rev, nil
}

// Create inserts a revenue entry. A Received entry tied to an account also
// increments that account's balance, in the same transaction.
func (r *RevenueRepository) Create(revenue *domain.Revenue) (*domain.Revenue, error) {
	ctx := context.Background()

	amount, err := decimalToPgNumeric(revenue.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx,
		`INSERT INTO revenues (date, amount, category, source, payment_method, account_id,
		                       transaction_ref, program_name, description, receipt_path, status, recorded_by_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING `+revenueColumns,
		revenue.Date, amount, revenue.Category, revenue.Source, revenue.PaymentMethod,
		pgInt4(revenue.AccountID), pgText(revenue.TransactionRef), pgText(revenue.ProgramName),
		pgText(revenue.Description), pgText(revenue.ReceiptPath), string(revenue.Status),
		revenue.RecordedByID)
	created, err := scanRevenue(row, false)
	if err != nil {
		return nil, err
	}

	if revenue.AccountID != nil && revenue.Status == domain.RevenueStatusReceived {
		tag, err := tx.Exec(ctx,
			`UPDATE accounts SET current_balance = current_balance + $2, updated_at = now()
			 WHERE id = $1`,
			*revenue.AccountID, amount)
		if err != nil {
			return nil, err
		}
		if tag.RowsAffected() == 0 {
			return nil, domain.ErrAccountNotFound
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

// GetByID retrieves a revenue entry by ID
func (r *RevenueRepository) GetByID(id int32) (*domain.Revenue, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx,
		`SELECT `+revenueColumns+` FROM revenues r WHERE r.id = $1`, id)
	revenue, err := scanRevenue(row, false)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrRevenueNotFound
		}
		return nil, err
	}
	return revenue, nil
}

// GetAll retrieves revenues with recorder names, newest first
func (r *RevenueRepository) GetAll() ([]*domain.Revenue, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx,
		`SELECT `+revenueColumns+`, u.name
		 FROM revenues r
		 JOIN users u ON u.id = r.recorded_by_id
		 ORDER BY r.date DESC
		 LIMIT 100`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var revenues []*domain.Revenue
	for rows.Next() {
		revenue, err := scanRevenue(rows, true)
		if err != nil {
			return nil, err
		}
		revenues = append(revenues, revenue)
	}
	return revenues, rows.Err()
}

// Delete removes a revenue entry and reverses any balance contribution it
// made, in one transaction.
func (r *RevenueRepository) Delete(id int32) error {
	ctx := context.Background()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var amount pgtype.Numeric
	var accountID pgtype.Int4
	var status string
	err = tx.QueryRow(ctx,
		`DELETE FROM revenues WHERE id = $1 RETURNING amount, account_id, status`, id).
		Scan(&amount, &accountID, &status)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.ErrRevenueNotFound
		}
		return err
	}

	if accountID.Valid && domain.RevenueStatus(status) == domain.RevenueStatusReceived {
		_, err = tx.Exec(ctx,
			`UPDATE accounts SET current_balance = current_balance - $2, updated_at = now()
			 WHERE id = $1`,
			accountID.Int32, amount)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

package postgres

import (
	"context"
	"fmt"

	"github.com/24studio/finance-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// AccountRepository implements domain.AccountRepository using PostgreSQL
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

const accountColumns = `id, name, type, current_balance, created_at, updated_at`

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	var accType string
	var balance pgtype.Numeric
	err := row.Scan(&a.ID, &a.Name, &accType, &balance, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.Type = domain.AccountType(accType)
	a.CurrentBalance = pgNumericToDecimal(balance)
	return &a, nil
}

// Create inserts a new account
func (r *AccountRepository) Create(account *domain.Account) (*domain.Account, error) {
	ctx := context.Background()
	balance, err := decimalToPgNumeric(account.CurrentBalance)
	if err != nil {
		return nil, fmt.Errorf("invalid balance: %w", err)
	}
	row := r.pool.QueryRow(ctx,
		`INSERT INTO accounts (name, type, current_balance)
		 VALUES ($1, $2, $3)
		 RETURNING `+accountColumns,
		account.Name, string(account.Type), balance)
	return scanAccount(row)
}

// GetByID retrieves an account by ID
func (r *AccountRepository) GetByID(id int32) (*domain.Account, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	account, err := scanAccount(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

// GetAll retrieves all accounts ordered by name
func (r *AccountRepository) GetAll() ([]*domain.Account, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

// SetBalance overwrites the account balance. This is the PRESIDENT's manual
// override path and intentionally bypasses reconciliation.
func (r *AccountRepository) SetBalance(id int32, balance decimal.Decimal) (*domain.Account, error) {
	ctx := context.Background()
	num, err := decimalToPgNumeric(balance)
	if err != nil {
		return nil, fmt.Errorf("invalid balance: %w", err)
	}
	row := r.pool.QueryRow(ctx,
		`UPDATE accounts SET current_balance = $2, updated_at = now()
		 WHERE id = $1
		 RETURNING `+accountColumns,
		id, num)
	account, err := scanAccount(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

// Delete removes an account. Fails with ErrAccountHasTransactions when any
// revenue, donation or expense row still references it.
func (r *AccountRepository) Delete(id int32) error {
	ctx := context.Background()

	var refs int64
	err := r.pool.QueryRow(ctx,
		`SELECT (SELECT count(*) FROM revenues  WHERE account_id = $1)
		      + (SELECT count(*) FROM donations WHERE account_id = $1)
		      + (SELECT count(*) FROM expenses  WHERE account_id = $1)`,
		id).Scan(&refs)
	if err != nil {
		return err
	}
	if refs > 0 {
		return domain.ErrAccountHasTransactions
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		// A transaction recorded between the check and the delete still
		// trips the FK constraints.
		if isForeignKeyViolation(err) {
			return domain.ErrAccountHasTransactions
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// SumBalances returns the sum of all account balances
func (r *AccountRepository) SumBalances() (decimal.Decimal, error) {
	ctx := context.Background()
	var total pgtype.Numeric
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(current_balance), 0) FROM accounts`).Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return pgNumericToDecimal(total), nil
}

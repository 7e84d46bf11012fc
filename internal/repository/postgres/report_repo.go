package postgres

import (
	"context"
	"time"

	"github.com/24studio/finance-backend/internal/domain"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// ReportRepository implements domain.ReportRepository using PostgreSQL.
// All sums and counts are database-side aggregates; full row sets are only
// fetched for transaction listings.
type ReportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(pool *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{pool: pool}
}

// RevenuesInRange fetches revenues in [start, end] with recorder names
func (r *ReportRepository) RevenuesInRange(start, end time.Time) ([]*domain.Revenue, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx,
		`SELECT `+revenueColumns+`, u.name
		 FROM revenues r
		 JOIN users u ON u.id = r.recorded_by_id
		 WHERE r.date BETWEEN $1 AND $2
		 ORDER BY r.date DESC`,
		start, end)
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

// ExpensesInRange fetches expenses in [start, end] with recorder names
func (r *ReportRepository) ExpensesInRange(start, end time.Time) ([]*domain.Expense, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx,
		`SELECT `+expenseColumns+`, u.name, a.name
		 FROM expenses e
		 JOIN users u ON u.id = e.recorded_by_id
		 LEFT JOIN users a ON a.id = e.approved_by_id
		 WHERE e.date BETWEEN $1 AND $2
		 ORDER BY e.date DESC`,
		start, end)
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

// DonationsInRange fetches donations in [start, end] with donor and
// recorder names
func (r *ReportRepository) DonationsInRange(start, end time.Time) ([]*domain.Donation, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx,
		`SELECT `+donationColumns+`, dn.name, u.name
		 FROM donations d
		 JOIN donors dn ON dn.id = d.donor_id
		 JOIN users u ON u.id = d.recorded_by_id
		 WHERE d.date BETWEEN $1 AND $2
		 ORDER BY d.date DESC`,
		start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var donations []*domain.Donation
	for rows.Next() {
		donation, err := scanDonation(rows, true)
		if err != nil {
			return nil, err
		}
		donations = append(donations, donation)
	}
	return donations, rows.Err()
}

func (r *ReportRepository) sumQuery(query string, start, end time.Time) (decimal.Decimal, error) {
	ctx := context.Background()
	var total pgtype.Numeric
	if err := r.pool.QueryRow(ctx, query, start, end).Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return pgNumericToDecimal(total), nil
}

// SumRevenues sums revenue amounts in the window
func (r *ReportRepository) SumRevenues(start, end time.Time) (decimal.Decimal, error) {
	return r.sumQuery(
		`SELECT COALESCE(SUM(amount), 0) FROM revenues WHERE date BETWEEN $1 AND $2`,
		start, end)
}

// SumDonations sums donation amounts in the window
func (r *ReportRepository) SumDonations(start, end time.Time) (decimal.Decimal, error) {
	return r.sumQuery(
		`SELECT COALESCE(SUM(amount), 0) FROM donations WHERE date BETWEEN $1 AND $2`,
		start, end)
}

// SumApprovedExpenses sums Approved expense amounts in the window
func (r *ReportRepository) SumApprovedExpenses(start, end time.Time) (decimal.Decimal, error) {
	return r.sumQuery(
		`SELECT COALESCE(SUM(amount), 0) FROM expenses
		 WHERE status = 'Approved' AND date BETWEEN $1 AND $2`,
		start, end)
}

// Counts returns per-family row counts. Donors are not dated, so the donor
// count is the full table.
func (r *ReportRepository) Counts(start, end time.Time) (revenues, donations, expenses, donors int64, err error) {
	ctx := context.Background()
	err = r.pool.QueryRow(ctx,
		`SELECT (SELECT count(*) FROM revenues  WHERE date BETWEEN $1 AND $2),
		        (SELECT count(*) FROM donations WHERE date BETWEEN $1 AND $2),
		        (SELECT count(*) FROM expenses  WHERE date BETWEEN $1 AND $2),
		        (SELECT count(*) FROM donors)`,
		start, end).Scan(&revenues, &donations, &expenses, &donors)
	return
}

package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/24studio/finance-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DonationRepository implements domain.DonationRepository using PostgreSQL
type DonationRepository struct {
	pool *pgxpool.Pool
}

// mapDonationInsertErr translates an FK violation on the donation insert to
// the sentinel for whichever parent row is missing. The insert carries both
// donor_id and account_id, so the violated constraint name decides.
func mapDonationInsertErr(err error) error {
	name := violatedConstraint(err)
	switch {
	case name == "":
		return err
	case strings.Contains(name, "account_id"):
		return domain.ErrAccountNotFound
	default:
		return domain.ErrDonorNotFound
	}
}

// NewDonationRepository creates a new DonationRepository
func NewDonationRepository(pool *pgxpool.Pool) *DonationRepository {
	return &DonationRepository{pool: pool}
}

const donationColumns = `d.id, d.donor_id, d.date, d.amount, d.type, d.payment_method,
	d.account_id, d.transaction_ref, d.purpose, d.tax_receipt_required,
	d.receipt_path, d.recorded_by_id, d.created_at`

func scanDonation(row pgx.Row, withNames bool) (*domain.Donation, error) {
	var d domain.Donation
	var amount pgtype.Numeric
	var transactionRef, purpose, receiptPath pgtype.Text

	dest := []any{&d.ID, &d.DonorID, &d.Date, &amount, &d.Type, &d.PaymentMethod,
		&d.AccountID, &transactionRef, &purpose, &d.TaxReceiptRequired,
		&receiptPath, &d.RecordedByID, &d.CreatedAt}
	if withNames {
		dest = append(dest, &d.DonorName, &d.RecordedByName)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	d.Amount = pgNumericToDecimal(amount)
	d.TransactionRef = textPtr(transactionRef)
	d.Purpose = textPtr(purpose)
	d.ReceiptPath = textPtr(receiptPath)
	return &d, nil
}

// Create inserts a donation and applies its cascades in one transaction:
// the account balance and the donor's derived totals move with the insert
// or not at all. Increments are SQL-side so concurrent writers serialize
// on the row locks.
func (r *DonationRepository) Create(donation *domain.Donation) (*domain.Donation, error) {
	ctx := context.Background()

	amount, err := decimalToPgNumeric(donation.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx,
		`INSERT INTO donations (donor_id, date, amount, type, payment_method, account_id,
		                        transaction_ref, purpose, tax_receipt_required, receipt_path, recorded_by_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING `+donationColumns,
		donation.DonorID, donation.Date, amount, donation.Type, donation.PaymentMethod,
		donation.AccountID, pgText(donation.TransactionRef), pgText(donation.Purpose),
		donation.TaxReceiptRequired, pgText(donation.ReceiptPath), donation.RecordedByID)
	created, err := scanDonation(row, false)
	if err != nil {
		return nil, mapDonationInsertErr(err)
	}

	tag, err := tx.Exec(ctx,
		`UPDATE accounts SET current_balance = current_balance + $2, updated_at = now()
		 WHERE id = $1`,
		donation.AccountID, amount)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrAccountNotFound
	}

	tag, err = tx.Exec(ctx,
		`UPDATE donors SET total_donated = total_donated + $2, last_donation_date = $3
		 WHERE id = $1`,
		donation.DonorID, amount, donation.Date)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrDonorNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

// GetAll retrieves donations with donor and recorder names, newest first
func (r *DonationRepository) GetAll() ([]*domain.Donation, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx,
		`SELECT `+donationColumns+`, dn.name, u.name
		 FROM donations d
		 JOIN donors dn ON dn.id = d.donor_id
		 JOIN users u ON u.id = d.recorded_by_id
		 ORDER BY d.date DESC
		 LIMIT 100`)
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

// GetByDonor retrieves a donor's donation history, newest first
func (r *DonationRepository) GetByDonor(donorID int32) ([]*domain.Donation, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx,
		`SELECT `+donationColumns+`, dn.name, u.name
		 FROM donations d
		 JOIN donors dn ON dn.id = d.donor_id
		 JOIN users u ON u.id = d.recorded_by_id
		 WHERE d.donor_id = $1
		 ORDER BY d.date DESC`,
		donorID)
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

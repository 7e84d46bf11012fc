package postgres

import (
	"context"
	"fmt"

	"github.com/24studio/finance-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DonorRepository implements domain.DonorRepository using PostgreSQL
type DonorRepository struct {
	pool *pgxpool.Pool
}

// NewDonorRepository creates a new DonorRepository
func NewDonorRepository(pool *pgxpool.Pool) *DonorRepository {
	return &DonorRepository{pool: pool}
}

const donorColumns = `id, name, email, phone, address, national_id, status,
	yearly_contribution_required, total_donated, last_donation_date, created_at`

func scanDonor(row pgx.Row) (*domain.Donor, error) {
	var d domain.Donor
	var email, phone, address, nationalID pgtype.Text
	var status string
	var yearly, total pgtype.Numeric
	var lastDonation pgtype.Timestamptz
	err := row.Scan(&d.ID, &d.Name, &email, &phone, &address, &nationalID, &status,
		&yearly, &total, &lastDonation, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	d.Email = textPtr(email)
	d.Phone = textPtr(phone)
	d.Address = textPtr(address)
	d.NationalID = textPtr(nationalID)
	d.Status = domain.DonorStatus(status)
	if yearly.Valid {
		v := pgNumericToDecimal(yearly)
		d.YearlyContributionRequired = &v
	}
	d.TotalDonated = pgNumericToDecimal(total)
	if lastDonation.Valid {
		t := lastDonation.Time
		d.LastDonationDate = &t
	}
	return &d, nil
}

// Create inserts a new donor
func (r *DonorRepository) Create(donor *domain.Donor) (*domain.Donor, error) {
	ctx := context.Background()

	var yearly pgtype.Numeric
	if donor.YearlyContributionRequired != nil {
		num, err := decimalToPgNumeric(*donor.YearlyContributionRequired)
		if err != nil {
			return nil, fmt.Errorf("invalid yearly contribution: %w", err)
		}
		yearly = num
	}

	row := r.pool.QueryRow(ctx,
		`INSERT INTO donors (name, email, phone, address, national_id, status, yearly_contribution_required)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+donorColumns,
		donor.Name, pgText(donor.Email), pgText(donor.Phone), pgText(donor.Address),
		pgText(donor.NationalID), string(donor.Status), yearly)
	return scanDonor(row)
}

// GetByID retrieves a donor by ID
func (r *DonorRepository) GetByID(id int32) (*domain.Donor, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `SELECT `+donorColumns+` FROM donors WHERE id = $1`, id)
	donor, err := scanDonor(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrDonorNotFound
		}
		return nil, err
	}
	return donor, nil
}

// GetAll retrieves all donors, most recent donation first
func (r *DonorRepository) GetAll() ([]*domain.Donor, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx,
		`SELECT `+donorColumns+` FROM donors ORDER BY last_donation_date DESC NULLS LAST`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var donors []*domain.Donor
	for rows.Next() {
		donor, err := scanDonor(rows)
		if err != nil {
			return nil, err
		}
		donors = append(donors, donor)
	}
	return donors, rows.Err()
}

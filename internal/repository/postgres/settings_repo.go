package postgres

import (
	"context"
	"strings"

	"github.com/24studio/finance-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SettingsRepository implements domain.SettingsRepository using PostgreSQL
type SettingsRepository struct {
	pool *pgxpool.Pool
}

// NewSettingsRepository creates a new SettingsRepository
func NewSettingsRepository(pool *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{pool: pool}
}

// Default organization settings used when the singleton row is absent.
var defaultSettings = domain.Settings{
	OrganizationName:    "24Studio Foundation",
	OrganizationAddress: "Dhaka, Bangladesh",
	OrganizationEmail:   "info@24studio.org",
	OrganizationPhone:   "+880 XXX XXXX",
	OrganizationWebsite: "https://24studio.org",
	FiscalYearStart:     1,
	FiscalYearEnd:       12,
	RevenueCategories:   []string{"Membership Fees", "Event Income", "Grants", "Other"},
	ExpenseCategories:   []string{"Rent", "Utilities", "Programs", "Supplies", "Other"},
}

const settingsColumns = `id, organization_name, organization_address, organization_email,
	organization_phone, organization_website, fiscal_year_start, fiscal_year_end,
	revenue_categories, expense_categories`

func scanSettings(row pgx.Row) (*domain.Settings, error) {
	var s domain.Settings
	var revenueCategories, expenseCategories string
	err := row.Scan(&s.ID, &s.OrganizationName, &s.OrganizationAddress, &s.OrganizationEmail,
		&s.OrganizationPhone, &s.OrganizationWebsite, &s.FiscalYearStart, &s.FiscalYearEnd,
		&revenueCategories, &expenseCategories)
	if err != nil {
		return nil, err
	}
	s.RevenueCategories = splitCategories(revenueCategories)
	s.ExpenseCategories = splitCategories(expenseCategories)
	return &s, nil
}

// Categories are stored as a comma-joined ordered list.
func splitCategories(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func joinCategories(categories []string) string {
	return strings.Join(categories, ",")
}

// Get returns the settings singleton, creating the default row when absent
func (r *SettingsRepository) Get() (*domain.Settings, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `SELECT `+settingsColumns+` FROM settings LIMIT 1`)
	settings, err := scanSettings(row)
	if err == nil {
		return settings, nil
	}
	if err != pgx.ErrNoRows {
		return nil, err
	}
	return r.insert(ctx, &defaultSettings)
}

func (r *SettingsRepository) insert(ctx context.Context, s *domain.Settings) (*domain.Settings, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO settings (organization_name, organization_address, organization_email,
		                       organization_phone, organization_website, fiscal_year_start,
		                       fiscal_year_end, revenue_categories, expense_categories)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING `+settingsColumns,
		s.OrganizationName, s.OrganizationAddress, s.OrganizationEmail,
		s.OrganizationPhone, s.OrganizationWebsite, s.FiscalYearStart, s.FiscalYearEnd,
		joinCategories(s.RevenueCategories), joinCategories(s.ExpenseCategories))
	return scanSettings(row)
}

// Update upserts the organization fields of the singleton row
func (r *SettingsRepository) Update(settings *domain.Settings) (*domain.Settings, error) {
	ctx := context.Background()

	current, err := r.Get()
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(ctx,
		`UPDATE settings SET organization_name = $2, organization_address = $3,
		        organization_email = $4, organization_phone = $5, organization_website = $6,
		        fiscal_year_start = $7, fiscal_year_end = $8
		 WHERE id = $1
		 RETURNING `+settingsColumns,
		current.ID, settings.OrganizationName, settings.OrganizationAddress,
		settings.OrganizationEmail, settings.OrganizationPhone, settings.OrganizationWebsite,
		settings.FiscalYearStart, settings.FiscalYearEnd)
	return scanSettings(row)
}

// UpdateCategories replaces the ordered category lists
func (r *SettingsRepository) UpdateCategories(revenueCategories, expenseCategories []string) (*domain.Settings, error) {
	ctx := context.Background()

	current, err := r.Get()
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(ctx,
		`UPDATE settings SET revenue_categories = $2, expense_categories = $3
		 WHERE id = $1
		 RETURNING `+settingsColumns,
		current.ID, joinCategories(revenueCategories), joinCategories(expenseCategories))
	return scanSettings(row)
}

// Stats returns per-family row counts
func (r *SettingsRepository) Stats() (*domain.DatabaseStats, error) {
	ctx := context.Background()
	var stats domain.DatabaseStats
	err := r.pool.QueryRow(ctx,
		`SELECT (SELECT count(*) FROM revenues),
		        (SELECT count(*) FROM donations),
		        (SELECT count(*) FROM donors),
		        (SELECT count(*) FROM expenses),
		        (SELECT count(*) FROM budgets)`).
		Scan(&stats.Revenues, &stats.Donations, &stats.Donors, &stats.Expenses, &stats.Budgets)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// ResetTransactions wipes all financial records and zeroes account balances
// in one transaction. Users and settings survive. Irreversible; no audit
// trail is kept.
func (r *SettingsRepository) ResetTransactions() error {
	ctx := context.Background()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// Order matters: donations/expenses reference donors/accounts.
	for _, stmt := range []string{
		`DELETE FROM budgets`,
		`DELETE FROM expenses`,
		`DELETE FROM donations`,
		`DELETE FROM revenues`,
		`DELETE FROM donors`,
		`UPDATE accounts SET current_balance = 0, updated_at = now()`,
	} {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

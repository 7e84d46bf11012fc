package domain

// Settings is the singleton organization configuration row.
type Settings struct {
	ID                  int32    `json:"id"`
	OrganizationName    string   `json:"organizationName"`
	OrganizationAddress string   `json:"organizationAddress"`
	OrganizationEmail   string   `json:"organizationEmail"`
	OrganizationPhone   string   `json:"organizationPhone"`
	OrganizationWebsite string   `json:"organizationWebsite"`
	FiscalYearStart     int      `json:"fiscalYearStart"`
	FiscalYearEnd       int      `json:"fiscalYearEnd"`
	RevenueCategories   []string `json:"revenueCategories"`
	ExpenseCategories   []string `json:"expenseCategories"`
}

// DatabaseStats holds per-family row counts for the settings page.
type DatabaseStats struct {
	Revenues  int64 `json:"revenues"`
	Donations int64 `json:"donations"`
	Donors    int64 `json:"donors"`
	Expenses  int64 `json:"expenses"`
	Budgets   int64 `json:"budgets"`
}

// SettingsRepository defines the interface for settings persistence operations
type SettingsRepository interface {
	// Get returns the singleton row, creating the defaults if absent.
	Get() (*Settings, error)
	Update(settings *Settings) (*Settings, error)
	UpdateCategories(revenueCategories, expenseCategories []string) (*Settings, error)
	Stats() (*DatabaseStats, error)
	// ResetTransactions deletes all budgets, expenses, donations, revenues
	// and donors, and zeroes every account balance, in one transaction.
	// Users and settings are untouched.
	ResetTransactions() error
}

package service

import (
	"strings"

	"github.com/24studio/finance-backend/internal/domain"
	"github.com/rs/zerolog/log"
)

// SettingsService handles organization settings and data administration
type SettingsService struct {
	settingsRepo domain.SettingsRepository
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(settingsRepo domain.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// GetSettings returns the settings singleton, creating defaults if absent
func (s *SettingsService) GetSettings() (*domain.Settings, error) {
	return s.settingsRepo.Get()
}

// UpdateSettingsInput holds the organization identity fields
type UpdateSettingsInput struct {
	OrganizationName    string
	OrganizationAddress string
	OrganizationEmail   string
	OrganizationPhone   string
	OrganizationWebsite string
	FiscalYearStart     int
	FiscalYearEnd       int
}

// UpdateSettings overwrites the organization identity fields
func (s *SettingsService) UpdateSettings(principal *domain.SessionPrincipal, input UpdateSettingsInput) (*domain.Settings, error) {
	if principal.Role != domain.RolePresident {
		return nil, domain.ErrForbidden
	}

	name := strings.TrimSpace(input.OrganizationName)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if input.FiscalYearStart < 1 || input.FiscalYearStart > 12 ||
		input.FiscalYearEnd < 1 || input.FiscalYearEnd > 12 {
		return nil, domain.ErrInvalidYear
	}

	return s.settingsRepo.Update(&domain.Settings{
		OrganizationName:    name,
		OrganizationAddress: strings.TrimSpace(input.OrganizationAddress),
		OrganizationEmail:   strings.TrimSpace(input.OrganizationEmail),
		OrganizationPhone:   strings.TrimSpace(input.OrganizationPhone),
		OrganizationWebsite: strings.TrimSpace(input.OrganizationWebsite),
		FiscalYearStart:     input.FiscalYearStart,
		FiscalYearEnd:       input.FiscalYearEnd,
	})
}

// UpdateCategories overwrites the revenue and expense category lists.
// Blank entries are dropped; an empty resulting list is rejected.
func (s *SettingsService) UpdateCategories(principal *domain.SessionPrincipal, revenueCategories, expenseCategories []string) (*domain.Settings, error) {
	if principal.Role != domain.RolePresident {
		return nil, domain.ErrForbidden
	}

	revenue := cleanCategories(revenueCategories)
	expense := cleanCategories(expenseCategories)
	if len(revenue) == 0 || len(expense) == 0 {
		return nil, domain.ErrCategoryRequired
	}

	return s.settingsRepo.UpdateCategories(revenue, expense)
}

// GetDatabaseStats returns per-family row counts
func (s *SettingsService) GetDatabaseStats(principal *domain.SessionPrincipal) (*domain.DatabaseStats, error) {
	if principal.Role != domain.RolePresident {
		return nil, domain.ErrForbidden
	}
	return s.settingsRepo.Stats()
}

// ResetAllTransactions wipes every transactional record and zeroes all
// account balances. Irreversible; users and settings survive.
func (s *SettingsService) ResetAllTransactions(principal *domain.SessionPrincipal) error {
	if principal.Role != domain.RolePresident {
		return domain.ErrForbidden
	}

	if err := s.settingsRepo.ResetTransactions(); err != nil {
		return err
	}
	log.Warn().Int32("user_id", principal.UserID).Msg("All transactions reset")
	return nil
}

func cleanCategories(categories []string) []string {
	cleaned := make([]string, 0, len(categories))
	for _, c := range categories {
		c = strings.TrimSpace(c)
		if c != "" && len(c) <= domain.MaxCategoryLength {
			cleaned = append(cleaned, c)
		}
	}
	return cleaned
}

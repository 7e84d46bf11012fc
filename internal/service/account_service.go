package service

import (
	"strings"

	"github.com/24studio/finance-backend/internal/domain"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// AccountService handles cash-account business logic
type AccountService struct {
	accountRepo domain.AccountRepository
}

// NewAccountService creates a new AccountService
func NewAccountService(accountRepo domain.AccountRepository) *AccountService {
	return &AccountService{accountRepo: accountRepo}
}

// CreateAccountInput holds the input for creating an account
type CreateAccountInput struct {
	Name           string
	Type           domain.AccountType
	InitialBalance decimal.Decimal
}

// CreateAccount creates a new cash account
func (s *AccountService) CreateAccount(principal *domain.SessionPrincipal, input CreateAccountInput) (*domain.Account, error) {
	if principal.Role != domain.RolePresident {
		return nil, domain.ErrForbidden
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxNameLength {
		return nil, domain.ErrNameTooLong
	}
	if !input.Type.Valid() {
		return nil, domain.ErrInvalidAccountType
	}

	account := &domain.Account{
		Name:           name,
		Type:           input.Type,
		CurrentBalance: input.InitialBalance,
	}
	return s.accountRepo.Create(account)
}

// GetAccounts retrieves all accounts ordered by name
func (s *AccountService) GetAccounts() ([]*domain.Account, error) {
	return s.accountRepo.GetAll()
}

// UpdateBalance is the PRESIDENT's manual override. It writes the balance
// directly and knowingly breaks reconciliation with the transaction history.
func (s *AccountService) UpdateBalance(principal *domain.SessionPrincipal, id int32, balance decimal.Decimal) (*domain.Account, error) {
	if principal.Role != domain.RolePresident {
		return nil, domain.ErrForbidden
	}

	account, err := s.accountRepo.SetBalance(id, balance)
	if err != nil {
		return nil, err
	}
	log.Warn().
		Int32("account_id", id).
		Str("balance", balance.String()).
		Int32("user_id", principal.UserID).
		Msg("Account balance manually overridden")
	return account, nil
}

// DeleteAccount removes an account that carries no transactions
func (s *AccountService) DeleteAccount(principal *domain.SessionPrincipal, id int32) error {
	if principal.Role != domain.RolePresident {
		return domain.ErrForbidden
	}
	return s.accountRepo.Delete(id)
}

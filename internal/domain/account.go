package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountTypeBank          AccountType = "Bank"
	AccountTypeMobileBanking AccountType = "MobileBanking"
	AccountTypeCash          AccountType = "Cash"
	AccountTypeOther         AccountType = "Other"
)

// Valid reports whether t is a known account type.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeBank, AccountTypeMobileBanking, AccountTypeCash, AccountTypeOther:
		return true
	}
	return false
}

// Account is a cash account. CurrentBalance is a derived running total:
// only the donation/revenue/expense cascades and the PRESIDENT's manual
// override write it.
type Account struct {
	ID             int32           `json:"id"`
	Name           string          `json:"name"`
	Type           AccountType     `json:"type"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// AccountRepository defines the interface for account persistence operations
type AccountRepository interface {
	Create(account *Account) (*Account, error)
	GetByID(id int32) (*Account, error)
	GetAll() ([]*Account, error)
	// SetBalance overwrites current_balance, bypassing reconciliation.
	SetBalance(id int32, balance decimal.Decimal) (*Account, error)
	// Delete fails with ErrAccountHasTransactions if any revenue, donation
	// or expense row references the account.
	Delete(id int32) error
	SumBalances() (decimal.Decimal, error)
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type RevenueStatus string

const (
	RevenueStatusPending       RevenueStatus = "Pending"
	RevenueStatusReceived      RevenueStatus = "Received"
	RevenueStatusPartiallyPaid RevenueStatus = "PartiallyPaid"
)

// Valid reports whether s is a known revenue status.
func (s RevenueStatus) Valid() bool {
	switch s {
	case RevenueStatusPending, RevenueStatusReceived, RevenueStatusPartiallyPaid:
		return true
	}
	return false
}

type Revenue struct {
	ID             int32           `json:"id"`
	Date           time.Time       `json:"date"`
	Amount         decimal.Decimal `json:"amount"`
	Category       string          `json:"category"`
	Source         string          `json:"source"`
	PaymentMethod  string          `json:"paymentMethod"`
	AccountID      *int32          `json:"accountId,omitempty"`
	TransactionRef *string         `json:"transactionRef,omitempty"`
	ProgramName    *string         `json:"programName,omitempty"`
	Description    *string         `json:"description,omitempty"`
	ReceiptPath    *string         `json:"receiptPath,omitempty"`
	Status         RevenueStatus   `json:"status"`
	RecordedByID   int32           `json:"recordedById"`
	CreatedAt      time.Time       `json:"createdAt"`

	RecordedByName string `json:"recordedByName,omitempty"`
}

// RevenueRepository defines the interface for revenue persistence operations
type RevenueRepository interface {
	// Create inserts the revenue and, when it is Received into an account,
	// increments that account's balance in the same transaction.
	Create(revenue *Revenue) (*Revenue, error)
	GetByID(id int32) (*Revenue, error)
	// GetAll returns revenues ordered by date descending, limited to 100.
	GetAll() ([]*Revenue, error)
	// Delete removes the row and reverses any balance contribution it made.
	Delete(id int32) error
}

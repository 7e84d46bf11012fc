package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ExpenseStatus string

const (
	ExpenseStatusPending  ExpenseStatus = "Pending"
	ExpenseStatusApproved ExpenseStatus = "Approved"
)

// Expense follows a one-way state machine: Pending -> Approved, or
// Pending -> deleted (reject). There is no un-approve.
type Expense struct {
	ID             int32           `json:"id"`
	Date           time.Time       `json:"date"`
	Amount         decimal.Decimal `json:"amount"`
	Category       string          `json:"category"`
	Vendor         *string         `json:"vendor,omitempty"`
	PaymentMethod  string          `json:"paymentMethod"`
	AccountID      int32           `json:"accountId"`
	TransactionRef *string         `json:"transactionRef,omitempty"`
	Description    *string         `json:"description,omitempty"`
	ReceiptPath    *string         `json:"receiptPath,omitempty"`
	ReceiptLink    *string         `json:"receiptLink,omitempty"`
	Status         ExpenseStatus   `json:"status"`
	RecordedByID   int32           `json:"recordedById"`
	ApprovedByID   *int32          `json:"approvedById,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`

	RecordedByName string `json:"recordedByName,omitempty"`
	ApprovedByName string `json:"approvedByName,omitempty"`
}

// ExpenseRepository defines the interface for expense persistence operations
type ExpenseRepository interface {
	Create(expense *Expense) (*Expense, error)
	GetByID(id int32) (*Expense, error)
	// GetAll returns expenses ordered by date descending, limited to 100.
	GetAll() ([]*Expense, error)
	// Approve flips Pending -> Approved, increments the matching budget's
	// spent_amount (no-op if absent) and decrements the expense's account
	// balance, all in one transaction. The status predicate in the UPDATE
	// is the optimistic lock: returns ErrAlreadyProcessed when the row was
	// not Pending.
	Approve(id int32, approvedByID int32) (*Expense, error)
	// Reject hard-deletes a Pending expense. Returns ErrAlreadyProcessed
	// for an Approved one.
	Reject(id int32) error
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Donation is immutable once created: no update or delete path exists.
// Creation increments the target account balance and the donor's derived
// totals atomically with the insert.
type Donation struct {
	ID                 int32           `json:"id"`
	DonorID            int32           `json:"donorId"`
	Date               time.Time       `json:"date"`
	Amount             decimal.Decimal `json:"amount"`
	Type               string          `json:"type"`
	PaymentMethod      string          `json:"paymentMethod"`
	AccountID          int32           `json:"accountId"`
	TransactionRef     *string         `json:"transactionRef,omitempty"`
	Purpose            *string         `json:"purpose,omitempty"`
	TaxReceiptRequired bool            `json:"taxReceiptRequired"`
	ReceiptPath        *string         `json:"receiptPath,omitempty"`
	RecordedByID       int32           `json:"recordedById"`
	CreatedAt          time.Time       `json:"createdAt"`

	// Joined display names, populated on reads
	DonorName      string `json:"donorName,omitempty"`
	RecordedByName string `json:"recordedByName,omitempty"`
}

// DonationRepository defines the interface for donation persistence operations
type DonationRepository interface {
	// Create inserts the donation and, in the same transaction, increments
	// the account balance and the donor's total_donated/last_donation_date.
	Create(donation *Donation) (*Donation, error)
	// GetAll returns donations ordered by date descending, limited to 100.
	GetAll() ([]*Donation, error)
	GetByDonor(donorID int32) ([]*Donation, error)
}

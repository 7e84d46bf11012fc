package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type DonorStatus string

const (
	DonorStatusInternal DonorStatus = "Internal"
	DonorStatusExternal DonorStatus = "External"
)

// Valid reports whether s is a known donor status
func (s DonorStatus) Valid() bool {
	return s == DonorStatusInternal || s == DonorStatusExternal
}

// Donor is a donation source. TotalDonated and LastDonationDate are derived
// caches maintained by the donation-create cascade.
type Donor struct {
	ID                         int32            `json:"id"`
	Name                       string           `json:"name"`
	Email                      *string          `json:"email,omitempty"`
	Phone                      *string          `json:"phone,omitempty"`
	Address                    *string          `json:"address,omitempty"`
	NationalID                 *string          `json:"nationalId,omitempty"`
	Status                     DonorStatus      `json:"status"`
	YearlyContributionRequired *decimal.Decimal `json:"yearlyContributionRequired,omitempty"`
	TotalDonated               decimal.Decimal  `json:"totalDonated"`
	LastDonationDate           *time.Time       `json:"lastDonationDate,omitempty"`
	CreatedAt                  time.Time        `json:"createdAt"`
}

// DonorStats summarizes a donor's giving for the profile view.
type DonorStats struct {
	YearlyDonated    decimal.Decimal `json:"yearlyDonated"`
	MonthlyDonated   decimal.Decimal `json:"monthlyDonated"`
	LifetimeDonated  decimal.Decimal `json:"lifetimeDonated"`
	LastDonationDate *time.Time      `json:"lastDonationDate,omitempty"`
}

// DonorProfile is a donor with full donation history.
type DonorProfile struct {
	Donor   *Donor      `json:"donor"`
	Stats   DonorStats  `json:"stats"`
	History []*Donation `json:"history"`
}

// DonorRepository defines the interface for donor persistence operations.
// Donors are append-only: no update or delete path.
type DonorRepository interface {
	Create(donor *Donor) (*Donor, error)
	GetByID(id int32) (*Donor, error)
	// GetAll returns donors ordered by last donation date, newest first.
	GetAll() ([]*Donor, error)
}

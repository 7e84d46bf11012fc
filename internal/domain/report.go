package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ReportType string

const (
	ReportTypeAll      ReportType = "All"
	ReportTypeRevenue  ReportType = "Revenue"
	ReportTypeExpense  ReportType = "Expense"
	ReportTypeDonation ReportType = "Donation"
)

// ReportFilter selects a date window and transaction family.
// Month is 1-12; nil means the full year.
type ReportFilter struct {
	Year  int
	Month *int
	Type  ReportType
}

// ReportTransaction is the merged shape for revenue, expense and donation
// rows in report and export views. ID carries a family prefix (REV-/EXP-/DON-).
type ReportTransaction struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Type        ReportType      `json:"type"`
	Category    string          `json:"category"`
	Source      string          `json:"source"`
	Amount      decimal.Decimal `json:"amount"`
	RecordedBy  string          `json:"recordedBy"`
	ReceiptPath *string         `json:"receiptPath,omitempty"`
	ReceiptLink *string         `json:"receiptLink,omitempty"`
}

// CategoryTotal is one "Type: Category" slice of the breakdown.
type CategoryTotal struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

type ReportSummary struct {
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalExpense  decimal.Decimal `json:"totalExpense"`
	TotalDonation decimal.Decimal `json:"totalDonation"`
	NetIncome     decimal.Decimal `json:"netIncome"`
}

type ReportData struct {
	Summary      ReportSummary        `json:"summary"`
	Breakdown    []CategoryTotal      `json:"breakdown"`
	Transactions []*ReportTransaction `json:"transactions"`
}

// DashboardSnapshot carries the four summary totals plus per-family counts.
// Totals come from database-side aggregation, never loaded row sets.
type DashboardSnapshot struct {
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalDonation decimal.Decimal `json:"totalDonation"`
	TotalExpense  decimal.Decimal `json:"totalExpense"`
	NetIncome     decimal.Decimal `json:"netIncome"`
	TotalBalance  decimal.Decimal `json:"totalBalance"`
	RevenueCount  int64           `json:"revenueCount"`
	DonationCount int64           `json:"donationCount"`
	ExpenseCount  int64           `json:"expenseCount"`
	DonorCount    int64           `json:"donorCount"`
}

// ReportRepository defines the read-side aggregation queries.
type ReportRepository interface {
	RevenuesInRange(start, end time.Time) ([]*Revenue, error)
	ExpensesInRange(start, end time.Time) ([]*Expense, error)
	DonationsInRange(start, end time.Time) ([]*Donation, error)
	// Sums and counts are computed in SQL (SUM/COUNT), window-filtered.
	SumRevenues(start, end time.Time) (decimal.Decimal, error)
	SumDonations(start, end time.Time) (decimal.Decimal, error)
	// SumApprovedExpenses counts only status=Approved rows.
	SumApprovedExpenses(start, end time.Time) (decimal.Decimal, error)
	Counts(start, end time.Time) (revenues, donations, expenses, donors int64, err error)
}

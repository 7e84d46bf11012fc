package service

import (
	"fmt"
	"sort"

	"github.com/24studio/finance-backend/internal/domain"
	"github.com/24studio/finance-backend/internal/util"
	"github.com/shopspring/decimal"
)

// ReportService computes reports and the dashboard snapshot
type ReportService struct {
	reportRepo  domain.ReportRepository
	accountRepo domain.AccountRepository
}

// NewReportService creates a new ReportService
func NewReportService(reportRepo domain.ReportRepository, accountRepo domain.AccountRepository) *ReportService {
	return &ReportService{reportRepo: reportRepo, accountRepo: accountRepo}
}

// GetReportData builds the filtered report: summary totals, per-category
// breakdown sorted by amount descending, and the merged transaction list
// sorted by date descending.
func (s *ReportService) GetReportData(filter domain.ReportFilter) (*domain.ReportData, error) {
	if filter.Month != nil && (*filter.Month < 1 || *filter.Month > 12) {
		return nil, domain.ErrInvalidYear
	}
	if filter.Type == "" {
		filter.Type = domain.ReportTypeAll
	}

	start, end := util.ReportWindow(filter.Year, filter.Month)

	summary := domain.ReportSummary{
		TotalRevenue:  decimal.Zero,
		TotalExpense:  decimal.Zero,
		TotalDonation: decimal.Zero,
	}
	byCategory := make(map[string]decimal.Decimal)
	transactions := make([]*domain.ReportTransaction, 0)

	wantRevenue := filter.Type == domain.ReportTypeAll || filter.Type == domain.ReportTypeRevenue
	wantExpense := filter.Type == domain.ReportTypeAll || filter.Type == domain.ReportTypeExpense
	wantDonation := filter.Type == domain.ReportTypeAll || filter.Type == domain.ReportTypeDonation

	if wantRevenue {
		revenues, err := s.reportRepo.RevenuesInRange(start, end)
		if err != nil {
			return nil, err
		}
		for _, r := range revenues {
			summary.TotalRevenue = summary.TotalRevenue.Add(r.Amount)
			key := fmt.Sprintf("Revenue: %s", r.Category)
			byCategory[key] = byCategory[key].Add(r.Amount)
			transactions = append(transactions, &domain.ReportTransaction{
				ID:          fmt.Sprintf("REV-%d", r.ID),
				Date:        r.Date,
				Type:        domain.ReportTypeRevenue,
				Category:    r.Category,
				Source:      r.Source,
				Amount:      r.Amount,
				RecordedBy:  r.RecordedByName,
				ReceiptPath: r.ReceiptPath,
			})
		}
	}

	if wantExpense {
		expenses, err := s.reportRepo.ExpensesInRange(start, end)
		if err != nil {
			return nil, err
		}
		for _, e := range expenses {
			summary.TotalExpense = summary.TotalExpense.Add(e.Amount)
			key := fmt.Sprintf("Expense: %s", e.Category)
			byCategory[key] = byCategory[key].Add(e.Amount)
			// Vendor is optional; the merged source column shows a dash
			// rather than a blank cell.
			source := "-"
			if e.Vendor != nil {
				source = *e.Vendor
			}
			transactions = append(transactions, &domain.ReportTransaction{
				ID:          fmt.Sprintf("EXP-%d", e.ID),
				Date:        e.Date,
				Type:        domain.ReportTypeExpense,
				Category:    e.Category,
				Source:      source,
				Amount:      e.Amount,
				RecordedBy:  e.RecordedByName,
				ReceiptPath: e.ReceiptPath,
				ReceiptLink: e.ReceiptLink,
			})
		}
	}

	if wantDonation {
		donations, err := s.reportRepo.DonationsInRange(start, end)
		if err != nil {
			return nil, err
		}
		for _, d := range donations {
			summary.TotalDonation = summary.TotalDonation.Add(d.Amount)
			key := fmt.Sprintf("Donation: %s", d.Type)
			byCategory[key] = byCategory[key].Add(d.Amount)
			transactions = append(transactions, &domain.ReportTransaction{
				ID:          fmt.Sprintf("DON-%d", d.ID),
				Date:        d.Date,
				Type:        domain.ReportTypeDonation,
				Category:    d.Type,
				Source:      d.DonorName,
				Amount:      d.Amount,
				RecordedBy:  d.RecordedByName,
				ReceiptPath: d.ReceiptPath,
			})
		}
	}

	summary.NetIncome = summary.TotalRevenue.Add(summary.TotalDonation).Sub(summary.TotalExpense)

	breakdown := make([]domain.CategoryTotal, 0, len(byCategory))
	for name, amount := range byCategory {
		breakdown = append(breakdown, domain.CategoryTotal{Name: name, Amount: amount})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if !breakdown[i].Amount.Equal(breakdown[j].Amount) {
			return breakdown[i].Amount.GreaterThan(breakdown[j].Amount)
		}
		return breakdown[i].Name < breakdown[j].Name
	})

	sort.Slice(transactions, func(i, j int) bool {
		return transactions[i].Date.After(transactions[j].Date)
	})

	return &domain.ReportData{
		Summary:      summary,
		Breakdown:    breakdown,
		Transactions: transactions,
	}, nil
}

// GetDashboardSnapshot aggregates totals and counts for the requested
// window (the full year, or a single month when month is set) plus the
// current combined account balance. Totals always reflect committed
// state at read time; nothing is cached.
func (s *ReportService) GetDashboardSnapshot(year int, month *int) (*domain.DashboardSnapshot, error) {
	if month != nil && (*month < 1 || *month > 12) {
		return nil, domain.ErrInvalidYear
	}
	start, end := util.ReportWindow(year, month)

	totalRevenue, err := s.reportRepo.SumRevenues(start, end)
	if err != nil {
		return nil, err
	}
	totalDonation, err := s.reportRepo.SumDonations(start, end)
	if err != nil {
		return nil, err
	}
	totalExpense, err := s.reportRepo.SumApprovedExpenses(start, end)
	if err != nil {
		return nil, err
	}
	revenues, donations, expenses, donors, err := s.reportRepo.Counts(start, end)
	if err != nil {
		return nil, err
	}
	totalBalance, err := s.accountRepo.SumBalances()
	if err != nil {
		return nil, err
	}

	return &domain.DashboardSnapshot{
		TotalRevenue:  totalRevenue,
		TotalDonation: totalDonation,
		TotalExpense:  totalExpense,
		NetIncome:     totalRevenue.Add(totalDonation).Sub(totalExpense),
		TotalBalance:  totalBalance,
		RevenueCount:  revenues,
		DonationCount: donations,
		ExpenseCount:  expenses,
		DonorCount:    donors,
	}, nil
}

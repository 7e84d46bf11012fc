package service

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/24studio/finance-backend/internal/domain"
)

// ExportService renders reports as CSV
type ExportService struct {
	reports *ReportService
}

// NewExportService creates a new ExportService
func NewExportService(reports *ReportService) *ExportService {
	return &ExportService{reports: reports}
}

// csvHeader is the fixed column set of the transaction export
var csvHeader = []string{"ID", "Date", "Type", "Category", "Source/Vendor", "Amount", "RecordedBy"}

// WriteCSV streams the filtered transaction list as CSV. encoding/csv
// handles quoting of embedded commas and quotes in category and source
// fields.
func (s *ExportService) WriteCSV(w io.Writer, filter domain.ReportFilter) error {
	report, err := s.reports.GetReportData(filter)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}
	for _, tx := range report.Transactions {
		record := []string{
			tx.ID,
			tx.Date.Format("2006-01-02"),
			string(tx.Type),
			tx.Category,
			tx.Source,
			tx.Amount.StringFixed(2),
			tx.RecordedBy,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// Filename builds the attachment name for an export
func (s *ExportService) Filename(filter domain.ReportFilter) string {
	if filter.Month != nil {
		return fmt.Sprintf("transactions_%d_%02d.csv", filter.Year, *filter.Month)
	}
	return fmt.Sprintf("transactions_%d.csv", filter.Year)
}

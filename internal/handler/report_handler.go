package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/24studio/finance-backend/internal/domain"
	"github.com/24studio/finance-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ReportHandler handles report and dashboard HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
	exportService *service.ExportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *service.ReportService, exportService *service.ExportService) *ReportHandler {
	return &ReportHandler{reportService: reportService, exportService: exportService}
}

// parseReportFilter reads year/month/type query params. Year defaults to the
// current year; month and type are optional.
func parseReportFilter(c echo.Context) (domain.ReportFilter, error) {
	filter := domain.ReportFilter{Year: time.Now().Year()}

	if raw := c.QueryParam("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return filter, fmt.Errorf("year must be a number")
		}
		filter.Year = year
	}
	if raw := c.QueryParam("month"); raw != "" {
		month, err := strconv.Atoi(raw)
		if err != nil {
			return filter, fmt.Errorf("month must be a number")
		}
		filter.Month = &month
	}
	filter.Type = domain.ReportType(c.QueryParam("type"))

	return filter, nil
}

// GetReport handles GET /api/v1/reports
func (h *ReportHandler) GetReport(c echo.Context) error {
	filter, err := parseReportFilter(c)
	if err != nil {
		return NewValidationError(c, err.Error(), nil)
	}

	data, err := h.reportService.GetReportData(filter)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidYear) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "month", Message: "Month must be between 1 and 12"},
			})
		}
		log.Error().Err(err).Int("year", filter.Year).Msg("Failed to build report")
		return NewInternalError(c, "Failed to build report")
	}

	return c.JSON(http.StatusOK, data)
}

// ExportCSV handles GET /api/v1/reports/export
func (h *ReportHandler) ExportCSV(c echo.Context) error {
	filter, err := parseReportFilter(c)
	if err != nil {
		return NewValidationError(c, err.Error(), nil)
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", h.exportService.Filename(filter)))
	c.Response().WriteHeader(http.StatusOK)

	if err := h.exportService.WriteCSV(c.Response(), filter); err != nil {
		// Headers are already sent, so all we can do is log.
		log.Error().Err(err).Int("year", filter.Year).Msg("CSV export failed mid-stream")
		return err
	}
	return nil
}

// GetDashboard handles GET /api/v1/dashboard
func (h *ReportHandler) GetDashboard(c echo.Context) error {
	filter, err := parseReportFilter(c)
	if err != nil {
		return NewValidationError(c, err.Error(), nil)
	}

	snapshot, err := h.reportService.GetDashboardSnapshot(filter.Year, filter.Month)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidYear) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "month", Message: "Month must be between 1 and 12"},
			})
		}
		log.Error().Err(err).Int("year", filter.Year).Msg("Failed to build dashboard")
		return NewInternalError(c, "Failed to build dashboard")
	}

	return c.JSON(http.StatusOK, snapshot)
}

package handler

import (
	"errors"
	"net/http"

	"github.com/24studio/finance-backend/internal/domain"
	"github.com/24studio/finance-backend/internal/middleware"
	"github.com/24studio/finance-backend/internal/service"
	"github.com/24studio/finance-backend/internal/ws"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// SettingsHandler handles organization settings HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
	events          ws.EventPublisher
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService *service.SettingsService, events ws.EventPublisher) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService, events: events}
}

// UpdateSettingsRequest represents the organization identity update body
type UpdateSettingsRequest struct {
	OrganizationName    string `json:"organizationName"`
	OrganizationAddress string `json:"organizationAddress"`
	OrganizationEmail   string `json:"organizationEmail"`
	OrganizationPhone   string `json:"organizationPhone"`
	OrganizationWebsite string `json:"organizationWebsite"`
	FiscalYearStart     int    `json:"fiscalYearStart"`
	FiscalYearEnd       int    `json:"fiscalYearEnd"`
}

// UpdateCategoriesRequest represents the category lists update body
type UpdateCategoriesRequest struct {
	RevenueCategories []string `json:"revenueCategories"`
	ExpenseCategories []string `json:"expenseCategories"`
}

// GetSettings handles GET /api/v1/settings
func (h *SettingsHandler) GetSettings(c echo.Context) error {
	settings, err := h.settingsService.GetSettings()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get settings")
		return NewInternalError(c, "Failed to get settings")
	}
	return c.JSON(http.StatusOK, settings)
}

// UpdateSettings handles PUT /api/v1/settings
func (h *SettingsHandler) UpdateSettings(c echo.Context) error {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req UpdateSettingsRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input := service.UpdateSettingsInput{
		OrganizationName:    req.OrganizationName,
		OrganizationAddress: req.OrganizationAddress,
		OrganizationEmail:   req.OrganizationEmail,
		OrganizationPhone:   req.OrganizationPhone,
		OrganizationWebsite: req.OrganizationWebsite,
		FiscalYearStart:     req.FiscalYearStart,
		FiscalYearEnd:       req.FiscalYearEnd,
	}

	settings, err := h.settingsService.UpdateSettings(principal, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return NewForbiddenError(c, "Only the president can change settings")
		case errors.Is(err, domain.ErrNameRequired):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "organizationName", Message: "Organization name is required"},
			})
		case errors.Is(err, domain.ErrInvalidYear):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "fiscalYearStart", Message: "Fiscal year months must be between 1 and 12"},
			})
		}
		log.Error().Err(err).Msg("Failed to update settings")
		return NewInternalError(c, "Failed to update settings")
	}

	log.Info().Msg("Organization settings updated")
	h.events.Publish(ws.SettingsUpdated())

	return c.JSON(http.StatusOK, settings)
}

// UpdateCategories handles PUT /api/v1/settings/categories
func (h *SettingsHandler) UpdateCategories(c echo.Context) error {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req UpdateCategoriesRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	settings, err := h.settingsService.UpdateCategories(principal, req.RevenueCategories, req.ExpenseCategories)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return NewForbiddenError(c, "Only the president can change settings")
		case errors.Is(err, domain.ErrCategoryRequired):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "categories", Message: "At least one valid category is required per list"},
			})
		}
		log.Error().Err(err).Msg("Failed to update categories")
		return NewInternalError(c, "Failed to update categories")
	}

	log.Info().Msg("Transaction categories updated")
	h.events.Publish(ws.SettingsUpdated())

	return c.JSON(http.StatusOK, settings)
}

// GetDatabaseStats handles GET /api/v1/settings/stats
func (h *SettingsHandler) GetDatabaseStats(c echo.Context) error {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	stats, err := h.settingsService.GetDatabaseStats(principal)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			return NewForbiddenError(c, "Only the president can view database stats")
		}
		log.Error().Err(err).Msg("Failed to get database stats")
		return NewInternalError(c, "Failed to get database stats")
	}
	return c.JSON(http.StatusOK, stats)
}

// ResetAllTransactions handles POST /api/v1/settings/reset
func (h *SettingsHandler) ResetAllTransactions(c echo.Context) error {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	if err := h.settingsService.ResetAllTransactions(principal); err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			return NewForbiddenError(c, "Only the president can reset transactions")
		}
		log.Error().Err(err).Msg("Failed to reset transactions")
		return NewInternalError(c, "Failed to reset transactions")
	}

	log.Warn().Int32("user_id", principal.UserID).Msg("All transactions reset")
	h.events.Publish(ws.TransactionsReset())

	return c.NoContent(http.StatusNoContent)
}

package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/24studio/finance-backend/internal/domain"
	"github.com/24studio/finance-backend/internal/middleware"
	"github.com/24studio/finance-backend/internal/service"
	"github.com/24studio/finance-backend/internal/ws"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// BudgetHandler handles budget-related HTTP requests
type BudgetHandler struct {
	budgetService *service.BudgetService
	events        ws.EventPublisher
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(budgetService *service.BudgetService, events ws.EventPublisher) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService, events: events}
}

// CreateBudgetRequest represents the create budget request body
type CreateBudgetRequest struct {
	Year            int    `json:"year"`
	Category        string `json:"category"`
	AllocatedAmount string `json:"allocatedAmount"`
}

// BudgetResponse represents a budget line in API responses
type BudgetResponse struct {
	ID              int32     `json:"id"`
	Year            int       `json:"year"`
	Category        string    `json:"category"`
	AllocatedAmount string    `json:"allocatedAmount"`
	SpentAmount     string    `json:"spentAmount"`
	CreatedAt       time.Time `json:"createdAt"`
}

func toBudgetResponse(b *domain.Budget) BudgetResponse {
	return BudgetResponse{
		ID:              b.ID,
		Year:            b.Year,
		Category:        b.Category,
		AllocatedAmount: b.AllocatedAmount.StringFixed(2),
		SpentAmount:     b.SpentAmount.StringFixed(2),
		CreatedAt:       b.CreatedAt,
	}
}

// CreateBudget handles POST /api/v1/budget
func (h *BudgetHandler) CreateBudget(c echo.Context) error {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req CreateBudgetRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.AllocatedAmount)
	if err != nil {
		return NewValidationError(c, "Invalid allocated amount", []ValidationError{
			{Field: "allocatedAmount", Message: "Must be a valid decimal number"},
		})
	}

	input := service.CreateBudgetInput{
		Year:            req.Year,
		Category:        req.Category,
		AllocatedAmount: amount,
	}

	budget, err := h.budgetService.CreateBudget(principal, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return NewForbiddenError(c, "Your role does not permit managing budgets")
		case errors.Is(err, domain.ErrInvalidYear):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "year", Message: "Year is out of range"},
			})
		case errors.Is(err, domain.ErrCategoryRequired):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "category", Message: "Category is required and must be 100 characters or less"},
			})
		case errors.Is(err, domain.ErrInvalidAmount):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "allocatedAmount", Message: "Allocated amount must be greater than zero"},
			})
		case errors.Is(err, domain.ErrDuplicateBudget):
			return NewConflictError(c, "A budget for this year and category already exists")
		}
		log.Error().Err(err).Msg("Failed to create budget")
		return NewInternalError(c, "Failed to create budget")
	}

	log.Info().
		Int32("budget_id", budget.ID).
		Int("year", budget.Year).
		Str("category", budget.Category).
		Msg("Budget created")
	h.events.Publish(ws.BudgetCreated(budget.ID))

	return c.JSON(http.StatusCreated, toBudgetResponse(budget))
}

// GetBudgets handles GET /api/v1/budget
func (h *BudgetHandler) GetBudgets(c echo.Context) error {
	year := 0
	if raw := c.QueryParam("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return NewValidationError(c, "Invalid year", []ValidationError{
				{Field: "year", Message: "Must be a number"},
			})
		}
		year = parsed
	}

	budgets, err := h.budgetService.GetBudgets(year)
	if err != nil {
		log.Error().Err(err).Int("year", year).Msg("Failed to get budgets")
		return NewInternalError(c, "Failed to get budgets")
	}

	response := make([]BudgetResponse, len(budgets))
	for i, budget := range budgets {
		response[i] = toBudgetResponse(budget)
	}
	return c.JSON(http.StatusOK, response)
}

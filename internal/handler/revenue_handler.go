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

// RevenueHandler handles revenue-related HTTP requests
type RevenueHandler struct {
	revenueService *service.RevenueService
	events         ws.EventPublisher
}

// NewRevenueHandler creates a new RevenueHandler
func NewRevenueHandler(revenueService *service.RevenueService, events ws.EventPublisher) *RevenueHandler {
	return &RevenueHandler{revenueService: revenueService, events: events}
}

// CreateRevenueRequest represents the create revenue request body
type CreateRevenueRequest struct {
	Date           string  `json:"date"`
	Amount         string  `json:"amount"`
	Category       string  `json:"category"`
	Source         string  `json:"source"`
	PaymentMethod  string  `json:"paymentMethod"`
	AccountID      *int32  `json:"accountId"`
	TransactionRef *string `json:"transactionRef"`
	ProgramName    *string `json:"programName"`
	Description    *string `json:"description"`
	ReceiptPath    *string `json:"receiptPath"`
	Status         string  `json:"status"`
}

// RevenueResponse represents a revenue entry in API responses
type RevenueResponse struct {
	ID             int32     `json:"id"`
	Date           time.Time `json:"date"`
	Amount         string    `json:"amount"`
	Category       string    `json:"category"`
	Source         string    `json:"source"`
	PaymentMethod  string    `json:"paymentMethod"`
	AccountID      *int32    `json:"accountId,omitempty"`
	TransactionRef *string   `json:"transactionRef,omitempty"`
	ProgramName    *string   `json:"programName,omitempty"`
	Description    *string   `json:"description,omitempty"`
	ReceiptPath    *string   `json:"receiptPath,omitempty"`
	Status         string    `json:"status"`
	RecordedByID   int32     `json:"recordedById"`
	RecordedByName string    `json:"recordedByName,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

func toRevenueResponse(r *domain.Revenue) RevenueResponse {
	return RevenueResponse{
		ID:             r.ID,
		Date:           r.Date,
		Amount:         r.Amount.StringFixed(2),
		Category:       r.Category,
		Source:         r.Source,
		PaymentMethod:  r.PaymentMethod,
		AccountID:      r.AccountID,
		TransactionRef: r.TransactionRef,
		ProgramName:    r.ProgramName,
		Description:    r.Description,
		ReceiptPath:    r.ReceiptPath,
		Status:         string(r.Status),
		RecordedByID:   r.RecordedByID,
		RecordedByName: r.RecordedByName,
		CreatedAt:      r.CreatedAt,
	}
}

// CreateRevenue handles POST /api/v1/revenue
func (h *RevenueHandler) CreateRevenue(c echo.Context) error {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req CreateRevenueRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	input := service.CreateRevenueInput{
		Date:           req.Date,
		Amount:         amount,
		Category:       req.Category,
		Source:         req.Source,
		PaymentMethod:  req.PaymentMethod,
		AccountID:      req.AccountID,
		TransactionRef: req.TransactionRef,
		ProgramName:    req.ProgramName,
		Description:    req.Description,
		ReceiptPath:    req.ReceiptPath,
		Status:         domain.RevenueStatus(req.Status),
	}

	revenue, err := h.revenueService.CreateRevenue(principal, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return NewForbiddenError(c, "Your role does not permit recording revenue")
		case errors.Is(err, domain.ErrInvalidAmount):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "amount", Message: "Amount must be greater than zero"},
			})
		case errors.Is(err, domain.ErrCategoryRequired):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "category", Message: "Category is required and must be 100 characters or less"},
			})
		case errors.Is(err, domain.ErrSourceRequired):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "source", Message: "Source is required"},
			})
		case errors.Is(err, domain.ErrInvalidStatus):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "status", Message: "Status must be one of: Pending, Received, PartiallyPaid"},
			})
		case errors.Is(err, domain.ErrDateRequired):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "date", Message: "A valid date (YYYY-MM-DD) is required"},
			})
		case errors.Is(err, domain.ErrAccountNotFound):
			return NewNotFoundError(c, "Account not found")
		}
		log.Error().Err(err).Msg("Failed to create revenue")
		return NewInternalError(c, "Failed to create revenue")
	}

	log.Info().
		Int32("revenue_id", revenue.ID).
		Str("category", revenue.Category).
		Str("amount", revenue.Amount.String()).
		Msg("Revenue recorded")
	h.events.Publish(ws.RevenueCreated(revenue.ID))

	return c.JSON(http.StatusCreated, toRevenueResponse(revenue))
}

// GetRevenues handles GET /api/v1/revenue
func (h *RevenueHandler) GetRevenues(c echo.Context) error {
	revenues, err := h.revenueService.GetRevenues()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get revenues")
		return NewInternalError(c, "Failed to get revenues")
	}

	response := make([]RevenueResponse, len(revenues))
	for i, revenue := range revenues {
		response[i] = toRevenueResponse(revenue)
	}
	return c.JSON(http.StatusOK, response)
}

// DeleteRevenue handles DELETE /api/v1/revenue/:id
func (h *RevenueHandler) DeleteRevenue(c echo.Context) error {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid revenue ID", nil)
	}

	if err := h.revenueService.DeleteRevenue(principal, int32(id)); err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return NewForbiddenError(c, "You may only delete revenue entries you recorded")
		case errors.Is(err, domain.ErrRevenueNotFound):
			return NewNotFoundError(c, "Revenue entry not found")
		}
		log.Error().Err(err).Int("revenue_id", id).Msg("Failed to delete revenue")
		return NewInternalError(c, "Failed to delete revenue")
	}

	log.Info().Int("revenue_id", id).Int32("user_id", principal.UserID).Msg("Revenue deleted")
	h.events.Publish(ws.RevenueDeleted(int32(id)))

	return c.NoContent(http.StatusNoContent)
}

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

// ExpenseHandler handles expense-related HTTP requests
type ExpenseHandler struct {
	expenseService *service.ExpenseService
	events         ws.EventPublisher
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService *service.ExpenseService, events ws.EventPublisher) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService, events: events}
}

// CreateExpenseRequest represents the create expense request body
type CreateExpenseRequest struct {
	Date           string  `json:"date"`
	Amount         string  `json:"amount"`
	Category       string  `json:"category"`
	Vendor         *string `json:"vendor"`
	PaymentMethod  string  `json:"paymentMethod"`
	AccountID      int32   `json:"accountId"`
	TransactionRef *string `json:"transactionRef"`
	Description    *string `json:"description"`
	ReceiptPath    *string `json:"receiptPath"`
	ReceiptLink    *string `json:"receiptLink"`
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID             int32     `json:"id"`
	Date           time.Time `json:"date"`
	Amount         string    `json:"amount"`
	Category       string    `json:"category"`
	Vendor         *string   `json:"vendor,omitempty"`
	PaymentMethod  string    `json:"paymentMethod"`
	AccountID      int32     `json:"accountId"`
	TransactionRef *string   `json:"transactionRef,omitempty"`
	Description    *string   `json:"description,omitempty"`
	ReceiptPath    *string   `json:"receiptPath,omitempty"`
	ReceiptLink    *string   `json:"receiptLink,omitempty"`
	Status         string    `json:"status"`
	RecordedByID   int32     `json:"recordedById"`
	RecordedByName string    `json:"recordedByName,omitempty"`
	ApprovedByID   *int32    `json:"approvedById,omitempty"`
	ApprovedByName string    `json:"approvedByName,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

func toExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:             e.ID,
		Date:           e.Date,
		Amount:         e.Amount.StringFixed(2),
		Category:       e.Category,
		Vendor:         e.Vendor,
		PaymentMethod:  e.PaymentMethod,
		AccountID:      e.AccountID,
		TransactionRef: e.TransactionRef,
		Description:    e.Description,
		ReceiptPath:    e.ReceiptPath,
		ReceiptLink:    e.ReceiptLink,
		Status:         string(e.Status),
		RecordedByID:   e.RecordedByID,
		RecordedByName: e.RecordedByName,
		ApprovedByID:   e.ApprovedByID,
		ApprovedByName: e.ApprovedByName,
		CreatedAt:      e.CreatedAt,
	}
}

// CreateExpense handles POST /api/v1/expenses
func (h *ExpenseHandler) CreateExpense(c echo.Context) error {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req CreateExpenseRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	input := service.CreateExpenseInput{
		Date:           req.Date,
		Amount:         amount,
		Category:       req.Category,
		Vendor:         req.Vendor,
		PaymentMethod:  req.PaymentMethod,
		AccountID:      req.AccountID,
		TransactionRef: req.TransactionRef,
		Description:    req.Description,
		ReceiptPath:    req.ReceiptPath,
		ReceiptLink:    req.ReceiptLink,
	}

	expense, err := h.expenseService.CreateExpense(principal, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return NewForbiddenError(c, "Your role does not permit recording expenses")
		case errors.Is(err, domain.ErrInvalidAmount):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "amount", Message: "Amount must be greater than zero"},
			})
		case errors.Is(err, domain.ErrCategoryRequired):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "category", Message: "Category is required and must be 100 characters or less"},
			})
		case errors.Is(err, domain.ErrDateRequired):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "date", Message: "A valid date (YYYY-MM-DD) is required"},
			})
		case errors.Is(err, domain.ErrAccountNotFound):
			return NewNotFoundError(c, "Account not found")
		}
		log.Error().Err(err).Msg("Failed to create expense")
		return NewInternalError(c, "Failed to create expense")
	}

	log.Info().
		Int32("expense_id", expense.ID).
		Str("category", expense.Category).
		Str("amount", expense.Amount.String()).
		Msg("Expense recorded")
	h.events.Publish(ws.ExpenseCreated(expense.ID))

	return c.JSON(http.StatusCreated, toExpenseResponse(expense))
}

// GetExpenses handles GET /api/v1/expenses
func (h *ExpenseHandler) GetExpenses(c echo.Context) error {
	expenses, err := h.expenseService.GetExpenses()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get expenses")
		return NewInternalError(c, "Failed to get expenses")
	}

	response := make([]ExpenseResponse, len(expenses))
	for i, expense := range expenses {
		response[i] = toExpenseResponse(expense)
	}
	return c.JSON(http.StatusOK, response)
}

// ApproveExpense handles PATCH /api/v1/expenses/:id/approve
func (h *ExpenseHandler) ApproveExpense(c echo.Context) error {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid expense ID", nil)
	}

	expense, err := h.expenseService.ApproveExpense(principal, int32(id))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return NewForbiddenError(c, "Your role does not permit approving expenses")
		case errors.Is(err, domain.ErrExpenseNotFound):
			return NewNotFoundError(c, "Expense not found")
		case errors.Is(err, domain.ErrAlreadyProcessed):
			return NewConflictError(c, "Expense has already been processed")
		}
		log.Error().Err(err).Int("expense_id", id).Msg("Failed to approve expense")
		return NewInternalError(c, "Failed to approve expense")
	}

	log.Info().
		Int32("expense_id", expense.ID).
		Int32("approved_by", principal.UserID).
		Msg("Expense approved")
	h.events.Publish(ws.ExpenseApproved(expense.ID))

	return c.JSON(http.StatusOK, toExpenseResponse(expense))
}

// RejectExpense handles PATCH /api/v1/expenses/:id/reject
func (h *ExpenseHandler) RejectExpense(c echo.Context) error {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid expense ID", nil)
	}

	if err := h.expenseService.RejectExpense(principal, int32(id)); err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return NewForbiddenError(c, "Your role does not permit rejecting expenses")
		case errors.Is(err, domain.ErrExpenseNotFound):
			return NewNotFoundError(c, "Expense not found")
		case errors.Is(err, domain.ErrAlreadyProcessed):
			return NewConflictError(c, "Expense has already been processed")
		}
		log.Error().Err(err).Int("expense_id", id).Msg("Failed to reject expense")
		return NewInternalError(c, "Failed to reject expense")
	}

	log.Info().Int("expense_id", id).Int32("rejected_by", principal.UserID).Msg("Expense rejected")
	h.events.Publish(ws.ExpenseRejected(int32(id)))

	return c.NoContent(http.StatusNoContent)
}

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

// AccountHandler handles account-related HTTP requests
type AccountHandler struct {
	accountService *service.AccountService
	events         ws.EventPublisher
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accountService *service.AccountService, events ws.EventPublisher) *AccountHandler {
	return &AccountHandler{accountService: accountService, events: events}
}

// CreateAccountRequest represents the create account request body
type CreateAccountRequest struct {
	Name           string `json:"name"`
	Type           string `json:"type"`
	InitialBalance string `json:"initialBalance"`
}

// UpdateBalanceRequest represents the manual balance override body
type UpdateBalanceRequest struct {
	Balance string `json:"balance"`
}

// AccountResponse represents an account in API responses
type AccountResponse struct {
	ID             int32     `json:"id"`
	Name           string    `json:"name"`
	Type           string    `json:"type"`
	CurrentBalance string    `json:"currentBalance"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func toAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		ID:             a.ID,
		Name:           a.Name,
		Type:           string(a.Type),
		CurrentBalance: a.CurrentBalance.StringFixed(2),
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// CreateAccount handles POST /api/v1/accounts
func (h *AccountHandler) CreateAccount(c echo.Context) error {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req CreateAccountRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	initialBalance := decimal.Zero
	if req.InitialBalance != "" {
		var err error
		initialBalance, err = decimal.NewFromString(req.InitialBalance)
		if err != nil {
			return NewValidationError(c, "Invalid initial balance", []ValidationError{
				{Field: "initialBalance", Message: "Must be a valid decimal number"},
			})
		}
	}

	input := service.CreateAccountInput{
		Name:           req.Name,
		Type:           domain.AccountType(req.Type),
		InitialBalance: initialBalance,
	}

	account, err := h.accountService.CreateAccount(principal, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return NewForbiddenError(c, "Only the president can manage accounts")
		case errors.Is(err, domain.ErrNameRequired):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name is required"},
			})
		case errors.Is(err, domain.ErrNameTooLong):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name must be 255 characters or less"},
			})
		case errors.Is(err, domain.ErrInvalidAccountType):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "type", Message: "Type must be one of: Bank, MobileBanking, Cash, Other"},
			})
		}
		log.Error().Err(err).Msg("Failed to create account")
		return NewInternalError(c, "Failed to create account")
	}

	log.Info().Int32("account_id", account.ID).Str("name", account.Name).Msg("Account created")
	h.events.Publish(ws.AccountCreated(account.ID))

	return c.JSON(http.StatusCreated, toAccountResponse(account))
}

// GetAccounts handles GET /api/v1/accounts
func (h *AccountHandler) GetAccounts(c echo.Context) error {
	accounts, err := h.accountService.GetAccounts()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get accounts")
		return NewInternalError(c, "Failed to get accounts")
	}

	response := make([]AccountResponse, len(accounts))
	for i, account := range accounts {
		response[i] = toAccountResponse(account)
	}
	return c.JSON(http.StatusOK, response)
}

// UpdateBalance handles PATCH /api/v1/accounts/:id/balance
func (h *AccountHandler) UpdateBalance(c echo.Context) error {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid account ID", nil)
	}

	var req UpdateBalanceRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	balance, err := decimal.NewFromString(req.Balance)
	if err != nil {
		return NewValidationError(c, "Invalid balance", []ValidationError{
			{Field: "balance", Message: "Must be a valid decimal number"},
		})
	}

	account, err := h.accountService.UpdateBalance(principal, int32(id), balance)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return NewForbiddenError(c, "Only the president can override balances")
		case errors.Is(err, domain.ErrAccountNotFound):
			return NewNotFoundError(c, "Account not found")
		}
		log.Error().Err(err).Int("account_id", id).Msg("Failed to update account balance")
		return NewInternalError(c, "Failed to update account balance")
	}

	h.events.Publish(ws.AccountUpdated(account.ID))

	return c.JSON(http.StatusOK, toAccountResponse(account))
}

// DeleteAccount handles DELETE /api/v1/accounts/:id
func (h *AccountHandler) DeleteAccount(c echo.Context) error {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid account ID", nil)
	}

	if err := h.accountService.DeleteAccount(principal, int32(id)); err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return NewForbiddenError(c, "Only the president can manage accounts")
		case errors.Is(err, domain.ErrAccountNotFound):
			return NewNotFoundError(c, "Account not found")
		case errors.Is(err, domain.ErrAccountHasTransactions):
			return NewConflictError(c, "Account has recorded transactions and cannot be deleted")
		}
		log.Error().Err(err).Int("account_id", id).Msg("Failed to delete account")
		return NewInternalError(c, "Failed to delete account")
	}

	log.Info().Int("account_id", id).Msg("Account deleted")
	h.events.Publish(ws.AccountDeleted(int32(id)))

	return c.NoContent(http.StatusNoContent)
}

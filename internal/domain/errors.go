package domain

import "errors"

// Domain errors
var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrStorage      = errors.New("storage error")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDeactivated = errors.New("account is deactivated")

	ErrUserNotFound     = errors.New("user not found")
	ErrAccountNotFound  = errors.New("account not found")
	ErrDonorNotFound    = errors.New("donor not found")
	ErrRevenueNotFound  = errors.New("revenue not found")
	ErrExpenseNotFound  = errors.New("expense not found")
	ErrBudgetNotFound   = errors.New("budget not found")
	ErrSettingsNotFound = errors.New("settings not found")

	ErrDuplicateEmail         = errors.New("email already exists")
	ErrDuplicateBudget        = errors.New("budget already exists for this year and category")
	ErrSelfDeactivation       = errors.New("cannot deactivate your own account")
	ErrAlreadyProcessed       = errors.New("expense already processed")
	ErrAccountHasTransactions = errors.New("account has recorded transactions")

	ErrNameRequired       = errors.New("name is required")
	ErrNameTooLong        = errors.New("name exceeds maximum length")
	ErrEmailRequired      = errors.New("email is required")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrPasswordRequired   = errors.New("password is required")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrCategoryRequired   = errors.New("category is required")
	ErrSourceRequired     = errors.New("source is required")
	ErrDateRequired       = errors.New("date is required")
	ErrInvalidAmount      = errors.New("amount must be greater than zero")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrInvalidAccountType = errors.New("invalid account type")
	ErrInvalidYear        = errors.New("invalid year")
)

// Validation constants
const (
	MaxNameLength     = 255
	MaxCategoryLength = 100
	MinPasswordLength = 8
)

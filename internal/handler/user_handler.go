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
)

// UserHandler handles user management HTTP requests
type UserHandler struct {
	userService *service.UserService
	events      ws.EventPublisher
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *service.UserService, events ws.EventPublisher) *UserHandler {
	return &UserHandler{userService: userService, events: events}
}

// CreateUserRequest represents the create user request body
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UserResponse represents a user in API responses (never the password hash)
type UserResponse struct {
	ID        int32     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// CreateUser handles POST /api/v1/users
func (h *UserHandler) CreateUser(c echo.Context) error {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input := service.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	}

	user, err := h.userService.CreateUser(principal, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return NewForbiddenError(c, "Only the president can manage users")
		case errors.Is(err, domain.ErrNameRequired):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name is required"},
			})
		case errors.Is(err, domain.ErrNameTooLong):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name must be 255 characters or less"},
			})
		case errors.Is(err, domain.ErrEmailRequired), errors.Is(err, domain.ErrInvalidEmail):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "email", Message: "A valid email address is required"},
			})
		case errors.Is(err, domain.ErrPasswordRequired), errors.Is(err, domain.ErrPasswordTooShort):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "password", Message: "Password must be at least 8 characters"},
			})
		case errors.Is(err, domain.ErrInvalidRole):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "role", Message: "Role must be one of: PRESIDENT, REVENUE_TEAM, FINANCE_TEAM"},
			})
		case errors.Is(err, domain.ErrDuplicateEmail):
			return NewConflictError(c, "A user with this email already exists")
		}
		log.Error().Err(err).Msg("Failed to create user")
		return NewInternalError(c, "Failed to create user")
	}

	log.Info().Int32("user_id", user.ID).Str("role", string(user.Role)).Msg("User created")
	h.events.Publish(ws.UserCreated(user.ID))

	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// GetUsers handles GET /api/v1/users
func (h *UserHandler) GetUsers(c echo.Context) error {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	users, err := h.userService.GetUsers(principal)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			return NewForbiddenError(c, "Only the president can manage users")
		}
		log.Error().Err(err).Msg("Failed to get users")
		return NewInternalError(c, "Failed to get users")
	}

	response := make([]UserResponse, len(users))
	for i, user := range users {
		response[i] = toUserResponse(user)
	}
	return c.JSON(http.StatusOK, response)
}

// ToggleUserStatus handles PATCH /api/v1/users/:id/toggle-status
func (h *UserHandler) ToggleUserStatus(c echo.Context) error {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid user ID", nil)
	}

	user, err := h.userService.ToggleUserStatus(principal, int32(id))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return NewForbiddenError(c, "Only the president can manage users")
		case errors.Is(err, domain.ErrSelfDeactivation):
			return NewValidationError(c, "You cannot deactivate your own account", nil)
		case errors.Is(err, domain.ErrUserNotFound):
			return NewNotFoundError(c, "User not found")
		}
		log.Error().Err(err).Int("user_id", id).Msg("Failed to toggle user status")
		return NewInternalError(c, "Failed to update user")
	}

	log.Info().Int32("user_id", user.ID).Bool("is_active", user.IsActive).Msg("User status toggled")
	h.events.Publish(ws.UserUpdated(user.ID))

	return c.JSON(http.StatusOK, toUserResponse(user))
}

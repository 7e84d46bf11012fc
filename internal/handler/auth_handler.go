package handler

import (
	"errors"
	"net/http"

	"github.com/24studio/finance-backend/internal/domain"
	"github.com/24studio/finance-backend/internal/middleware"
	"github.com/24studio/finance-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authService    *service.AuthService
	sessionManager *middleware.SessionManager
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *service.AuthService, sessionManager *middleware.SessionManager) *AuthHandler {
	return &AuthHandler{authService: authService, sessionManager: sessionManager}
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse is the authenticated identity returned by login and /auth/me
type SessionResponse struct {
	UserID int32  `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

func toSessionResponse(p *domain.SessionPrincipal) SessionResponse {
	return SessionResponse{
		UserID: p.UserID,
		Name:   p.Name,
		Email:  p.Email,
		Role:   string(p.Role),
	}
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	user, err := h.authService.Authenticate(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return NewUnauthorizedError(c, "Invalid email or password")
		}
		if errors.Is(err, domain.ErrAccountDeactivated) {
			return NewForbiddenError(c, "This account has been deactivated")
		}
		log.Error().Err(err).Msg("Login failed")
		return NewInternalError(c, "Login failed")
	}

	principal := h.authService.Principal(user)
	token, err := h.sessionManager.Issue(principal)
	if err != nil {
		log.Error().Err(err).Int32("user_id", user.ID).Msg("Failed to issue session token")
		return NewInternalError(c, "Login failed")
	}

	c.SetCookie(h.sessionManager.Cookie(token))

	log.Info().Int32("user_id", user.ID).Str("role", string(user.Role)).Msg("User logged in")

	return c.JSON(http.StatusOK, toSessionResponse(principal))
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(h.sessionManager.ClearCookie())
	return c.NoContent(http.StatusNoContent)
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(c echo.Context) error {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		return NewUnauthorizedError(c, "Authentication required")
	}
	return c.JSON(http.StatusOK, toSessionResponse(principal))
}

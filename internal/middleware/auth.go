package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/24studio/finance-backend/internal/domain"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// SessionCookieName is the cookie carrying the signed session token
const SessionCookieName = "session"

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

// PrincipalKey is the context key for the resolved session principal
const PrincipalKey contextKey = "principal"

// sessionClaims is the JWT payload of a session token
type sessionClaims struct {
	UserID int32  `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// SessionManager signs and verifies session tokens and builds the session
// cookie. Tokens are stateless: there is no server-side revocation list, a
// replayed token stays valid until expiry.
type SessionManager struct {
	secret []byte
	maxAge time.Duration
	secure bool
}

// NewSessionManager creates a SessionManager
func NewSessionManager(secret string, maxAge time.Duration, secure bool) *SessionManager {
	return &SessionManager{
		secret: []byte(secret),
		maxAge: maxAge,
		secure: secure,
	}
}

// Issue signs a session token for the principal
func (m *SessionManager) Issue(p *domain.SessionPrincipal) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		UserID: p.UserID,
		Email:  p.Email,
		Role:   string(p.Role),
		Name:   p.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.maxAge)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse resolves a session token into a principal. Any parse or signature
// failure yields nil: the caller is treated as anonymous, never an error.
func (m *SessionManager) Parse(tokenString string) *domain.SessionPrincipal {
	if tokenString == "" {
		return nil
	}
	var claims sessionClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil
	}
	role := domain.Role(claims.Role)
	if !role.Valid() {
		return nil
	}
	return &domain.SessionPrincipal{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   role,
		Name:   claims.Name,
	}
}

// Cookie builds the HTTP-only session cookie for a signed token
func (m *SessionManager) Cookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.maxAge.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearCookie builds an expired session cookie
func (m *SessionManager) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// Resolve returns an Echo middleware that decodes the session cookie into
// a principal on the request context. It never rejects: malformed or
// missing sessions pass through as anonymous for RequireSession to handle.
func (m *SessionManager) Resolve() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil {
				return next(c)
			}
			principal := m.Parse(cookie.Value)
			if principal == nil {
				log.Debug().Str("path", c.Request().URL.Path).Msg("Unparseable session token")
				return next(c)
			}
			ctx := context.WithValue(c.Request().Context(), PrincipalKey, principal)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// RequireSession returns an Echo middleware that rejects anonymous requests
func RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if GetPrincipal(c) == nil {
				return unauthorizedError(c, "Authentication required")
			}
			return next(c)
		}
	}
}

// GetPrincipal extracts the session principal from the context
func GetPrincipal(c echo.Context) *domain.SessionPrincipal {
	if p, ok := c.Request().Context().Value(PrincipalKey).(*domain.SessionPrincipal); ok {
		return p
	}
	return nil
}

package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// apiPrefix is stripped before consulting the role access table, so the
// table speaks in resource paths ("/expenses") rather than mount points.
const apiPrefix = "/api/v1"

// RequireAccess returns an Echo middleware that gates the request path by
// the session principal's role. It runs after RequireSession, so a missing
// principal here is still rejected rather than assumed.
func RequireAccess() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal := GetPrincipal(c)
			if principal == nil {
				return unauthorizedError(c, "Authentication required")
			}
			path := strings.TrimPrefix(c.Request().URL.Path, apiPrefix)
			if !principal.CanAccessPath(path) {
				log.Warn().
					Int32("userId", principal.UserID).
					Str("role", string(principal.Role)).
					Str("path", path).
					Msg("Access denied by role")
				return forbiddenError(c, "Your role does not permit access to this resource")
			}
			return next(c)
		}
	}
}

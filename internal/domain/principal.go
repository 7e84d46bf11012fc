package domain

import "strings"

// SessionPrincipal is the identity carried by a session token. Services
// receive it explicitly on every call; nothing reads it from ambient state.
type SessionPrincipal struct {
	UserID int32  `json:"userId"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	Name   string `json:"name"`
}

// deniedPrefixes is the static role -> blocked-route-prefix table.
// PRESIDENT is absent: full access.
var deniedPrefixes = map[Role][]string{
	RoleRevenueTeam: {"/expenses", "/budget", "/settings", "/users"},
	RoleFinanceTeam: {"/revenue", "/donations", "/donors", "/settings", "/users"},
}

// CanAccessPath evaluates the static access table for a route path.
// Unknown roles are denied everything protected.
func (p *SessionPrincipal) CanAccessPath(path string) bool {
	if p == nil {
		return false
	}
	if p.Role == RolePresident {
		return true
	}
	blocked, ok := deniedPrefixes[p.Role]
	if !ok {
		return false
	}
	for _, prefix := range blocked {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}
	return true
}

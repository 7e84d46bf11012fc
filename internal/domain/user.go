package domain

import "time"

type Role string

const (
	RolePresident   Role = "PRESIDENT"
	RoleRevenueTeam Role = "REVENUE_TEAM"
	RoleFinanceTeam Role = "FINANCE_TEAM"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RolePresident, RoleRevenueTeam, RoleFinanceTeam:
		return true
	}
	return false
}

// CanRecordRevenue reports whether the role may create/delete revenue,
// donors and donations.
func (r Role) CanRecordRevenue() bool {
	return r == RolePresident || r == RoleRevenueTeam
}

// CanRecordExpenses reports whether the role may create, approve and
// reject expenses, and manage budgets.
func (r Role) CanRecordExpenses() bool {
	return r == RolePresident || r == RoleFinanceTeam
}

// User represents a staff member of the organization
type User struct {
	ID           int32     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserRepository defines the interface for user persistence operations
type UserRepository interface {
	GetByID(id int32) (*User, error)
	GetByEmail(email string) (*User, error)
	GetAll() ([]*User, error)
	Create(user *User) (*User, error)
	SetActive(id int32, active bool) (*User, error)
}

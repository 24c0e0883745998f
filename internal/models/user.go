package models

import "time"

// UserRole is the closed set of roles a user can hold. Analysts author
// reports; investors copy them into portfolio positions. A user has exactly
// one role.
type UserRole string

const (
	RoleAnalyst  UserRole = "analyst"
	RoleInvestor UserRole = "investor"
)

// Valid reports whether the role is one of the two known variants.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAnalyst, RoleInvestor:
		return true
	}
	return false
}

// User represents a registered account
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

package domain

import (
	"strings"
	"time"
)

// Role scopes what a staff account may do.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// User is a staff account. Only authenticated staff may mutate data.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (u *User) Validate() error {
	if strings.TrimSpace(u.Email) == "" {
		return NewValidationError("email", "email required")
	}
	if strings.TrimSpace(u.Username) == "" {
		return NewValidationError("username", "username required")
	}
	if u.Role != RoleAdmin && u.Role != RoleStaff {
		return NewValidationError("role", "unknown role")
	}
	return nil
}

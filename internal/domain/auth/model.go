// Package auth implements username/password authentication with JWT
// session tokens.
package auth

import (
	"context"
	"strings"

	"joinerpro/internal/core/apperror"
	"joinerpro/internal/core/entity"
	"joinerpro/internal/core/id"
)

// Roles recognized by the service.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// User is an account allowed to call the API.
type User struct {
	entity.Base
	Username     string `db:"username" json:"username"`
	PasswordHash string `db:"password_hash" json:"-"`
	Role         string `db:"role" json:"role"`
	Active       bool   `db:"active" json:"active"`
}

// Validate checks user invariants.
func (u *User) Validate(_ context.Context) error {
	if strings.TrimSpace(u.Username) == "" {
		return apperror.NewValidation("username is required")
	}
	if u.PasswordHash == "" {
		return apperror.NewValidation("password is required")
	}
	if u.Role != RoleAdmin && u.Role != RoleUser {
		return apperror.NewValidation("invalid role").WithDetail("role", u.Role)
	}
	return nil
}

// Repository defines persistence operations for users.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByID(ctx context.Context, userID id.ID) (*User, error)
}

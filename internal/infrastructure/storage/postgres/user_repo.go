package postgres

import (
	"context"

	"github.com/Masterminds/squirrel"

	"joinerpro/internal/domain/auth"
)

// Compile-time check.
var _ auth.Repository = (*UserRepo)(nil)

// UserRepo is the PostgreSQL user repository.
type UserRepo struct {
	*BaseRepo[*auth.User]
}

// NewUserRepo creates a user repository.
func NewUserRepo(txm *TxManager) *UserRepo {
	return &UserRepo{
		BaseRepo: NewBaseRepo(txm, "users", "user", func() *auth.User { return &auth.User{} }),
	}
}

// GetByUsername retrieves a user by username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*auth.User, error) {
	q := r.BaseSelect().
		Where(squirrel.Eq{"username": username}).
		Limit(1)
	return r.FindOne(ctx, q)
}

package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"joinerpro/internal/core/apperror"
	"joinerpro/internal/core/entity"
	"joinerpro/pkg/logger"
)

// BcryptCost is used when hashing new passwords.
const BcryptCost = 12

// LoginResult is a successful authentication.
type LoginResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// Service implements authentication operations.
type Service struct {
	users  Repository
	tokens *TokenManager
}

// NewService creates an auth service.
func NewService(users Repository, tokens *TokenManager) *Service {
	return &Service{users: users, tokens: tokens}
}

// Login verifies credentials and issues a session token.
// Unknown user, wrong password and inactive account all map to the
// same 401 so the response does not leak which part failed.
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperror.NewValidation("username and password are required")
	}

	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewUnauthorized("invalid credentials")
		}
		return nil, err
	}

	if !u.Active {
		return nil, apperror.NewUnauthorized("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, apperror.NewUnauthorized("invalid credentials")
	}

	token, err := s.tokens.Issue(u)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	logger.Info(ctx, "user logged in", "username", u.Username)
	return &LoginResult{Token: token, User: u}, nil
}

// CreateUser registers a new account with a bcrypt-hashed password.
// Used by the admin bootstrap command.
func (s *Service) CreateUser(ctx context.Context, username, password, role string) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	u := &User{
		Base:         entity.NewBase(),
		Username:     strings.TrimSpace(username),
		PasswordHash: string(hash),
		Role:         role,
		Active:       true,
	}
	if err := u.Validate(ctx); err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	logger.Info(ctx, "user created", "username", u.Username, "role", u.Role)
	return u, nil
}

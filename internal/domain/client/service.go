package client

import (
	"context"
	"strings"

	"joinerpro/internal/core/id"
	"joinerpro/pkg/logger"
)

// CreateRequest carries validated input for client creation.
type CreateRequest struct {
	Name    string
	Email   string
	Phone   *string
	Address *string
}

// UpdateRequest carries partial-update input. Nil fields are left unchanged.
type UpdateRequest struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
}

// Service implements client business operations.
type Service struct {
	repo Repository
}

// NewService creates a client service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a new client. Duplicate email surfaces as a 409.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Client, error) {
	c := New(req.Name, req.Email)
	c.Phone = req.Phone
	c.Address = req.Address

	if err := c.Validate(ctx); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	logger.Info(ctx, "client created", "client_id", c.ID, "email", c.Email)
	return c, nil
}

// Get returns the client with its project summaries.
func (s *Service) Get(ctx context.Context, clientID id.ID) (*WithProjects, error) {
	c, err := s.repo.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	projects, err := s.repo.GetProjects(ctx, clientID)
	if err != nil {
		return nil, err
	}

	return &WithProjects{Client: *c, Projects: projects}, nil
}

// List returns all clients with project counts, ordered by name.
func (s *Service) List(ctx context.Context) ([]ListItem, error) {
	return s.repo.List(ctx)
}

// Update applies a partial update. Last write wins.
func (s *Service) Update(ctx context.Context, clientID id.ID, req UpdateRequest) (*Client, error) {
	c, err := s.repo.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		c.Email = strings.TrimSpace(strings.ToLower(*req.Email))
	}
	if req.Phone != nil {
		c.Phone = req.Phone
	}
	if req.Address != nil {
		c.Address = req.Address
	}

	if err := c.Validate(ctx); err != nil {
		return nil, err
	}

	c.Touch()
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	logger.Info(ctx, "client updated", "client_id", c.ID)
	return c, nil
}

// Delete removes a client. Blocked with a 409 while projects reference it.
func (s *Service) Delete(ctx context.Context, clientID id.ID) error {
	if err := s.repo.Delete(ctx, clientID); err != nil {
		return err
	}
	logger.Info(ctx, "client deleted", "client_id", clientID)
	return nil
}

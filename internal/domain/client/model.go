// Package client implements the client registry.
package client

import (
	"context"
	"regexp"
	"strings"

	"joinerpro/internal/core/apperror"
	"joinerpro/internal/core/entity"
	"joinerpro/internal/core/id"
	"joinerpro/internal/core/types"
)

// emailRe is a pragmatic shape check, not full RFC 5322.
var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Client is a customer of the company.
type Client struct {
	entity.Base
	Name    string  `db:"name" json:"name"`
	Email   string  `db:"email" json:"email"`
	Phone   *string `db:"phone" json:"phone,omitempty"`
	Address *string `db:"address" json:"address,omitempty"`
}

// New creates a client with generated identity.
func New(name, email string) *Client {
	return &Client{
		Base:  entity.NewBase(),
		Name:  strings.TrimSpace(name),
		Email: strings.TrimSpace(strings.ToLower(email)),
	}
}

// Validate checks client invariants.
func (c *Client) Validate(_ context.Context) error {
	if strings.TrimSpace(c.Name) == "" {
		return apperror.NewValidation("name is required")
	}
	if strings.TrimSpace(c.Email) == "" {
		return apperror.NewValidation("email is required")
	}
	if !emailRe.MatchString(c.Email) {
		return apperror.NewValidation("invalid email format").WithDetail("email", c.Email)
	}
	return nil
}

// ListItem is a client row with its project count, used by list views.
type ListItem struct {
	Client
	ProjectCount int `db:"project_count" json:"projectCount"`
}

// ProjectSummary is a shallow view of a client's project,
// hydrated on fetch-one.
type ProjectSummary struct {
	ID         id.ID       `db:"id" json:"id"`
	Name       string      `db:"name" json:"name"`
	Status     string      `db:"status" json:"status"`
	TotalValue types.Money `db:"total_value" json:"totalValue"`
}

// WithProjects is the fetch-one aggregate.
type WithProjects struct {
	Client
	Projects []ProjectSummary `json:"projects"`
}

package client

import (
	"context"

	"joinerpro/internal/core/id"
)

// Repository defines persistence operations for clients.
type Repository interface {
	Create(ctx context.Context, c *Client) error
	Update(ctx context.Context, c *Client) error
	GetByID(ctx context.Context, clientID id.ID) (*Client, error)
	Delete(ctx context.Context, clientID id.ID) error

	// List returns all clients ordered by name with project counts.
	List(ctx context.Context) ([]ListItem, error)

	// GetProjects returns shallow summaries of the client's projects.
	GetProjects(ctx context.Context, clientID id.ID) ([]ProjectSummary, error)
}

package project

import (
	"context"

	"joinerpro/internal/core/id"
)

// Repository defines persistence operations for projects.
type Repository interface {
	Create(ctx context.Context, p *Project) error
	Update(ctx context.Context, p *Project) error
	GetByID(ctx context.Context, projectID id.ID) (*Project, error)
	Delete(ctx context.Context, projectID id.ID) error

	// GetWithClient returns the project hydrated with its client name.
	GetWithClient(ctx context.Context, projectID id.ID) (*WithClient, error)

	// List returns all projects with client names, newest first.
	List(ctx context.Context) ([]WithClient, error)
}

// MaterialRepository defines persistence operations for BOM lines.
type MaterialRepository interface {
	Create(ctx context.Context, m *Material) error
	GetByID(ctx context.Context, materialID id.ID) (*Material, error)
	Delete(ctx context.Context, materialID id.ID) error

	// ListByProject returns the project's BOM hydrated with live stock
	// item data.
	ListByProject(ctx context.Context, projectID id.ID) ([]MaterialLine, error)
}

// ClientDirectory is the slice of the client registry projects need.
type ClientDirectory interface {
	Exists(ctx context.Context, clientID id.ID) (bool, error)
}

// StockDirectory is the slice of the inventory projects need.
type StockDirectory interface {
	Exists(ctx context.Context, itemID id.ID) (bool, error)
}

// Auditor records state transitions worth keeping.
type Auditor interface {
	Record(ctx context.Context, action, entity, entityID string, payload any) error
}

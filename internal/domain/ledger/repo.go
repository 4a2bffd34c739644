package ledger

import (
	"context"

	"joinerpro/internal/core/id"
	"joinerpro/internal/core/types"
)

// Repository defines persistence for both ledger kinds. The kind
// selects the backing table; implementations must keep ProjectID only
// for receivables.
type Repository interface {
	Create(ctx context.Context, kind Kind, e *Entry) error
	Update(ctx context.Context, kind Kind, e *Entry) error
	GetByID(ctx context.Context, kind Kind, entryID id.ID) (*Entry, error)
	Delete(ctx context.Context, kind Kind, entryID id.ID) error

	// ListForMonth returns entries ordered by due date ascending,
	// optionally restricted to due dates within the given month.
	// Receivable rows are hydrated with the referenced project name.
	ListForMonth(ctx context.Context, kind Kind, month *types.Month) ([]ListItem, error)
}

// ProjectDirectory is the slice of the project registry the ledger needs.
type ProjectDirectory interface {
	Exists(ctx context.Context, projectID id.ID) (bool, error)
}

// Auditor records ledger mutations.
type Auditor interface {
	Record(ctx context.Context, action, entity, entityID string, payload any) error
}

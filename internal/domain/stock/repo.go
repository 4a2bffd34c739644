package stock

import (
	"context"

	"joinerpro/internal/core/id"
)

// CategoryRepository defines persistence operations for stock categories.
type CategoryRepository interface {
	Create(ctx context.Context, c *Category) error
	GetByID(ctx context.Context, categoryID id.ID) (*Category, error)
	Delete(ctx context.Context, categoryID id.ID) error
	List(ctx context.Context) ([]Category, error)
}

// ItemRepository defines persistence operations for stock items.
type ItemRepository interface {
	Create(ctx context.Context, i *Item) error
	Update(ctx context.Context, i *Item) error
	GetByID(ctx context.Context, itemID id.ID) (*Item, error)
	Delete(ctx context.Context, itemID id.ID) error

	// List returns all items ordered by name, hydrated with category names.
	List(ctx context.Context) ([]ItemWithCategory, error)
}

package stock

import (
	"context"
	"strings"

	"joinerpro/internal/core/apperror"
	"joinerpro/internal/core/entity"
	"joinerpro/internal/core/id"
	"joinerpro/internal/core/types"
	"joinerpro/pkg/logger"
)

// CreateItemRequest carries validated input for item creation.
type CreateItemRequest struct {
	Name             string
	Description      *string
	CategoryID       id.ID
	Unit             Unit
	QuantityOnHand   types.Quantity
	ReorderThreshold types.Quantity
	UnitCost         types.Money
}

// UpdateItemRequest carries partial-update input. Nil fields are left unchanged.
type UpdateItemRequest struct {
	Name             *string
	Description      *string
	CategoryID       *id.ID
	Unit             *Unit
	QuantityOnHand   *types.Quantity
	ReorderThreshold *types.Quantity
	UnitCost         *types.Money
}

// Service implements inventory business operations.
type Service struct {
	categories CategoryRepository
	items      ItemRepository
}

// NewService creates a stock service.
func NewService(categories CategoryRepository, items ItemRepository) *Service {
	return &Service{categories: categories, items: items}
}

// --- Categories ---

// CreateCategory adds a category. Duplicate name surfaces as a 409.
func (s *Service) CreateCategory(ctx context.Context, name string) (*Category, error) {
	c := NewCategory(name)
	if err := c.Validate(ctx); err != nil {
		return nil, err
	}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	logger.Info(ctx, "stock category created", "category_id", c.ID, "name", c.Name)
	return c, nil
}

// ListCategories returns all categories ordered by name.
func (s *Service) ListCategories(ctx context.Context) ([]Category, error) {
	return s.categories.List(ctx)
}

// DeleteCategory removes a category. Blocked with a 409 while any item
// references it.
func (s *Service) DeleteCategory(ctx context.Context, categoryID id.ID) error {
	if err := s.categories.Delete(ctx, categoryID); err != nil {
		return err
	}
	logger.Info(ctx, "stock category deleted", "category_id", categoryID)
	return nil
}

// --- Items ---

// CreateItem adds a stock item. Unknown category is a validation error.
func (s *Service) CreateItem(ctx context.Context, req CreateItemRequest) (*Item, error) {
	if err := s.ensureCategoryExists(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	item := &Item{
		Base:             entity.NewBase(),
		Name:             strings.TrimSpace(req.Name),
		Description:      req.Description,
		CategoryID:       req.CategoryID,
		Unit:             req.Unit,
		QuantityOnHand:   req.QuantityOnHand,
		ReorderThreshold: req.ReorderThreshold,
		UnitCost:         req.UnitCost,
	}
	if err := item.Validate(ctx); err != nil {
		return nil, err
	}

	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}
	logger.Info(ctx, "stock item created", "item_id", item.ID, "name", item.Name)
	return item, nil
}

// GetItem returns a single item.
func (s *Service) GetItem(ctx context.Context, itemID id.ID) (*Item, error) {
	return s.items.GetByID(ctx, itemID)
}

// ListItems returns all items hydrated with category names.
func (s *Service) ListItems(ctx context.Context) ([]ItemWithCategory, error) {
	return s.items.List(ctx)
}

// UpdateItem applies a partial update. Last write wins.
func (s *Service) UpdateItem(ctx context.Context, itemID id.ID, req UpdateItemRequest) (*Item, error) {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		item.Description = req.Description
	}
	if req.CategoryID != nil {
		if err := s.ensureCategoryExists(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		item.CategoryID = *req.CategoryID
	}
	if req.Unit != nil {
		item.Unit = *req.Unit
	}
	if req.QuantityOnHand != nil {
		item.QuantityOnHand = *req.QuantityOnHand
	}
	if req.ReorderThreshold != nil {
		item.ReorderThreshold = *req.ReorderThreshold
	}
	if req.UnitCost != nil {
		item.UnitCost = *req.UnitCost
	}

	if err := item.Validate(ctx); err != nil {
		return nil, err
	}

	item.Touch()
	if err := s.items.Update(ctx, item); err != nil {
		return nil, err
	}
	logger.Info(ctx, "stock item updated", "item_id", item.ID)
	return item, nil
}

// DeleteItem removes an item. Blocked with a 409 while BOM lines reference it.
func (s *Service) DeleteItem(ctx context.Context, itemID id.ID) error {
	if err := s.items.Delete(ctx, itemID); err != nil {
		return err
	}
	logger.Info(ctx, "stock item deleted", "item_id", itemID)
	return nil
}

// Overview computes the inventory snapshot: items grouped per category,
// low flags, low-item count and aggregate valuation. Pure, recomputed
// on every read.
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	items, err := s.items.List(ctx)
	if err != nil {
		return nil, err
	}

	ov := &Overview{
		Categories:     make([]OverviewCategory, 0),
		TotalValuation: types.Zero(),
	}

	index := make(map[id.ID]int)
	for _, it := range items {
		low := it.IsLow()
		line := OverviewItem{
			ID:             it.ID,
			Name:           it.Name,
			Unit:           it.Unit,
			QuantityOnHand: it.QuantityOnHand,
			Low:            low,
			Valuation:      it.Valuation(),
		}

		pos, ok := index[it.CategoryID]
		if !ok {
			pos = len(ov.Categories)
			index[it.CategoryID] = pos
			ov.Categories = append(ov.Categories, OverviewCategory{
				CategoryID:   it.CategoryID,
				CategoryName: it.CategoryName,
			})
		}
		ov.Categories[pos].Items = append(ov.Categories[pos].Items, line)

		ov.TotalItems++
		if low {
			ov.LowItems++
		}
		ov.TotalValuation = ov.TotalValuation.Add(line.Valuation)
	}

	return ov, nil
}

// ensureCategoryExists maps a missing category to a validation error,
// not a 404: the category id arrived in a request body.
func (s *Service) ensureCategoryExists(ctx context.Context, categoryID id.ID) error {
	if id.IsNil(categoryID) {
		return apperror.NewValidation("category is required")
	}
	if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewValidation("category does not exist").
				WithDetail("categoryId", categoryID.String())
		}
		return err
	}
	return nil
}

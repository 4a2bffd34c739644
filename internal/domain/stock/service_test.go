package stock

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"joinerpro/internal/core/apperror"
	"joinerpro/internal/core/id"
	"joinerpro/internal/core/types"
)

type fakeCategoryRepo struct {
	categories map[id.ID]*Category
	itemRefs   map[id.ID]int
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{
		categories: make(map[id.ID]*Category),
		itemRefs:   make(map[id.ID]int),
	}
}

func (f *fakeCategoryRepo) Create(_ context.Context, c *Category) error {
	for _, existing := range f.categories {
		if existing.Name == c.Name {
			return apperror.NewDuplicate("stock category", "name", c.Name)
		}
	}
	cp := *c
	f.categories[c.ID] = &cp
	return nil
}

func (f *fakeCategoryRepo) GetByID(_ context.Context, categoryID id.ID) (*Category, error) {
	c, ok := f.categories[categoryID]
	if !ok {
		return nil, apperror.NewNotFound("stock category", categoryID.String())
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCategoryRepo) Delete(_ context.Context, categoryID id.ID) error {
	if _, ok := f.categories[categoryID]; !ok {
		return apperror.NewNotFound("stock category", categoryID.String())
	}
	if f.itemRefs[categoryID] > 0 {
		return apperror.NewReferenced("stock category", "cannot delete: record is referenced by other records")
	}
	delete(f.categories, categoryID)
	return nil
}

func (f *fakeCategoryRepo) List(_ context.Context) ([]Category, error) {
	out := make([]Category, 0, len(f.categories))
	for _, c := range f.categories {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type fakeItemRepo struct {
	items      map[id.ID]*Item
	categories *fakeCategoryRepo
}

func newFakeItemRepo(categories *fakeCategoryRepo) *fakeItemRepo {
	return &fakeItemRepo{items: make(map[id.ID]*Item), categories: categories}
}

func (f *fakeItemRepo) Create(_ context.Context, i *Item) error {
	cp := *i
	f.items[i.ID] = &cp
	f.categories.itemRefs[i.CategoryID]++
	return nil
}

func (f *fakeItemRepo) Update(_ context.Context, i *Item) error {
	if _, ok := f.items[i.ID]; !ok {
		return apperror.NewNotFound("stock item", i.ID.String())
	}
	cp := *i
	f.items[i.ID] = &cp
	return nil
}

func (f *fakeItemRepo) GetByID(_ context.Context, itemID id.ID) (*Item, error) {
	i, ok := f.items[itemID]
	if !ok {
		return nil, apperror.NewNotFound("stock item", itemID.String())
	}
	cp := *i
	return &cp, nil
}

func (f *fakeItemRepo) Delete(_ context.Context, itemID id.ID) error {
	i, ok := f.items[itemID]
	if !ok {
		return apperror.NewNotFound("stock item", itemID.String())
	}
	f.categories.itemRefs[i.CategoryID]--
	delete(f.items, itemID)
	return nil
}

func (f *fakeItemRepo) List(_ context.Context) ([]ItemWithCategory, error) {
	out := make([]ItemWithCategory, 0, len(f.items))
	for _, i := range f.items {
		name := ""
		if c, ok := f.categories.categories[i.CategoryID]; ok {
			name = c.Name
		}
		out = append(out, ItemWithCategory{Item: *i, CategoryName: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func newTestService(t *testing.T) (*Service, *fakeCategoryRepo, *fakeItemRepo) {
	t.Helper()
	categories := newFakeCategoryRepo()
	items := newFakeItemRepo(categories)
	return NewService(categories, items), categories, items
}

func mustCategory(t *testing.T, svc *Service, name string) *Category {
	t.Helper()
	c, err := svc.CreateCategory(context.Background(), name)
	require.NoError(t, err)
	return c
}

func TestItem_IsLow_Boundary(t *testing.T) {
	tests := []struct {
		name      string
		qty       string
		threshold string
		low       bool
	}{
		{"above threshold", "10", "5", false},
		{"equal counts as low", "5", "5", true},
		{"below threshold", "4.999", "5", true},
		{"zero on hand", "0", "0", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := Item{
				QuantityOnHand:   types.MustQuantity(tt.qty),
				ReorderThreshold: types.MustQuantity(tt.threshold),
			}
			assert.Equal(t, tt.low, item.IsLow())
		})
	}
}

func TestService_CreateCategory_Duplicate(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, "Wood")
	require.NoError(t, err)

	_, err = svc.CreateCategory(ctx, "Wood")
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
}

func TestService_DeleteCategory_Referenced(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	cat := mustCategory(t, svc, "Wood")
	_, err := svc.CreateItem(ctx, CreateItemRequest{
		Name:       "Plywood sheet",
		CategoryID: cat.ID,
		Unit:       UnitPiece,
	})
	require.NoError(t, err)

	err = svc.DeleteCategory(ctx, cat.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
}

func TestService_DeleteCategory_Unreferenced(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	cat := mustCategory(t, svc, "Hardware")
	require.NoError(t, svc.DeleteCategory(ctx, cat.ID))
}

func TestService_CreateItem_UnknownCategory(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.CreateItem(context.Background(), CreateItemRequest{
		Name:       "Screws",
		CategoryID: id.New(),
		Unit:       UnitPackage,
	})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestService_CreateItem_InvalidUnit(t *testing.T) {
	svc, _, _ := newTestService(t)
	cat := mustCategory(t, svc, "Wood")

	_, err := svc.CreateItem(context.Background(), CreateItemRequest{
		Name:       "Plank",
		CategoryID: cat.ID,
		Unit:       "yard",
	})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestParseUnit(t *testing.T) {
	u, err := ParseUnit(" M2 ")
	require.NoError(t, err)
	assert.Equal(t, UnitSquareMeter, u)

	_, err = ParseUnit("furlong")
	assert.Error(t, err)
}

func TestService_Overview_Empty(t *testing.T) {
	svc, _, _ := newTestService(t)

	ov, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, ov.TotalItems)
	assert.Equal(t, 0, ov.LowItems)
	assert.True(t, ov.TotalValuation.IsZero())
}

func TestService_Overview_Valuation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	cat := mustCategory(t, svc, "Wood")
	_, err := svc.CreateItem(ctx, CreateItemRequest{
		Name:           "Plywood sheet",
		CategoryID:     cat.ID,
		Unit:           UnitPiece,
		QuantityOnHand: types.MustQuantity("10"),
		UnitCost:       types.MustMoney("2.5"),
	})
	require.NoError(t, err)

	ov, err := svc.Overview(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, ov.TotalItems)
	assert.True(t, ov.TotalValuation.Equal(types.MustMoney("25.0")))
}

func TestService_Overview_GroupsAndCountsLow(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	wood := mustCategory(t, svc, "Wood")
	hardware := mustCategory(t, svc, "Hardware")

	_, err := svc.CreateItem(ctx, CreateItemRequest{
		Name:             "Plywood sheet",
		CategoryID:       wood.ID,
		Unit:             UnitPiece,
		QuantityOnHand:   types.MustQuantity("3"),
		ReorderThreshold: types.MustQuantity("5"),
		UnitCost:         types.MustMoney("80"),
	})
	require.NoError(t, err)

	_, err = svc.CreateItem(ctx, CreateItemRequest{
		Name:             "Screws",
		CategoryID:       hardware.ID,
		Unit:             UnitPackage,
		QuantityOnHand:   types.MustQuantity("100"),
		ReorderThreshold: types.MustQuantity("20"),
		UnitCost:         types.MustMoney("0.10"),
	})
	require.NoError(t, err)

	ov, err := svc.Overview(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, ov.TotalItems)
	assert.Equal(t, 1, ov.LowItems)
	assert.Len(t, ov.Categories, 2)
	assert.True(t, ov.TotalValuation.Equal(types.MustMoney("250"))) // 3*80 + 100*0.10
}

func TestService_UpdateItem_Partial(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	cat := mustCategory(t, svc, "Wood")
	item, err := svc.CreateItem(ctx, CreateItemRequest{
		Name:           "Plank",
		CategoryID:     cat.ID,
		Unit:           UnitMeter,
		QuantityOnHand: types.MustQuantity("7"),
		UnitCost:       types.MustMoney("12"),
	})
	require.NoError(t, err)

	newCost := types.MustMoney("15")
	updated, err := svc.UpdateItem(ctx, item.ID, UpdateItemRequest{UnitCost: &newCost})
	require.NoError(t, err)

	assert.Equal(t, "Plank", updated.Name)
	assert.True(t, updated.UnitCost.Equal(newCost))
	assert.True(t, updated.QuantityOnHand.Equal(types.MustQuantity("7")))
}

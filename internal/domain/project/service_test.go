package project

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"joinerpro/internal/core/apperror"
	"joinerpro/internal/core/id"
	"joinerpro/internal/core/types"
)

type fakeProjectRepo struct {
	projects map[id.ID]*Project
	refs     map[id.ID]int
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: make(map[id.ID]*Project), refs: make(map[id.ID]int)}
}

func (f *fakeProjectRepo) Create(_ context.Context, p *Project) error {
	cp := *p
	f.projects[p.ID] = &cp
	return nil
}

func (f *fakeProjectRepo) Update(_ context.Context, p *Project) error {
	if _, ok := f.projects[p.ID]; !ok {
		return apperror.NewNotFound("project", p.ID.String())
	}
	cp := *p
	f.projects[p.ID] = &cp
	return nil
}

func (f *fakeProjectRepo) GetByID(_ context.Context, projectID id.ID) (*Project, error) {
	p, ok := f.projects[projectID]
	if !ok {
		return nil, apperror.NewNotFound("project", projectID.String())
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProjectRepo) Delete(_ context.Context, projectID id.ID) error {
	if _, ok := f.projects[projectID]; !ok {
		return apperror.NewNotFound("project", projectID.String())
	}
	if f.refs[projectID] > 0 {
		return apperror.NewReferenced("project", "cannot delete: record is referenced by other records")
	}
	delete(f.projects, projectID)
	return nil
}

func (f *fakeProjectRepo) GetWithClient(ctx context.Context, projectID id.ID) (*WithClient, error) {
	p, err := f.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return &WithClient{Project: *p, ClientName: "Silva"}, nil
}

func (f *fakeProjectRepo) List(_ context.Context) ([]WithClient, error) {
	out := make([]WithClient, 0, len(f.projects))
	for _, p := range f.projects {
		out = append(out, WithClient{Project: *p, ClientName: "Silva"})
	}
	return out, nil
}

type fakeMaterialRepo struct {
	materials map[id.ID]*Material
	itemName  map[id.ID]string
	itemCost  map[id.ID]types.Money
}

func newFakeMaterialRepo() *fakeMaterialRepo {
	return &fakeMaterialRepo{
		materials: make(map[id.ID]*Material),
		itemName:  make(map[id.ID]string),
		itemCost:  make(map[id.ID]types.Money),
	}
}

func (f *fakeMaterialRepo) Create(_ context.Context, m *Material) error {
	cp := *m
	f.materials[m.ID] = &cp
	return nil
}

func (f *fakeMaterialRepo) GetByID(_ context.Context, materialID id.ID) (*Material, error) {
	m, ok := f.materials[materialID]
	if !ok {
		return nil, apperror.NewNotFound("project material", materialID.String())
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMaterialRepo) Delete(_ context.Context, materialID id.ID) error {
	if _, ok := f.materials[materialID]; !ok {
		return apperror.NewNotFound("project material", materialID.String())
	}
	delete(f.materials, materialID)
	return nil
}

func (f *fakeMaterialRepo) ListByProject(_ context.Context, projectID id.ID) ([]MaterialLine, error) {
	var out []MaterialLine
	for _, m := range f.materials {
		if m.ProjectID != projectID {
			continue
		}
		out = append(out, MaterialLine{
			Material: *m,
			ItemName: f.itemName[m.StockItemID],
			ItemUnit: "un",
			UnitCost: f.itemCost[m.StockItemID],
		})
	}
	return out, nil
}

type fakeDirectory struct{ known map[id.ID]bool }

func (f *fakeDirectory) Exists(_ context.Context, entityID id.ID) (bool, error) {
	return f.known[entityID], nil
}

type fakeAuditor struct{ actions []string }

func (f *fakeAuditor) Record(_ context.Context, action, _, _ string, _ any) error {
	f.actions = append(f.actions, action)
	return nil
}

type testEnv struct {
	svc       *Service
	projects  *fakeProjectRepo
	materials *fakeMaterialRepo
	clients   *fakeDirectory
	stock     *fakeDirectory
	audit     *fakeAuditor
}

func newTestEnv() *testEnv {
	env := &testEnv{
		projects:  newFakeProjectRepo(),
		materials: newFakeMaterialRepo(),
		clients:   &fakeDirectory{known: make(map[id.ID]bool)},
		stock:     &fakeDirectory{known: make(map[id.ID]bool)},
		audit:     &fakeAuditor{},
	}
	env.svc = NewService(env.projects, env.materials, env.clients, env.stock, env.audit)
	return env
}

func (e *testEnv) newClient() id.ID {
	clientID := id.New()
	e.clients.known[clientID] = true
	return clientID
}

func (e *testEnv) newStockItem(name, cost string) id.ID {
	itemID := id.New()
	e.stock.known[itemID] = true
	e.materials.itemName[itemID] = name
	e.materials.itemCost[itemID] = types.MustMoney(cost)
	return itemID
}

func TestDeadlineStatus(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	daysAgo := func(n int) *time.Time {
		ts := now.AddDate(0, 0, -n)
		return &ts
	}

	tests := []struct {
		name    string
		status  Status
		started *time.Time
		window  int
		state   DeadlineState
		days    int
	}{
		{"no start timestamp", StatusInProduction, nil, 30, DeadlineNotStarted, 0},
		{"not in production", StatusQuote, daysAgo(14), 30, DeadlineNotStarted, 0},
		{"started 14 days ago", StatusInProduction, daysAgo(14), 30, DeadlineOnTrack, 16},
		{"started 40 days ago", StatusInProduction, daysAgo(40), 30, DeadlineOverdue, 10},
		{"warning band", StatusInProduction, daysAgo(25), 30, DeadlineWarning, 5},
		{"due today", StatusInProduction, daysAgo(30), 30, DeadlineWarning, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Project{
				Status:              tt.status,
				DeliveryDays:        tt.window,
				ProductionStartedAt: tt.started,
			}
			got := p.DeadlineStatus(now)
			assert.Equal(t, tt.state, got.State)
			assert.Equal(t, tt.days, got.Days)
		})
	}
}

func TestService_Create_Defaults(t *testing.T) {
	env := newTestEnv()
	clientID := env.newClient()

	p, err := env.svc.Create(context.Background(), CreateRequest{
		Name:       "Kitchen cabinets",
		ClientID:   clientID,
		TotalValue: types.MustMoney("12000"),
	})
	require.NoError(t, err)
	assert.Equal(t, StatusQuote, p.Status)
	assert.Equal(t, DefaultDeliveryDays, p.DeliveryDays)
	assert.Nil(t, p.ProductionStartedAt)
}

func TestService_Create_UnknownClient(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.Create(context.Background(), CreateRequest{
		Name:     "Kitchen cabinets",
		ClientID: id.New(),
	})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestService_Update_ProductionStartStampedOnce(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	clientID := env.newClient()

	p, err := env.svc.Create(ctx, CreateRequest{Name: "Wardrobe", ClientID: clientID})
	require.NoError(t, err)

	inProduction := StatusInProduction
	first, err := env.svc.Update(ctx, p.ID, UpdateRequest{Status: &inProduction})
	require.NoError(t, err)
	require.NotNil(t, first.ProductionStartedAt)
	firstStamp := *first.ProductionStartedAt
	assert.Equal(t, []string{"production_started"}, env.audit.actions)

	// Leaving and re-entering production must not move the stamp.
	completed := StatusCompleted
	_, err = env.svc.Update(ctx, p.ID, UpdateRequest{Status: &completed})
	require.NoError(t, err)

	again, err := env.svc.Update(ctx, p.ID, UpdateRequest{Status: &inProduction})
	require.NoError(t, err)
	require.NotNil(t, again.ProductionStartedAt)
	assert.Equal(t, firstStamp, *again.ProductionStartedAt)
	assert.Len(t, env.audit.actions, 1)
}

func TestService_Update_InvalidStatusRejected(t *testing.T) {
	_, err := ParseStatus("shipped")
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestService_AddMaterial_UnknownItem(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	clientID := env.newClient()

	p, err := env.svc.Create(ctx, CreateRequest{Name: "Wardrobe", ClientID: clientID})
	require.NoError(t, err)

	_, err = env.svc.AddMaterial(ctx, p.ID, AddMaterialRequest{
		StockItemID: id.New(),
		Quantity:    types.MustQuantity("2"),
	})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestService_AddMaterial_UnknownProject(t *testing.T) {
	env := newTestEnv()
	itemID := env.newStockItem("Plywood", "10")

	_, err := env.svc.AddMaterial(context.Background(), id.New(), AddMaterialRequest{
		StockItemID: itemID,
		Quantity:    types.MustQuantity("2"),
	})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestService_TotalCost_LiveRollup(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	clientID := env.newClient()

	p, err := env.svc.Create(ctx, CreateRequest{Name: "Wardrobe", ClientID: clientID})
	require.NoError(t, err)

	plywood := env.newStockItem("Plywood", "10")
	screws := env.newStockItem("Screws", "5")

	_, err = env.svc.AddMaterial(ctx, p.ID, AddMaterialRequest{StockItemID: plywood, Quantity: types.MustQuantity("3")})
	require.NoError(t, err)
	_, err = env.svc.AddMaterial(ctx, p.ID, AddMaterialRequest{StockItemID: screws, Quantity: types.MustQuantity("2")})
	require.NoError(t, err)

	cost, err := env.svc.TotalCost(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, cost.Lines)
	assert.True(t, cost.TotalCost.Equal(types.MustMoney("40"))) // 3*10 + 2*5

	// Unit cost is read live: a price change moves the rollup.
	env.materials.itemCost[plywood] = types.MustMoney("20")
	cost, err = env.svc.TotalCost(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, cost.TotalCost.Equal(types.MustMoney("70"))) // 3*20 + 2*5
}

func TestService_RemoveMaterial_WrongProject(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	clientID := env.newClient()

	p1, err := env.svc.Create(ctx, CreateRequest{Name: "Wardrobe", ClientID: clientID})
	require.NoError(t, err)
	p2, err := env.svc.Create(ctx, CreateRequest{Name: "Desk", ClientID: clientID})
	require.NoError(t, err)

	itemID := env.newStockItem("Plywood", "10")
	m, err := env.svc.AddMaterial(ctx, p1.ID, AddMaterialRequest{StockItemID: itemID, Quantity: types.MustQuantity("1")})
	require.NoError(t, err)

	err = env.svc.RemoveMaterial(ctx, p2.ID, m.ID)
	assert.True(t, apperror.IsNotFound(err))

	require.NoError(t, env.svc.RemoveMaterial(ctx, p1.ID, m.ID))
}

func TestService_Delete_BlockedByReferences(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	clientID := env.newClient()

	p, err := env.svc.Create(ctx, CreateRequest{Name: "Wardrobe", ClientID: clientID})
	require.NoError(t, err)
	env.projects.refs[p.ID] = 1

	err = env.svc.Delete(ctx, p.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
}

package ledger

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"joinerpro/internal/core/apperror"
	"joinerpro/internal/core/id"
	"joinerpro/internal/core/types"
)

// fakeLedgerRepo is an in-memory Repository with transaction staging so
// atomicity can be exercised without a database.
type fakeLedgerRepo struct {
	committed map[Kind]map[id.ID]*Entry
	staged    []stagedEntry
	inTx      bool

	createCalls int
	failOnCall  int // fail the n-th Create (1-based), 0 disables
	projectName map[id.ID]string
}

type stagedEntry struct {
	kind  Kind
	entry Entry
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{
		committed: map[Kind]map[id.ID]*Entry{
			KindPayable:    {},
			KindReceivable: {},
		},
		projectName: make(map[id.ID]string),
	}
}

func (f *fakeLedgerRepo) Create(_ context.Context, kind Kind, e *Entry) error {
	f.createCalls++
	if f.failOnCall > 0 && f.createCalls == f.failOnCall {
		return errors.New("simulated insert failure")
	}
	if f.inTx {
		f.staged = append(f.staged, stagedEntry{kind: kind, entry: *e})
		return nil
	}
	cp := *e
	f.committed[kind][e.ID] = &cp
	return nil
}

func (f *fakeLedgerRepo) Update(_ context.Context, kind Kind, e *Entry) error {
	if _, ok := f.committed[kind][e.ID]; !ok {
		return apperror.NewNotFound("ledger entry", e.ID.String())
	}
	cp := *e
	f.committed[kind][e.ID] = &cp
	return nil
}

func (f *fakeLedgerRepo) GetByID(_ context.Context, kind Kind, entryID id.ID) (*Entry, error) {
	e, ok := f.committed[kind][entryID]
	if !ok {
		return nil, apperror.NewNotFound("ledger entry", entryID.String())
	}
	cp := *e
	return &cp, nil
}

func (f *fakeLedgerRepo) Delete(_ context.Context, kind Kind, entryID id.ID) error {
	if _, ok := f.committed[kind][entryID]; !ok {
		return apperror.NewNotFound("ledger entry", entryID.String())
	}
	delete(f.committed[kind], entryID)
	return nil
}

func (f *fakeLedgerRepo) ListForMonth(_ context.Context, kind Kind, month *types.Month) ([]ListItem, error) {
	var out []ListItem
	for _, e := range f.committed[kind] {
		if month != nil && !month.Contains(e.DueDate) {
			continue
		}
		item := ListItem{Entry: *e}
		if e.ProjectID != nil {
			if name, ok := f.projectName[*e.ProjectID]; ok {
				item.ProjectName = &name
			}
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	return out, nil
}

// fakeTxManager stages repo writes and discards them when fn fails,
// mimicking rollback.
type fakeTxManager struct{ repo *fakeLedgerRepo }

func (m *fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.repo.inTx = true
	m.repo.staged = nil
	err := fn(ctx)
	m.repo.inTx = false
	if err != nil {
		m.repo.staged = nil
		return err
	}
	for _, st := range m.repo.staged {
		cp := st.entry
		m.repo.committed[st.kind][cp.ID] = &cp
	}
	m.repo.staged = nil
	return nil
}

type fakeProjects struct{ known map[id.ID]bool }

func (f *fakeProjects) Exists(_ context.Context, projectID id.ID) (bool, error) {
	return f.known[projectID], nil
}

type fakeAuditor struct{ actions []string }

func (f *fakeAuditor) Record(_ context.Context, action, _, _ string, _ any) error {
	f.actions = append(f.actions, action)
	return nil
}

type ledgerEnv struct {
	svc      *Service
	repo     *fakeLedgerRepo
	projects *fakeProjects
	audit    *fakeAuditor
	now      time.Time
}

func newLedgerEnv() *ledgerEnv {
	env := &ledgerEnv{
		repo:     newFakeLedgerRepo(),
		projects: &fakeProjects{known: make(map[id.ID]bool)},
		audit:    &fakeAuditor{},
		now:      time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
	}
	env.svc = NewService(env.repo, env.projects, &fakeTxManager{repo: env.repo}, env.audit)
	env.svc.now = func() time.Time { return env.now }
	return env
}

func baseDate() time.Time {
	return time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
}

func TestCreate_SingleInstallment_Settled(t *testing.T) {
	env := newLedgerEnv()

	entries, err := env.svc.Create(context.Background(), KindPayable, CreateRequest{
		Description:   "Saw blades",
		Amount:        types.MustMoney("350.00"),
		DueDate:       baseDate(),
		Installments:  1,
		PaymentMethod: "pix",
	})
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, StatusPaid, e.Status)
	require.NotNil(t, e.SettledAt)
	assert.Equal(t, env.now, *e.SettledAt)
	assert.Equal(t, baseDate(), e.DueDate)
	assert.Equal(t, "Saw blades (cash - pix)", e.Description)
	assert.True(t, e.Amount.Equal(types.MustMoney("350.00")))
}

func TestCreate_Installments_Expansion(t *testing.T) {
	env := newLedgerEnv()

	entries, err := env.svc.Create(context.Background(), KindPayable, CreateRequest{
		Description:  "Lumber order",
		Amount:       types.MustMoney("1000.00"),
		DueDate:      baseDate(),
		Installments: 3,
	})
	require.NoError(t, err)
	require.Len(t, entries, 3)

	total := types.Zero()
	for i, e := range entries {
		assert.Equal(t, StatusPending, e.Status)
		assert.Nil(t, e.SettledAt)
		assert.Equal(t, baseDate().AddDate(0, i, 0), e.DueDate)
		total = total.Add(e.Amount)
	}
	assert.Equal(t, "Lumber order (1/3)", entries[0].Description)
	assert.Equal(t, "Lumber order (3/3)", entries[2].Description)

	// 1000/3 = 333.33 per row; the cent of drift is preserved.
	drift := types.MustMoney("1000.00").Sub(total).Abs()
	assert.True(t, drift.LessThanOrEqual(types.MustMoney("0.05")),
		"sum %s drifted more than tolerance from total", total)
}

func TestCreate_Installments_Atomicity(t *testing.T) {
	env := newLedgerEnv()
	env.repo.failOnCall = 3 // fail on the 3rd of 5 inserts

	_, err := env.svc.Create(context.Background(), KindPayable, CreateRequest{
		Description:  "Lumber order",
		Amount:       types.MustMoney("500.00"),
		DueDate:      baseDate(),
		Installments: 5,
	})
	require.Error(t, err)
	assert.Empty(t, env.repo.committed[KindPayable], "partial installment set must not persist")
}

func TestCreate_Validation(t *testing.T) {
	env := newLedgerEnv()
	ctx := context.Background()

	valid := CreateRequest{
		Description:  "ok",
		Amount:       types.MustMoney("100"),
		DueDate:      baseDate(),
		Installments: 1,
	}

	tests := []struct {
		name   string
		mutate func(*CreateRequest)
	}{
		{"missing description", func(r *CreateRequest) { r.Description = "  " }},
		{"zero amount", func(r *CreateRequest) { r.Amount = types.Zero() }},
		{"missing due date", func(r *CreateRequest) { r.DueDate = time.Time{} }},
		{"zero installments", func(r *CreateRequest) { r.Installments = 0 }},
		{"too many installments", func(r *CreateRequest) { r.Installments = MaxInstallments + 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			_, err := env.svc.Create(ctx, KindPayable, req)
			require.Error(t, err)
			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.CodeValidation, appErr.Code)
		})
	}
	assert.Empty(t, env.repo.committed[KindPayable])
}

func TestCreate_Receivable_ProjectAttachedToEveryRow(t *testing.T) {
	env := newLedgerEnv()
	projectID := id.New()
	env.projects.known[projectID] = true

	entries, err := env.svc.Create(context.Background(), KindReceivable, CreateRequest{
		Description:  "Kitchen cabinets",
		Amount:       types.MustMoney("9000.00"),
		DueDate:      baseDate(),
		Installments: 3,
		ProjectID:    &projectID,
	})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for _, e := range entries {
		require.NotNil(t, e.ProjectID)
		assert.Equal(t, projectID, *e.ProjectID)
		assert.Equal(t, StatusPending, e.Status)
	}
}

func TestCreate_Receivable_DanglingProject(t *testing.T) {
	env := newLedgerEnv()
	projectID := id.New() // unknown

	_, err := env.svc.Create(context.Background(), KindReceivable, CreateRequest{
		Description:  "Kitchen cabinets",
		Amount:       types.MustMoney("9000.00"),
		DueDate:      baseDate(),
		Installments: 2,
		ProjectID:    &projectID,
	})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
	assert.Empty(t, env.repo.committed[KindReceivable])
}

func TestCreate_Payable_ProjectRejected(t *testing.T) {
	env := newLedgerEnv()
	projectID := id.New()

	_, err := env.svc.Create(context.Background(), KindPayable, CreateRequest{
		Description:  "Lumber",
		Amount:       types.MustMoney("100"),
		DueDate:      baseDate(),
		Installments: 1,
		ProjectID:    &projectID,
	})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestSettle(t *testing.T) {
	env := newLedgerEnv()
	ctx := context.Background()

	entries, err := env.svc.Create(ctx, KindReceivable, CreateRequest{
		Description:  "Desk",
		Amount:       types.MustMoney("600"),
		DueDate:      baseDate(),
		Installments: 2,
	})
	require.NoError(t, err)

	settled, err := env.svc.Settle(ctx, KindReceivable, entries[0].ID)
	require.NoError(t, err)
	assert.Equal(t, StatusReceived, settled.Status)
	require.NotNil(t, settled.SettledAt)
	assert.Equal(t, env.now, *settled.SettledAt)
	assert.Contains(t, env.audit.actions, "ledger_settled")

	// Settling again is a conflict.
	_, err = env.svc.Settle(ctx, KindReceivable, entries[0].ID)
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
}

func TestList_MonthFilterAndDerivedStatus(t *testing.T) {
	env := newLedgerEnv()
	ctx := context.Background()

	// Due 2026-08-01: past due at env.now (2026-08-30).
	_, err := env.svc.Create(ctx, KindPayable, CreateRequest{
		Description:  "Overdue entry",
		Amount:       types.MustMoney("100"),
		DueDate:      time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		Installments: 2,
	})
	require.NoError(t, err)

	august := types.Month{Year: 2026, Month: 8}
	items, err := env.svc.List(ctx, KindPayable, &august)
	require.NoError(t, err)
	require.Len(t, items, 1, "only the August installment is in the month window")
	assert.Equal(t, StatusOverdue, items[0].DerivedStatus)
	assert.Equal(t, StatusPending, items[0].Status, "overdue is never persisted")

	all, err := env.svc.List(ctx, KindPayable, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.True(t, all[0].DueDate.Before(all[1].DueDate), "ordered by due date ascending")
	assert.Equal(t, StatusPending, all[1].DerivedStatus, "September installment is not overdue yet")
}

func TestDerivedStatus_DueTodayIsNotOverdue(t *testing.T) {
	now := time.Date(2026, 8, 30, 23, 0, 0, 0, time.UTC)
	e := Entry{
		Status:  StatusPending,
		DueDate: time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, StatusPending, e.DerivedStatus(now))

	e.DueDate = time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, StatusOverdue, e.DerivedStatus(now))
}

func TestUpdate_CannotTouchSettlement(t *testing.T) {
	env := newLedgerEnv()
	ctx := context.Background()

	entries, err := env.svc.Create(ctx, KindPayable, CreateRequest{
		Description:  "Lumber",
		Amount:       types.MustMoney("100"),
		DueDate:      baseDate(),
		Installments: 2,
	})
	require.NoError(t, err)

	newAmount := types.MustMoney("120")
	updated, err := env.svc.Update(ctx, KindPayable, entries[0].ID, UpdateRequest{Amount: &newAmount})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, updated.Status, "patch leaves settlement state alone")
	assert.Nil(t, updated.SettledAt)
	assert.True(t, updated.Amount.Equal(newAmount))
}

func TestDelete_Audited(t *testing.T) {
	env := newLedgerEnv()
	ctx := context.Background()

	entries, err := env.svc.Create(ctx, KindPayable, CreateRequest{
		Description:  "Lumber",
		Amount:       types.MustMoney("100"),
		DueDate:      baseDate(),
		Installments: 1,
	})
	require.NoError(t, err)

	require.NoError(t, env.svc.Delete(ctx, KindPayable, entries[0].ID))
	assert.Contains(t, env.audit.actions, "ledger_deleted")

	_, err = env.svc.Get(ctx, KindPayable, entries[0].ID)
	assert.True(t, apperror.IsNotFound(err))
}

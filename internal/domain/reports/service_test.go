package reports

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"joinerpro/internal/core/apperror"
	"joinerpro/internal/core/entity"
	"joinerpro/internal/core/types"
	"joinerpro/internal/domain/client"
	"joinerpro/internal/domain/ledger"
	"joinerpro/internal/domain/project"
	"joinerpro/internal/domain/stock"
)

type fakeSources struct {
	clients     []client.ListItem
	projects    []project.Detail
	stockItems  []stock.ItemWithCategory
	payables    []ledger.ListItem
	receivables []ledger.ListItem
}

func (f *fakeSources) List(_ context.Context) ([]client.ListItem, error) { return f.clients, nil }

func (f *fakeSources) ListItems(_ context.Context) ([]stock.ItemWithCategory, error) {
	return f.stockItems, nil
}

type projectSource struct{ items []project.Detail }

func (p *projectSource) List(_ context.Context) ([]project.Detail, error) { return p.items, nil }

type ledgerSource struct{ payables, receivables []ledger.ListItem }

func (l *ledgerSource) List(_ context.Context, kind ledger.Kind, _ *types.Month) ([]ledger.ListItem, error) {
	if kind == ledger.KindPayable {
		return l.payables, nil
	}
	return l.receivables, nil
}

func newReportsService(f *fakeSources) *Service {
	return NewService(f, &projectSource{items: f.projects}, f,
		&ledgerSource{payables: f.payables, receivables: f.receivables})
}

func sampleSources() *fakeSources {
	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	projName := "Kitchen"
	return &fakeSources{
		clients: []client.ListItem{
			{Client: client.Client{Base: entity.NewBase(), Name: "Silva", Email: "silva@x.com"}, ProjectCount: 2},
		},
		projects: []project.Detail{
			{
				WithClient: project.WithClient{
					Project: project.Project{
						Base: entity.NewBase(), Name: "Kitchen",
						Status: project.StatusInProduction, TotalValue: types.MustMoney("12000"),
					},
					ClientName: "Silva",
				},
				Deadline: project.Deadline{State: project.DeadlineOnTrack, Days: 16},
			},
		},
		stockItems: []stock.ItemWithCategory{
			{
				Item: stock.Item{
					Base: entity.NewBase(), Name: "Plywood sheet", Unit: stock.UnitPiece,
					QuantityOnHand:   types.MustQuantity("10"),
					ReorderThreshold: types.MustQuantity("12"),
					UnitCost:         types.MustMoney("2.5"),
				},
				CategoryName: "Wood",
			},
		},
		payables: []ledger.ListItem{
			{
				Entry: ledger.Entry{
					Base: entity.NewBase(), Description: "Lumber (1/2)",
					Amount: types.MustMoney("500"), DueDate: due, Status: ledger.StatusPending,
				},
				DerivedStatus: ledger.StatusPending,
			},
		},
		receivables: []ledger.ListItem{
			{
				Entry: ledger.Entry{
					Base: entity.NewBase(), Description: "Kitchen (1/3)",
					Amount: types.MustMoney("3000"), DueDate: due, Status: ledger.StatusPending,
				},
				ProjectName:   &projName,
				DerivedStatus: ledger.StatusOverdue,
			},
		},
	}
}

func TestClientsReport(t *testing.T) {
	svc := newReportsService(sampleSources())

	rows, err := svc.Clients(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Silva", rows[0].Name)
	assert.Equal(t, 2, rows[0].ProjectCount)
}

func TestProjectsReport_DeadlineLabels(t *testing.T) {
	svc := newReportsService(sampleSources())

	rows, err := svc.Projects(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "16 days remaining", rows[0].Deadline)

	assert.Equal(t, "10 days overdue",
		deadlineLabel(project.Deadline{State: project.DeadlineOverdue, Days: 10}))
	assert.Equal(t, "not started",
		deadlineLabel(project.Deadline{State: project.DeadlineNotStarted}))
}

func TestStockReport_Valuation(t *testing.T) {
	svc := newReportsService(sampleSources())

	report, err := svc.Stock(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Rows, 1)
	assert.True(t, report.Rows[0].Low)
	assert.True(t, report.TotalValuation.Equal(types.MustMoney("25")))
}

func TestFinanceReport_Totals(t *testing.T) {
	svc := newReportsService(sampleSources())

	report, err := svc.Finance(context.Background())
	require.NoError(t, err)
	assert.True(t, report.TotalPayable.Equal(types.MustMoney("500")))
	assert.True(t, report.TotalReceivable.Equal(types.MustMoney("3000")))
	assert.True(t, report.Balance.Equal(types.MustMoney("2500")))
	require.Len(t, report.Receivables, 1)
	assert.Equal(t, "Kitchen", report.Receivables[0].ProjectName)
	assert.Equal(t, string(ledger.StatusOverdue), report.Receivables[0].Status)
}

func TestExport_UnknownReport(t *testing.T) {
	svc := newReportsService(sampleSources())

	_, _, err := svc.Export(context.Background(), "payroll")
	assert.True(t, apperror.IsNotFound(err))
}

func TestExport_ClientsWorkbook(t *testing.T) {
	svc := newReportsService(sampleSources())

	data, filename, err := svc.Export(context.Background(), NameClients)
	require.NoError(t, err)
	assert.Equal(t, "clients.xlsx", filename)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{"Clients"}, f.GetSheetList())

	header, err := f.GetCellValue("Clients", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Name", header)

	name, err := f.GetCellValue("Clients", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Silva", name)
}

func TestExport_FinanceHasTwoSheets(t *testing.T) {
	svc := newReportsService(sampleSources())

	data, filename, err := svc.Export(context.Background(), NameFinance)
	require.NoError(t, err)
	assert.Equal(t, "finance.xlsx", filename)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.ElementsMatch(t, []string{"Payables", "Receivables"}, f.GetSheetList())

	desc, err := f.GetCellValue("Receivables", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Kitchen (1/3)", desc)

	proj, err := f.GetCellValue("Receivables", "F2")
	require.NoError(t, err)
	assert.Equal(t, "Kitchen", proj)
}

func TestExport_StockTotalsRow(t *testing.T) {
	svc := newReportsService(sampleSources())

	data, _, err := svc.Export(context.Background(), NameStock)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	// header + 1 item + blank + totals
	label, err := f.GetCellValue("Stock", "A4")
	require.NoError(t, err)
	assert.Equal(t, "Total", label)

	total, err := f.GetCellValue("Stock", "H4")
	require.NoError(t, err)
	assert.Equal(t, "25", total)
}

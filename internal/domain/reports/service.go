package reports

import (
	"context"
	"fmt"

	"joinerpro/internal/core/apperror"
	"joinerpro/internal/core/types"
	"joinerpro/internal/domain/ledger"
	"joinerpro/internal/domain/project"
)

// Service assembles reports from the domain services.
type Service struct {
	clients  ClientSource
	projects ProjectSource
	stock    StockSource
	ledger   LedgerSource
}

// NewService creates a reports service.
func NewService(clients ClientSource, projects ProjectSource, stock StockSource, ledger LedgerSource) *Service {
	return &Service{clients: clients, projects: projects, stock: stock, ledger: ledger}
}

// Clients builds the clients report.
func (s *Service) Clients(ctx context.Context) ([]ClientRow, error) {
	items, err := s.clients.List(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]ClientRow, 0, len(items))
	for _, c := range items {
		phone := ""
		if c.Phone != nil {
			phone = *c.Phone
		}
		rows = append(rows, ClientRow{
			Name:         c.Name,
			Email:        c.Email,
			Phone:        phone,
			ProjectCount: c.ProjectCount,
		})
	}
	return rows, nil
}

// Projects builds the projects report.
func (s *Service) Projects(ctx context.Context) ([]ProjectRow, error) {
	items, err := s.projects.List(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]ProjectRow, 0, len(items))
	for _, p := range items {
		rows = append(rows, ProjectRow{
			Name:       p.Name,
			ClientName: p.ClientName,
			Status:     string(p.Status),
			TotalValue: p.TotalValue,
			Deadline:   deadlineLabel(p.Deadline),
		})
	}
	return rows, nil
}

// deadlineLabel renders a deadline for tabular output.
func deadlineLabel(d project.Deadline) string {
	switch d.State {
	case project.DeadlineOverdue:
		return fmt.Sprintf("%d days overdue", d.Days)
	case project.DeadlineWarning, project.DeadlineOnTrack:
		return fmt.Sprintf("%d days remaining", d.Days)
	default:
		return "not started"
	}
}

// Stock builds the stock report with per-line and total valuation.
func (s *Service) Stock(ctx context.Context) (*StockReport, error) {
	items, err := s.stock.ListItems(ctx)
	if err != nil {
		return nil, err
	}

	report := &StockReport{
		Rows:           make([]StockRow, 0, len(items)),
		TotalValuation: types.Zero(),
	}
	for i := range items {
		it := &items[i]
		valuation := it.Valuation()
		report.Rows = append(report.Rows, StockRow{
			Name:         it.Name,
			CategoryName: it.CategoryName,
			Unit:         string(it.Unit),
			Quantity:     it.QuantityOnHand,
			Threshold:    it.ReorderThreshold,
			Low:          it.IsLow(),
			UnitCost:     it.UnitCost,
			Valuation:    valuation,
		})
		report.TotalValuation = report.TotalValuation.Add(valuation)
	}
	return report, nil
}

// Finance builds the combined payables/receivables report.
func (s *Service) Finance(ctx context.Context) (*FinanceReport, error) {
	payables, err := s.ledger.List(ctx, ledger.KindPayable, nil)
	if err != nil {
		return nil, err
	}
	receivables, err := s.ledger.List(ctx, ledger.KindReceivable, nil)
	if err != nil {
		return nil, err
	}

	report := &FinanceReport{
		Payables:        make([]FinanceRow, 0, len(payables)),
		Receivables:     make([]FinanceRow, 0, len(receivables)),
		TotalPayable:    types.Zero(),
		TotalReceivable: types.Zero(),
	}

	for _, e := range payables {
		report.Payables = append(report.Payables, financeRow(e))
		report.TotalPayable = report.TotalPayable.Add(e.Amount)
	}
	for _, e := range receivables {
		report.Receivables = append(report.Receivables, financeRow(e))
		report.TotalReceivable = report.TotalReceivable.Add(e.Amount)
	}
	report.Balance = report.TotalReceivable.Sub(report.TotalPayable)

	return report, nil
}

func financeRow(e ledger.ListItem) FinanceRow {
	row := FinanceRow{
		Description: e.Description,
		Amount:      e.Amount,
		DueDate:     e.DueDate,
		Status:      string(e.DerivedStatus),
		SettledAt:   e.SettledAt,
	}
	if e.ProjectName != nil {
		row.ProjectName = *e.ProjectName
	}
	return row
}

// Export renders the named report as an xlsx workbook.
// Returns the serialized file and the suggested filename.
func (s *Service) Export(ctx context.Context, name string) ([]byte, string, error) {
	switch name {
	case NameClients:
		rows, err := s.Clients(ctx)
		if err != nil {
			return nil, "", err
		}
		data, err := exportClients(rows)
		return data, "clients.xlsx", err
	case NameProjects:
		rows, err := s.Projects(ctx)
		if err != nil {
			return nil, "", err
		}
		data, err := exportProjects(rows)
		return data, "projects.xlsx", err
	case NameStock:
		report, err := s.Stock(ctx)
		if err != nil {
			return nil, "", err
		}
		data, err := exportStock(report)
		return data, "stock.xlsx", err
	case NameFinance:
		report, err := s.Finance(ctx)
		if err != nil {
			return nil, "", err
		}
		data, err := exportFinance(report)
		return data, "finance.xlsx", err
	default:
		return nil, "", apperror.NewNotFound("report", name)
	}
}

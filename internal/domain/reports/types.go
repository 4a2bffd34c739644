// Package reports builds tabular reports and their xlsx exports.
// Every report is a fresh query: no caching, no pagination.
package reports

import (
	"context"
	"time"

	"joinerpro/internal/core/types"
	"joinerpro/internal/domain/client"
	"joinerpro/internal/domain/ledger"
	"joinerpro/internal/domain/project"
	"joinerpro/internal/domain/stock"
)

// Report names accepted by the API.
const (
	NameClients  = "clients"
	NameProjects = "projects"
	NameStock    = "stock"
	NameFinance  = "finance"
)

// ClientRow is one line of the clients report.
type ClientRow struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	ProjectCount int    `json:"projectCount"`
}

// ProjectRow is one line of the projects report.
type ProjectRow struct {
	Name       string      `json:"name"`
	ClientName string      `json:"clientName"`
	Status     string      `json:"status"`
	TotalValue types.Money `json:"totalValue"`
	Deadline   string      `json:"deadline"`
}

// StockRow is one line of the stock report.
type StockRow struct {
	Name         string         `json:"name"`
	CategoryName string         `json:"categoryName"`
	Unit         string         `json:"unit"`
	Quantity     types.Quantity `json:"quantity"`
	Threshold    types.Quantity `json:"threshold"`
	Low          bool           `json:"low"`
	UnitCost     types.Money    `json:"unitCost"`
	Valuation    types.Money    `json:"valuation"`
}

// StockReport carries stock rows plus the aggregate valuation.
type StockReport struct {
	Rows           []StockRow  `json:"rows"`
	TotalValuation types.Money `json:"totalValuation"`
}

// FinanceRow is one ledger line of the finance report.
type FinanceRow struct {
	Description string      `json:"description"`
	Amount      types.Money `json:"amount"`
	DueDate     time.Time   `json:"dueDate"`
	Status      string      `json:"status"`
	SettledAt   *time.Time  `json:"settledAt,omitempty"`
	ProjectName string      `json:"projectName,omitempty"`
}

// FinanceReport carries both ledger sides with totals.
type FinanceReport struct {
	Payables        []FinanceRow `json:"payables"`
	Receivables     []FinanceRow `json:"receivables"`
	TotalPayable    types.Money  `json:"totalPayable"`
	TotalReceivable types.Money  `json:"totalReceivable"`
	Balance         types.Money  `json:"balance"`
}

// Sources are the domain surfaces the reports read from.

// ClientSource lists clients with project counts.
type ClientSource interface {
	List(ctx context.Context) ([]client.ListItem, error)
}

// ProjectSource lists projects with client names and deadlines.
type ProjectSource interface {
	List(ctx context.Context) ([]project.Detail, error)
}

// StockSource lists stock items with category names.
type StockSource interface {
	ListItems(ctx context.Context) ([]stock.ItemWithCategory, error)
}

// LedgerSource lists ledger entries with derived statuses.
type LedgerSource interface {
	List(ctx context.Context, kind ledger.Kind, month *types.Month) ([]ledger.ListItem, error)
}

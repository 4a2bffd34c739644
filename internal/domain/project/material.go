package project

import (
	"context"

	"joinerpro/internal/core/apperror"
	"joinerpro/internal/core/entity"
	"joinerpro/internal/core/id"
	"joinerpro/internal/core/types"
)

// Material is a bill-of-materials line linking a project to a stock item.
type Material struct {
	entity.Base
	ProjectID    id.ID          `db:"project_id" json:"projectId"`
	StockItemID  id.ID          `db:"stock_item_id" json:"stockItemId"`
	QuantityUsed types.Quantity `db:"quantity_used" json:"quantityUsed"`
}

// Validate checks BOM line invariants.
func (m *Material) Validate(_ context.Context) error {
	if id.IsNil(m.ProjectID) {
		return apperror.NewValidation("project is required")
	}
	if id.IsNil(m.StockItemID) {
		return apperror.NewValidation("stock item is required")
	}
	if !m.QuantityUsed.IsPositive() {
		return apperror.NewValidation("quantity must be positive")
	}
	return nil
}

// MaterialLine is a BOM line hydrated with the stock item's name, unit
// and current unit cost. LineCost = quantity_used x live unit cost; it
// is never snapshotted, so a price change moves historical rollups.
type MaterialLine struct {
	Material
	ItemName string      `db:"item_name" json:"itemName"`
	ItemUnit string      `db:"item_unit" json:"itemUnit"`
	UnitCost types.Money `db:"unit_cost" json:"unitCost"`
}

// LineCost returns quantity_used x current unit cost.
func (l *MaterialLine) LineCost() types.Money {
	return l.QuantityUsed.Mul(l.UnitCost)
}

// CostSummary is the BOM rollup for a project.
type CostSummary struct {
	ProjectID id.ID       `json:"projectId"`
	Lines     int         `json:"lines"`
	TotalCost types.Money `json:"totalCost"`
}

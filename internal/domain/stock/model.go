// Package stock implements inventory: categories, items, low-stock
// detection and valuation.
package stock

import (
	"context"
	"strings"

	"joinerpro/internal/core/apperror"
	"joinerpro/internal/core/entity"
	"joinerpro/internal/core/id"
	"joinerpro/internal/core/types"
)

// Unit is a unit of measure for stock items.
type Unit string

const (
	UnitPiece       Unit = "un"
	UnitMeter       Unit = "m"
	UnitSquareMeter Unit = "m2"
	UnitCubicMeter  Unit = "m3"
	UnitKilogram    Unit = "kg"
	UnitLiter       Unit = "l"
	UnitPackage     Unit = "pc"
)

var validUnits = map[Unit]struct{}{
	UnitPiece: {}, UnitMeter: {}, UnitSquareMeter: {}, UnitCubicMeter: {},
	UnitKilogram: {}, UnitLiter: {}, UnitPackage: {},
}

// ParseUnit validates a unit-of-measure string.
func ParseUnit(s string) (Unit, error) {
	u := Unit(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := validUnits[u]; !ok {
		return "", apperror.NewValidation("invalid unit of measure").WithDetail("unit", s)
	}
	return u, nil
}

// Category groups stock items. Name is unique.
type Category struct {
	entity.Base
	Name string `db:"name" json:"name"`
}

// NewCategory creates a category with generated identity.
func NewCategory(name string) *Category {
	return &Category{Base: entity.NewBase(), Name: strings.TrimSpace(name)}
}

// Validate checks category invariants.
func (c *Category) Validate(_ context.Context) error {
	if strings.TrimSpace(c.Name) == "" {
		return apperror.NewValidation("category name is required")
	}
	return nil
}

// Item is a stock keeping unit.
type Item struct {
	entity.Base
	Name             string         `db:"name" json:"name"`
	Description      *string        `db:"description" json:"description,omitempty"`
	CategoryID       id.ID          `db:"category_id" json:"categoryId"`
	Unit             Unit           `db:"unit" json:"unit"`
	QuantityOnHand   types.Quantity `db:"quantity_on_hand" json:"quantityOnHand"`
	ReorderThreshold types.Quantity `db:"reorder_threshold" json:"reorderThreshold"`
	UnitCost         types.Money    `db:"unit_cost" json:"unitCost"`
}

// Validate checks item invariants.
func (i *Item) Validate(_ context.Context) error {
	if strings.TrimSpace(i.Name) == "" {
		return apperror.NewValidation("item name is required")
	}
	if id.IsNil(i.CategoryID) {
		return apperror.NewValidation("category is required")
	}
	if _, ok := validUnits[i.Unit]; !ok {
		return apperror.NewValidation("invalid unit of measure").WithDetail("unit", string(i.Unit))
	}
	if i.QuantityOnHand.IsNegative() {
		return apperror.NewValidation("quantity on hand cannot be negative")
	}
	if i.ReorderThreshold.IsNegative() {
		return apperror.NewValidation("reorder threshold cannot be negative")
	}
	if i.UnitCost.IsNegative() {
		return apperror.NewValidation("unit cost cannot be negative")
	}
	return nil
}

// IsLow reports whether the item has fallen to or below its reorder
// threshold. Equality counts as low.
func (i *Item) IsLow() bool {
	return i.QuantityOnHand.LessThanOrEqual(i.ReorderThreshold)
}

// Valuation returns quantity_on_hand x unit_cost for this item.
func (i *Item) Valuation() types.Money {
	return i.QuantityOnHand.Mul(i.UnitCost)
}

// ItemWithCategory is an item row hydrated with its category name.
type ItemWithCategory struct {
	Item
	CategoryName string `db:"category_name" json:"categoryName"`
}

// OverviewItem is one item line in the stock overview.
type OverviewItem struct {
	ID             id.ID          `json:"id"`
	Name           string         `json:"name"`
	Unit           Unit           `json:"unit"`
	QuantityOnHand types.Quantity `json:"quantityOnHand"`
	Low            bool           `json:"low"`
	Valuation      types.Money    `json:"valuation"`
}

// OverviewCategory groups overview lines per category.
type OverviewCategory struct {
	CategoryID   id.ID          `json:"categoryId"`
	CategoryName string         `json:"categoryName"`
	Items        []OverviewItem `json:"items"`
}

// Overview is the full inventory snapshot: per-category grouping,
// low-item count and total valuation. Recomputed per read.
type Overview struct {
	Categories     []OverviewCategory `json:"categories"`
	TotalItems     int                `json:"totalItems"`
	LowItems       int                `json:"lowItems"`
	TotalValuation types.Money        `json:"totalValuation"`
}

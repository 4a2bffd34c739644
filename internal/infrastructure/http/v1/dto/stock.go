package dto

import (
	"joinerpro/internal/core/types"
	"joinerpro/internal/domain/stock"
)

// CreateCategoryRequest is the POST /stock/categories body.
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateItemRequest is the POST /stock/items body.
// Quantities and cost accept JSON numbers or strings.
type CreateItemRequest struct {
	Name             string         `json:"name" binding:"required"`
	Description      *string        `json:"description"`
	CategoryID       string         `json:"categoryId" binding:"required"`
	Unit             string         `json:"unit" binding:"required"`
	QuantityOnHand   types.Quantity `json:"quantityOnHand"`
	ReorderThreshold types.Quantity `json:"reorderThreshold"`
	UnitCost         types.Money    `json:"unitCost"`
}

// ToDomain converts to the service request, validating enums and ids.
func (r *CreateItemRequest) ToDomain() (stock.CreateItemRequest, error) {
	categoryID, err := ParseID(r.CategoryID)
	if err != nil {
		return stock.CreateItemRequest{}, err
	}
	unit, err := stock.ParseUnit(r.Unit)
	if err != nil {
		return stock.CreateItemRequest{}, err
	}
	return stock.CreateItemRequest{
		Name:             r.Name,
		Description:      r.Description,
		CategoryID:       categoryID,
		Unit:             unit,
		QuantityOnHand:   r.QuantityOnHand,
		ReorderThreshold: r.ReorderThreshold,
		UnitCost:         r.UnitCost,
	}, nil
}

// UpdateItemRequest is the PATCH /stock/items/:id body.
type UpdateItemRequest struct {
	Name             *string         `json:"name"`
	Description      *string         `json:"description"`
	CategoryID       *string         `json:"categoryId"`
	Unit             *string         `json:"unit"`
	QuantityOnHand   *types.Quantity `json:"quantityOnHand"`
	ReorderThreshold *types.Quantity `json:"reorderThreshold"`
	UnitCost         *types.Money    `json:"unitCost"`
}

// ToDomain converts to the service request, validating enums and ids.
func (r *UpdateItemRequest) ToDomain() (stock.UpdateItemRequest, error) {
	req := stock.UpdateItemRequest{
		Name:             r.Name,
		Description:      r.Description,
		QuantityOnHand:   r.QuantityOnHand,
		ReorderThreshold: r.ReorderThreshold,
		UnitCost:         r.UnitCost,
	}

	categoryID, err := ParseOptionalID(r.CategoryID)
	if err != nil {
		return stock.UpdateItemRequest{}, err
	}
	req.CategoryID = categoryID

	if r.Unit != nil {
		unit, err := stock.ParseUnit(*r.Unit)
		if err != nil {
			return stock.UpdateItemRequest{}, err
		}
		req.Unit = &unit
	}

	return req, nil
}

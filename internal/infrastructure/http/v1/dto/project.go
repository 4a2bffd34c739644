package dto

import (
	"joinerpro/internal/core/types"
	"joinerpro/internal/domain/project"
)

// CreateProjectRequest is the POST /projects body.
// TotalValue accepts a JSON number or string.
type CreateProjectRequest struct {
	Name         string      `json:"name" binding:"required"`
	Description  *string     `json:"description"`
	ClientID     string      `json:"clientId" binding:"required"`
	TotalValue   types.Money `json:"totalValue"`
	DeliveryDays int         `json:"deliveryDays"`
}

// ToDomain converts to the service request.
func (r *CreateProjectRequest) ToDomain() (project.CreateRequest, error) {
	clientID, err := ParseID(r.ClientID)
	if err != nil {
		return project.CreateRequest{}, err
	}
	return project.CreateRequest{
		Name:         r.Name,
		Description:  r.Description,
		ClientID:     clientID,
		TotalValue:   r.TotalValue,
		DeliveryDays: r.DeliveryDays,
	}, nil
}

// UpdateProjectRequest is the PATCH /projects/:id body.
type UpdateProjectRequest struct {
	Name         *string      `json:"name"`
	Description  *string      `json:"description"`
	ClientID     *string      `json:"clientId"`
	Status       *string      `json:"status"`
	TotalValue   *types.Money `json:"totalValue"`
	DeliveryDays *int         `json:"deliveryDays"`
}

// ToDomain converts to the service request, validating enums and ids.
func (r *UpdateProjectRequest) ToDomain() (project.UpdateRequest, error) {
	req := project.UpdateRequest{
		Name:         r.Name,
		Description:  r.Description,
		TotalValue:   r.TotalValue,
		DeliveryDays: r.DeliveryDays,
	}

	clientID, err := ParseOptionalID(r.ClientID)
	if err != nil {
		return project.UpdateRequest{}, err
	}
	req.ClientID = clientID

	if r.Status != nil {
		status, err := project.ParseStatus(*r.Status)
		if err != nil {
			return project.UpdateRequest{}, err
		}
		req.Status = &status
	}

	return req, nil
}

// AddMaterialRequest is the POST /projects/:id/materials body.
// Quantity accepts a JSON number or string.
type AddMaterialRequest struct {
	StockItemID string         `json:"stockItemId" binding:"required"`
	Quantity    types.Quantity `json:"quantity"`
}

// ToDomain converts to the service request.
func (r *AddMaterialRequest) ToDomain() (project.AddMaterialRequest, error) {
	itemID, err := ParseID(r.StockItemID)
	if err != nil {
		return project.AddMaterialRequest{}, err
	}
	return project.AddMaterialRequest{
		StockItemID: itemID,
		Quantity:    r.Quantity,
	}, nil
}

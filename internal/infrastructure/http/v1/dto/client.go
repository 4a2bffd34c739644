package dto

import (
	"joinerpro/internal/domain/client"
)

// CreateClientRequest is the POST /clients body.
type CreateClientRequest struct {
	Name    string  `json:"name" binding:"required"`
	Email   string  `json:"email" binding:"required"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// ToDomain converts to the service request.
func (r *CreateClientRequest) ToDomain() client.CreateRequest {
	return client.CreateRequest{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Address: r.Address,
	}
}

// UpdateClientRequest is the PATCH /clients/:id body.
type UpdateClientRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// ToDomain converts to the service request.
func (r *UpdateClientRequest) ToDomain() client.UpdateRequest {
	return client.UpdateRequest{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Address: r.Address,
	}
}

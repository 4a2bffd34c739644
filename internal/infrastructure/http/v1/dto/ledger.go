package dto

import (
	"joinerpro/internal/core/types"
	"joinerpro/internal/domain/ledger"
)

// CreateEntryRequest is the POST /payables and /receivables body.
// Amount accepts a JSON number or string; DueDate is "YYYY-MM-DD".
// Installments defaults to 1 (cash settlement).
type CreateEntryRequest struct {
	Description   string      `json:"description" binding:"required"`
	Amount        types.Money `json:"amount"`
	DueDate       Date        `json:"dueDate"`
	Installments  int         `json:"installments"`
	PaymentMethod string      `json:"paymentMethod"`
	ProjectID     *string     `json:"projectId"`
}

// ToDomain converts to the service request.
func (r *CreateEntryRequest) ToDomain() (ledger.CreateRequest, error) {
	projectID, err := ParseOptionalID(r.ProjectID)
	if err != nil {
		return ledger.CreateRequest{}, err
	}

	installments := r.Installments
	if installments == 0 {
		installments = 1
	}

	return ledger.CreateRequest{
		Description:   r.Description,
		Amount:        r.Amount,
		DueDate:       r.DueDate.Time,
		Installments:  installments,
		PaymentMethod: r.PaymentMethod,
		ProjectID:     projectID,
	}, nil
}

// UpdateEntryRequest is the PATCH /payables/:id and /receivables/:id
// body. Settlement state cannot be patched; use the settle endpoint.
type UpdateEntryRequest struct {
	Description *string      `json:"description"`
	Amount      *types.Money `json:"amount"`
	DueDate     *Date        `json:"dueDate"`
	ProjectID   *string      `json:"projectId"`
}

// ToDomain converts to the service request.
func (r *UpdateEntryRequest) ToDomain() (ledger.UpdateRequest, error) {
	projectID, err := ParseOptionalID(r.ProjectID)
	if err != nil {
		return ledger.UpdateRequest{}, err
	}

	req := ledger.UpdateRequest{
		Description: r.Description,
		Amount:      r.Amount,
		ProjectID:   projectID,
	}
	if r.DueDate != nil {
		req.DueDate = &r.DueDate.Time
	}
	return req, nil
}

// SettleRequest is the PUT /payables/settle and /receivables/settle
// body: just the entry id.
type SettleRequest struct {
	ID string `json:"id" binding:"required"`
}

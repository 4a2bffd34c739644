package handlers

import (
	"github.com/gin-gonic/gin"

	"joinerpro/internal/core/apperror"
	"joinerpro/internal/core/types"
	"joinerpro/internal/domain/ledger"
	"joinerpro/internal/infrastructure/http/v1/dto"
)

// LedgerHandler serves one side of the ledger; the same handler type
// is mounted twice, once per kind.
type LedgerHandler struct {
	BaseHandler
	svc  *ledger.Service
	kind ledger.Kind
}

// NewLedgerHandler creates a ledger handler for the given kind.
func NewLedgerHandler(svc *ledger.Service, kind ledger.Kind) *LedgerHandler {
	return &LedgerHandler{svc: svc, kind: kind}
}

// List handles GET /{payables|receivables}. The optional ?month=YYYY-MM
// query restricts results to due dates within that month.
func (h *LedgerHandler) List(c *gin.Context) {
	var month *types.Month
	if raw := c.Query("month"); raw != "" {
		parsed, err := types.ParseMonth(raw)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid month, expected YYYY-MM").WithDetail("month", raw))
			return
		}
		month = &parsed
	}

	items, err := h.svc.List(c.Request.Context(), h.kind, month)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, items)
}

// Get handles GET /{kind}/:id.
func (h *LedgerHandler) Get(c *gin.Context) {
	entryID, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	entry, err := h.svc.Get(c.Request.Context(), h.kind, entryID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, entry)
}

// Create handles POST /{kind}: expands the request into one settled
// row or N pending installments.
func (h *LedgerHandler) Create(c *gin.Context) {
	var req dto.CreateEntryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	domainReq, err := req.ToDomain()
	if err != nil {
		h.Error(c, err)
		return
	}

	entries, err := h.svc.Create(c.Request.Context(), h.kind, domainReq)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, entries)
}

// Update handles PATCH /{kind}/:id.
func (h *LedgerHandler) Update(c *gin.Context) {
	entryID, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateEntryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	domainReq, err := req.ToDomain()
	if err != nil {
		h.Error(c, err)
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), h.kind, entryID, domainReq)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, updated)
}

// Delete handles DELETE /{kind}/:id.
func (h *LedgerHandler) Delete(c *gin.Context) {
	entryID, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), h.kind, entryID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// Settle handles PUT /{kind}/settle with body {id}.
func (h *LedgerHandler) Settle(c *gin.Context) {
	var req dto.SettleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	entryID, err := dto.ParseID(req.ID)
	if err != nil {
		h.Error(c, err)
		return
	}

	settled, err := h.svc.Settle(c.Request.Context(), h.kind, entryID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, settled)
}

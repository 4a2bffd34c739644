package handlers

import (
	"github.com/gin-gonic/gin"

	"joinerpro/internal/domain/stock"
	"joinerpro/internal/infrastructure/http/v1/dto"
)

// StockHandler serves inventory endpoints: items, categories and the
// overview.
type StockHandler struct {
	BaseHandler
	svc *stock.Service
}

// NewStockHandler creates a stock handler.
func NewStockHandler(svc *stock.Service) *StockHandler {
	return &StockHandler{svc: svc}
}

// ListItems handles GET /stock/items.
func (h *StockHandler) ListItems(c *gin.Context) {
	items, err := h.svc.ListItems(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, items)
}

// GetItem handles GET /stock/items/:id.
func (h *StockHandler) GetItem(c *gin.Context) {
	itemID, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	item, err := h.svc.GetItem(c.Request.Context(), itemID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, item)
}

// CreateItem handles POST /stock/items.
func (h *StockHandler) CreateItem(c *gin.Context) {
	var req dto.CreateItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	domainReq, err := req.ToDomain()
	if err != nil {
		h.Error(c, err)
		return
	}

	created, err := h.svc.CreateItem(c.Request.Context(), domainReq)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, created)
}

// UpdateItem handles PATCH /stock/items/:id.
func (h *StockHandler) UpdateItem(c *gin.Context) {
	itemID, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	domainReq, err := req.ToDomain()
	if err != nil {
		h.Error(c, err)
		return
	}

	updated, err := h.svc.UpdateItem(c.Request.Context(), itemID, domainReq)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, updated)
}

// DeleteItem handles DELETE /stock/items/:id.
func (h *StockHandler) DeleteItem(c *gin.Context) {
	itemID, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteItem(c.Request.Context(), itemID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// Overview handles GET /stock/overview.
func (h *StockHandler) Overview(c *gin.Context) {
	ov, err := h.svc.Overview(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, ov)
}

// ListCategories handles GET /stock/categories.
func (h *StockHandler) ListCategories(c *gin.Context) {
	items, err := h.svc.ListCategories(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, items)
}

// CreateCategory handles POST /stock/categories.
func (h *StockHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	created, err := h.svc.CreateCategory(c.Request.Context(), req.Name)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, created)
}

// DeleteCategory handles DELETE /stock/categories/:id.
func (h *StockHandler) DeleteCategory(c *gin.Context) {
	categoryID, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteCategory(c.Request.Context(), categoryID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

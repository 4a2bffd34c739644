package handlers

import (
	"github.com/gin-gonic/gin"

	"joinerpro/internal/domain/client"
	"joinerpro/internal/infrastructure/http/v1/dto"
)

// ClientHandler serves the client registry endpoints.
type ClientHandler struct {
	BaseHandler
	svc *client.Service
}

// NewClientHandler creates a client handler.
func NewClientHandler(svc *client.Service) *ClientHandler {
	return &ClientHandler{svc: svc}
}

// List handles GET /clients.
func (h *ClientHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, items)
}

// Get handles GET /clients/:id.
func (h *ClientHandler) Get(c *gin.Context) {
	clientID, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	item, err := h.svc.Get(c.Request.Context(), clientID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, item)
}

// Create handles POST /clients.
func (h *ClientHandler) Create(c *gin.Context) {
	var req dto.CreateClientRequest
	if !h.BindJSON(c, &req) {
		return
	}

	created, err := h.svc.Create(c.Request.Context(), req.ToDomain())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, created)
}

// Update handles PATCH /clients/:id.
func (h *ClientHandler) Update(c *gin.Context) {
	clientID, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateClientRequest
	if !h.BindJSON(c, &req) {
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), clientID, req.ToDomain())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, updated)
}

// Delete handles DELETE /clients/:id.
func (h *ClientHandler) Delete(c *gin.Context) {
	clientID, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), clientID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

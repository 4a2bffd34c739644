package handlers

import (
	"github.com/gin-gonic/gin"

	"joinerpro/internal/domain/project"
	"joinerpro/internal/infrastructure/http/v1/dto"
)

// ProjectHandler serves project and bill-of-materials endpoints.
type ProjectHandler struct {
	BaseHandler
	svc *project.Service
}

// NewProjectHandler creates a project handler.
func NewProjectHandler(svc *project.Service) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

// List handles GET /projects.
func (h *ProjectHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, items)
}

// Get handles GET /projects/:id.
func (h *ProjectHandler) Get(c *gin.Context) {
	projectID, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	item, err := h.svc.Get(c.Request.Context(), projectID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, item)
}

// Create handles POST /projects.
func (h *ProjectHandler) Create(c *gin.Context) {
	var req dto.CreateProjectRequest
	if !h.BindJSON(c, &req) {
		return
	}

	domainReq, err := req.ToDomain()
	if err != nil {
		h.Error(c, err)
		return
	}

	created, err := h.svc.Create(c.Request.Context(), domainReq)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, created)
}

// Update handles PATCH /projects/:id.
func (h *ProjectHandler) Update(c *gin.Context) {
	projectID, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateProjectRequest
	if !h.BindJSON(c, &req) {
		return
	}

	domainReq, err := req.ToDomain()
	if err != nil {
		h.Error(c, err)
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), projectID, domainReq)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, updated)
}

// Delete handles DELETE /projects/:id.
func (h *ProjectHandler) Delete(c *gin.Context) {
	projectID, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), projectID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// ListMaterials handles GET /projects/:id/materials.
func (h *ProjectHandler) ListMaterials(c *gin.Context) {
	projectID, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	lines, err := h.svc.ListMaterials(c.Request.Context(), projectID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, lines)
}

// AddMaterial handles POST /projects/:id/materials.
func (h *ProjectHandler) AddMaterial(c *gin.Context) {
	projectID, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	var req dto.AddMaterialRequest
	if !h.BindJSON(c, &req) {
		return
	}

	domainReq, err := req.ToDomain()
	if err != nil {
		h.Error(c, err)
		return
	}

	created, err := h.svc.AddMaterial(c.Request.Context(), projectID, domainReq)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, created)
}

// RemoveMaterial handles DELETE /projects/:id/materials/:materialId.
func (h *ProjectHandler) RemoveMaterial(c *gin.Context) {
	projectID, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	materialID, ok := h.PathID(c, "materialId")
	if !ok {
		return
	}

	if err := h.svc.RemoveMaterial(c.Request.Context(), projectID, materialID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// MaterialCost handles GET /projects/:id/materials/cost.
func (h *ProjectHandler) MaterialCost(c *gin.Context) {
	projectID, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	summary, err := h.svc.TotalCost(c.Request.Context(), projectID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, summary)
}

package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"joinerpro/internal/core/apperror"
	"joinerpro/internal/domain/reports"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportsHandler serves tabular reports and their xlsx exports.
type ReportsHandler struct {
	BaseHandler
	svc *reports.Service
}

// NewReportsHandler creates a reports handler.
func NewReportsHandler(svc *reports.Service) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

// Get handles GET /reports/:name.
func (h *ReportsHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	switch c.Param("name") {
	case reports.NameClients:
		rows, err := h.svc.Clients(ctx)
		if err != nil {
			h.Error(c, err)
			return
		}
		h.OK(c, rows)
	case reports.NameProjects:
		rows, err := h.svc.Projects(ctx)
		if err != nil {
			h.Error(c, err)
			return
		}
		h.OK(c, rows)
	case reports.NameStock:
		report, err := h.svc.Stock(ctx)
		if err != nil {
			h.Error(c, err)
			return
		}
		h.OK(c, report)
	case reports.NameFinance:
		report, err := h.svc.Finance(ctx)
		if err != nil {
			h.Error(c, err)
			return
		}
		h.OK(c, report)
	default:
		h.Error(c, apperror.NewNotFound("report", c.Param("name")))
	}
}

// Export handles GET /reports/:name/export, returning an xlsx workbook
// as an attachment.
func (h *ReportsHandler) Export(c *gin.Context) {
	data, filename, err := h.svc.Export(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}

package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/stitchdesk/backend/internal/application/partner"
	"github.com/stitchdesk/backend/internal/domain/shared"
	"github.com/stitchdesk/backend/internal/interfaces/http/dto"
)

// JobberHandler handles jobber management endpoints
type JobberHandler struct {
	BaseHandler
	jobberService *partner.JobberService
}

// NewJobberHandler creates a jobber handler
func NewJobberHandler(jobberService *partner.JobberService) *JobberHandler {
	return &JobberHandler{jobberService: jobberService}
}

// Create handles POST /api/v1/jobbers
func (h *JobberHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "invalid tenant")
		return
	}

	var req partner.CreateJobberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.jobberService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /api/v1/jobbers/:id
func (h *JobberHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "invalid tenant")
		return
	}

	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BindError(c, err)
		return
	}
	jobberID, _ := uuid.Parse(uri.ID)

	resp, err := h.jobberService.GetByID(c.Request.Context(), tenantID, jobberID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /api/v1/jobbers
func (h *JobberHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "invalid tenant")
		return
	}

	var filter partner.JobberListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	jobbers, total, err := h.jobberService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	pageNo, pageSize := normalizePage(filter.Page, filter.PageSize)
	page := shared.NewPaginated(jobbers, total, pageNo, pageSize)
	h.Success(c, dto.NewRecordsPage(page, jobbers, c.Query("echo")))
}

// Update handles PUT /api/v1/jobbers/:id
func (h *JobberHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "invalid tenant")
		return
	}

	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BindError(c, err)
		return
	}
	jobberID, _ := uuid.Parse(uri.ID)

	var req partner.UpdateJobberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.jobberService.Update(c.Request.Context(), tenantID, jobberID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Deactivate handles POST /api/v1/jobbers/:id/deactivate
func (h *JobberHandler) Deactivate(c *gin.Context) {
	h.toggleStatus(c, h.jobberService.Deactivate)
}

// Activate handles POST /api/v1/jobbers/:id/activate
func (h *JobberHandler) Activate(c *gin.Context) {
	h.toggleStatus(c, h.jobberService.Activate)
}

func (h *JobberHandler) toggleStatus(c *gin.Context, fn func(ctx context.Context, tenantID, jobberID uuid.UUID) error) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "invalid tenant")
		return
	}

	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BindError(c, err)
		return
	}
	jobberID, _ := uuid.Parse(uri.ID)

	if err := fn(c.Request.Context(), tenantID, jobberID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

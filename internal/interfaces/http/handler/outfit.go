package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/stitchdesk/backend/internal/application/catalog"
	"github.com/stitchdesk/backend/internal/domain/shared"
	"github.com/stitchdesk/backend/internal/interfaces/http/dto"
)

// SetOutfitImageRequest attaches an uploaded image to an outfit
type SetOutfitImageRequest struct {
	ImageKey string `json:"image_key" binding:"required,max=500"`
}

// OutfitHandler handles outfit catalog endpoints
type OutfitHandler struct {
	BaseHandler
	outfitService *catalog.OutfitService
}

// NewOutfitHandler creates an outfit handler
func NewOutfitHandler(outfitService *catalog.OutfitService) *OutfitHandler {
	return &OutfitHandler{outfitService: outfitService}
}

// Create handles POST /api/v1/outfits
func (h *OutfitHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "invalid tenant")
		return
	}

	var req catalog.CreateOutfitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.outfitService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /api/v1/outfits/:id
func (h *OutfitHandler) Get(c *gin.Context) {
	tenantID, outfitID, ok := h.tenantAndID(c)
	if !ok {
		return
	}

	resp, err := h.outfitService.GetByID(c.Request.Context(), tenantID, outfitID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /api/v1/outfits
func (h *OutfitHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "invalid tenant")
		return
	}

	var filter catalog.OutfitListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	outfits, total, err := h.outfitService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	pageNo, pageSize := normalizePage(filter.Page, filter.PageSize)
	page := shared.NewPaginated(outfits, total, pageNo, pageSize)
	h.Success(c, dto.NewRecordsPage(page, outfits, c.Query("echo")))
}

// Update handles PUT /api/v1/outfits/:id
func (h *OutfitHandler) Update(c *gin.Context) {
	tenantID, outfitID, ok := h.tenantAndID(c)
	if !ok {
		return
	}

	var req catalog.UpdateOutfitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.outfitService.Update(c.Request.Context(), tenantID, outfitID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// SetImage handles PUT /api/v1/outfits/:id/image
func (h *OutfitHandler) SetImage(c *gin.Context) {
	tenantID, outfitID, ok := h.tenantAndID(c)
	if !ok {
		return
	}

	var req SetOutfitImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	if err := h.outfitService.SetImage(c.Request.Context(), tenantID, outfitID, req.ImageKey); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Deactivate handles POST /api/v1/outfits/:id/deactivate
func (h *OutfitHandler) Deactivate(c *gin.Context) {
	h.toggleStatus(c, h.outfitService.Deactivate)
}

// Activate handles POST /api/v1/outfits/:id/activate
func (h *OutfitHandler) Activate(c *gin.Context) {
	h.toggleStatus(c, h.outfitService.Activate)
}

// ListMeasurementFields handles GET /api/v1/outfits/:id/measurement-fields
func (h *OutfitHandler) ListMeasurementFields(c *gin.Context) {
	tenantID, outfitID, ok := h.tenantAndID(c)
	if !ok {
		return
	}

	fields, err := h.outfitService.ListMeasurementFields(c.Request.Context(), tenantID, outfitID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, fields)
}

// ReplaceMeasurementFields handles PUT /api/v1/outfits/:id/measurement-fields
func (h *OutfitHandler) ReplaceMeasurementFields(c *gin.Context) {
	tenantID, outfitID, ok := h.tenantAndID(c)
	if !ok {
		return
	}

	var req catalog.ReplaceMeasurementFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	fields, err := h.outfitService.ReplaceMeasurementFields(c.Request.Context(), tenantID, outfitID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, fields)
}

func (h *OutfitHandler) tenantAndID(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "invalid tenant")
		return uuid.Nil, uuid.Nil, false
	}

	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BindError(c, err)
		return uuid.Nil, uuid.Nil, false
	}
	outfitID, _ := uuid.Parse(uri.ID)
	return tenantID, outfitID, true
}

func (h *OutfitHandler) toggleStatus(c *gin.Context, fn func(ctx context.Context, tenantID, outfitID uuid.UUID) error) {
	tenantID, outfitID, ok := h.tenantAndID(c)
	if !ok {
		return
	}

	if err := fn(c.Request.Context(), tenantID, outfitID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

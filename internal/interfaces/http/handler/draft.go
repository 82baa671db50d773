package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/stitchdesk/backend/internal/application/orders"
)

// DraftHandler handles the order composition session. Every endpoint
// operates on the caller's own draft, keyed by tenant and user.
type DraftHandler struct {
	BaseHandler
	compositionService *orders.CompositionService
}

// NewDraftHandler creates a draft handler
func NewDraftHandler(compositionService *orders.CompositionService) *DraftHandler {
	return &DraftHandler{compositionService: compositionService}
}

// identity resolves the tenant and user owning the draft
func (h *DraftHandler) identity(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "invalid tenant")
		return uuid.Nil, uuid.Nil, false
	}
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "invalid user")
		return uuid.Nil, uuid.Nil, false
	}
	return tenantID, userID, true
}

// instanceID reads the :instanceId path parameter
func (h *DraftHandler) instanceID(c *gin.Context) (string, bool) {
	id := c.Param("instanceId")
	if id == "" {
		h.BadRequest(c, "instance id is required")
		return "", false
	}
	return id, true
}

// lineIndex reads the :index path parameter
func (h *DraftHandler) lineIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		h.BadRequest(c, "index must be a non-negative integer")
		return 0, false
	}
	return index, true
}

func (h *DraftHandler) respond(c *gin.Context, draft *orders.DraftResponse, err error) {
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, draft)
}

// Get handles GET /api/v1/draft
func (h *DraftHandler) Get(c *gin.Context) {
	tenantID, userID, ok := h.identity(c)
	if !ok {
		return
	}
	draft, err := h.compositionService.GetDraft(c.Request.Context(), tenantID, userID)
	h.respond(c, draft, err)
}

// SelectCustomer handles PUT /api/v1/draft/customer
func (h *DraftHandler) SelectCustomer(c *gin.Context) {
	tenantID, userID, ok := h.identity(c)
	if !ok {
		return
	}

	var req orders.SelectCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	draft, err := h.compositionService.SelectCustomer(c.Request.Context(), tenantID, userID, req)
	h.respond(c, draft, err)
}

// ClearCustomer handles DELETE /api/v1/draft/customer
func (h *DraftHandler) ClearCustomer(c *gin.Context) {
	tenantID, userID, ok := h.identity(c)
	if !ok {
		return
	}
	draft, err := h.compositionService.ClearCustomer(c.Request.Context(), tenantID, userID)
	h.respond(c, draft, err)
}

// AddInstance handles POST /api/v1/draft/instances
func (h *DraftHandler) AddInstance(c *gin.Context) {
	tenantID, userID, ok := h.identity(c)
	if !ok {
		return
	}

	var req orders.AddInstanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	draft, err := h.compositionService.AddInstance(c.Request.Context(), tenantID, userID, req)
	h.respond(c, draft, err)
}

// RemoveInstance handles DELETE /api/v1/draft/instances/:instanceId
func (h *DraftHandler) RemoveInstance(c *gin.Context) {
	tenantID, userID, ok := h.identity(c)
	if !ok {
		return
	}
	instanceID, ok := h.instanceID(c)
	if !ok {
		return
	}

	draft, err := h.compositionService.RemoveInstance(c.Request.Context(), tenantID, userID, instanceID)
	h.respond(c, draft, err)
}

// UpdateInstance handles PATCH /api/v1/draft/instances/:instanceId
func (h *DraftHandler) UpdateInstance(c *gin.Context) {
	tenantID, userID, ok := h.identity(c)
	if !ok {
		return
	}
	instanceID, ok := h.instanceID(c)
	if !ok {
		return
	}

	var req orders.UpdateInstanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	draft, err := h.compositionService.UpdateInstance(c.Request.Context(), tenantID, userID, instanceID, req)
	h.respond(c, draft, err)
}

// AddCost handles POST /api/v1/draft/instances/:instanceId/costs
func (h *DraftHandler) AddCost(c *gin.Context) {
	tenantID, userID, ok := h.identity(c)
	if !ok {
		return
	}
	instanceID, ok := h.instanceID(c)
	if !ok {
		return
	}

	var req orders.AddCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	draft, err := h.compositionService.AddCost(c.Request.Context(), tenantID, userID, instanceID, req)
	h.respond(c, draft, err)
}

// RemoveCost handles DELETE /api/v1/draft/instances/:instanceId/costs/:index
func (h *DraftHandler) RemoveCost(c *gin.Context) {
	tenantID, userID, ok := h.identity(c)
	if !ok {
		return
	}
	instanceID, ok := h.instanceID(c)
	if !ok {
		return
	}
	index, ok := h.lineIndex(c)
	if !ok {
		return
	}

	draft, err := h.compositionService.RemoveCost(c.Request.Context(), tenantID, userID, instanceID, index)
	h.respond(c, draft, err)
}

// AddAttachment handles POST /api/v1/draft/instances/:instanceId/attachments
func (h *DraftHandler) AddAttachment(c *gin.Context) {
	tenantID, userID, ok := h.identity(c)
	if !ok {
		return
	}
	instanceID, ok := h.instanceID(c)
	if !ok {
		return
	}

	var req orders.AddAttachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	draft, err := h.compositionService.AddAttachment(c.Request.Context(), tenantID, userID, instanceID, req)
	h.respond(c, draft, err)
}

// RemoveAttachment handles DELETE /api/v1/draft/instances/:instanceId/attachments/:index
func (h *DraftHandler) RemoveAttachment(c *gin.Context) {
	tenantID, userID, ok := h.identity(c)
	if !ok {
		return
	}
	instanceID, ok := h.instanceID(c)
	if !ok {
		return
	}
	index, ok := h.lineIndex(c)
	if !ok {
		return
	}

	draft, err := h.compositionService.RemoveAttachment(c.Request.Context(), tenantID, userID, instanceID, index)
	h.respond(c, draft, err)
}

// SetStitchOption handles PUT /api/v1/draft/instances/:instanceId/stitch-options
func (h *DraftHandler) SetStitchOption(c *gin.Context) {
	tenantID, userID, ok := h.identity(c)
	if !ok {
		return
	}
	instanceID, ok := h.instanceID(c)
	if !ok {
		return
	}

	var req orders.SetStitchOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	draft, err := h.compositionService.SetStitchOption(c.Request.Context(), tenantID, userID, instanceID, req)
	h.respond(c, draft, err)
}

// OpenMeasurements handles GET /api/v1/draft/instances/:instanceId/measurements.
// It returns the outfit's measurement form seeded with the customer's
// latest saved values.
func (h *DraftHandler) OpenMeasurements(c *gin.Context) {
	tenantID, userID, ok := h.identity(c)
	if !ok {
		return
	}
	instanceID, ok := h.instanceID(c)
	if !ok {
		return
	}

	form, err := h.compositionService.OpenMeasurements(c.Request.Context(), tenantID, userID, instanceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, form)
}

// SaveMeasurements handles PUT /api/v1/draft/instances/:instanceId/measurements
func (h *DraftHandler) SaveMeasurements(c *gin.Context) {
	tenantID, userID, ok := h.identity(c)
	if !ok {
		return
	}
	instanceID, ok := h.instanceID(c)
	if !ok {
		return
	}

	var req orders.SaveMeasurementsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	draft, err := h.compositionService.SaveMeasurements(c.Request.Context(), tenantID, userID, instanceID, req)
	h.respond(c, draft, err)
}

// Submit handles POST /api/v1/draft/submit. On success the draft is
// cleared and the placed order is returned.
func (h *DraftHandler) Submit(c *gin.Context) {
	tenantID, userID, ok := h.identity(c)
	if !ok {
		return
	}

	order, err := h.compositionService.Submit(c.Request.Context(), tenantID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

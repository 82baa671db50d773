package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/stitchdesk/backend/internal/application/orders"
	"github.com/stitchdesk/backend/internal/domain/shared"
	"github.com/stitchdesk/backend/internal/interfaces/http/dto"
)

// orderDetailURI identifies one garment line inside an order
type orderDetailURI struct {
	ID       string `uri:"id" binding:"required,uuid"`
	DetailID string `uri:"detailId" binding:"required,uuid"`
}

// OrderHandler handles placed order endpoints
type OrderHandler struct {
	BaseHandler
	orderService *orders.OrderService
}

// NewOrderHandler creates an order handler
func NewOrderHandler(orderService *orders.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// List handles GET /api/v1/orders
func (h *OrderHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "invalid tenant")
		return
	}

	var filter orders.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	items, total, _, err := h.orderService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	pageNo, pageSize := normalizePage(filter.Page, filter.PageSize)
	page := shared.NewPaginated(items, total, pageNo, pageSize)
	h.Success(c, dto.NewRecordsPage(page, items, c.Query("echo")))
}

// Get handles GET /api/v1/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	tenantID, orderID, ok := h.tenantAndID(c)
	if !ok {
		return
	}

	resp, err := h.orderService.GetByID(c.Request.Context(), tenantID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetByNumber handles GET /api/v1/orders/by-number/:number
func (h *OrderHandler) GetByNumber(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "invalid tenant")
		return
	}

	number := c.Param("number")
	if number == "" {
		h.BadRequest(c, "order number is required")
		return
	}

	resp, err := h.orderService.GetByNumber(c.Request.Context(), tenantID, number)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// StatusCounts handles GET /api/v1/orders/status-counts
func (h *OrderHandler) StatusCounts(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "invalid tenant")
		return
	}

	counts, err := h.orderService.CountByStatus(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, counts)
}

// AssignJobber handles PUT /api/v1/orders/:id/details/:detailId/jobber
func (h *OrderHandler) AssignJobber(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "invalid tenant")
		return
	}

	var uri orderDetailURI
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BindError(c, err)
		return
	}
	orderID, _ := uuid.Parse(uri.ID)
	detailID, _ := uuid.Parse(uri.DetailID)

	var req orders.AssignJobberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.orderService.AssignJobber(c.Request.Context(), tenantID, orderID, detailID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UnassignJobber handles DELETE /api/v1/orders/:id/details/:detailId/jobber
func (h *OrderHandler) UnassignJobber(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "invalid tenant")
		return
	}

	var uri orderDetailURI
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BindError(c, err)
		return
	}
	orderID, _ := uuid.Parse(uri.ID)
	detailID, _ := uuid.Parse(uri.DetailID)

	resp, err := h.orderService.UnassignJobber(c.Request.Context(), tenantID, orderID, detailID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Start handles POST /api/v1/orders/:id/start
func (h *OrderHandler) Start(c *gin.Context) {
	h.transition(c, h.orderService.Start)
}

// MarkReady handles POST /api/v1/orders/:id/ready
func (h *OrderHandler) MarkReady(c *gin.Context) {
	h.transition(c, h.orderService.MarkReady)
}

// Deliver handles POST /api/v1/orders/:id/deliver
func (h *OrderHandler) Deliver(c *gin.Context) {
	h.transition(c, h.orderService.Deliver)
}

// Cancel handles POST /api/v1/orders/:id/cancel
func (h *OrderHandler) Cancel(c *gin.Context) {
	tenantID, orderID, ok := h.tenantAndID(c)
	if !ok {
		return
	}

	var req orders.CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.orderService.Cancel(c.Request.Context(), tenantID, orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *OrderHandler) tenantAndID(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
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
	orderID, _ := uuid.Parse(uri.ID)
	return tenantID, orderID, true
}

func (h *OrderHandler) transition(c *gin.Context, fn func(ctx context.Context, tenantID, orderID uuid.UUID) (*orders.OrderResponse, error)) {
	tenantID, orderID, ok := h.tenantAndID(c)
	if !ok {
		return
	}

	resp, err := fn(c.Request.Context(), tenantID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

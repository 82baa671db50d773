package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/stitchdesk/backend/internal/application/catalog"
)

// DownloadURLRequest asks for a presigned read URL for a stored object
type DownloadURLRequest struct {
	Key string `form:"key" binding:"required,max=500"`
}

// AttachmentHandler handles the presigned upload and download flow
type AttachmentHandler struct {
	BaseHandler
	attachmentService *catalog.AttachmentService
}

// NewAttachmentHandler creates an attachment handler
func NewAttachmentHandler(attachmentService *catalog.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{attachmentService: attachmentService}
}

// InitiateUpload handles POST /api/v1/attachments/uploads
func (h *AttachmentHandler) InitiateUpload(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "invalid tenant")
		return
	}

	var req catalog.InitiateUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.attachmentService.InitiateUpload(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// DownloadURL handles GET /api/v1/attachments/download-url
func (h *AttachmentHandler) DownloadURL(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "invalid tenant")
		return
	}

	var req DownloadURLRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.attachmentService.ResolveDownload(c.Request.Context(), tenantID, req.Key)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete handles DELETE /api/v1/attachments
func (h *AttachmentHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "invalid tenant")
		return
	}

	var req DownloadURLRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	if err := h.attachmentService.Delete(c.Request.Context(), tenantID, req.Key); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

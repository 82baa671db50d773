package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stitchdesk/backend/internal/infrastructure/persistence"
	"github.com/stitchdesk/backend/internal/interfaces/http/dto"
)

// HealthHandler reports process liveness and readiness
type HealthHandler struct {
	BaseHandler
	db        *persistence.Database
	startedAt time.Time
}

// NewHealthHandler creates a health handler
func NewHealthHandler(db *persistence.Database) *HealthHandler {
	return &HealthHandler{db: db, startedAt: time.Now()}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	h.Success(c, gin.H{
		"status": "ok",
		"uptime": time.Since(h.startedAt).Round(time.Second).String(),
	})
}

// Ready handles GET /ready. It fails when the database is unreachable.
func (h *HealthHandler) Ready(c *gin.Context) {
	if h.db == nil {
		h.Error(c, http.StatusServiceUnavailable, dto.ErrCodeInternal, "database not configured")
		return
	}
	if err := h.db.Ping(); err != nil {
		h.Error(c, http.StatusServiceUnavailable, dto.ErrCodeInternal, "database unreachable")
		return
	}
	h.Success(c, gin.H{"status": "ready"})
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smartbiz/backend/internal/infrastructure/persistence"
	"github.com/smartbiz/backend/internal/interfaces/http/dto"
)

// SystemHandler exposes health and readiness probes
type SystemHandler struct {
	db      *persistence.Database
	version string
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(db *persistence.Database, version string) *SystemHandler {
	return &SystemHandler{db: db, version: version}
}

// Health handles GET /health, a liveness probe that never touches dependencies
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{
		"status":  "ok",
		"version": h.version,
	}))
}

// Ready handles GET /ready, failing when the database is unreachable
func (h *SystemHandler) Ready(c *gin.Context) {
	if err := h.db.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(
			"NOT_READY", "database unreachable"))
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"status": "ready"}))
}

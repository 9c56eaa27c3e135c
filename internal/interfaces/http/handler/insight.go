package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/smartbiz/backend/internal/application/ai"
)

// InsightHandler exposes the AI business insight endpoint
type InsightHandler struct {
	BaseHandler
	service *ai.InsightService
}

// NewInsightHandler creates a new insight handler
func NewInsightHandler(service *ai.InsightService) *InsightHandler {
	return &InsightHandler{service: service}
}

// Ask handles POST /insights. The monthly quota is checked before the
// provider is called, so a tenant over its limit never spends tokens.
func (h *InsightHandler) Ask(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	var req ai.InsightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	insight, err := h.service.Ask(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, insight)
}

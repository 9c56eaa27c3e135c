package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/smartbiz/backend/internal/application/trade"
)

// PurchaseHandler exposes the purchase order lifecycle
type PurchaseHandler struct {
	BaseHandler
	service *trade.PurchaseService
}

// NewPurchaseHandler creates a new purchase handler
func NewPurchaseHandler(service *trade.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{service: service}
}

// Create handles POST /purchases, creating a draft
func (h *PurchaseHandler) Create(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}

	var req trade.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	purchase, err := h.service.CreateDraft(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, purchase)
}

// Get handles GET /purchases/:id
func (h *PurchaseHandler) Get(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	purchaseID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	purchase, err := h.service.GetByID(c.Request.Context(), tenantID, purchaseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, purchase)
}

// GetByNumber handles GET /purchases/number/:number
func (h *PurchaseHandler) GetByNumber(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}

	purchase, err := h.service.GetByNumber(c.Request.Context(), tenantID, c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, purchase)
}

// List handles GET /purchases
func (h *PurchaseHandler) List(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}

	var filter trade.PurchaseListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	purchases, total, err := h.service.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, purchases, page, pageSize, total)
}

// Confirm handles POST /purchases/:id/confirm, receiving stock in
func (h *PurchaseHandler) Confirm(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	purchaseID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	purchase, err := h.service.Confirm(c.Request.Context(), tenantID, purchaseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, purchase)
}

// Cancel handles POST /purchases/:id/cancel
func (h *PurchaseHandler) Cancel(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	purchaseID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	purchase, err := h.service.Cancel(c.Request.Context(), tenantID, purchaseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, purchase)
}

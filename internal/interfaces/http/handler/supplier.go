package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/smartbiz/backend/internal/application/partner"
)

// SupplierHandler exposes supplier operations
type SupplierHandler struct {
	BaseHandler
	service *partner.SupplierService
}

// NewSupplierHandler creates a new supplier handler
func NewSupplierHandler(service *partner.SupplierService) *SupplierHandler {
	return &SupplierHandler{service: service}
}

// Create handles POST /suppliers
func (h *SupplierHandler) Create(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}

	var req partner.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	supplier, err := h.service.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, supplier)
}

// Update handles PUT /suppliers/:id
func (h *SupplierHandler) Update(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	supplierID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req partner.UpdateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	supplier, err := h.service.Update(c.Request.Context(), tenantID, supplierID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, supplier)
}

// Get handles GET /suppliers/:id
func (h *SupplierHandler) Get(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	supplierID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	supplier, err := h.service.GetByID(c.Request.Context(), tenantID, supplierID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, supplier)
}

// List handles GET /suppliers
func (h *SupplierHandler) List(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}

	var filter partner.PartnerListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	suppliers, err := h.service.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, suppliers)
}

// Delete handles DELETE /suppliers/:id
func (h *SupplierHandler) Delete(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	supplierID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), tenantID, supplierID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/smartbiz/backend/internal/application/partner"
)

// CustomerHandler exposes customer operations
type CustomerHandler struct {
	BaseHandler
	service *partner.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(service *partner.CustomerService) *CustomerHandler {
	return &CustomerHandler{service: service}
}

// Create handles POST /customers
func (h *CustomerHandler) Create(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}

	var req partner.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customer, err := h.service.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, customer)
}

// Update handles PUT /customers/:id
func (h *CustomerHandler) Update(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	customerID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req partner.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customer, err := h.service.Update(c.Request.Context(), tenantID, customerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// Get handles GET /customers/:id
func (h *CustomerHandler) Get(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	customerID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	customer, err := h.service.GetByID(c.Request.Context(), tenantID, customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// List handles GET /customers
func (h *CustomerHandler) List(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}

	var filter partner.PartnerListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customers, err := h.service.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customers)
}

// Delete handles DELETE /customers/:id
func (h *CustomerHandler) Delete(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	customerID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), tenantID, customerID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

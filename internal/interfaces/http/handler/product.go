package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/smartbiz/backend/internal/application/catalog"
)

// ProductHandler exposes product catalog operations
type ProductHandler struct {
	BaseHandler
	service *catalog.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *catalog.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// Create handles POST /products
func (h *ProductHandler) Create(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}

	var req catalog.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.service.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// Update handles PUT /products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	productID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req catalog.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.service.Update(c.Request.Context(), tenantID, productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Get handles GET /products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	productID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.service.GetByID(c.Request.Context(), tenantID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// List handles GET /products
func (h *ProductHandler) List(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}

	var filter catalog.ProductListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	products, err := h.service.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// Deactivate handles POST /products/:id/deactivate
func (h *ProductHandler) Deactivate(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	productID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.service.Deactivate(c.Request.Context(), tenantID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Activate handles POST /products/:id/activate
func (h *ProductHandler) Activate(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	productID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.service.Activate(c.Request.Context(), tenantID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

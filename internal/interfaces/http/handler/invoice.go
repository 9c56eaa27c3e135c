package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/smartbiz/backend/internal/application/trade"
)

// InvoiceHandler exposes the sales invoice lifecycle
type InvoiceHandler struct {
	BaseHandler
	service *trade.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(service *trade.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{service: service}
}

// Create handles POST /invoices, creating a draft
func (h *InvoiceHandler) Create(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}

	var req trade.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.service.CreateDraft(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, invoice)
}

// Get handles GET /invoices/:id
func (h *InvoiceHandler) Get(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	invoiceID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	invoice, err := h.service.GetByID(c.Request.Context(), tenantID, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

// GetByNumber handles GET /invoices/number/:number
func (h *InvoiceHandler) GetByNumber(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}

	invoice, err := h.service.GetByNumber(c.Request.Context(), tenantID, c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

// List handles GET /invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}

	var filter trade.InvoiceListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoices, total, err := h.service.List(c.Request.Context(), tenantID, filter)
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
	h.SuccessWithMeta(c, invoices, page, pageSize, total)
}

// Confirm handles POST /invoices/:id/confirm, moving stock out
func (h *InvoiceHandler) Confirm(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	invoiceID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	invoice, err := h.service.Confirm(c.Request.Context(), tenantID, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

// Cancel handles POST /invoices/:id/cancel
func (h *InvoiceHandler) Cancel(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	invoiceID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	invoice, err := h.service.Cancel(c.Request.Context(), tenantID, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

// RecordPayment handles POST /invoices/:id/payments
func (h *InvoiceHandler) RecordPayment(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	invoiceID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req trade.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.service.RecordPayment(c.Request.Context(), tenantID, invoiceID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

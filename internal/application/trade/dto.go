package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smartbiz/backend/internal/domain/trade"
)

// ==================== Invoice DTOs ====================

// CreateInvoiceRequest represents a request to create a draft invoice
type CreateInvoiceRequest struct {
	CustomerID  uuid.UUID                `json:"customer_id" binding:"required"`
	InvoiceDate *time.Time               `json:"invoice_date"`
	Discount    *decimal.Decimal         `json:"discount"`
	Items       []CreateInvoiceItemInput `json:"items" binding:"required,min=1"`
}

// CreateInvoiceItemInput represents an item in the create invoice request.
// Prices are not accepted from the client; they are snapshotted from the
// product catalog when the draft is created.
type CreateInvoiceItemInput struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Qty       int       `json:"qty" binding:"required,min=1"`
}

// RecordPaymentRequest represents a payment against a confirmed invoice
type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// InvoiceListFilter represents filter options for the invoice list
type InvoiceListFilter struct {
	Search     string     `form:"search"`
	CustomerID *uuid.UUID `form:"customer_id"`
	Status     *string    `form:"status"`
	StartDate  *time.Time `form:"start_date"`
	EndDate    *time.Time `form:"end_date"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// InvoiceItemResponse represents an invoice item in API responses
type InvoiceItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	SKU         string          `json:"sku"`
	Qty         int             `json:"qty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID            uuid.UUID             `json:"id"`
	InvoiceNumber string                `json:"invoice_number"`
	InvoiceDate   time.Time             `json:"invoice_date"`
	CustomerID    uuid.UUID             `json:"customer_id"`
	CustomerName  string                `json:"customer_name"`
	Items         []InvoiceItemResponse `json:"items"`
	SubTotal      decimal.Decimal       `json:"sub_total"`
	Discount      decimal.Decimal       `json:"discount"`
	GrandTotal    decimal.Decimal       `json:"grand_total"`
	Status        string                `json:"status"`
	PaymentStatus string                `json:"payment_status"`
	PaidAmount    decimal.Decimal       `json:"paid_amount"`
	ConfirmedAt   *time.Time            `json:"confirmed_at,omitempty"`
	CancelledAt   *time.Time            `json:"cancelled_at,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// ToInvoiceResponse converts an invoice aggregate to a response DTO
func ToInvoiceResponse(inv *trade.Invoice) InvoiceResponse {
	items := make([]InvoiceItemResponse, 0, len(inv.Items))
	for _, item := range inv.Items {
		items = append(items, InvoiceItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			SKU:         item.SKU,
			Qty:         item.Qty,
			UnitPrice:   item.UnitPrice,
			CostPrice:   item.CostPrice,
			LineTotal:   item.LineTotal,
		})
	}

	return InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		InvoiceDate:   inv.InvoiceDate,
		CustomerID:    inv.CustomerID,
		CustomerName:  inv.CustomerName,
		Items:         items,
		SubTotal:      inv.SubTotal,
		Discount:      inv.Discount,
		GrandTotal:    inv.GrandTotal,
		Status:        inv.Status.String(),
		PaymentStatus: inv.PaymentStatus.String(),
		PaidAmount:    inv.PaidAmount,
		ConfirmedAt:   inv.ConfirmedAt,
		CancelledAt:   inv.CancelledAt,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}

// ==================== Purchase DTOs ====================

// CreatePurchaseRequest represents a request to create a draft purchase
type CreatePurchaseRequest struct {
	SupplierID   uuid.UUID                 `json:"supplier_id" binding:"required"`
	PurchaseDate *time.Time                `json:"purchase_date"`
	Notes        string                    `json:"notes"`
	Items        []CreatePurchaseItemInput `json:"items" binding:"required,min=1"`
}

// CreatePurchaseItemInput represents an item in the create purchase request.
// The cost price is supplied by the buyer; it becomes the product's latest
// purchase cost once the purchase is confirmed.
type CreatePurchaseItemInput struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Qty       int             `json:"qty" binding:"required,min=1"`
	CostPrice decimal.Decimal `json:"cost_price" binding:"required"`
}

// PurchaseListFilter represents filter options for the purchase list
type PurchaseListFilter struct {
	Search     string     `form:"search"`
	SupplierID *uuid.UUID `form:"supplier_id"`
	Status     *string    `form:"status"`
	StartDate  *time.Time `form:"start_date"`
	EndDate    *time.Time `form:"end_date"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// PurchaseItemResponse represents a purchase item in API responses
type PurchaseItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	SKU         string          `json:"sku"`
	Qty         int             `json:"qty"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// PurchaseResponse represents a purchase in API responses
type PurchaseResponse struct {
	ID             uuid.UUID              `json:"id"`
	PurchaseNumber string                 `json:"purchase_number"`
	PurchaseDate   time.Time              `json:"purchase_date"`
	SupplierID     uuid.UUID              `json:"supplier_id"`
	SupplierName   string                 `json:"supplier_name"`
	Items          []PurchaseItemResponse `json:"items"`
	TotalCost      decimal.Decimal        `json:"total_cost"`
	Status         string                 `json:"status"`
	Notes          string                 `json:"notes,omitempty"`
	ConfirmedAt    *time.Time             `json:"confirmed_at,omitempty"`
	CancelledAt    *time.Time             `json:"cancelled_at,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

// ToPurchaseResponse converts a purchase aggregate to a response DTO
func ToPurchaseResponse(p *trade.Purchase) PurchaseResponse {
	items := make([]PurchaseItemResponse, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, PurchaseItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			SKU:         item.SKU,
			Qty:         item.Qty,
			CostPrice:   item.CostPrice,
			LineTotal:   item.LineTotal,
		})
	}

	return PurchaseResponse{
		ID:             p.ID,
		PurchaseNumber: p.PurchaseNumber,
		PurchaseDate:   p.PurchaseDate,
		SupplierID:     p.SupplierID,
		SupplierName:   p.SupplierName,
		Items:          items,
		TotalCost:      p.TotalCost,
		Status:         p.Status.String(),
		Notes:          p.Notes,
		ConfirmedAt:    p.ConfirmedAt,
		CancelledAt:    p.CancelledAt,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

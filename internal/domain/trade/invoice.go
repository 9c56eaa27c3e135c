package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smartbiz/backend/internal/domain/shared"
)

// InvoiceItem represents a line item on a sales invoice.
// UnitPrice and CostPrice are snapshots taken at draft time: the selling
// price from the product catalog and the product's most recent purchase cost
// (LastCostPrice). Profit reporting uses the snapshotted cost, not the
// ledger's live weighted average, so a report run months later reproduces
// the margin as it stood when the sale was drafted.
type InvoiceItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	SKU         string          `gorm:"type:varchar(50)"`
	Qty         int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CostPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM
func (InvoiceItem) TableName() string {
	return "invoice_items"
}

// NewInvoiceItem creates a new invoice item with a server-computed line total
func NewInvoiceItem(invoiceID, productID uuid.UUID, productName, sku string, qty int, unitPrice, costPrice decimal.Decimal) (*InvoiceItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if qty <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if costPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Cost price cannot be negative")
	}

	now := time.Now()
	return &InvoiceItem{
		ID:          uuid.New(),
		InvoiceID:   invoiceID,
		ProductID:   productID,
		ProductName: productName,
		SKU:         sku,
		Qty:         qty,
		UnitPrice:   unitPrice,
		CostPrice:   costPrice,
		LineTotal:   unitPrice.Mul(decimal.NewFromInt(int64(qty))),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Invoice represents a sales invoice aggregate root.
// Confirming an invoice is what moves stock out of the ledger; the draft
// itself reserves nothing.
type Invoice struct {
	shared.TenantAggregateRoot
	InvoiceNumber string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_invoice_tenant_number,priority:2"`
	InvoiceDate   time.Time       `gorm:"type:date;not null"`
	CustomerID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerName  string          `gorm:"type:varchar(200);not null"`
	Items         []InvoiceItem   `gorm:"foreignKey:InvoiceID;references:ID"`
	SubTotal      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Discount      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	GrandTotal    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Status        DocumentStatus  `gorm:"type:varchar(20);not null;default:'DRAFT'"`
	PaymentStatus PaymentStatus   `gorm:"type:varchar(20);not null;default:'UNPAID'"`
	PaidAmount    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	ConfirmedAt   *time.Time
	CancelledAt   *time.Time
}

// TableName returns the table name for GORM
func (Invoice) TableName() string {
	return "invoices"
}

// NewInvoice creates a new draft invoice
func NewInvoice(tenantID uuid.UUID, invoiceNumber string, invoiceDate time.Time, customerID uuid.UUID, customerName string) (*Invoice, error) {
	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Invoice number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}

	return &Invoice{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		InvoiceNumber:       invoiceNumber,
		InvoiceDate:         invoiceDate,
		CustomerID:          customerID,
		CustomerName:        customerName,
		Items:               make([]InvoiceItem, 0),
		SubTotal:            decimal.Zero,
		Discount:            decimal.Zero,
		GrandTotal:          decimal.Zero,
		Status:              DocumentStatusDraft,
		PaymentStatus:       PaymentStatusUnpaid,
		PaidAmount:          decimal.Zero,
	}, nil
}

// AddItem adds a line item to a draft invoice
func (inv *Invoice) AddItem(productID uuid.UUID, productName, sku string, qty int, unitPrice, costPrice decimal.Decimal) (*InvoiceItem, error) {
	if inv.Status != DocumentStatusDraft {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a non-draft invoice")
	}

	item, err := NewInvoiceItem(inv.ID, productID, productName, sku, qty, unitPrice, costPrice)
	if err != nil {
		return nil, err
	}

	inv.Items = append(inv.Items, *item)
	inv.recalculateTotals()
	inv.UpdatedAt = time.Now()

	return item, nil
}

// ApplyDiscount sets the invoice-level discount.
// The discount may consume the whole subtotal but never exceed it.
func (inv *Invoice) ApplyDiscount(discount decimal.Decimal) error {
	if inv.Status != DocumentStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot apply discount to a non-draft invoice")
	}
	if discount.IsNegative() {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot be negative")
	}
	if discount.GreaterThan(inv.SubTotal) {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot be greater than subtotal")
	}

	inv.Discount = discount
	inv.GrandTotal = inv.SubTotal.Sub(inv.Discount)
	inv.UpdatedAt = time.Now()

	return nil
}

// Confirm transitions the invoice from DRAFT to CONFIRMED.
// The stock-out itself is applied by the application service in the same
// transaction; this method only guards the state machine.
func (inv *Invoice) Confirm() error {
	if inv.Status == DocumentStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cancelled invoice cannot be confirmed")
	}
	if !inv.Status.CanTransitionTo(DocumentStatusConfirmed) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot confirm invoice in %s status", inv.Status))
	}
	if len(inv.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot confirm invoice without items")
	}

	now := time.Now()
	inv.Status = DocumentStatusConfirmed
	inv.ConfirmedAt = &now
	inv.UpdatedAt = now
	inv.IncrementVersion()

	return nil
}

// Cancel transitions the invoice from DRAFT to CANCELLED
func (inv *Invoice) Cancel() error {
	if !inv.Status.CanTransitionTo(DocumentStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel invoice in %s status", inv.Status))
	}

	now := time.Now()
	inv.Status = DocumentStatusCancelled
	inv.CancelledAt = &now
	inv.UpdatedAt = now
	inv.IncrementVersion()

	return nil
}

// RecordPayment registers a payment against a confirmed invoice and moves
// the payment status accordingly. Payments never exceed the grand total.
func (inv *Invoice) RecordPayment(amount decimal.Decimal) error {
	if inv.Status != DocumentStatusConfirmed {
		return shared.NewDomainError("INVALID_STATE", "Payments can only be recorded on a confirmed invoice")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}

	newPaid := inv.PaidAmount.Add(amount)
	if newPaid.GreaterThan(inv.GrandTotal) {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment exceeds the invoice grand total")
	}

	inv.PaidAmount = newPaid
	if newPaid.Equal(inv.GrandTotal) {
		inv.PaymentStatus = PaymentStatusPaid
	} else {
		inv.PaymentStatus = PaymentStatusPartial
	}
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()

	return nil
}

// recalculateTotals recomputes the subtotal and grand total from the items
func (inv *Invoice) recalculateTotals() {
	subTotal := decimal.Zero
	for _, item := range inv.Items {
		subTotal = subTotal.Add(item.LineTotal)
	}
	inv.SubTotal = subTotal
	inv.GrandTotal = subTotal.Sub(inv.Discount)
}

// IsDraft returns true if the invoice is in draft status
func (inv *Invoice) IsDraft() bool {
	return inv.Status == DocumentStatusDraft
}

// IsConfirmed returns true if the invoice is confirmed
func (inv *Invoice) IsConfirmed() bool {
	return inv.Status == DocumentStatusConfirmed
}

// IsCancelled returns true if the invoice is cancelled
func (inv *Invoice) IsCancelled() bool {
	return inv.Status == DocumentStatusCancelled
}

// ItemCount returns the number of line items
func (inv *Invoice) ItemCount() int {
	return len(inv.Items)
}

// TotalQty returns the sum of all item quantities
func (inv *Invoice) TotalQty() int {
	total := 0
	for _, item := range inv.Items {
		total += item.Qty
	}
	return total
}

// EstimatedProfit returns the margin implied by the snapshotted costs
func (inv *Invoice) EstimatedProfit() decimal.Decimal {
	cost := decimal.Zero
	for _, item := range inv.Items {
		cost = cost.Add(item.CostPrice.Mul(decimal.NewFromInt(int64(item.Qty))))
	}
	return inv.GrandTotal.Sub(cost)
}

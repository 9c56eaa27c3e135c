package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smartbiz/backend/internal/domain/shared"
)

// PurchaseItem represents a line item on a purchase order
type PurchaseItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PurchaseID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	SKU         string          `gorm:"type:varchar(50)"`
	Qty         int             `gorm:"not null"`
	CostPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM
func (PurchaseItem) TableName() string {
	return "purchase_items"
}

// NewPurchaseItem creates a new purchase item
func NewPurchaseItem(purchaseID, productID uuid.UUID, productName, sku string, qty int, costPrice decimal.Decimal) (*PurchaseItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if qty <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if costPrice.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_COST", "Cost price must be positive")
	}

	now := time.Now()
	return &PurchaseItem{
		ID:          uuid.New(),
		PurchaseID:  purchaseID,
		ProductID:   productID,
		ProductName: productName,
		SKU:         sku,
		Qty:         qty,
		CostPrice:   costPrice,
		LineTotal:   costPrice.Mul(decimal.NewFromInt(int64(qty))),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Purchase represents a purchase order aggregate root.
// Confirming a purchase receives its items into stock, which recomputes each
// product's weighted average cost and latest purchase cost.
type Purchase struct {
	shared.TenantAggregateRoot
	PurchaseNumber string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_purchase_tenant_number,priority:2"`
	PurchaseDate   time.Time       `gorm:"type:date;not null"`
	SupplierID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	SupplierName   string          `gorm:"type:varchar(200);not null"`
	Items          []PurchaseItem  `gorm:"foreignKey:PurchaseID;references:ID"`
	TotalCost      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Status         DocumentStatus  `gorm:"type:varchar(20);not null;default:'DRAFT'"`
	Notes          string          `gorm:"type:text"`
	ConfirmedAt    *time.Time
	CancelledAt    *time.Time
}

// TableName returns the table name for GORM
func (Purchase) TableName() string {
	return "purchases"
}

// NewPurchase creates a new draft purchase order
func NewPurchase(tenantID uuid.UUID, purchaseNumber string, purchaseDate time.Time, supplierID uuid.UUID, supplierName string) (*Purchase, error) {
	if purchaseNumber == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Purchase number cannot be empty")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	if supplierName == "" {
		return nil, shared.NewDomainError("INVALID_SUPPLIER_NAME", "Supplier name cannot be empty")
	}

	return &Purchase{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		PurchaseNumber:      purchaseNumber,
		PurchaseDate:        purchaseDate,
		SupplierID:          supplierID,
		SupplierName:        supplierName,
		Items:               make([]PurchaseItem, 0),
		TotalCost:           decimal.Zero,
		Status:              DocumentStatusDraft,
	}, nil
}

// AddItem adds a line item to a draft purchase
func (p *Purchase) AddItem(productID uuid.UUID, productName, sku string, qty int, costPrice decimal.Decimal) (*PurchaseItem, error) {
	if p.Status != DocumentStatusDraft {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a non-draft purchase")
	}

	item, err := NewPurchaseItem(p.ID, productID, productName, sku, qty, costPrice)
	if err != nil {
		return nil, err
	}

	p.Items = append(p.Items, *item)
	p.recalculateTotal()
	p.UpdatedAt = time.Now()

	return item, nil
}

// Confirm transitions the purchase from DRAFT to CONFIRMED.
// The stock-in is applied by the application service in the same transaction.
func (p *Purchase) Confirm() error {
	if p.Status == DocumentStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cancelled purchase cannot be confirmed")
	}
	if !p.Status.CanTransitionTo(DocumentStatusConfirmed) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot confirm purchase in %s status", p.Status))
	}
	if len(p.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot confirm purchase without items")
	}

	now := time.Now()
	p.Status = DocumentStatusConfirmed
	p.ConfirmedAt = &now
	p.UpdatedAt = now
	p.IncrementVersion()

	return nil
}

// Cancel transitions the purchase from DRAFT to CANCELLED
func (p *Purchase) Cancel() error {
	if !p.Status.CanTransitionTo(DocumentStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel purchase in %s status", p.Status))
	}

	now := time.Now()
	p.Status = DocumentStatusCancelled
	p.CancelledAt = &now
	p.UpdatedAt = now
	p.IncrementVersion()

	return nil
}

// recalculateTotal recomputes the total cost from the items
func (p *Purchase) recalculateTotal() {
	total := decimal.Zero
	for _, item := range p.Items {
		total = total.Add(item.LineTotal)
	}
	p.TotalCost = total
}

// IsDraft returns true if the purchase is in draft status
func (p *Purchase) IsDraft() bool {
	return p.Status == DocumentStatusDraft
}

// IsConfirmed returns true if the purchase is confirmed
func (p *Purchase) IsConfirmed() bool {
	return p.Status == DocumentStatusConfirmed
}

// IsCancelled returns true if the purchase is cancelled
func (p *Purchase) IsCancelled() bool {
	return p.Status == DocumentStatusCancelled
}

// ItemCount returns the number of line items
func (p *Purchase) ItemCount() int {
	return len(p.Items)
}

// TotalQty returns the sum of all item quantities
func (p *Purchase) TotalQty() int {
	total := 0
	for _, item := range p.Items {
		total += item.Qty
	}
	return total
}

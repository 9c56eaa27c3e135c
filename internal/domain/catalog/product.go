package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smartbiz/backend/internal/domain/shared"
)

// Product represents a sellable item in a business's catalog.
// It is the aggregate root for catalog operations and the single owner of the
// stock ledger: StockQty, CostPrice and LastCostPrice are only ever mutated
// through ReceiveStock and DeductStock, driven by purchase and invoice
// confirmation respectively.
type Product struct {
	shared.TenantAggregateRoot
	Name          string          `gorm:"type:varchar(200);not null"`
	SKU           string          `gorm:"type:varchar(50);index"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"` // Selling price
	CostPrice     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"` // Running weighted-average acquisition cost
	LastCostPrice decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"` // Unit cost of the most recent stock-in
	StockQty      int             `gorm:"not null;default:0"`
	Active        bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(tenantID uuid.UUID, name, sku string, unitPrice decimal.Decimal, initialStock int) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if initialStock < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Initial stock cannot be negative")
	}

	return &Product{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		SKU:                 strings.TrimSpace(sku),
		UnitPrice:           unitPrice,
		CostPrice:           decimal.Zero,
		LastCostPrice:       decimal.Zero,
		StockQty:            initialStock,
		Active:              true,
	}, nil
}

// NewProductWithCost creates a new product with a known acquisition cost.
// Both the running average and the last cost start at the given value.
func NewProductWithCost(tenantID uuid.UUID, name, sku string, unitPrice, costPrice decimal.Decimal, initialStock int) (*Product, error) {
	if costPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Cost price cannot be negative")
	}

	product, err := NewProduct(tenantID, name, sku, unitPrice, initialStock)
	if err != nil {
		return nil, err
	}

	product.CostPrice = costPrice
	product.LastCostPrice = costPrice
	return product, nil
}

// ReceiveStock applies a stock-in of qty units acquired at unitCost each.
// LastCostPrice always becomes unitCost. The running average cost blends the
// existing holding with the incoming units, rounded to 2 decimal places
// half-up; when there is no prior holding (or no prior cost) the incoming
// cost becomes the average outright.
func (p *Product) ReceiveStock(qty int, unitCost decimal.Decimal) error {
	if qty <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Received quantity must be positive")
	}
	if unitCost.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_COST", "Unit cost must be positive")
	}

	oldStock := p.StockQty
	newStock := oldStock + qty

	p.LastCostPrice = unitCost

	if oldStock > 0 && p.CostPrice.GreaterThan(decimal.Zero) {
		oldValue := p.CostPrice.Mul(decimal.NewFromInt(int64(oldStock)))
		newValue := unitCost.Mul(decimal.NewFromInt(int64(qty)))
		p.CostPrice = oldValue.Add(newValue).
			Div(decimal.NewFromInt(int64(newStock))).
			Round(2)
	} else {
		p.CostPrice = unitCost
	}

	p.StockQty = newStock
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// DeductStock applies a stock-out of qty units. The ledger never goes
// negative: a deduction that would do so fails without any change. Cost
// prices are untouched on the way out.
func (p *Product) DeductStock(qty int) error {
	if qty <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Deducted quantity must be positive")
	}
	if p.StockQty-qty < 0 {
		return shared.NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock for product: "+p.Name)
	}

	p.StockQty -= qty
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Update updates the product's catalog fields
func (p *Product) Update(name, sku string, unitPrice decimal.Decimal) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	p.Name = name
	p.SKU = strings.TrimSpace(sku)
	p.UnitPrice = unitPrice
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Deactivate hides the product from new documents without deleting history
func (p *Product) Deactivate() {
	p.Active = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Activate makes the product available for new documents again
func (p *Product) Activate() {
	p.Active = true
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// IsActive returns true if the product can appear on new documents
func (p *Product) IsActive() bool {
	return p.Active
}

// HasSKU returns true if the product carries a stock keeping unit code
func (p *Product) HasSKU() bool {
	return p.SKU != ""
}

// StockValue returns the ledger value of the current holding at average cost
func (p *Product) StockValue() decimal.Decimal {
	return p.CostPrice.Mul(decimal.NewFromInt(int64(p.StockQty)))
}

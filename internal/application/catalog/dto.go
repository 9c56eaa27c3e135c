package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smartbiz/backend/internal/domain/catalog"
)

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Name         string           `json:"name" binding:"required,min=1,max=200"`
	SKU          string           `json:"sku" binding:"required,min=1,max=50"`
	UnitPrice    decimal.Decimal  `json:"unit_price" binding:"required"`
	CostPrice    *decimal.Decimal `json:"cost_price"`
	InitialStock int              `json:"initial_stock" binding:"min=0"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name      *string          `json:"name" binding:"omitempty,min=1,max=200"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	Search   string `form:"search"`
	Active   *bool  `form:"active"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	LastCostPrice decimal.Decimal `json:"last_cost_price"`
	StockQty      int             `json:"stock_qty"`
	StockValue    decimal.Decimal `json:"stock_value"`
	Active        bool            `json:"active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ToProductResponse converts a product to a response DTO
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		SKU:           p.SKU,
		UnitPrice:     p.UnitPrice,
		CostPrice:     p.CostPrice,
		LastCostPrice: p.LastCostPrice,
		StockQty:      p.StockQty,
		StockValue:    p.StockValue(),
		Active:        p.Active,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

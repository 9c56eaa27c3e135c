package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smartbiz/backend/internal/domain/catalog"
	"github.com/smartbiz/backend/internal/domain/shared"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByIDForTenant finds a product by ID within a tenant
func (r *GormProductRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindAllForTenant finds all products for a tenant
func (r *GormProductRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	var products []catalog.Product
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&catalog.Product{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// CountForTenant counts products for a tenant
func (r *GormProductRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsBySKU checks if a product with the given SKU exists in the tenant
func (r *GormProductRepository) ExistsBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (bool, error) {
	if sku == "" {
		return false, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("tenant_id = ? AND sku = ?", tenantID, sku).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// SaveWithLock saves with optimistic locking (checks version).
// The stock ledger fields only ever change through this path, so a stale
// write loses cleanly instead of overwriting a concurrent confirmation.
func (r *GormProductRepository) SaveWithLock(ctx context.Context, product *catalog.Product) error {
	result := r.db.WithContext(ctx).
		Model(product).
		Where("id = ? AND version = ?", product.ID, product.Version-1).
		Updates(map[string]interface{}{
			"name":            product.Name,
			"sku":             product.SKU,
			"unit_price":      product.UnitPrice,
			"cost_price":      product.CostPrice,
			"last_cost_price": product.LastCostPrice,
			"stock_qty":       product.StockQty,
			"active":          product.Active,
			"version":         product.Version,
			"updated_at":      product.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// DeleteForTenant deletes a product within a tenant
func (r *GormProductRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Product{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies filter options to the query
func (r *GormProductRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR sku LIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "active":
			query = query.Where("active = ?", value)
		case "min_price":
			query = query.Where("unit_price >= ?", value)
		case "max_price":
			query = query.Where("unit_price <= ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ProductSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// Ensure GormProductRepository implements ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)

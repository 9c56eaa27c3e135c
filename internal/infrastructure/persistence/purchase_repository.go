package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smartbiz/backend/internal/domain/shared"
	"github.com/smartbiz/backend/internal/domain/trade"
)

// GormPurchaseRepository implements PurchaseRepository using GORM
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewGormPurchaseRepository creates a new GormPurchaseRepository
func NewGormPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

// FindByIDForTenant finds a purchase by ID within a tenant
func (r *GormPurchaseRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*trade.Purchase, error) {
	var purchase trade.Purchase
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&purchase).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

// FindByNumberForTenant finds a purchase by its number within a tenant
func (r *GormPurchaseRepository) FindByNumberForTenant(ctx context.Context, tenantID uuid.UUID, number string) (*trade.Purchase, error) {
	var purchase trade.Purchase
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND purchase_number = ?", tenantID, number).
		First(&purchase).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

// FindAllForTenant finds purchases for a tenant with filtering and pagination
func (r *GormPurchaseRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter trade.PurchaseFilter) (*shared.Paginated[trade.Purchase], error) {
	countQuery := r.applyConditions(
		r.db.WithContext(ctx).Model(&trade.Purchase{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	page := filter.Page
	pageSize := filter.PageSize
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	orderBy := ValidateSortField(filter.OrderBy, PurchaseSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)

	findQuery := r.applyConditions(
		r.db.WithContext(ctx).Model(&trade.Purchase{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	var purchases []trade.Purchase
	if err := findQuery.
		Preload("Items").
		Order(orderBy + " " + orderDir).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&purchases).Error; err != nil {
		return nil, err
	}

	result := shared.NewPaginated(purchases, total, page, pageSize)
	return &result, nil
}

// Save creates or updates a purchase along with its items
func (r *GormPurchaseRepository) Save(ctx context.Context, purchase *trade.Purchase) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(purchase).Error; err != nil {
			return err
		}

		if len(purchase.Items) > 0 {
			currentItemIDs := make([]uuid.UUID, len(purchase.Items))
			for i, item := range purchase.Items {
				currentItemIDs[i] = item.ID
			}
			if err := tx.Where("purchase_id = ? AND id NOT IN ?", purchase.ID, currentItemIDs).
				Delete(&trade.PurchaseItem{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("purchase_id = ?", purchase.ID).
				Delete(&trade.PurchaseItem{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// SaveWithLock saves the purchase header with optimistic locking (checks version)
func (r *GormPurchaseRepository) SaveWithLock(ctx context.Context, purchase *trade.Purchase) error {
	result := r.db.WithContext(ctx).
		Model(purchase).
		Where("id = ? AND version = ?", purchase.ID, purchase.Version-1).
		Updates(map[string]interface{}{
			"status":       purchase.Status,
			"notes":        purchase.Notes,
			"confirmed_at": purchase.ConfirmedAt,
			"cancelled_at": purchase.CancelledAt,
			"version":      purchase.Version,
			"updated_at":   purchase.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// applyConditions applies the purchase-specific filter conditions
func (r *GormPurchaseRepository) applyConditions(query *gorm.DB, filter trade.PurchaseFilter) *gorm.DB {
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.SupplierID != uuid.Nil {
		query = query.Where("supplier_id = ?", filter.SupplierID)
	}
	if filter.DateFrom != nil {
		query = query.Where("purchase_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("purchase_date <= ?", *filter.DateTo)
	}
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("purchase_number LIKE ? OR supplier_name LIKE ?", searchPattern, searchPattern)
	}
	return query
}

// Ensure GormPurchaseRepository implements PurchaseRepository
var _ trade.PurchaseRepository = (*GormPurchaseRepository)(nil)

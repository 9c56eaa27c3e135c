package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smartbiz/backend/internal/domain/shared"
	"github.com/smartbiz/backend/internal/domain/trade"
)

// GormInvoiceRepository implements InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByIDForTenant finds an invoice by ID within a tenant
func (r *GormInvoiceRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*trade.Invoice, error) {
	var invoice trade.Invoice
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindByNumberForTenant finds an invoice by its number within a tenant
func (r *GormInvoiceRepository) FindByNumberForTenant(ctx context.Context, tenantID uuid.UUID, number string) (*trade.Invoice, error) {
	var invoice trade.Invoice
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND invoice_number = ?", tenantID, number).
		First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindAllForTenant finds invoices for a tenant with filtering and pagination
func (r *GormInvoiceRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter trade.InvoiceFilter) (*shared.Paginated[trade.Invoice], error) {
	countQuery := r.applyConditions(
		r.db.WithContext(ctx).Model(&trade.Invoice{}).Where("tenant_id = ?", tenantID),
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

	orderBy := ValidateSortField(filter.OrderBy, InvoiceSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)

	findQuery := r.applyConditions(
		r.db.WithContext(ctx).Model(&trade.Invoice{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	var invoices []trade.Invoice
	if err := findQuery.
		Preload("Items").
		Order(orderBy + " " + orderDir).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&invoices).Error; err != nil {
		return nil, err
	}

	result := shared.NewPaginated(invoices, total, page, pageSize)
	return &result, nil
}

// Save creates or updates an invoice along with its items
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *trade.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(invoice).Error; err != nil {
			return err
		}

		// Drop items that were removed from the aggregate
		if len(invoice.Items) > 0 {
			currentItemIDs := make([]uuid.UUID, len(invoice.Items))
			for i, item := range invoice.Items {
				currentItemIDs[i] = item.ID
			}
			if err := tx.Where("invoice_id = ? AND id NOT IN ?", invoice.ID, currentItemIDs).
				Delete(&trade.InvoiceItem{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("invoice_id = ?", invoice.ID).
				Delete(&trade.InvoiceItem{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// SaveWithLock saves the invoice header with optimistic locking (checks
// version). Items are immutable once the invoice leaves draft, so only the
// header fields that change on confirm, cancel and payment are written.
func (r *GormInvoiceRepository) SaveWithLock(ctx context.Context, invoice *trade.Invoice) error {
	result := r.db.WithContext(ctx).
		Model(invoice).
		Where("id = ? AND version = ?", invoice.ID, invoice.Version-1).
		Updates(map[string]interface{}{
			"status":         invoice.Status,
			"payment_status": invoice.PaymentStatus,
			"paid_amount":    invoice.PaidAmount,
			"confirmed_at":   invoice.ConfirmedAt,
			"cancelled_at":   invoice.CancelledAt,
			"version":        invoice.Version,
			"updated_at":     invoice.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// applyConditions applies the invoice-specific filter conditions
func (r *GormInvoiceRepository) applyConditions(query *gorm.DB, filter trade.InvoiceFilter) *gorm.DB {
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.CustomerID != uuid.Nil {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.DateFrom != nil {
		query = query.Where("invoice_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("invoice_date <= ?", *filter.DateTo)
	}
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("invoice_number LIKE ? OR customer_name LIKE ?", searchPattern, searchPattern)
	}
	return query
}

// Ensure GormInvoiceRepository implements InvoiceRepository
var _ trade.InvoiceRepository = (*GormInvoiceRepository)(nil)

package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/smartbiz/backend/internal/domain/shared"
)

// InvoiceFilter narrows invoice listings
type InvoiceFilter struct {
	shared.Filter
	Status     DocumentStatus
	CustomerID uuid.UUID
	DateFrom   *time.Time
	DateTo     *time.Time
}

// PurchaseFilter narrows purchase listings
type PurchaseFilter struct {
	shared.Filter
	Status     DocumentStatus
	SupplierID uuid.UUID
	DateFrom   *time.Time
	DateTo     *time.Time
}

// InvoiceRepository defines the persistence contract for invoices
type InvoiceRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Invoice, error)
	FindByNumberForTenant(ctx context.Context, tenantID uuid.UUID, number string) (*Invoice, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter InvoiceFilter) (*shared.Paginated[Invoice], error)
	Save(ctx context.Context, invoice *Invoice) error
	SaveWithLock(ctx context.Context, invoice *Invoice) error
}

// PurchaseRepository defines the persistence contract for purchases
type PurchaseRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Purchase, error)
	FindByNumberForTenant(ctx context.Context, tenantID uuid.UUID, number string) (*Purchase, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter PurchaseFilter) (*shared.Paginated[Purchase], error)
	Save(ctx context.Context, purchase *Purchase) error
	SaveWithLock(ctx context.Context, purchase *Purchase) error
}

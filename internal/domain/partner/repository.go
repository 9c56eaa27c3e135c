package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/smartbiz/backend/internal/domain/shared"
)

// CustomerRepository defines the persistence contract for customers
type CustomerRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Customer, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Customer, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)
	ExistsByPhone(ctx context.Context, tenantID uuid.UUID, phone string) (bool, error)
	Save(ctx context.Context, customer *Customer) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// SupplierRepository defines the persistence contract for suppliers
type SupplierRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Supplier, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Supplier, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)
	Save(ctx context.Context, supplier *Supplier) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

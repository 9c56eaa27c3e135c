package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/smartbiz/backend/internal/domain/shared"
)

// ProductRepository defines the persistence contract for products.
// Every finder is tenant-filtered; a product belonging to another tenant is
// indistinguishable from a missing one (ErrNotFound).
type ProductRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Product, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Product, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)
	ExistsBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (bool, error)
	Save(ctx context.Context, product *Product) error
	// SaveWithLock persists the product only if its version still matches the
	// stored row, guarding the stock ledger against lost updates.
	SaveWithLock(ctx context.Context, product *Product) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

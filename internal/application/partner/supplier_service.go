package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/smartbiz/backend/internal/domain/partner"
)

// SupplierService handles supplier business operations
type SupplierService struct {
	supplierRepo partner.SupplierRepository
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(supplierRepo partner.SupplierRepository) *SupplierService {
	return &SupplierService{supplierRepo: supplierRepo}
}

// Create creates a new supplier
func (s *SupplierService) Create(ctx context.Context, tenantID uuid.UUID, req CreateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := partner.NewSupplier(tenantID, req.Name, req.ContactPerson, req.Phone, req.Email, req.Address)
	if err != nil {
		return nil, err
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	response := ToSupplierResponse(supplier)
	return &response, nil
}

// Update updates a supplier's contact details
func (s *SupplierService) Update(ctx context.Context, tenantID, supplierID uuid.UUID, req UpdateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByIDForTenant(ctx, tenantID, supplierID)
	if err != nil {
		return nil, err
	}

	name := supplier.Name
	if req.Name != nil {
		name = *req.Name
	}
	contact := supplier.ContactPerson
	if req.ContactPerson != nil {
		contact = *req.ContactPerson
	}
	phone := supplier.Phone
	if req.Phone != nil {
		phone = *req.Phone
	}
	email := supplier.Email
	if req.Email != nil {
		email = *req.Email
	}
	address := supplier.Address
	if req.Address != nil {
		address = *req.Address
	}

	if err := supplier.Update(name, contact, phone, email, address); err != nil {
		return nil, err
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	response := ToSupplierResponse(supplier)
	return &response, nil
}

// GetByID retrieves a supplier by ID
func (s *SupplierService) GetByID(ctx context.Context, tenantID, supplierID uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByIDForTenant(ctx, tenantID, supplierID)
	if err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// List retrieves suppliers with filtering and pagination
func (s *SupplierService) List(ctx context.Context, tenantID uuid.UUID, filter PartnerListFilter) ([]SupplierResponse, error) {
	domainFilter := toDomainFilter(filter)

	suppliers, err := s.supplierRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]SupplierResponse, 0, len(suppliers))
	for i := range suppliers {
		responses = append(responses, ToSupplierResponse(&suppliers[i]))
	}
	return responses, nil
}

// Delete removes a supplier
func (s *SupplierService) Delete(ctx context.Context, tenantID, supplierID uuid.UUID) error {
	return s.supplierRepo.DeleteForTenant(ctx, tenantID, supplierID)
}

package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/smartbiz/backend/internal/domain/partner"
	"github.com/smartbiz/backend/internal/domain/shared"
)

// CustomerService handles customer business operations
type CustomerService struct {
	customerRepo partner.CustomerRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// Create creates a new customer. Phone numbers are unique per tenant so a
// repeat registration surfaces the existing record instead of a duplicate.
func (s *CustomerService) Create(ctx context.Context, tenantID uuid.UUID, req CreateCustomerRequest) (*CustomerResponse, error) {
	if req.Phone != "" {
		exists, err := s.customerRepo.ExistsByPhone(ctx, tenantID, req.Phone)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "A customer with this phone number already exists")
		}
	}

	customer, err := partner.NewCustomer(tenantID, req.Name, req.Phone, req.Email, req.Address)
	if err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// Update updates a customer's contact details
func (s *CustomerService) Update(ctx context.Context, tenantID, customerID uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}

	name := customer.Name
	if req.Name != nil {
		name = *req.Name
	}
	phone := customer.Phone
	if req.Phone != nil {
		phone = *req.Phone
	}
	email := customer.Email
	if req.Email != nil {
		email = *req.Email
	}
	address := customer.Address
	if req.Address != nil {
		address = *req.Address
	}

	if err := customer.Update(name, phone, email, address); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetByID retrieves a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, tenantID, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// List retrieves customers with filtering and pagination
func (s *CustomerService) List(ctx context.Context, tenantID uuid.UUID, filter PartnerListFilter) ([]CustomerResponse, error) {
	domainFilter := toDomainFilter(filter)

	customers, err := s.customerRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]CustomerResponse, 0, len(customers))
	for i := range customers {
		responses = append(responses, ToCustomerResponse(&customers[i]))
	}
	return responses, nil
}

// Delete removes a customer
func (s *CustomerService) Delete(ctx context.Context, tenantID, customerID uuid.UUID) error {
	return s.customerRepo.DeleteForTenant(ctx, tenantID, customerID)
}

func toDomainFilter(filter PartnerListFilter) shared.Filter {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	return shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
}

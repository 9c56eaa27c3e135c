package catalog

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/smartbiz/backend/internal/domain/catalog"
	"github.com/smartbiz/backend/internal/domain/shared"
)

// ProductQuotaChecker gates product creation on the tenant's subscription
// plan
type ProductQuotaChecker interface {
	CheckProductQuota(ctx context.Context, tenantID uuid.UUID) error
}

// ProductService handles product catalog business operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	quotaChecker ProductQuotaChecker
	logger       *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, quotaChecker ProductQuotaChecker, logger *zap.Logger) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		quotaChecker: quotaChecker,
		logger:       logger,
	}
}

// Create creates a new product. The subscription quota is checked first;
// tenants at their plan's product limit are refused with LIMIT_REACHED.
func (s *ProductService) Create(ctx context.Context, tenantID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	if err := s.quotaChecker.CheckProductQuota(ctx, tenantID); err != nil {
		return nil, err
	}

	exists, err := s.productRepo.ExistsBySKU(ctx, tenantID, req.SKU)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A product with this SKU already exists: "+req.SKU)
	}

	var product *catalog.Product
	if req.CostPrice != nil {
		product, err = catalog.NewProductWithCost(tenantID, req.Name, req.SKU, req.UnitPrice, *req.CostPrice, req.InitialStock)
	} else {
		product, err = catalog.NewProduct(tenantID, req.Name, req.SKU, req.UnitPrice, req.InitialStock)
	}
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("product_id", product.ID.String()),
		zap.String("sku", product.SKU))

	response := ToProductResponse(product)
	return &response, nil
}

// Update updates a product's catalog fields. Stock and cost fields are not
// updatable here; they belong to the ledger.
func (s *ProductService) Update(ctx context.Context, tenantID, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	name := product.Name
	if req.Name != nil {
		name = *req.Name
	}
	unitPrice := product.UnitPrice
	if req.UnitPrice != nil {
		unitPrice = *req.UnitPrice
	}

	if err := product.Update(name, product.SKU, unitPrice); err != nil {
		return nil, err
	}

	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, tenantID, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, tenantID uuid.UUID, filter ProductListFilter) ([]ProductResponse, error) {
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

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.Active != nil {
		domainFilter.Filters["active"] = *filter.Active
	}

	products, err := s.productRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, ToProductResponse(&products[i]))
	}
	return responses, nil
}

// Deactivate hides a product from new documents
func (s *ProductService) Deactivate(ctx context.Context, tenantID, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	product.Deactivate()
	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Activate makes a product available for new documents again
func (s *ProductService) Activate(ctx context.Context, tenantID, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	product.Activate()
	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/smartbiz/backend/internal/domain/partner"
	"github.com/smartbiz/backend/internal/domain/shared"
	"github.com/smartbiz/backend/internal/domain/trade"
)

// PurchaseService handles purchase order business operations
type PurchaseService struct {
	purchaseRepo trade.PurchaseRepository
	supplierRepo partner.SupplierRepository
	numberGen    trade.DocumentNumberGenerator
	txScope      TransactionScope
}

// NewPurchaseService creates a new PurchaseService
func NewPurchaseService(
	purchaseRepo trade.PurchaseRepository,
	supplierRepo partner.SupplierRepository,
	numberGen trade.DocumentNumberGenerator,
	txScope TransactionScope,
) *PurchaseService {
	return &PurchaseService{
		purchaseRepo: purchaseRepo,
		supplierRepo: supplierRepo,
		numberGen:    numberGen,
		txScope:      txScope,
	}
}

// CreateDraft creates a new draft purchase order. Drafting does not touch the
// stock ledger; goods arrive only at confirmation.
func (s *PurchaseService) CreateDraft(ctx context.Context, tenantID uuid.UUID, req CreatePurchaseRequest) (*PurchaseResponse, error) {
	supplier, err := s.supplierRepo.FindByIDForTenant(ctx, tenantID, req.SupplierID)
	if err != nil {
		return nil, err
	}

	purchaseDate := time.Now()
	if req.PurchaseDate != nil {
		purchaseDate = *req.PurchaseDate
	}

	number, err := s.numberGen.Next(ctx, tenantID, trade.DocumentTypePurchase, purchaseDate)
	if err != nil {
		return nil, err
	}

	purchase, err := trade.NewPurchase(tenantID, number, purchaseDate, supplier.ID, supplier.Name)
	if err != nil {
		return nil, err
	}
	purchase.Notes = req.Notes

	var response PurchaseResponse
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		for _, item := range req.Items {
			product, err := repos.ProductRepo().FindByIDForTenant(ctx, tenantID, item.ProductID)
			if err != nil {
				return err
			}
			if _, err := purchase.AddItem(product.ID, product.Name, product.SKU, item.Qty, item.CostPrice); err != nil {
				return err
			}
		}

		if err := repos.PurchaseRepo().Save(ctx, purchase); err != nil {
			return err
		}

		response = ToPurchaseResponse(purchase)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &response, nil
}

// Confirm transitions a draft purchase to CONFIRMED and receives every line
// item into stock in the same transaction. Receiving recomputes each
// product's weighted average cost and sets its latest purchase cost.
// Confirming an already confirmed purchase is a no-op returning the current
// state; goods are received exactly once.
func (s *PurchaseService) Confirm(ctx context.Context, tenantID, purchaseID uuid.UUID) (*PurchaseResponse, error) {
	var response PurchaseResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		purchase, err := repos.PurchaseRepo().FindByIDForTenant(ctx, tenantID, purchaseID)
		if err != nil {
			return err
		}

		if purchase.IsConfirmed() {
			response = ToPurchaseResponse(purchase)
			return nil
		}

		if err := purchase.Confirm(); err != nil {
			return err
		}

		for _, item := range purchase.Items {
			product, err := repos.ProductRepo().FindByIDForTenant(ctx, tenantID, item.ProductID)
			if err != nil {
				return err
			}
			if err := product.ReceiveStock(item.Qty, item.CostPrice); err != nil {
				return err
			}
			if err := repos.ProductRepo().SaveWithLock(ctx, product); err != nil {
				return err
			}
		}

		if err := repos.PurchaseRepo().SaveWithLock(ctx, purchase); err != nil {
			return err
		}

		response = ToPurchaseResponse(purchase)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &response, nil
}

// Cancel transitions a draft purchase to CANCELLED
func (s *PurchaseService) Cancel(ctx context.Context, tenantID, purchaseID uuid.UUID) (*PurchaseResponse, error) {
	purchase, err := s.purchaseRepo.FindByIDForTenant(ctx, tenantID, purchaseID)
	if err != nil {
		return nil, err
	}

	if err := purchase.Cancel(); err != nil {
		return nil, err
	}

	if err := s.purchaseRepo.SaveWithLock(ctx, purchase); err != nil {
		return nil, err
	}

	response := ToPurchaseResponse(purchase)
	return &response, nil
}

// GetByID retrieves a purchase by ID
func (s *PurchaseService) GetByID(ctx context.Context, tenantID, purchaseID uuid.UUID) (*PurchaseResponse, error) {
	purchase, err := s.purchaseRepo.FindByIDForTenant(ctx, tenantID, purchaseID)
	if err != nil {
		return nil, err
	}
	response := ToPurchaseResponse(purchase)
	return &response, nil
}

// GetByNumber retrieves a purchase by its document number
func (s *PurchaseService) GetByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*PurchaseResponse, error) {
	purchase, err := s.purchaseRepo.FindByNumberForTenant(ctx, tenantID, number)
	if err != nil {
		return nil, err
	}
	response := ToPurchaseResponse(purchase)
	return &response, nil
}

// List retrieves purchases with filtering and pagination
func (s *PurchaseService) List(ctx context.Context, tenantID uuid.UUID, filter PurchaseListFilter) ([]PurchaseResponse, int64, error) {
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

	domainFilter := trade.PurchaseFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  filter.OrderBy,
			OrderDir: filter.OrderDir,
			Search:   filter.Search,
		},
		DateFrom: filter.StartDate,
		DateTo:   filter.EndDate,
	}
	if filter.SupplierID != nil {
		domainFilter.SupplierID = *filter.SupplierID
	}
	if filter.Status != nil {
		status := trade.DocumentStatus(*filter.Status)
		if !status.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_STATUS", "Unknown purchase status: "+*filter.Status)
		}
		domainFilter.Status = status
	}

	page, err := s.purchaseRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]PurchaseResponse, 0, len(page.Items))
	for i := range page.Items {
		responses = append(responses, ToPurchaseResponse(&page.Items[i]))
	}

	return responses, page.Total, nil
}

package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/smartbiz/backend/internal/domain/partner"
	"github.com/smartbiz/backend/internal/domain/shared"
	"github.com/smartbiz/backend/internal/domain/trade"
)

// InvoiceService handles sales invoice business operations
type InvoiceService struct {
	invoiceRepo  trade.InvoiceRepository
	customerRepo partner.CustomerRepository
	numberGen    trade.DocumentNumberGenerator
	txScope      TransactionScope
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	invoiceRepo trade.InvoiceRepository,
	customerRepo partner.CustomerRepository,
	numberGen trade.DocumentNumberGenerator,
	txScope TransactionScope,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		numberGen:    numberGen,
		txScope:      txScope,
	}
}

// CreateDraft creates a new draft invoice. Unit prices and cost prices are
// snapshotted from the product catalog at this moment; later price or cost
// changes never touch an existing draft. Stock is not checked or reserved
// here, only at confirmation.
func (s *InvoiceService) CreateDraft(ctx context.Context, tenantID uuid.UUID, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, req.CustomerID)
	if err != nil {
		return nil, err
	}

	invoiceDate := time.Now()
	if req.InvoiceDate != nil {
		invoiceDate = *req.InvoiceDate
	}

	number, err := s.numberGen.Next(ctx, tenantID, trade.DocumentTypeInvoice, invoiceDate)
	if err != nil {
		return nil, err
	}

	invoice, err := trade.NewInvoice(tenantID, number, invoiceDate, customer.ID, customer.Name)
	if err != nil {
		return nil, err
	}

	var response InvoiceResponse
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		for _, item := range req.Items {
			product, err := repos.ProductRepo().FindByIDForTenant(ctx, tenantID, item.ProductID)
			if err != nil {
				return err
			}
			if !product.IsActive() {
				return shared.NewDomainError("PRODUCT_INACTIVE", "Cannot sell an inactive product: "+product.Name)
			}
			if _, err := invoice.AddItem(product.ID, product.Name, product.SKU, item.Qty, product.UnitPrice, product.LastCostPrice); err != nil {
				return err
			}
		}

		if req.Discount != nil {
			if err := invoice.ApplyDiscount(*req.Discount); err != nil {
				return err
			}
		}

		if err := repos.InvoiceRepo().Save(ctx, invoice); err != nil {
			return err
		}

		response = ToInvoiceResponse(invoice)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &response, nil
}

// Confirm transitions a draft invoice to CONFIRMED and deducts stock for
// every line item in the same transaction. Confirming an already confirmed
// invoice is a no-op returning the current state; stock moves exactly once.
func (s *InvoiceService) Confirm(ctx context.Context, tenantID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	var response InvoiceResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		invoice, err := repos.InvoiceRepo().FindByIDForTenant(ctx, tenantID, invoiceID)
		if err != nil {
			return err
		}

		if invoice.IsConfirmed() {
			response = ToInvoiceResponse(invoice)
			return nil
		}

		if err := invoice.Confirm(); err != nil {
			return err
		}

		for _, item := range invoice.Items {
			product, err := repos.ProductRepo().FindByIDForTenant(ctx, tenantID, item.ProductID)
			if err != nil {
				return err
			}
			if err := product.DeductStock(item.Qty); err != nil {
				return err
			}
			if err := repos.ProductRepo().SaveWithLock(ctx, product); err != nil {
				return err
			}
		}

		if err := repos.InvoiceRepo().SaveWithLock(ctx, invoice); err != nil {
			return err
		}

		response = ToInvoiceResponse(invoice)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &response, nil
}

// Cancel transitions a draft invoice to CANCELLED. No stock is touched
// because drafts never held any.
func (s *InvoiceService) Cancel(ctx context.Context, tenantID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}

	if err := invoice.Cancel(); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.SaveWithLock(ctx, invoice); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// RecordPayment registers a payment against a confirmed invoice
func (s *InvoiceService) RecordPayment(ctx context.Context, tenantID, invoiceID uuid.UUID, req RecordPaymentRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}

	if err := invoice.RecordPayment(req.Amount); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.SaveWithLock(ctx, invoice); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// GetByID retrieves an invoice by ID
func (s *InvoiceService) GetByID(ctx context.Context, tenantID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// GetByNumber retrieves an invoice by its document number
func (s *InvoiceService) GetByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByNumberForTenant(ctx, tenantID, number)
	if err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// List retrieves invoices with filtering and pagination
func (s *InvoiceService) List(ctx context.Context, tenantID uuid.UUID, filter InvoiceListFilter) ([]InvoiceResponse, int64, error) {
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

	domainFilter := trade.InvoiceFilter{
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
	if filter.CustomerID != nil {
		domainFilter.CustomerID = *filter.CustomerID
	}
	if filter.Status != nil {
		status := trade.DocumentStatus(*filter.Status)
		if !status.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_STATUS", "Unknown invoice status: "+*filter.Status)
		}
		domainFilter.Status = status
	}

	page, err := s.invoiceRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]InvoiceResponse, 0, len(page.Items))
	for i := range page.Items {
		responses = append(responses, ToInvoiceResponse(&page.Items[i]))
	}

	return responses, page.Total, nil
}

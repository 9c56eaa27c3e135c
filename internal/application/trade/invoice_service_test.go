package trade

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/smartbiz/backend/internal/domain/catalog"
	"github.com/smartbiz/backend/internal/domain/partner"
	"github.com/smartbiz/backend/internal/domain/shared"
	"github.com/smartbiz/backend/internal/domain/trade"
)

type invoiceServiceFixture struct {
	invoiceRepo  *MockInvoiceRepository
	purchaseRepo *MockPurchaseRepository
	productRepo  *MockProductRepository
	customerRepo *MockCustomerRepository
	numberGen    *MockNumberGenerator
	service      *InvoiceService
}

func newInvoiceServiceFixture() *invoiceServiceFixture {
	invoiceRepo := new(MockInvoiceRepository)
	purchaseRepo := new(MockPurchaseRepository)
	productRepo := new(MockProductRepository)
	customerRepo := new(MockCustomerRepository)
	numberGen := new(MockNumberGenerator)
	txScope := NewNoOpTransactionScope(invoiceRepo, purchaseRepo, productRepo)

	return &invoiceServiceFixture{
		invoiceRepo:  invoiceRepo,
		purchaseRepo: purchaseRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		numberGen:    numberGen,
		service:      NewInvoiceService(invoiceRepo, customerRepo, numberGen, txScope),
	}
}

func testCustomer(t *testing.T, tenantID uuid.UUID) *partner.Customer {
	t.Helper()
	c, err := partner.NewCustomer(tenantID, "Acme Retail", "555-0100", "acme@example.com", "1 Main St")
	require.NoError(t, err)
	return c
}

func testProduct(t *testing.T, tenantID uuid.UUID, stock int) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProductWithCost(tenantID, "Widget", "WID-001", decimal.NewFromFloat(10.00), decimal.NewFromFloat(6.00), stock)
	require.NoError(t, err)
	p.LastCostPrice = decimal.NewFromFloat(6.50)
	return p
}

func TestInvoiceService_CreateDraft(t *testing.T) {
	f := newInvoiceServiceFixture()
	ctx := context.Background()
	tenantID := uuid.New()

	customer := testCustomer(t, tenantID)
	product := testProduct(t, tenantID, 100)

	f.customerRepo.On("FindByIDForTenant", ctx, tenantID, customer.ID).Return(customer, nil)
	f.numberGen.On("Next", ctx, tenantID, trade.DocumentTypeInvoice, mock.AnythingOfType("time.Time")).Return("INV-20260115-0001", nil)
	f.productRepo.On("FindByIDForTenant", ctx, tenantID, product.ID).Return(product, nil)
	f.invoiceRepo.On("Save", ctx, mock.AnythingOfType("*trade.Invoice")).Return(nil)

	resp, err := f.service.CreateDraft(ctx, tenantID, CreateInvoiceRequest{
		CustomerID: customer.ID,
		Items:      []CreateInvoiceItemInput{{ProductID: product.ID, Qty: 3}},
	})

	require.NoError(t, err)
	assert.Equal(t, "INV-20260115-0001", resp.InvoiceNumber)
	assert.Equal(t, "DRAFT", resp.Status)
	require.Len(t, resp.Items, 1)

	// Prices come from the catalog, cost from the latest purchase
	assert.True(t, resp.Items[0].UnitPrice.Equal(decimal.NewFromFloat(10.00)))
	assert.True(t, resp.Items[0].CostPrice.Equal(decimal.NewFromFloat(6.50)))
	assert.True(t, resp.SubTotal.Equal(decimal.NewFromFloat(30.00)))

	// Drafting never touches stock
	assert.Equal(t, 100, product.StockQty)
	f.productRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
}

func TestInvoiceService_CreateDraft_WithDiscount(t *testing.T) {
	f := newInvoiceServiceFixture()
	ctx := context.Background()
	tenantID := uuid.New()

	customer := testCustomer(t, tenantID)
	product := testProduct(t, tenantID, 100)
	discount := decimal.NewFromFloat(5.00)

	f.customerRepo.On("FindByIDForTenant", ctx, tenantID, customer.ID).Return(customer, nil)
	f.numberGen.On("Next", ctx, tenantID, trade.DocumentTypeInvoice, mock.AnythingOfType("time.Time")).Return("INV-20260115-0001", nil)
	f.productRepo.On("FindByIDForTenant", ctx, tenantID, product.ID).Return(product, nil)
	f.invoiceRepo.On("Save", ctx, mock.AnythingOfType("*trade.Invoice")).Return(nil)

	resp, err := f.service.CreateDraft(ctx, tenantID, CreateInvoiceRequest{
		CustomerID: customer.ID,
		Discount:   &discount,
		Items:      []CreateInvoiceItemInput{{ProductID: product.ID, Qty: 3}},
	})

	require.NoError(t, err)
	assert.True(t, resp.GrandTotal.Equal(decimal.NewFromFloat(25.00)))
}

func TestInvoiceService_CreateDraft_CustomerNotFound(t *testing.T) {
	f := newInvoiceServiceFixture()
	ctx := context.Background()
	tenantID := uuid.New()
	customerID := uuid.New()

	f.customerRepo.On("FindByIDForTenant", ctx, tenantID, customerID).Return(nil, shared.ErrNotFound)

	_, err := f.service.CreateDraft(ctx, tenantID, CreateInvoiceRequest{
		CustomerID: customerID,
		Items:      []CreateInvoiceItemInput{{ProductID: uuid.New(), Qty: 1}},
	})

	assert.ErrorIs(t, err, shared.ErrNotFound)
	f.invoiceRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestInvoiceService_CreateDraft_InactiveProduct(t *testing.T) {
	f := newInvoiceServiceFixture()
	ctx := context.Background()
	tenantID := uuid.New()

	customer := testCustomer(t, tenantID)
	product := testProduct(t, tenantID, 100)
	product.Deactivate()

	f.customerRepo.On("FindByIDForTenant", ctx, tenantID, customer.ID).Return(customer, nil)
	f.numberGen.On("Next", ctx, tenantID, trade.DocumentTypeInvoice, mock.AnythingOfType("time.Time")).Return("INV-20260115-0001", nil)
	f.productRepo.On("FindByIDForTenant", ctx, tenantID, product.ID).Return(product, nil)

	_, err := f.service.CreateDraft(ctx, tenantID, CreateInvoiceRequest{
		CustomerID: customer.ID,
		Items:      []CreateInvoiceItemInput{{ProductID: product.ID, Qty: 1}},
	})

	assert.Error(t, err)
	f.invoiceRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func confirmedTestInvoice(t *testing.T, tenantID uuid.UUID, productID uuid.UUID, qty int) *trade.Invoice {
	t.Helper()
	inv, err := trade.NewInvoice(tenantID, "INV-20260115-0001", time.Now(), uuid.New(), "Acme Retail")
	require.NoError(t, err)
	_, err = inv.AddItem(productID, "Widget", "WID-001", qty, decimal.NewFromFloat(10.00), decimal.NewFromFloat(6.50))
	require.NoError(t, err)
	require.NoError(t, inv.Confirm())
	return inv
}

func TestInvoiceService_Confirm(t *testing.T) {
	f := newInvoiceServiceFixture()
	ctx := context.Background()
	tenantID := uuid.New()

	product := testProduct(t, tenantID, 100)
	inv, err := trade.NewInvoice(tenantID, "INV-20260115-0001", time.Now(), uuid.New(), "Acme Retail")
	require.NoError(t, err)
	_, err = inv.AddItem(product.ID, product.Name, product.SKU, 30, decimal.NewFromFloat(10.00), decimal.NewFromFloat(6.50))
	require.NoError(t, err)

	f.invoiceRepo.On("FindByIDForTenant", ctx, tenantID, inv.ID).Return(inv, nil)
	f.productRepo.On("FindByIDForTenant", ctx, tenantID, product.ID).Return(product, nil)
	f.productRepo.On("SaveWithLock", ctx, product).Return(nil)
	f.invoiceRepo.On("SaveWithLock", ctx, inv).Return(nil)

	resp, err := f.service.Confirm(ctx, tenantID, inv.ID)

	require.NoError(t, err)
	assert.Equal(t, "CONFIRMED", resp.Status)
	assert.Equal(t, 70, product.StockQty)
}

func TestInvoiceService_Confirm_Idempotent(t *testing.T) {
	f := newInvoiceServiceFixture()
	ctx := context.Background()
	tenantID := uuid.New()
	productID := uuid.New()

	inv := confirmedTestInvoice(t, tenantID, productID, 5)

	f.invoiceRepo.On("FindByIDForTenant", ctx, tenantID, inv.ID).Return(inv, nil)

	resp, err := f.service.Confirm(ctx, tenantID, inv.ID)

	require.NoError(t, err)
	assert.Equal(t, "CONFIRMED", resp.Status)

	// Re-confirming moves no stock and writes nothing
	f.productRepo.AssertNotCalled(t, "FindByIDForTenant", mock.Anything, mock.Anything, mock.Anything)
	f.invoiceRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
}

func TestInvoiceService_Confirm_Cancelled(t *testing.T) {
	f := newInvoiceServiceFixture()
	ctx := context.Background()
	tenantID := uuid.New()

	inv, err := trade.NewInvoice(tenantID, "INV-20260115-0001", time.Now(), uuid.New(), "Acme Retail")
	require.NoError(t, err)
	require.NoError(t, inv.Cancel())

	f.invoiceRepo.On("FindByIDForTenant", ctx, tenantID, inv.ID).Return(inv, nil)

	_, err = f.service.Confirm(ctx, tenantID, inv.ID)

	assert.Error(t, err)
	f.invoiceRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
}

func TestInvoiceService_Confirm_InsufficientStock(t *testing.T) {
	f := newInvoiceServiceFixture()
	ctx := context.Background()
	tenantID := uuid.New()

	product := testProduct(t, tenantID, 10)
	inv, err := trade.NewInvoice(tenantID, "INV-20260115-0001", time.Now(), uuid.New(), "Acme Retail")
	require.NoError(t, err)
	_, err = inv.AddItem(product.ID, product.Name, product.SKU, 30, decimal.NewFromFloat(10.00), decimal.NewFromFloat(6.50))
	require.NoError(t, err)

	f.invoiceRepo.On("FindByIDForTenant", ctx, tenantID, inv.ID).Return(inv, nil)
	f.productRepo.On("FindByIDForTenant", ctx, tenantID, product.ID).Return(product, nil)

	_, err = f.service.Confirm(ctx, tenantID, inv.ID)

	assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	assert.Equal(t, 10, product.StockQty)
	f.invoiceRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
}

func TestInvoiceService_RecordPayment(t *testing.T) {
	f := newInvoiceServiceFixture()
	ctx := context.Background()
	tenantID := uuid.New()

	inv := confirmedTestInvoice(t, tenantID, uuid.New(), 10)

	f.invoiceRepo.On("FindByIDForTenant", ctx, tenantID, inv.ID).Return(inv, nil)
	f.invoiceRepo.On("SaveWithLock", ctx, inv).Return(nil)

	resp, err := f.service.RecordPayment(ctx, tenantID, inv.ID, RecordPaymentRequest{Amount: decimal.NewFromFloat(100.00)})

	require.NoError(t, err)
	assert.Equal(t, "PAID", resp.PaymentStatus)
}

func TestInvoiceService_List_InvalidStatus(t *testing.T) {
	f := newInvoiceServiceFixture()
	ctx := context.Background()
	tenantID := uuid.New()
	bad := "SHIPPED"

	_, _, err := f.service.List(ctx, tenantID, InvoiceListFilter{Status: &bad})

	assert.Error(t, err)
	f.invoiceRepo.AssertNotCalled(t, "FindAllForTenant", mock.Anything, mock.Anything, mock.Anything)
}

func TestInvoiceService_List(t *testing.T) {
	f := newInvoiceServiceFixture()
	ctx := context.Background()
	tenantID := uuid.New()

	inv, err := trade.NewInvoice(tenantID, "INV-20260115-0001", time.Now(), uuid.New(), "Acme Retail")
	require.NoError(t, err)
	page := shared.NewPaginated([]trade.Invoice{*inv}, 1, 1, 20)

	f.invoiceRepo.On("FindAllForTenant", ctx, tenantID, mock.MatchedBy(func(filter trade.InvoiceFilter) bool {
		return filter.Page == 1 && filter.PageSize == 20 && filter.OrderBy == "created_at" && filter.OrderDir == "desc"
	})).Return(&page, nil)

	items, total, err := f.service.List(ctx, tenantID, InvoiceListFilter{})

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "INV-20260115-0001", items[0].InvoiceNumber)
}

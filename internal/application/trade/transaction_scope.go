package trade

import (
	"context"

	"github.com/smartbiz/backend/internal/domain/catalog"
	"github.com/smartbiz/backend/internal/domain/trade"
)

// TransactionScope provides transactional access to the repositories a
// document confirmation touches. Confirming a document flips its status and
// applies the stock movement to every referenced product; both must commit
// or roll back together.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the trade and catalog
// repositories within a transaction. All repositories returned share the
// same underlying database transaction.
type TransactionalRepositories interface {
	// InvoiceRepo returns the invoice repository scoped to the current transaction
	InvoiceRepo() trade.InvoiceRepository
	// PurchaseRepo returns the purchase repository scoped to the current transaction
	PurchaseRepo() trade.PurchaseRepository
	// ProductRepo returns the product repository scoped to the current transaction
	ProductRepo() catalog.ProductRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. This is useful for testing.
type NoOpTransactionScope struct {
	invoiceRepo  trade.InvoiceRepository
	purchaseRepo trade.PurchaseRepository
	productRepo  catalog.ProductRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	invoiceRepo trade.InvoiceRepository,
	purchaseRepo trade.PurchaseRepository,
	productRepo catalog.ProductRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		invoiceRepo:  invoiceRepo,
		purchaseRepo: purchaseRepo,
		productRepo:  productRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// InvoiceRepo returns the invoice repository.
func (s *NoOpTransactionScope) InvoiceRepo() trade.InvoiceRepository {
	return s.invoiceRepo
}

// PurchaseRepo returns the purchase repository.
func (s *NoOpTransactionScope) PurchaseRepo() trade.PurchaseRepository {
	return s.purchaseRepo
}

// ProductRepo returns the product repository.
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository {
	return s.productRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)

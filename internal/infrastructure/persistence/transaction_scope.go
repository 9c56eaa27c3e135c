package persistence

import (
	"context"

	"gorm.io/gorm"

	appbilling "github.com/smartbiz/backend/internal/application/billing"
	apptrade "github.com/smartbiz/backend/internal/application/trade"
	"github.com/smartbiz/backend/internal/domain/billing"
	"github.com/smartbiz/backend/internal/domain/catalog"
	"github.com/smartbiz/backend/internal/domain/trade"
)

// GormTradeTransactionScope implements the trade TransactionScope using GORM
// transactions. Document confirmation and the stock movement it implies run
// against repositories bound to the same transaction.
type GormTradeTransactionScope struct {
	db *gorm.DB
}

// NewGormTradeTransactionScope creates a new GormTradeTransactionScope
func NewGormTradeTransactionScope(db *gorm.DB) *GormTradeTransactionScope {
	return &GormTradeTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormTradeTransactionScope) Execute(ctx context.Context, fn func(repos apptrade.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTradeRepositories{tx: tx}
		return fn(repos)
	})
}

type gormTradeRepositories struct {
	tx *gorm.DB
}

// InvoiceRepo returns the invoice repository scoped to the current transaction
func (r *gormTradeRepositories) InvoiceRepo() trade.InvoiceRepository {
	return NewGormInvoiceRepository(r.tx)
}

// PurchaseRepo returns the purchase repository scoped to the current transaction
func (r *gormTradeRepositories) PurchaseRepo() trade.PurchaseRepository {
	return NewGormPurchaseRepository(r.tx)
}

// ProductRepo returns the product repository scoped to the current transaction
func (r *gormTradeRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// GormBillingTransactionScope implements the billing TransactionScope using
// GORM transactions
type GormBillingTransactionScope struct {
	db *gorm.DB
}

// NewGormBillingTransactionScope creates a new GormBillingTransactionScope
func NewGormBillingTransactionScope(db *gorm.DB) *GormBillingTransactionScope {
	return &GormBillingTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormBillingTransactionScope) Execute(ctx context.Context, fn func(repos appbilling.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormBillingRepositories{tx: tx}
		return fn(repos)
	})
}

type gormBillingRepositories struct {
	tx *gorm.DB
}

// SubscriptionRepo returns the subscription repository scoped to the current transaction
func (r *gormBillingRepositories) SubscriptionRepo() billing.SubscriptionRepository {
	return NewGormSubscriptionRepository(r.tx)
}

// PlanRepo returns the plan repository scoped to the current transaction
func (r *gormBillingRepositories) PlanRepo() billing.PlanRepository {
	return NewGormPlanRepository(r.tx)
}

// Ensure the scopes implement their application contracts
var _ apptrade.TransactionScope = (*GormTradeTransactionScope)(nil)
var _ apptrade.TransactionalRepositories = (*gormTradeRepositories)(nil)
var _ appbilling.TransactionScope = (*GormBillingTransactionScope)(nil)
var _ appbilling.TransactionalRepositories = (*gormBillingRepositories)(nil)

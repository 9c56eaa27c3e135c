package billing

import (
	"context"

	"github.com/smartbiz/backend/internal/domain/billing"
)

// TransactionScope provides transactional access to the billing repositories.
// Reassigning a plan expires the prior subscription and creates the new one;
// both writes commit or roll back together so a tenant never holds two
// active subscriptions.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the billing repositories
// within a transaction.
type TransactionalRepositories interface {
	SubscriptionRepo() billing.SubscriptionRepository
	PlanRepo() billing.PlanRepository
}

// NoOpTransactionScope runs the function without a real transaction. Useful
// for testing.
type NoOpTransactionScope struct {
	subscriptionRepo billing.SubscriptionRepository
	planRepo         billing.PlanRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(subscriptionRepo billing.SubscriptionRepository, planRepo billing.PlanRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// SubscriptionRepo returns the subscription repository.
func (s *NoOpTransactionScope) SubscriptionRepo() billing.SubscriptionRepository {
	return s.subscriptionRepo
}

// PlanRepo returns the plan repository.
func (s *NoOpTransactionScope) PlanRepo() billing.PlanRepository {
	return s.planRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)

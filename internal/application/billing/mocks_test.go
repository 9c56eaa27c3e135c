package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/smartbiz/backend/internal/domain/billing"
	"github.com/smartbiz/backend/internal/domain/catalog"
	"github.com/smartbiz/backend/internal/domain/shared"
)

// MockPlanRepository is a mock implementation of PlanRepository
type MockPlanRepository struct {
	mock.Mock
}

func (m *MockPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.SubscriptionPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.SubscriptionPlan), args.Error(1)
}

func (m *MockPlanRepository) FindDefaultPlan(ctx context.Context, name string) (*billing.SubscriptionPlan, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.SubscriptionPlan), args.Error(1)
}

func (m *MockPlanRepository) FindAllActive(ctx context.Context) ([]billing.SubscriptionPlan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.SubscriptionPlan), args.Error(1)
}

func (m *MockPlanRepository) Save(ctx context.Context, plan *billing.SubscriptionPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

// MockSubscriptionRepository is a mock implementation of SubscriptionRepository
type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) FindActiveForTenant(ctx context.Context, tenantID uuid.UUID) (*billing.BusinessSubscription, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.BusinessSubscription), args.Error(1)
}

func (m *MockSubscriptionRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]billing.BusinessSubscription, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.BusinessSubscription), args.Error(1)
}

func (m *MockSubscriptionRepository) Save(ctx context.Context, subscription *billing.BusinessSubscription) error {
	args := m.Called(ctx, subscription)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) SaveWithLock(ctx context.Context, subscription *billing.BusinessSubscription) error {
	args := m.Called(ctx, subscription)
	return args.Error(0)
}

// MockAIRequestRepository is a mock implementation of AIRequestRepository
type MockAIRequestRepository struct {
	mock.Mock
}

func (m *MockAIRequestRepository) CountForTenantBetween(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (int64, error) {
	args := m.Called(ctx, tenantID, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAIRequestRepository) Save(ctx context.Context, request *billing.AIRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) ExistsBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (bool, error) {
	args := m.Called(ctx, tenantID, sku)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) SaveWithLock(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

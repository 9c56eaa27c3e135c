package ai

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/smartbiz/backend/internal/domain/billing"
	"github.com/smartbiz/backend/internal/domain/catalog"
	"github.com/smartbiz/backend/internal/domain/shared"
)

// MockCompletionClient is a mock implementation of CompletionClient
type MockCompletionClient struct {
	mock.Mock
}

func (m *MockCompletionClient) Complete(ctx context.Context, prompt string) (string, int, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Int(1), args.Error(2)
}

// MockAIQuotaChecker is a mock implementation of AIQuotaChecker
type MockAIQuotaChecker struct {
	mock.Mock
}

func (m *MockAIQuotaChecker) CheckAIQuota(ctx context.Context, tenantID uuid.UUID) error {
	args := m.Called(ctx, tenantID)
	return args.Error(0)
}

// MockAIRequestRepository is a mock implementation of billing.AIRequestRepository
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

type insightFixture struct {
	client      *MockCompletionClient
	quota       *MockAIQuotaChecker
	aiRepo      *MockAIRequestRepository
	productRepo *MockProductRepository
	service     *InsightService
}

func newInsightFixture() *insightFixture {
	client := new(MockCompletionClient)
	quota := new(MockAIQuotaChecker)
	aiRepo := new(MockAIRequestRepository)
	productRepo := new(MockProductRepository)

	return &insightFixture{
		client:      client,
		quota:       quota,
		aiRepo:      aiRepo,
		productRepo: productRepo,
		service:     NewInsightService(client, quota, aiRepo, productRepo, zap.NewNop()),
	}
}

func TestInsightService_Ask(t *testing.T) {
	f := newInsightFixture()
	ctx := context.Background()
	tenantID := uuid.New()
	userID := uuid.New()

	product, err := catalog.NewProductWithCost(tenantID, "Widget", "WID-001", decimal.NewFromFloat(10.00), decimal.NewFromFloat(6.00), 3)
	require.NoError(t, err)

	f.quota.On("CheckAIQuota", ctx, tenantID).Return(nil)
	f.productRepo.On("FindAllForTenant", ctx, tenantID, mock.AnythingOfType("shared.Filter")).Return([]catalog.Product{*product}, nil)
	f.client.On("Complete", ctx, mock.MatchedBy(func(prompt string) bool {
		// The prompt is grounded on the catalog snapshot
		return strings.Contains(prompt, "Widget") &&
			strings.Contains(prompt, "WID-001") &&
			strings.Contains(prompt, "What should I restock?")
	})).Return("Restock widgets.", 42, nil)
	f.aiRepo.On("Save", ctx, mock.AnythingOfType("*billing.AIRequest")).Return(nil)

	resp, err := f.service.Ask(ctx, tenantID, userID, InsightRequest{Question: "What should I restock?"})

	require.NoError(t, err)
	assert.Equal(t, "Restock widgets.", resp.Answer)
	assert.Equal(t, 42, resp.TokensUsed)

	// A usage record is written for the served call
	f.aiRepo.AssertCalled(t, "Save", ctx, mock.AnythingOfType("*billing.AIRequest"))
}

func TestInsightService_Ask_QuotaExhausted(t *testing.T) {
	f := newInsightFixture()
	ctx := context.Background()
	tenantID := uuid.New()

	f.quota.On("CheckAIQuota", ctx, tenantID).Return(shared.ErrLimitReached)

	_, err := f.service.Ask(ctx, tenantID, uuid.New(), InsightRequest{Question: "anything"})

	assert.ErrorIs(t, err, shared.ErrLimitReached)
	// A refused call never reaches the provider and is not counted
	f.client.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
	f.aiRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestInsightService_Ask_ProviderFailure(t *testing.T) {
	f := newInsightFixture()
	ctx := context.Background()
	tenantID := uuid.New()

	f.quota.On("CheckAIQuota", ctx, tenantID).Return(nil)
	f.productRepo.On("FindAllForTenant", ctx, tenantID, mock.AnythingOfType("shared.Filter")).Return([]catalog.Product{}, nil)
	f.client.On("Complete", ctx, mock.AnythingOfType("string")).Return("", 0, errors.New("upstream timeout"))

	_, err := f.service.Ask(ctx, tenantID, uuid.New(), InsightRequest{Question: "anything"})

	assert.Error(t, err)
	// A failed call is not counted against the quota
	f.aiRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

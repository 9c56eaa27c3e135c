package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/smartbiz/backend/internal/domain/billing"
	"github.com/smartbiz/backend/internal/domain/catalog"
	"github.com/smartbiz/backend/internal/domain/shared"
)

// QuotaService enforces the per-plan resource limits. Every check fails
// closed: when no plan can be resolved for the tenant the operation is
// denied, it never defaults to unlimited.
type QuotaService struct {
	subscriptionService *SubscriptionService
	productRepo         catalog.ProductRepository
	aiRequestRepo       billing.AIRequestRepository
	logger              *zap.Logger
}

// NewQuotaService creates a new QuotaService
func NewQuotaService(
	subscriptionService *SubscriptionService,
	productRepo catalog.ProductRepository,
	aiRequestRepo billing.AIRequestRepository,
	logger *zap.Logger,
) *QuotaService {
	return &QuotaService{
		subscriptionService: subscriptionService,
		productRepo:         productRepo,
		aiRequestRepo:       aiRequestRepo,
		logger:              logger,
	}
}

// CheckProductQuota verifies the tenant may create one more product.
// Returns LIMIT_REACHED when the plan's product limit is exhausted.
func (s *QuotaService) CheckProductQuota(ctx context.Context, tenantID uuid.UUID) error {
	plan, err := s.subscriptionService.GetCurrentPlan(ctx, tenantID)
	if err != nil {
		return err
	}

	count, err := s.productRepo.CountForTenant(ctx, tenantID)
	if err != nil {
		return err
	}

	if !plan.AllowsProducts(count) {
		s.logger.Info("product quota exhausted",
			zap.String("tenant_id", tenantID.String()),
			zap.String("plan", plan.Name),
			zap.Int64("count", count),
			zap.Int("limit", plan.MaxProducts))
		return shared.ErrLimitReached
	}

	return nil
}

// CheckAIQuota verifies the tenant may issue one more AI request this
// calendar month. Returns LIMIT_REACHED when the monthly allowance is spent.
func (s *QuotaService) CheckAIQuota(ctx context.Context, tenantID uuid.UUID) error {
	plan, err := s.subscriptionService.GetCurrentPlan(ctx, tenantID)
	if err != nil {
		return err
	}

	from, to := billing.MonthWindow(time.Now())
	used, err := s.aiRequestRepo.CountForTenantBetween(ctx, tenantID, from, to)
	if err != nil {
		return err
	}

	if !plan.AllowsAIRequests(used) {
		s.logger.Info("ai request quota exhausted",
			zap.String("tenant_id", tenantID.String()),
			zap.String("plan", plan.Name),
			zap.Int64("used", used),
			zap.Int("limit", plan.MaxAIRequestsPerMonth))
		return shared.ErrLimitReached
	}

	return nil
}

// Usage reports the tenant's consumption against its plan limits
func (s *QuotaService) Usage(ctx context.Context, tenantID uuid.UUID) (*QuotaUsageResponse, error) {
	plan, err := s.subscriptionService.GetCurrentPlan(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	productCount, err := s.productRepo.CountForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	from, to := billing.MonthWindow(time.Now())
	aiUsed, err := s.aiRequestRepo.CountForTenantBetween(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}

	return &QuotaUsageResponse{
		PlanName:       plan.Name,
		ProductCount:   productCount,
		MaxProducts:    plan.MaxProducts,
		AIRequestsUsed: aiUsed,
		MaxAIRequests:  plan.MaxAIRequestsPerMonth,
	}, nil
}

package billing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/smartbiz/backend/internal/domain/billing"
	"github.com/smartbiz/backend/internal/domain/shared"
)

// FreePlanName is the plan auto-provisioned for tenants without a
// subscription
const FreePlanName = "Free"

// PlanCache caches the resolved active plan per tenant. Quota checks run on
// every product create and AI call, so the plan lookup is the hottest read
// in the billing context.
type PlanCache interface {
	GetActivePlan(ctx context.Context, tenantID uuid.UUID) (*billing.SubscriptionPlan, error)
	SetActivePlan(ctx context.Context, tenantID uuid.UUID, plan *billing.SubscriptionPlan, ttl time.Duration) error
	Invalidate(ctx context.Context, tenantID uuid.UUID) error
}

// SubscriptionService handles subscription plan assignment and resolution
type SubscriptionService struct {
	subscriptionRepo billing.SubscriptionRepository
	planRepo         billing.PlanRepository
	planCache        PlanCache
	txScope          TransactionScope
	logger           *zap.Logger
}

// NewSubscriptionService creates a new SubscriptionService
func NewSubscriptionService(
	subscriptionRepo billing.SubscriptionRepository,
	planRepo billing.PlanRepository,
	txScope TransactionScope,
	logger *zap.Logger,
) *SubscriptionService {
	return &SubscriptionService{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		txScope:          txScope,
		logger:           logger,
	}
}

// SetPlanCache enables caching of resolved plans. Without a cache every
// resolution hits the database.
func (s *SubscriptionService) SetPlanCache(cache PlanCache) {
	s.planCache = cache
}

// GetCurrentPlan resolves the tenant's active plan, auto-provisioning the
// free plan for tenants that have never subscribed. It returns
// NO_ACTIVE_SUBSCRIPTION when no plan can be resolved; callers must treat
// that as a denial, never as unlimited access.
func (s *SubscriptionService) GetCurrentPlan(ctx context.Context, tenantID uuid.UUID) (*billing.SubscriptionPlan, error) {
	if s.planCache != nil {
		if plan, err := s.planCache.GetActivePlan(ctx, tenantID); err == nil && plan != nil {
			return plan, nil
		}
	}

	sub, err := s.subscriptionRepo.FindActiveForTenant(ctx, tenantID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		sub, err = s.assignFreePlan(ctx, tenantID)
		if err != nil {
			return nil, err
		}
	}

	plan := sub.Plan
	if plan == nil {
		plan, err = s.planRepo.FindByID(ctx, sub.PlanID)
		if err != nil {
			return nil, shared.ErrNoActiveSubscription
		}
	}

	if s.planCache != nil {
		if err := s.planCache.SetActivePlan(ctx, tenantID, plan, 5*time.Minute); err != nil {
			s.logger.Warn("failed to cache active plan", zap.String("tenant_id", tenantID.String()), zap.Error(err))
		}
	}

	return plan, nil
}

// GetCurrentSubscription returns the tenant's active subscription,
// auto-provisioning the free plan when none exists
func (s *SubscriptionService) GetCurrentSubscription(ctx context.Context, tenantID uuid.UUID) (*SubscriptionResponse, error) {
	sub, err := s.subscriptionRepo.FindActiveForTenant(ctx, tenantID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		sub, err = s.assignFreePlan(ctx, tenantID)
		if err != nil {
			return nil, err
		}
	}

	resp := ToSubscriptionResponse(sub)
	return &resp, nil
}

// AssignPlan moves the tenant to the given plan. The prior active
// subscription is expired and the new one created in the same transaction.
func (s *SubscriptionService) AssignPlan(ctx context.Context, tenantID uuid.UUID, planID uuid.UUID) (*SubscriptionResponse, error) {
	var response SubscriptionResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		plan, err := repos.PlanRepo().FindByID(ctx, planID)
		if err != nil {
			return err
		}
		if !plan.Active {
			return shared.NewDomainError("PLAN_INACTIVE", "Plan is no longer offered: "+plan.Name)
		}

		current, err := repos.SubscriptionRepo().FindActiveForTenant(ctx, tenantID)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		if current != nil {
			if current.PlanID == plan.ID {
				current.Plan = plan
				response = ToSubscriptionResponse(current)
				return nil
			}
			if err := current.Expire(); err != nil {
				return err
			}
			if err := repos.SubscriptionRepo().SaveWithLock(ctx, current); err != nil {
				return err
			}
		}

		sub, err := billing.NewBusinessSubscription(tenantID, plan.ID)
		if err != nil {
			return err
		}
		if err := repos.SubscriptionRepo().Save(ctx, sub); err != nil {
			return err
		}

		sub.Plan = plan
		response = ToSubscriptionResponse(sub)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.planCache != nil {
		if err := s.planCache.Invalidate(ctx, tenantID); err != nil {
			s.logger.Warn("failed to invalidate plan cache", zap.String("tenant_id", tenantID.String()), zap.Error(err))
		}
	}

	return &response, nil
}

// ListPlans returns all plans currently offered
func (s *SubscriptionService) ListPlans(ctx context.Context) ([]PlanResponse, error) {
	plans, err := s.planRepo.FindAllActive(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]PlanResponse, 0, len(plans))
	for i := range plans {
		responses = append(responses, ToPlanResponse(&plans[i]))
	}
	return responses, nil
}

// assignFreePlan provisions the free plan for a tenant with no subscription
// history. The subscription runs for one year. If no active free plan is
// configured the tenant stays unsubscribed and quota checks fail closed.
func (s *SubscriptionService) assignFreePlan(ctx context.Context, tenantID uuid.UUID) (*billing.BusinessSubscription, error) {
	plan, err := s.planRepo.FindDefaultPlan(ctx, FreePlanName)
	if err != nil {
		s.logger.Error("no free plan configured, tenant left unsubscribed",
			zap.String("tenant_id", tenantID.String()), zap.Error(err))
		return nil, shared.ErrNoActiveSubscription
	}
	if !plan.Active {
		s.logger.Error("free plan is inactive, tenant left unsubscribed",
			zap.String("tenant_id", tenantID.String()), zap.String("plan_id", plan.ID.String()))
		return nil, shared.ErrNoActiveSubscription
	}

	sub, err := billing.NewFreeSubscription(tenantID, plan.ID)
	if err != nil {
		return nil, err
	}
	if err := s.subscriptionRepo.Save(ctx, sub); err != nil {
		// A concurrent request provisioned this tenant first, adopt its row
		if errors.Is(err, shared.ErrAlreadyExists) {
			return s.subscriptionRepo.FindActiveForTenant(ctx, tenantID)
		}
		return nil, err
	}
	sub.Plan = plan

	s.logger.Info("auto-provisioned free plan",
		zap.String("tenant_id", tenantID.String()), zap.String("plan_id", plan.ID.String()))

	return sub, nil
}

package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PlanRepository defines the persistence contract for subscription plans
type PlanRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SubscriptionPlan, error)
	FindDefaultPlan(ctx context.Context, name string) (*SubscriptionPlan, error)
	FindAllActive(ctx context.Context) ([]SubscriptionPlan, error)
	Save(ctx context.Context, plan *SubscriptionPlan) error
}

// SubscriptionRepository defines the persistence contract for business
// subscriptions
type SubscriptionRepository interface {
	FindActiveForTenant(ctx context.Context, tenantID uuid.UUID) (*BusinessSubscription, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]BusinessSubscription, error)
	Save(ctx context.Context, subscription *BusinessSubscription) error
	SaveWithLock(ctx context.Context, subscription *BusinessSubscription) error
}

// AIRequestRepository defines the persistence contract for AI usage records
type AIRequestRepository interface {
	CountForTenantBetween(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (int64, error)
	Save(ctx context.Context, request *AIRequest) error
}

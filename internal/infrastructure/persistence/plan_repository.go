package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smartbiz/backend/internal/domain/billing"
	"github.com/smartbiz/backend/internal/domain/shared"
)

// GormPlanRepository implements PlanRepository using GORM.
// Plans are platform-wide catalog rows, not tenant data, so no tenant
// filtering applies here.
type GormPlanRepository struct {
	db *gorm.DB
}

// NewGormPlanRepository creates a new GormPlanRepository
func NewGormPlanRepository(db *gorm.DB) *GormPlanRepository {
	return &GormPlanRepository{db: db}
}

// FindByID finds a plan by its ID
func (r *GormPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.SubscriptionPlan, error) {
	var plan billing.SubscriptionPlan
	if err := r.db.WithContext(ctx).First(&plan, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// FindDefaultPlan finds the plan new tenants are placed on. A candidate must
// be active and either carry the given name or cost nothing per month;
// inactive plans never qualify, whatever their name.
func (r *GormPlanRepository) FindDefaultPlan(ctx context.Context, name string) (*billing.SubscriptionPlan, error) {
	var plan billing.SubscriptionPlan
	if err := r.db.WithContext(ctx).
		Where("active = ? AND (name = ? OR monthly_price = ?)", true, name, 0).
		Order("monthly_price ASC").
		First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// FindAllActive finds all plans that can currently be assigned
func (r *GormPlanRepository) FindAllActive(ctx context.Context) ([]billing.SubscriptionPlan, error) {
	var plans []billing.SubscriptionPlan
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("monthly_price ASC").
		Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

// Save creates or updates a plan
func (r *GormPlanRepository) Save(ctx context.Context, plan *billing.SubscriptionPlan) error {
	return r.db.WithContext(ctx).Save(plan).Error
}

// Ensure GormPlanRepository implements PlanRepository
var _ billing.PlanRepository = (*GormPlanRepository)(nil)

package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smartbiz/backend/internal/domain/billing"
	"github.com/smartbiz/backend/internal/domain/shared"
)

// GormSubscriptionRepository implements SubscriptionRepository using GORM
type GormSubscriptionRepository struct {
	db *gorm.DB
}

// NewGormSubscriptionRepository creates a new GormSubscriptionRepository
func NewGormSubscriptionRepository(db *gorm.DB) *GormSubscriptionRepository {
	return &GormSubscriptionRepository{db: db}
}

// FindActiveForTenant finds the tenant's single active subscription
func (r *GormSubscriptionRepository) FindActiveForTenant(ctx context.Context, tenantID uuid.UUID) (*billing.BusinessSubscription, error) {
	var subscription billing.BusinessSubscription
	if err := r.db.WithContext(ctx).
		Preload("Plan").
		Where("tenant_id = ? AND status = ?", tenantID, billing.SubscriptionStatusActive).
		Order("start_date DESC").
		First(&subscription).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &subscription, nil
}

// FindAllForTenant finds the tenant's full subscription history
func (r *GormSubscriptionRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]billing.BusinessSubscription, error) {
	var subscriptions []billing.BusinessSubscription
	if err := r.db.WithContext(ctx).
		Preload("Plan").
		Where("tenant_id = ?", tenantID).
		Order("start_date DESC").
		Find(&subscriptions).Error; err != nil {
		return nil, err
	}
	return subscriptions, nil
}

// Save creates or updates a subscription. Inserting a second ACTIVE row for
// the same tenant trips the partial unique index and surfaces as
// ALREADY_EXISTS so the caller can adopt the winning row.
func (r *GormSubscriptionRepository) Save(ctx context.Context, subscription *billing.BusinessSubscription) error {
	if err := r.db.WithContext(ctx).Omit("Plan").Save(subscription).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// SaveWithLock saves with optimistic locking (checks version)
func (r *GormSubscriptionRepository) SaveWithLock(ctx context.Context, subscription *billing.BusinessSubscription) error {
	result := r.db.WithContext(ctx).
		Model(subscription).
		Where("id = ? AND version = ?", subscription.ID, subscription.Version-1).
		Updates(map[string]interface{}{
			"status":     subscription.Status,
			"end_date":   subscription.EndDate,
			"version":    subscription.Version,
			"updated_at": subscription.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Ensure GormSubscriptionRepository implements SubscriptionRepository
var _ billing.SubscriptionRepository = (*GormSubscriptionRepository)(nil)

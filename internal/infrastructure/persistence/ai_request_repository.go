package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smartbiz/backend/internal/domain/billing"
)

// GormAIRequestRepository implements AIRequestRepository using GORM
type GormAIRequestRepository struct {
	db *gorm.DB
}

// NewGormAIRequestRepository creates a new GormAIRequestRepository
func NewGormAIRequestRepository(db *gorm.DB) *GormAIRequestRepository {
	return &GormAIRequestRepository{db: db}
}

// CountForTenantBetween counts usage records for a tenant in [from, to)
func (r *GormAIRequestRepository) CountForTenantBetween(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&billing.AIRequest{}).
		Where("tenant_id = ? AND created_at >= ? AND created_at < ?", tenantID, from, to).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save persists a usage record
func (r *GormAIRequestRepository) Save(ctx context.Context, request *billing.AIRequest) error {
	return r.db.WithContext(ctx).Save(request).Error
}

// Ensure GormAIRequestRepository implements AIRequestRepository
var _ billing.AIRequestRepository = (*GormAIRequestRepository)(nil)

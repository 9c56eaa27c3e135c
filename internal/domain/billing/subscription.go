package billing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/smartbiz/backend/internal/domain/shared"
)

// SubscriptionStatus represents the lifecycle state of a business subscription
type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "ACTIVE"
	SubscriptionStatusExpired   SubscriptionStatus = "EXPIRED"
	SubscriptionStatusCancelled SubscriptionStatus = "CANCELLED"
)

// IsValid checks if the status is a valid SubscriptionStatus
func (s SubscriptionStatus) IsValid() bool {
	switch s {
	case SubscriptionStatusActive, SubscriptionStatusExpired, SubscriptionStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of SubscriptionStatus
func (s SubscriptionStatus) String() string {
	return string(s)
}

// BusinessSubscription ties a tenant to a plan. At most one ACTIVE
// subscription exists per tenant; assigning a new plan expires the prior one
// in the same transaction.
type BusinessSubscription struct {
	shared.TenantAggregateRoot
	PlanID    uuid.UUID          `gorm:"type:uuid;not null;index"`
	Plan      *SubscriptionPlan  `gorm:"foreignKey:PlanID;references:ID"`
	Status    SubscriptionStatus `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	StartDate time.Time          `gorm:"not null"`
	EndDate   *time.Time
}

// TableName returns the table name for GORM
func (BusinessSubscription) TableName() string {
	return "business_subscriptions"
}

// NewBusinessSubscription creates an active subscription starting now
func NewBusinessSubscription(tenantID, planID uuid.UUID) (*BusinessSubscription, error) {
	if planID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PLAN", "Plan ID cannot be empty")
	}

	return &BusinessSubscription{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		PlanID:              planID,
		Status:              SubscriptionStatusActive,
		StartDate:           time.Now(),
	}, nil
}

// NewFreeSubscription creates an active subscription with a one year
// validity window, used when the free plan is granted automatically
func NewFreeSubscription(tenantID, planID uuid.UUID) (*BusinessSubscription, error) {
	sub, err := NewBusinessSubscription(tenantID, planID)
	if err != nil {
		return nil, err
	}
	end := sub.StartDate.AddDate(1, 0, 0)
	sub.EndDate = &end
	return sub, nil
}

// IsActive returns true if the subscription is active
func (s *BusinessSubscription) IsActive() bool {
	return s.Status == SubscriptionStatusActive
}

// Expire ends the subscription, typically because a new plan replaces it
func (s *BusinessSubscription) Expire() error {
	if s.Status != SubscriptionStatusActive {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot expire subscription in %s status", s.Status))
	}

	now := time.Now()
	s.Status = SubscriptionStatusExpired
	s.EndDate = &now
	s.UpdatedAt = now
	s.IncrementVersion()

	return nil
}

// Cancel ends the subscription at the tenant's request
func (s *BusinessSubscription) Cancel() error {
	if s.Status != SubscriptionStatusActive {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel subscription in %s status", s.Status))
	}

	now := time.Now()
	s.Status = SubscriptionStatusCancelled
	s.EndDate = &now
	s.UpdatedAt = now
	s.IncrementVersion()

	return nil
}

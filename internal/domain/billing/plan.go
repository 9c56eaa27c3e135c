package billing

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smartbiz/backend/internal/domain/shared"
)

// Unlimited marks a plan limit that is never enforced
const Unlimited = -1

// SubscriptionPlan defines a sellable tier with its monthly price and the
// resource limits enforced by the quota guard. Plans are global, not
// tenant-owned; every tenant subscribes to one of them.
type SubscriptionPlan struct {
	shared.BaseEntity
	Name                 string          `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description          string          `gorm:"type:text"`
	MonthlyPrice         decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	MaxUsers             int             `gorm:"not null;default:-1"`
	MaxProducts          int             `gorm:"not null;default:-1"`
	MaxAIRequestsPerMonth int            `gorm:"not null;default:-1"`
	Active               bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (SubscriptionPlan) TableName() string {
	return "subscription_plans"
}

// NewSubscriptionPlan creates a new plan. Limits use -1 for unlimited.
func NewSubscriptionPlan(name, description string, monthlyPrice decimal.Decimal, maxUsers, maxProducts, maxAIRequests int) (*SubscriptionPlan, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Plan name cannot be empty")
	}
	if monthlyPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Monthly price cannot be negative")
	}
	if maxUsers < Unlimited || maxProducts < Unlimited || maxAIRequests < Unlimited {
		return nil, shared.NewDomainError("INVALID_LIMIT", "Plan limits must be non-negative or -1 for unlimited")
	}

	return &SubscriptionPlan{
		BaseEntity:            shared.NewBaseEntity(),
		Name:                  name,
		Description:           description,
		MonthlyPrice:          monthlyPrice,
		MaxUsers:              maxUsers,
		MaxProducts:           maxProducts,
		MaxAIRequestsPerMonth: maxAIRequests,
		Active:                true,
	}, nil
}

// IsFree returns true for zero-priced plans
func (p *SubscriptionPlan) IsFree() bool {
	return p.MonthlyPrice.IsZero()
}

// AllowsProducts reports whether the plan admits one more product given the
// current count
func (p *SubscriptionPlan) AllowsProducts(currentCount int64) bool {
	if p.MaxProducts == Unlimited {
		return true
	}
	return currentCount < int64(p.MaxProducts)
}

// AllowsAIRequests reports whether the plan admits one more AI request given
// the usage so far this month
func (p *SubscriptionPlan) AllowsAIRequests(usedThisMonth int64) bool {
	if p.MaxAIRequestsPerMonth == Unlimited {
		return true
	}
	return usedThisMonth < int64(p.MaxAIRequestsPerMonth)
}

// AllowsUsers reports whether the plan admits one more user
func (p *SubscriptionPlan) AllowsUsers(currentCount int64) bool {
	if p.MaxUsers == Unlimited {
		return true
	}
	return currentCount < int64(p.MaxUsers)
}

// Deactivate withdraws the plan from new subscriptions
func (p *SubscriptionPlan) Deactivate() {
	p.Active = false
	p.UpdatedAt = time.Now()
}

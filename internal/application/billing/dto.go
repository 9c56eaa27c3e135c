package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smartbiz/backend/internal/domain/billing"
)

// PlanResponse represents a subscription plan in API responses
type PlanResponse struct {
	ID                    uuid.UUID       `json:"id"`
	Name                  string          `json:"name"`
	Description           string          `json:"description,omitempty"`
	MonthlyPrice          decimal.Decimal `json:"monthly_price"`
	MaxUsers              int             `json:"max_users"`
	MaxProducts           int             `json:"max_products"`
	MaxAIRequestsPerMonth int             `json:"max_ai_requests_per_month"`
	Active                bool            `json:"active"`
}

// ToPlanResponse converts a plan to a response DTO
func ToPlanResponse(plan *billing.SubscriptionPlan) PlanResponse {
	return PlanResponse{
		ID:                    plan.ID,
		Name:                  plan.Name,
		Description:           plan.Description,
		MonthlyPrice:          plan.MonthlyPrice,
		MaxUsers:              plan.MaxUsers,
		MaxProducts:           plan.MaxProducts,
		MaxAIRequestsPerMonth: plan.MaxAIRequestsPerMonth,
		Active:                plan.Active,
	}
}

// SubscriptionResponse represents a business subscription in API responses
type SubscriptionResponse struct {
	ID        uuid.UUID     `json:"id"`
	PlanID    uuid.UUID     `json:"plan_id"`
	Plan      *PlanResponse `json:"plan,omitempty"`
	Status    string        `json:"status"`
	StartDate time.Time     `json:"start_date"`
	EndDate   *time.Time    `json:"end_date,omitempty"`
}

// ToSubscriptionResponse converts a subscription to a response DTO
func ToSubscriptionResponse(sub *billing.BusinessSubscription) SubscriptionResponse {
	resp := SubscriptionResponse{
		ID:        sub.ID,
		PlanID:    sub.PlanID,
		Status:    sub.Status.String(),
		StartDate: sub.StartDate,
		EndDate:   sub.EndDate,
	}
	if sub.Plan != nil {
		plan := ToPlanResponse(sub.Plan)
		resp.Plan = &plan
	}
	return resp
}

// AssignPlanRequest represents a request to move a tenant to another plan
type AssignPlanRequest struct {
	PlanID uuid.UUID `json:"plan_id" binding:"required"`
}

// QuotaUsageResponse reports current usage against the plan limits
type QuotaUsageResponse struct {
	PlanName       string `json:"plan_name"`
	ProductCount   int64  `json:"product_count"`
	MaxProducts    int    `json:"max_products"`
	AIRequestsUsed int64  `json:"ai_requests_used"`
	MaxAIRequests  int    `json:"max_ai_requests_per_month"`
}

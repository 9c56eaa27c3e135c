package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/smartbiz/backend/internal/application/billing"
)

// SubscriptionHandler exposes subscription plans and quota usage
type SubscriptionHandler struct {
	BaseHandler
	subscriptionService *billing.SubscriptionService
	quotaService        *billing.QuotaService
}

// NewSubscriptionHandler creates a new subscription handler
func NewSubscriptionHandler(subscriptionService *billing.SubscriptionService, quotaService *billing.QuotaService) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: subscriptionService,
		quotaService:        quotaService,
	}
}

// ListPlans handles GET /plans
func (h *SubscriptionHandler) ListPlans(c *gin.Context) {
	plans, err := h.subscriptionService.ListPlans(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, plans)
}

// GetCurrent handles GET /subscription. A tenant without a subscription is
// silently placed on the free plan first.
func (h *SubscriptionHandler) GetCurrent(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}

	subscription, err := h.subscriptionService.GetCurrentSubscription(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, subscription)
}

// AssignPlan handles POST /subscription/plan
func (h *SubscriptionHandler) AssignPlan(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}

	var req billing.AssignPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	subscription, err := h.subscriptionService.AssignPlan(c.Request.Context(), tenantID, req.PlanID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, subscription)
}

// GetUsage handles GET /subscription/usage
func (h *SubscriptionHandler) GetUsage(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}

	usage, err := h.quotaService.Usage(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, usage)
}

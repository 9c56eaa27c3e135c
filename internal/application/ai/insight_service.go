package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/smartbiz/backend/internal/domain/billing"
	"github.com/smartbiz/backend/internal/domain/catalog"
	"github.com/smartbiz/backend/internal/domain/shared"
)

// CompletionClient abstracts the model provider. Implementations live in
// infrastructure so the service can be tested without network access.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (reply string, tokensUsed int, err error)
}

// AIQuotaChecker gates AI calls on the tenant's monthly allowance
type AIQuotaChecker interface {
	CheckAIQuota(ctx context.Context, tenantID uuid.UUID) error
}

// InsightRequest represents a request for a business insight
type InsightRequest struct {
	Question string `json:"question" binding:"required,min=1,max=2000"`
}

// InsightResponse represents a generated business insight
type InsightResponse struct {
	Answer     string `json:"answer"`
	TokensUsed int    `json:"tokens_used"`
}

// InsightService answers business questions grounded on the tenant's
// inventory. Every served call consumes one unit of the monthly AI quota and
// is recorded for usage counting; the quota check runs before the provider
// is called so a tenant over its limit costs nothing.
type InsightService struct {
	client        CompletionClient
	quotaChecker  AIQuotaChecker
	aiRequestRepo billing.AIRequestRepository
	productRepo   catalog.ProductRepository
	logger        *zap.Logger
}

// NewInsightService creates a new InsightService
func NewInsightService(
	client CompletionClient,
	quotaChecker AIQuotaChecker,
	aiRequestRepo billing.AIRequestRepository,
	productRepo catalog.ProductRepository,
	logger *zap.Logger,
) *InsightService {
	return &InsightService{
		client:        client,
		quotaChecker:  quotaChecker,
		aiRequestRepo: aiRequestRepo,
		productRepo:   productRepo,
		logger:        logger,
	}
}

// Ask generates an insight for the tenant's question
func (s *InsightService) Ask(ctx context.Context, tenantID, userID uuid.UUID, req InsightRequest) (*InsightResponse, error) {
	if err := s.quotaChecker.CheckAIQuota(ctx, tenantID); err != nil {
		return nil, err
	}

	prompt, err := s.buildPrompt(ctx, tenantID, req.Question)
	if err != nil {
		return nil, err
	}

	answer, tokens, err := s.client.Complete(ctx, prompt)
	if err != nil {
		s.logger.Error("completion request failed",
			zap.String("tenant_id", tenantID.String()), zap.Error(err))
		return nil, shared.NewDomainError("AI_UNAVAILABLE", "Insight generation is temporarily unavailable")
	}

	record, err := billing.NewAIRequest(tenantID, userID, "insight", req.Question, answer, tokens)
	if err != nil {
		return nil, err
	}
	if err := s.aiRequestRepo.Save(ctx, record); err != nil {
		return nil, err
	}

	return &InsightResponse{Answer: answer, TokensUsed: tokens}, nil
}

// buildPrompt grounds the question on a snapshot of the tenant's catalog
func (s *InsightService) buildPrompt(ctx context.Context, tenantID uuid.UUID, question string) (string, error) {
	filter := shared.DefaultFilter()
	filter.PageSize = 50
	filter.OrderBy = "stock_qty"
	filter.OrderDir = "asc"

	products, err := s.productRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("You are an assistant for a small business. Current inventory:\n")
	for _, p := range products {
		fmt.Fprintf(&sb, "- %s (SKU %s): %d on hand, sells at %s, avg cost %s\n",
			p.Name, p.SKU, p.StockQty, p.UnitPrice.StringFixed(2), p.CostPrice.StringFixed(2))
	}
	sb.WriteString("\nQuestion: ")
	sb.WriteString(question)

	return sb.String(), nil
}

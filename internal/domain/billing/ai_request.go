package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/smartbiz/backend/internal/domain/shared"
)

// AIRequest is a usage record written once per served AI call. The monthly
// quota check counts these rows per tenant within the calendar month.
type AIRequest struct {
	shared.BaseEntity
	TenantID    uuid.UUID `gorm:"type:uuid;not null;index:idx_ai_requests_tenant_created"`
	UserID      uuid.UUID `gorm:"type:uuid"`
	RequestType string    `gorm:"type:varchar(50);not null"`
	Prompt      string    `gorm:"type:text"`
	Response    string    `gorm:"type:text"`
	Success     bool      `gorm:"not null;default:true"`
	TokensUsed  int       `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (AIRequest) TableName() string {
	return "ai_requests"
}

// NewAIRequest records a served AI call
func NewAIRequest(tenantID, userID uuid.UUID, requestType, prompt, response string, tokensUsed int) (*AIRequest, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if requestType == "" {
		return nil, shared.NewDomainError("INVALID_REQUEST_TYPE", "Request type cannot be empty")
	}

	return &AIRequest{
		BaseEntity:  shared.NewBaseEntity(),
		TenantID:    tenantID,
		UserID:      userID,
		RequestType: requestType,
		Prompt:      prompt,
		Response:    response,
		Success:     true,
		TokensUsed:  tokensUsed,
	}, nil
}

// MonthWindow returns the UTC bounds of the calendar month containing t.
// Usage counting is month-bucketed, not rolling.
func MonthWindow(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

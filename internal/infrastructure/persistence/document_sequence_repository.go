package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smartbiz/backend/internal/domain/trade"
)

// nextSequenceSQL bumps the per-tenant, per-type, per-day counter in a single
// statement. The upsert is atomic at the database level, so two drafts racing
// on the same key each get their own value.
const nextSequenceSQL = `
INSERT INTO document_sequences (tenant_id, doc_type, seq_date, last_value)
VALUES (?, ?, ?, 1)
ON CONFLICT (tenant_id, doc_type, seq_date)
DO UPDATE SET last_value = document_sequences.last_value + 1
RETURNING last_value`

// GormDocumentSequenceRepository implements DocumentNumberGenerator on top of
// a persisted counter table
type GormDocumentSequenceRepository struct {
	db *gorm.DB
}

// NewGormDocumentSequenceRepository creates a new GormDocumentSequenceRepository
func NewGormDocumentSequenceRepository(db *gorm.DB) *GormDocumentSequenceRepository {
	return &GormDocumentSequenceRepository{db: db}
}

// Next returns the next document number for the tenant, type and day
func (r *GormDocumentSequenceRepository) Next(ctx context.Context, tenantID uuid.UUID, docType trade.DocumentType, date time.Time) (string, error) {
	seqDate := date.Format("20060102")

	var next int64
	if err := r.db.WithContext(ctx).
		Raw(nextSequenceSQL, tenantID, string(docType), seqDate).
		Scan(&next).Error; err != nil {
		return "", err
	}

	return trade.FormatDocumentNumber(docType, date, next), nil
}

// Ensure GormDocumentSequenceRepository implements DocumentNumberGenerator
var _ trade.DocumentNumberGenerator = (*GormDocumentSequenceRepository)(nil)

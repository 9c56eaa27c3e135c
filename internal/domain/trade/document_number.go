package trade

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DocumentType identifies the numbered document families
type DocumentType string

const (
	DocumentTypeInvoice  DocumentType = "INVOICE"
	DocumentTypePurchase DocumentType = "PURCHASE"
)

// Prefix returns the document number prefix for the type
func (t DocumentType) Prefix() string {
	switch t {
	case DocumentTypeInvoice:
		return "INV"
	case DocumentTypePurchase:
		return "PO"
	}
	return "DOC"
}

// IsValid checks if the type is a known DocumentType
func (t DocumentType) IsValid() bool {
	return t == DocumentTypeInvoice || t == DocumentTypePurchase
}

// FormatDocumentNumber renders a number as {PREFIX}-{YYYYMMDD}-{seq:04d}
func FormatDocumentNumber(docType DocumentType, date time.Time, seq int64) string {
	return fmt.Sprintf("%s-%s-%04d", docType.Prefix(), date.Format("20060102"), seq)
}

// DocumentNumberGenerator hands out per-tenant, per-day document numbers.
// Implementations must be safe under concurrent draft creation for the same
// tenant and day: the sequence comes from a persisted atomic counter, not
// from counting existing documents, so two racing drafts can never observe
// the same value.
type DocumentNumberGenerator interface {
	Next(ctx context.Context, tenantID uuid.UUID, docType DocumentType, date time.Time) (string, error)
}

// DocumentSequence is the persisted counter row backing the generator.
// One row per (tenant, document type, day).
type DocumentSequence struct {
	TenantID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	DocType   string    `gorm:"type:varchar(20);primaryKey"`
	SeqDate   string    `gorm:"type:varchar(8);primaryKey"` // YYYYMMDD
	LastValue int64     `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (DocumentSequence) TableName() string {
	return "document_sequences"
}

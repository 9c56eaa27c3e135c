package trade

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDocumentNumber(t *testing.T) {
	date := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)

	assert.Equal(t, "INV-20260115-0001", FormatDocumentNumber(DocumentTypeInvoice, date, 1))
	assert.Equal(t, "PO-20260115-0042", FormatDocumentNumber(DocumentTypePurchase, date, 42))
	assert.Equal(t, "INV-20260115-9999", FormatDocumentNumber(DocumentTypeInvoice, date, 9999))
}

func TestFormatDocumentNumber_SequenceOverflow(t *testing.T) {
	date := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	// Sequences past 9999 widen rather than wrap
	assert.Equal(t, "INV-20260115-10000", FormatDocumentNumber(DocumentTypeInvoice, date, 10000))
}

func TestDocumentType_Prefix(t *testing.T) {
	assert.Equal(t, "INV", DocumentTypeInvoice.Prefix())
	assert.Equal(t, "PO", DocumentTypePurchase.Prefix())
}

func TestDocumentType_IsValid(t *testing.T) {
	assert.True(t, DocumentTypeInvoice.IsValid())
	assert.True(t, DocumentTypePurchase.IsValid())
	assert.False(t, DocumentType("RECEIPT").IsValid())
}

func TestDocumentStatus_Transitions(t *testing.T) {
	assert.True(t, DocumentStatusDraft.CanTransitionTo(DocumentStatusConfirmed))
	assert.True(t, DocumentStatusDraft.CanTransitionTo(DocumentStatusCancelled))
	assert.False(t, DocumentStatusConfirmed.CanTransitionTo(DocumentStatusCancelled))
	assert.False(t, DocumentStatusConfirmed.CanTransitionTo(DocumentStatusDraft))
	assert.False(t, DocumentStatusCancelled.CanTransitionTo(DocumentStatusConfirmed))
}

func TestDocumentStatus_IsTerminal(t *testing.T) {
	assert.False(t, DocumentStatusDraft.IsTerminal())
	assert.True(t, DocumentStatusConfirmed.IsTerminal())
	assert.True(t, DocumentStatusCancelled.IsTerminal())
}

package trade

// DocumentStatus represents the lifecycle state shared by invoices and purchases
type DocumentStatus string

const (
	DocumentStatusDraft     DocumentStatus = "DRAFT"
	DocumentStatusConfirmed DocumentStatus = "CONFIRMED"
	DocumentStatusCancelled DocumentStatus = "CANCELLED"
)

// IsValid checks if the status is a valid DocumentStatus
func (s DocumentStatus) IsValid() bool {
	switch s {
	case DocumentStatusDraft, DocumentStatusConfirmed, DocumentStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of DocumentStatus
func (s DocumentStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// Transitions only run forward: a draft either confirms or cancels, and both
// of those are terminal.
func (s DocumentStatus) CanTransitionTo(target DocumentStatus) bool {
	switch s {
	case DocumentStatusDraft:
		return target == DocumentStatusConfirmed || target == DocumentStatusCancelled
	case DocumentStatusConfirmed, DocumentStatusCancelled:
		return false
	}
	return false
}

// IsTerminal returns true for states that admit no further transition
func (s DocumentStatus) IsTerminal() bool {
	return s == DocumentStatusConfirmed || s == DocumentStatusCancelled
}

// PaymentStatus tracks how much of a confirmed invoice has been settled.
// It moves independently of the document lifecycle.
type PaymentStatus string

const (
	PaymentStatusUnpaid  PaymentStatus = "UNPAID"
	PaymentStatusPartial PaymentStatus = "PARTIAL"
	PaymentStatusPaid    PaymentStatus = "PAID"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusUnpaid, PaymentStatusPartial, PaymentStatusPaid:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

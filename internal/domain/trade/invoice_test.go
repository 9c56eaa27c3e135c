package trade

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInvoice(t *testing.T) *Invoice {
	t.Helper()
	inv, err := NewInvoice(uuid.New(), "INV-20260115-0001", time.Now(), uuid.New(), "Acme Retail")
	require.NoError(t, err)
	return inv
}

func TestNewInvoice(t *testing.T) {
	tenantID := uuid.New()
	customerID := uuid.New()

	inv, err := NewInvoice(tenantID, "INV-20260115-0001", time.Now(), customerID, "Acme Retail")

	require.NoError(t, err)
	assert.Equal(t, tenantID, inv.TenantID)
	assert.Equal(t, "INV-20260115-0001", inv.InvoiceNumber)
	assert.Equal(t, DocumentStatusDraft, inv.Status)
	assert.Equal(t, PaymentStatusUnpaid, inv.PaymentStatus)
	assert.True(t, inv.SubTotal.IsZero())
	assert.True(t, inv.GrandTotal.IsZero())
	assert.Empty(t, inv.Items)
}

func TestNewInvoice_Validation(t *testing.T) {
	_, err := NewInvoice(uuid.New(), "", time.Now(), uuid.New(), "Acme Retail")
	assert.Error(t, err)

	_, err = NewInvoice(uuid.New(), "INV-20260115-0001", time.Now(), uuid.Nil, "Acme Retail")
	assert.Error(t, err)

	_, err = NewInvoice(uuid.New(), "INV-20260115-0001", time.Now(), uuid.New(), "")
	assert.Error(t, err)
}

func TestInvoice_AddItem(t *testing.T) {
	inv := newTestInvoice(t)

	item, err := inv.AddItem(uuid.New(), "Widget", "WID-001", 3, decimal.NewFromFloat(10.00), decimal.NewFromFloat(6.00))
	require.NoError(t, err)
	assert.True(t, item.LineTotal.Equal(decimal.NewFromFloat(30.00)))

	_, err = inv.AddItem(uuid.New(), "Gadget", "GAD-001", 2, decimal.NewFromFloat(25.50), decimal.NewFromFloat(18.00))
	require.NoError(t, err)

	assert.Equal(t, 2, inv.ItemCount())
	assert.Equal(t, 5, inv.TotalQty())
	assert.True(t, inv.SubTotal.Equal(decimal.NewFromFloat(81.00)))
	assert.True(t, inv.GrandTotal.Equal(decimal.NewFromFloat(81.00)))
}

func TestInvoice_AddItem_Validation(t *testing.T) {
	inv := newTestInvoice(t)

	_, err := inv.AddItem(uuid.New(), "Widget", "WID-001", 0, decimal.NewFromFloat(10.00), decimal.NewFromFloat(6.00))
	assert.Error(t, err)

	_, err = inv.AddItem(uuid.New(), "Widget", "WID-001", -1, decimal.NewFromFloat(10.00), decimal.NewFromFloat(6.00))
	assert.Error(t, err)

	_, err = inv.AddItem(uuid.Nil, "Widget", "WID-001", 1, decimal.NewFromFloat(10.00), decimal.NewFromFloat(6.00))
	assert.Error(t, err)

	assert.Equal(t, 0, inv.ItemCount())
	assert.True(t, inv.SubTotal.IsZero())
}

func TestInvoice_ApplyDiscount(t *testing.T) {
	inv := newTestInvoice(t)
	_, err := inv.AddItem(uuid.New(), "Widget", "WID-001", 10, decimal.NewFromFloat(10.00), decimal.NewFromFloat(6.00))
	require.NoError(t, err)

	err = inv.ApplyDiscount(decimal.NewFromFloat(15.00))
	require.NoError(t, err)
	assert.True(t, inv.GrandTotal.Equal(decimal.NewFromFloat(85.00)))
}

func TestInvoice_ApplyDiscount_FullSubtotal(t *testing.T) {
	inv := newTestInvoice(t)
	_, err := inv.AddItem(uuid.New(), "Widget", "WID-001", 10, decimal.NewFromFloat(10.00), decimal.NewFromFloat(6.00))
	require.NoError(t, err)

	err = inv.ApplyDiscount(decimal.NewFromFloat(100.00))
	require.NoError(t, err)
	assert.True(t, inv.GrandTotal.IsZero())
}

func TestInvoice_ApplyDiscount_ExceedsSubtotal(t *testing.T) {
	inv := newTestInvoice(t)
	_, err := inv.AddItem(uuid.New(), "Widget", "WID-001", 10, decimal.NewFromFloat(10.00), decimal.NewFromFloat(6.00))
	require.NoError(t, err)

	err = inv.ApplyDiscount(decimal.NewFromFloat(100.01))
	assert.Error(t, err)
	assert.True(t, inv.Discount.IsZero())
	assert.True(t, inv.GrandTotal.Equal(decimal.NewFromFloat(100.00)))
}

func TestInvoice_ApplyDiscount_Negative(t *testing.T) {
	inv := newTestInvoice(t)
	_, err := inv.AddItem(uuid.New(), "Widget", "WID-001", 1, decimal.NewFromFloat(10.00), decimal.NewFromFloat(6.00))
	require.NoError(t, err)

	err = inv.ApplyDiscount(decimal.NewFromFloat(-1.00))
	assert.Error(t, err)
}

func TestInvoice_Confirm(t *testing.T) {
	inv := newTestInvoice(t)
	_, err := inv.AddItem(uuid.New(), "Widget", "WID-001", 2, decimal.NewFromFloat(10.00), decimal.NewFromFloat(6.00))
	require.NoError(t, err)

	err = inv.Confirm()
	require.NoError(t, err)
	assert.Equal(t, DocumentStatusConfirmed, inv.Status)
	assert.NotNil(t, inv.ConfirmedAt)
	assert.True(t, inv.IsConfirmed())
}

func TestInvoice_Confirm_WithoutItems(t *testing.T) {
	inv := newTestInvoice(t)

	err := inv.Confirm()
	assert.Error(t, err)
	assert.Equal(t, DocumentStatusDraft, inv.Status)
}

func TestInvoice_Confirm_AfterCancel(t *testing.T) {
	inv := newTestInvoice(t)
	require.NoError(t, inv.Cancel())

	err := inv.Confirm()
	assert.Error(t, err)
	assert.Equal(t, DocumentStatusCancelled, inv.Status)
}

func TestInvoice_Cancel(t *testing.T) {
	inv := newTestInvoice(t)

	err := inv.Cancel()
	require.NoError(t, err)
	assert.Equal(t, DocumentStatusCancelled, inv.Status)
	assert.NotNil(t, inv.CancelledAt)
}

func TestInvoice_Cancel_AfterConfirm(t *testing.T) {
	inv := newTestInvoice(t)
	_, err := inv.AddItem(uuid.New(), "Widget", "WID-001", 1, decimal.NewFromFloat(10.00), decimal.NewFromFloat(6.00))
	require.NoError(t, err)
	require.NoError(t, inv.Confirm())

	err = inv.Cancel()
	assert.Error(t, err)
	assert.Equal(t, DocumentStatusConfirmed, inv.Status)
}

func TestInvoice_AddItem_AfterConfirm(t *testing.T) {
	inv := newTestInvoice(t)
	_, err := inv.AddItem(uuid.New(), "Widget", "WID-001", 1, decimal.NewFromFloat(10.00), decimal.NewFromFloat(6.00))
	require.NoError(t, err)
	require.NoError(t, inv.Confirm())

	_, err = inv.AddItem(uuid.New(), "Gadget", "GAD-001", 1, decimal.NewFromFloat(5.00), decimal.NewFromFloat(3.00))
	assert.Error(t, err)
	assert.Equal(t, 1, inv.ItemCount())
}

func TestInvoice_RecordPayment(t *testing.T) {
	inv := newTestInvoice(t)
	_, err := inv.AddItem(uuid.New(), "Widget", "WID-001", 10, decimal.NewFromFloat(10.00), decimal.NewFromFloat(6.00))
	require.NoError(t, err)
	require.NoError(t, inv.Confirm())

	err = inv.RecordPayment(decimal.NewFromFloat(40.00))
	require.NoError(t, err)
	assert.Equal(t, PaymentStatusPartial, inv.PaymentStatus)
	assert.True(t, inv.PaidAmount.Equal(decimal.NewFromFloat(40.00)))

	err = inv.RecordPayment(decimal.NewFromFloat(60.00))
	require.NoError(t, err)
	assert.Equal(t, PaymentStatusPaid, inv.PaymentStatus)
	assert.True(t, inv.PaidAmount.Equal(decimal.NewFromFloat(100.00)))
}

func TestInvoice_RecordPayment_OnDraft(t *testing.T) {
	inv := newTestInvoice(t)
	_, err := inv.AddItem(uuid.New(), "Widget", "WID-001", 1, decimal.NewFromFloat(10.00), decimal.NewFromFloat(6.00))
	require.NoError(t, err)

	err = inv.RecordPayment(decimal.NewFromFloat(5.00))
	assert.Error(t, err)
}

func TestInvoice_RecordPayment_Overpayment(t *testing.T) {
	inv := newTestInvoice(t)
	_, err := inv.AddItem(uuid.New(), "Widget", "WID-001", 1, decimal.NewFromFloat(10.00), decimal.NewFromFloat(6.00))
	require.NoError(t, err)
	require.NoError(t, inv.Confirm())

	err = inv.RecordPayment(decimal.NewFromFloat(10.01))
	assert.Error(t, err)
	assert.True(t, inv.PaidAmount.IsZero())
	assert.Equal(t, PaymentStatusUnpaid, inv.PaymentStatus)
}

func TestInvoice_EstimatedProfit(t *testing.T) {
	inv := newTestInvoice(t)
	_, err := inv.AddItem(uuid.New(), "Widget", "WID-001", 10, decimal.NewFromFloat(10.00), decimal.NewFromFloat(6.00))
	require.NoError(t, err)
	require.NoError(t, inv.ApplyDiscount(decimal.NewFromFloat(10.00)))

	// (100 - 10) - 60 = 30
	assert.True(t, inv.EstimatedProfit().Equal(decimal.NewFromFloat(30.00)))
}

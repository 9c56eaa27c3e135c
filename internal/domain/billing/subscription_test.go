package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBusinessSubscription(t *testing.T) {
	tenantID := uuid.New()
	planID := uuid.New()

	sub, err := NewBusinessSubscription(tenantID, planID)

	require.NoError(t, err)
	assert.Equal(t, tenantID, sub.TenantID)
	assert.Equal(t, planID, sub.PlanID)
	assert.Equal(t, SubscriptionStatusActive, sub.Status)
	assert.True(t, sub.IsActive())
	assert.Nil(t, sub.EndDate)
}

func TestNewBusinessSubscription_EmptyPlan(t *testing.T) {
	_, err := NewBusinessSubscription(uuid.New(), uuid.Nil)
	assert.Error(t, err)
}

func TestNewFreeSubscription(t *testing.T) {
	sub, err := NewFreeSubscription(uuid.New(), uuid.New())

	require.NoError(t, err)
	assert.True(t, sub.IsActive())
	require.NotNil(t, sub.EndDate)
	assert.Equal(t, sub.StartDate.AddDate(1, 0, 0), *sub.EndDate)
}

func TestBusinessSubscription_Expire(t *testing.T) {
	sub, err := NewBusinessSubscription(uuid.New(), uuid.New())
	require.NoError(t, err)

	err = sub.Expire()
	require.NoError(t, err)
	assert.Equal(t, SubscriptionStatusExpired, sub.Status)
	assert.NotNil(t, sub.EndDate)
	assert.False(t, sub.IsActive())

	err = sub.Expire()
	assert.Error(t, err)
}

func TestBusinessSubscription_Cancel(t *testing.T) {
	sub, err := NewBusinessSubscription(uuid.New(), uuid.New())
	require.NoError(t, err)

	err = sub.Cancel()
	require.NoError(t, err)
	assert.Equal(t, SubscriptionStatusCancelled, sub.Status)

	err = sub.Cancel()
	assert.Error(t, err)
}

func TestMonthWindow(t *testing.T) {
	from, to := MonthWindow(time.Date(2026, 1, 15, 13, 45, 0, 0, time.UTC))

	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), to)
}

func TestMonthWindow_YearBoundary(t *testing.T) {
	from, to := MonthWindow(time.Date(2026, 12, 31, 23, 59, 59, 0, time.UTC))

	assert.Equal(t, time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), to)
}

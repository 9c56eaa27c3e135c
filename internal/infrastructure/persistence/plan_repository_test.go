package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/smartbiz/backend/internal/domain/billing"
	"github.com/smartbiz/backend/internal/domain/shared"
)

func setupPlanTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&billing.SubscriptionPlan{})
	require.NoError(t, err)

	return db
}

func seedPlan(t *testing.T, repo *GormPlanRepository, name string, price decimal.Decimal, active bool) *billing.SubscriptionPlan {
	t.Helper()
	plan, err := billing.NewSubscriptionPlan(name, "", price, 3, 100, 20)
	require.NoError(t, err)
	if !active {
		plan.Deactivate()
	}
	require.NoError(t, repo.Save(context.Background(), plan))
	return plan
}

func TestGormPlanRepository_FindDefaultPlan(t *testing.T) {
	repo := NewGormPlanRepository(setupPlanTestDB(t))
	ctx := context.Background()

	free := seedPlan(t, repo, "Free", decimal.Zero, true)
	seedPlan(t, repo, "Pro", decimal.NewFromFloat(29.99), true)

	found, err := repo.FindDefaultPlan(ctx, "Free")
	require.NoError(t, err)
	assert.Equal(t, free.ID, found.ID)
}

func TestGormPlanRepository_FindDefaultPlan_SkipsInactive(t *testing.T) {
	repo := NewGormPlanRepository(setupPlanTestDB(t))
	ctx := context.Background()

	// A withdrawn plan never qualifies, even under the default name
	seedPlan(t, repo, "Free", decimal.Zero, false)

	_, err := repo.FindDefaultPlan(ctx, "Free")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormPlanRepository_FindDefaultPlan_ZeroPriceUnderAnotherName(t *testing.T) {
	repo := NewGormPlanRepository(setupPlanTestDB(t))
	ctx := context.Background()

	seedPlan(t, repo, "Free", decimal.Zero, false)
	starter := seedPlan(t, repo, "Starter", decimal.Zero, true)

	found, err := repo.FindDefaultPlan(ctx, "Free")
	require.NoError(t, err)
	assert.Equal(t, starter.ID, found.ID)
}

func TestGormPlanRepository_FindDefaultPlan_ByID(t *testing.T) {
	repo := NewGormPlanRepository(setupPlanTestDB(t))
	ctx := context.Background()

	plan := seedPlan(t, repo, "Pro", decimal.NewFromFloat(29.99), true)

	found, err := repo.FindByID(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pro", found.Name)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
